package mangle

import (
	"fmt"

	"sylph/internal/decl"
	"sylph/internal/types"
)

// EntityKind tags the external symbol being requested.
type EntityKind uint8

const (
	EntityInvalid EntityKind = iota
	EntityFunction
	EntityConstructor
	EntityDestructor
	EntityGetter
	EntitySetter
	EntityTypeMetadata
	EntityMetaclassStub
	EntityWitnessTableOffset
	EntityFieldOffset
	EntityValueWitness
	EntityValueWitnessTable
	EntityBridgeToBlock
	EntityTypeMangling
	EntityForeignClass
	EntityForeignMetaclass
	EntityAnonymousFunction
	EntityOther
)

func (k EntityKind) String() string {
	switch k {
	case EntityInvalid:
		return "invalid"
	case EntityFunction:
		return "function"
	case EntityConstructor:
		return "constructor"
	case EntityDestructor:
		return "destructor"
	case EntityGetter:
		return "getter"
	case EntitySetter:
		return "setter"
	case EntityTypeMetadata:
		return "type-metadata"
	case EntityMetaclassStub:
		return "metaclass-stub"
	case EntityWitnessTableOffset:
		return "witness-table-offset"
	case EntityFieldOffset:
		return "field-offset"
	case EntityValueWitness:
		return "value-witness"
	case EntityValueWitnessTable:
		return "value-witness-table"
	case EntityBridgeToBlock:
		return "bridge-to-block"
	case EntityTypeMangling:
		return "type-mangling"
	case EntityForeignClass:
		return "foreign-class"
	case EntityForeignMetaclass:
		return "foreign-metaclass"
	case EntityAnonymousFunction:
		return "anonymous-function"
	case EntityOther:
		return "other"
	default:
		return fmt.Sprintf("EntityKind(%d)", k)
	}
}

// ConstructorKind distinguishes the two physical constructor symbols.
type ConstructorKind uint8

const (
	ConstructorAllocating ConstructorKind = iota
	ConstructorInitializing
)

// DestructorKind distinguishes the two physical destructor symbols.
type DestructorKind uint8

const (
	DestructorDeallocating DestructorKind = iota
	DestructorDestroying
)

// LinkEntity is the external mangle request: which symbol to produce,
// for which declaration or type, under which calling-convention
// policy.
type LinkEntity struct {
	Kind EntityKind

	Decl decl.DeclID
	Type types.TypeID

	Explosion ExplosionKind
	Uncurry   int

	// Local marks entities with local (non-external) linkage.
	Local bool

	Constructor ConstructorKind
	Destructor  DestructorKind
	Witness     ValueWitness

	// Pattern and Indirect qualify type-metadata requests; Indirect
	// also qualifies field offsets.
	Pattern  bool
	Indirect bool
}

// FunctionEntity requests the symbol of a free or member function.
func FunctionEntity(d decl.DeclID, explosion ExplosionKind, uncurry int) LinkEntity {
	return LinkEntity{Kind: EntityFunction, Decl: d, Explosion: explosion, Uncurry: uncurry}
}

// OtherEntity requests the symbol of any other named declaration.
func OtherEntity(d decl.DeclID, explosion ExplosionKind, uncurry int) LinkEntity {
	return LinkEntity{Kind: EntityOther, Decl: d, Explosion: explosion, Uncurry: uncurry}
}

// ConstructorEntity requests an allocating or initializing
// constructor symbol.
func ConstructorEntity(d decl.DeclID, kind ConstructorKind, explosion ExplosionKind, uncurry int) LinkEntity {
	return LinkEntity{Kind: EntityConstructor, Decl: d, Constructor: kind, Explosion: explosion, Uncurry: uncurry}
}

// DestructorEntity requests a destructor symbol; d is the class
// declaration being destroyed.
func DestructorEntity(d decl.DeclID, kind DestructorKind) LinkEntity {
	return LinkEntity{Kind: EntityDestructor, Decl: d, Destructor: kind}
}

// GetterEntity requests a property or subscript getter symbol.
func GetterEntity(d decl.DeclID, explosion ExplosionKind, uncurry int) LinkEntity {
	return LinkEntity{Kind: EntityGetter, Decl: d, Explosion: explosion, Uncurry: uncurry}
}

// SetterEntity requests a property or subscript setter symbol.
func SetterEntity(d decl.DeclID, explosion ExplosionKind, uncurry int) LinkEntity {
	return LinkEntity{Kind: EntitySetter, Decl: d, Explosion: explosion, Uncurry: uncurry}
}

// TypeMetadataEntity requests the metadata record of a type; pattern
// selects the instantiation pattern of a generic type.
func TypeMetadataEntity(t types.TypeID, pattern, indirect bool) LinkEntity {
	return LinkEntity{Kind: EntityTypeMetadata, Type: t, Pattern: pattern, Indirect: indirect}
}

// MetaclassStubEntity requests the metaclass stub of a class.
func MetaclassStubEntity(d decl.DeclID) LinkEntity {
	return LinkEntity{Kind: EntityMetaclassStub, Decl: d}
}

// WitnessTableOffsetEntity requests the witness-table offset of a
// member declaration.
func WitnessTableOffsetEntity(d decl.DeclID, explosion ExplosionKind, uncurry int) LinkEntity {
	return LinkEntity{Kind: EntityWitnessTableOffset, Decl: d, Explosion: explosion, Uncurry: uncurry}
}

// FieldOffsetEntity requests the field offset of a stored property.
func FieldOffsetEntity(d decl.DeclID, indirect bool) LinkEntity {
	return LinkEntity{Kind: EntityFieldOffset, Decl: d, Indirect: indirect}
}

// ValueWitnessEntity requests one value-witness function of a type.
func ValueWitnessEntity(t types.TypeID, w ValueWitness) LinkEntity {
	return LinkEntity{Kind: EntityValueWitness, Type: t, Witness: w}
}

// ValueWitnessTableEntity requests the value witness table of a type.
func ValueWitnessTableEntity(t types.TypeID) LinkEntity {
	return LinkEntity{Kind: EntityValueWitnessTable, Type: t}
}

// BridgeToBlockEntity requests the native-to-foreign-block conversion
// thunk for a function type.
func BridgeToBlockEntity(t types.TypeID) LinkEntity {
	return LinkEntity{Kind: EntityBridgeToBlock, Type: t}
}

// TypeManglingEntity requests the bare mangling of a type.
func TypeManglingEntity(t types.TypeID) LinkEntity {
	return LinkEntity{Kind: EntityTypeMangling, Type: t}
}

// ForeignClassEntity requests a foreign-runtime class reference.
func ForeignClassEntity(d decl.DeclID) LinkEntity {
	return LinkEntity{Kind: EntityForeignClass, Decl: d}
}

// ForeignMetaclassEntity requests a foreign-runtime metaclass
// reference.
func ForeignMetaclassEntity(d decl.DeclID) LinkEntity {
	return LinkEntity{Kind: EntityForeignMetaclass, Decl: d}
}

// AnonymousFunctionEntity requests the symbol of a not-yet-named
// closure.
func AnonymousFunctionEntity() LinkEntity {
	return LinkEntity{Kind: EntityAnonymousFunction}
}
