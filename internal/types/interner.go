package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the pre-seeded builtin scalar types.
type Builtins struct {
	Invalid        TypeID
	RawPointer     TypeID
	OpaquePointer  TypeID
	ObjectPointer  TypeID
	ForeignPointer TypeID
	Int1           TypeID
	Int8           TypeID
	Int16          TypeID
	Int32          TypeID
	Int64          TypeID
	Float32        TypeID
	Float64        TypeID
}

// Interner provides stable TypeIDs. Structural descriptors (builtins,
// metatypes, lvalues, arrays) are deduplicated by value; compound kinds
// (tuples, functions, compositions, bound generics) are deduplicated by
// scanning their side tables; nominal kinds (nominal declarations,
// archetypes, aliases) keep nominal identity and always get a fresh id.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	tuples       []TupleInfo
	fns          []FnInfo
	polyFns      []PolyFnInfo
	nominals     []NominalInfo
	bounds       []BoundInfo
	archetypes   []ArchetypeInfo
	compositions []CompositionInfo
	aliases      []AliasInfo
}

// NewInterner constructs an interner seeded with the builtin scalars.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid}) // reserve 0
	in.builtins.RawPointer = in.Intern(Type{Kind: KindBuiltinRawPointer})
	in.builtins.OpaquePointer = in.Intern(Type{Kind: KindBuiltinOpaquePointer})
	in.builtins.ObjectPointer = in.Intern(Type{Kind: KindBuiltinObjectPointer})
	in.builtins.ForeignPointer = in.Intern(Type{Kind: KindBuiltinForeignPointer})
	in.builtins.Int1 = in.Intern(MakeBuiltinInt(Width1))
	in.builtins.Int8 = in.Intern(MakeBuiltinInt(Width8))
	in.builtins.Int16 = in.Intern(MakeBuiltinInt(Width16))
	in.builtins.Int32 = in.Intern(MakeBuiltinInt(Width32))
	in.builtins.Int64 = in.Intern(MakeBuiltinInt(Width64))
	in.builtins.Float32 = in.Intern(MakeBuiltinFloat(Width32))
	in.builtins.Float64 = in.Intern(MakeBuiltinFloat(Width64))
	return in
}

// Builtins returns TypeIDs for the builtin scalar types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided structural descriptor has a stable TypeID.
// Compound and nominal kinds must go through their Register constructors.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Payload != 0 {
		panic("types: Intern called with a side-table descriptor")
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len reports the number of interned types including the invalid sentinel.
func (in *Interner) Len() int { return len(in.types) }

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Width   Width
	Payload uint32
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeID, len(args))
	copy(out, args)
	return out
}
