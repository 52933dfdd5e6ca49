package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	// KindInvalid stands for error, unresolved, and type-variable input.
	// The front end never hands such a type to the mangler; meeting one
	// there is a fatal precondition violation.
	KindInvalid Kind = iota
	KindModule
	KindBuiltinInteger
	KindBuiltinFloat
	KindBuiltinRawPointer
	KindBuiltinOpaquePointer
	KindBuiltinObjectPointer
	KindBuiltinForeignPointer
	KindTuple
	KindFunction
	KindPolyFunction
	KindNominal
	KindBoundGeneric
	KindArchetype
	KindComposition
	KindMetatype
	KindLValue
	KindArray
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindModule:
		return "module"
	case KindBuiltinInteger:
		return "builtin-integer"
	case KindBuiltinFloat:
		return "builtin-float"
	case KindBuiltinRawPointer:
		return "builtin-rawpointer"
	case KindBuiltinOpaquePointer:
		return "builtin-opaquepointer"
	case KindBuiltinObjectPointer:
		return "builtin-objectpointer"
	case KindBuiltinForeignPointer:
		return "builtin-foreignpointer"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindPolyFunction:
		return "poly-function"
	case KindNominal:
		return "nominal"
	case KindBoundGeneric:
		return "bound-generic"
	case KindArchetype:
		return "archetype"
	case KindComposition:
		return "composition"
	case KindMetatype:
		return "metatype"
	case KindLValue:
		return "lvalue"
	case KindArray:
		return "array"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the bit width of builtin integers and floats.
type Width uint16

const (
	Width1   Width = 1
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width80  Width = 80
	Width128 Width = 128
)

// Type is a compact descriptor for any supported type. Kinds whose
// identity does not fit the fixed fields carry a Payload slot into a
// per-kind side table on the interner.
type Type struct {
	Kind    Kind
	Elem    TypeID // metatype instance, lvalue object, array element
	Count   uint32 // array element count
	Width   Width  // builtin integer/float bit width
	Payload uint32 // side-table slot for compound kinds
}

// Descriptor helpers ---------------------------------------------------------

// MakeBuiltinInt describes a builtin integer of the given bit width.
func MakeBuiltinInt(width Width) Type {
	return Type{Kind: KindBuiltinInteger, Width: width}
}

// MakeBuiltinFloat describes a builtin IEEE float of the given bit width.
// Legal widths are 16, 32, 64, 80 and 128; the mangler rejects others.
func MakeBuiltinFloat(width Width) Type {
	return Type{Kind: KindBuiltinFloat, Width: width}
}

// MakeMetatype describes the metatype of an instance type.
func MakeMetatype(instance TypeID) Type {
	return Type{Kind: KindMetatype, Elem: instance}
}

// MakeLValue describes an lvalue reference to an object type.
func MakeLValue(object TypeID) Type {
	return Type{Kind: KindLValue, Elem: object}
}

// MakeArray describes a fixed-size array of count elements.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}
