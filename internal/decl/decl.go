package decl

import (
	"fmt"

	"sylph/internal/types"
)

// DeclKind enumerates every kind of declaration the mangler accepts.
type DeclKind uint8

const (
	// DeclInvalid is the zero value; handing it to the mangler is a
	// fatal precondition violation.
	DeclInvalid DeclKind = iota
	DeclFunc
	DeclConstructor
	DeclDestructor
	DeclVar
	DeclSubscript
	DeclEnumElement
	DeclStruct
	DeclClass
	DeclEnum
	DeclProtocol
	DeclTypeAlias
)

func (k DeclKind) String() string {
	switch k {
	case DeclInvalid:
		return "invalid"
	case DeclFunc:
		return "func"
	case DeclConstructor:
		return "constructor"
	case DeclDestructor:
		return "destructor"
	case DeclVar:
		return "var"
	case DeclSubscript:
		return "subscript"
	case DeclEnumElement:
		return "enum-element"
	case DeclStruct:
		return "struct"
	case DeclClass:
		return "class"
	case DeclEnum:
		return "enum"
	case DeclProtocol:
		return "protocol"
	case DeclTypeAlias:
		return "typealias"
	default:
		return fmt.Sprintf("DeclKind(%d)", k)
	}
}

// IsNominal reports whether the kind declares a nominal type.
func (k DeclKind) IsNominal() bool {
	switch k {
	case DeclStruct, DeclClass, DeclEnum, DeclProtocol:
		return true
	default:
		return false
	}
}

// IsTypeDecl reports whether the kind declares a type rather than a value.
func (k DeclKind) IsTypeDecl() bool {
	return k.IsNominal() || k == DeclTypeAlias
}

// AccessorKind distinguishes getter and setter function declarations.
type AccessorKind uint8

const (
	AccessorNone AccessorKind = iota
	AccessorGetter
	AccessorSetter
)

// Accessor links a getter/setter function declaration back to the
// stored property or subscript it accesses.
type Accessor struct {
	Of   DeclID
	Kind AccessorKind
}

// Decl is a fully resolved declaration as handed over by the semantic
// model. The mangler only reads it.
type Decl struct {
	Name     string
	Operator bool
	Kind     DeclKind
	Type     types.TypeID
	Context  ContextID
	Generics ParamListID

	// AsmName, when non-empty, is an externally supplied symbol name
	// that bypasses mangling entirely.
	AsmName string

	// Foreign marks declarations imported through the foreign
	// interface; their original name passes through unmangled.
	Foreign bool

	// ObjC marks class declarations published to the Objective-C
	// runtime; such classes mangle with the fixed foreign-context
	// token instead of their actual context.
	ObjC bool

	// Accessor is set on getter/setter function declarations.
	Accessor Accessor
}
