package decl

import (
	"fmt"

	"sylph/internal/types"
)

// ContextKind enumerates the nodes of the lexical/semantic nesting tree.
type ContextKind uint8

const (
	// CtxInvalid is the zero value; mangling it is a fatal
	// precondition violation.
	CtxInvalid ContextKind = iota

	// CtxBuiltinModule holds compiler-internal builtins; members of it
	// are never mangled.
	CtxBuiltinModule

	// CtxBaseModule is the parentless sylph standard-library module.
	// It mangles as a fixed token outside the substitution table.
	CtxBaseModule

	// CtxModule is an ordinary, substitution-eligible module with an
	// optional parent module.
	CtxModule

	// CtxForeignModule is a module imported through the foreign
	// interface. It is not a namespace in the mangling grammar and
	// contributes no token.
	CtxForeignModule

	// CtxNominal is the body of a struct/class/enum/protocol
	// declaration.
	CtxNominal

	// CtxExtension mangles as the canonical form of the extended type,
	// never as itself.
	CtxExtension

	// CtxLocal is a local/closure scope owned by its nearest enclosing
	// named declaration. An unnamed owner is a fatal condition.
	CtxLocal

	// CtxConstructor and CtxDestructor are the bodies of constructor
	// and destructor declarations.
	CtxConstructor
	CtxDestructor

	// CtxTopLevel is top-level script code; it contributes no token.
	CtxTopLevel
)

func (k ContextKind) String() string {
	switch k {
	case CtxInvalid:
		return "invalid"
	case CtxBuiltinModule:
		return "builtin-module"
	case CtxBaseModule:
		return "base-module"
	case CtxModule:
		return "module"
	case CtxForeignModule:
		return "foreign-module"
	case CtxNominal:
		return "nominal"
	case CtxExtension:
		return "extension"
	case CtxLocal:
		return "local"
	case CtxConstructor:
		return "constructor"
	case CtxDestructor:
		return "destructor"
	case CtxTopLevel:
		return "top-level"
	default:
		return fmt.Sprintf("ContextKind(%d)", k)
	}
}

// Context is one node of the nesting tree. Parent edges form a forest
// rooted at modules.
type Context struct {
	Kind   ContextKind
	Parent ContextID

	// Name is set for module contexts.
	Name string

	// Decl is the owning declaration for nominal, local, constructor
	// and destructor contexts.
	Decl DeclID

	// Extended is the extended type for extension contexts.
	Extended types.TypeID

	// Generics is the parameter list declared by a nominal or
	// extension context, if any.
	Generics ParamListID
}
