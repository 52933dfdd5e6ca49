package mangle

import (
	"sylph/internal/decl"
	"sylph/internal/types"
)

// mangleContextOf writes the context production for a declaration.
// Class declarations published under the foreign object-interop
// boundary use the fixed foreign-context token instead of recursing
// into their actual context.
//
//	<known-context> ::= 'So'
func (m *Mangler) mangleContextOf(id decl.DeclID, depth int) {
	d := m.decl(id)
	if d.Kind == decl.DeclClass && (d.ObjC || d.Foreign) {
		m.emit("So")
		return
	}
	m.mangleDeclContext(d.Context, depth)
}

// mangleDeclContext writes a node of the nesting tree.
//
//	<context> ::= 'Ss'                        # base module
//	<context> ::= <substitution>
//	<context> ::= <context>? <identifier>     # ordinary module
//	<context> ::= <type>                      # nominal type, extension
func (m *Mangler) mangleDeclContext(id decl.ContextID, depth int) {
	c := m.context(id)

	switch c.Kind {
	case decl.CtxBuiltinModule:
		panic("mangle: mangling a member of the builtin module")

	case decl.CtxForeignModule:
		// Foreign modules are not namespaces in this grammar.
		return

	case decl.CtxBaseModule:
		m.emit("Ss")

	case decl.CtxModule:
		key := moduleKey(id)
		if m.tryMangleSubstitution(key) {
			return
		}
		if c.Parent.IsValid() {
			m.mangleDeclContext(c.Parent, depth)
		}
		m.mangleIdentifier(c.Name, false)
		m.addSubstitution(key)

	case decl.CtxNominal:
		m.mangleNominalType(c.Decl, depth)

	case decl.CtxExtension:
		// An extension mangles as the canonical form of the extended
		// type, so its members are indistinguishable from members
		// declared directly on the type.
		m.mangleType(c.Extended, ExplosionMinimal, 0, depth)

	case decl.CtxLocal:
		m.mangleLocalContext(c, depth)

	case decl.CtxConstructor:
		m.mangleDeclName(c.Decl, true, depth)

	case decl.CtxDestructor:
		m.mangleDeclName(c.Decl, false, depth)

	case decl.CtxTopLevel:
		// Top-level code contributes no token.
		return

	default:
		panic("mangle: bad context kind " + c.Kind.String())
	}
}

// mangleLocalContext identifies a local scope by the name and
// canonical type of its owning declaration. Accessor owners use the
// dedicated getter/setter production; unnamed owners are unsupported
// and fatal.
func (m *Mangler) mangleLocalContext(c *decl.Context, depth int) {
	if !c.Decl.IsValid() {
		panic("mangle: unnamed local scope mangling not supported")
	}
	owner := m.decl(c.Decl)
	if owner.Accessor.Kind != decl.AccessorNone {
		m.mangleAccessorContext(owner, depth)
		return
	}
	if owner.Name == "" {
		panic("mangle: unnamed local scope mangling not supported")
	}
	m.mangleDeclName(c.Decl, true, depth)
}

// mangleAccessorContext writes the context of a getter or setter
// body: the accessed property's name and canonical type, then the
// accessor letter. The type uses a canonical minimal/zero-uncurry
// form because objects nested within functions are shared across all
// expansions of the function.
func (m *Mangler) mangleAccessorContext(fn *decl.Decl, depth int) {
	if !fn.Accessor.Of.IsValid() {
		panic("mangle: accessor without an accessed declaration")
	}
	m.mangleDeclName(fn.Accessor.Of, false, depth)
	m.mangleDeclType(fn.Accessor.Of, ExplosionMinimal, 0, depth)

	switch fn.Accessor.Kind {
	case decl.AccessorGetter:
		m.emitByte('g')
	case decl.AccessorSetter:
		m.emitByte('s')
	default:
		panic("mangle: bad accessor kind")
	}
}

// mangleDeclName writes a declaration reference.
//
//	<decl> ::= <context> <identifier>
//
// When includeType is true the declaration's canonical type follows,
// mangled with minimal explosion and uncurry level zero so that
// entities nested within functions are shared across all expansions.
func (m *Mangler) mangleDeclName(id decl.DeclID, includeType bool, depth int) {
	d := m.decl(id)
	m.mangleContextOf(id, depth)
	m.mangleIdentifier(d.Name, d.Operator)

	if includeType {
		m.mangleDeclType(id, ExplosionMinimal, 0, depth)
	}
}

// mangleDeclType writes the declared-type suffix of a declaration.
// Type declarations contribute none. Function-like declarations
// contribute their type without binding: it is polymorphic and
// carries its own parameter list. Storage-like declarations bind the
// enclosing generic context first so archetype references inside the
// type resolve; enum elements bind only when they carry a payload.
func (m *Mangler) mangleDeclType(id decl.DeclID, explosion ExplosionKind, uncurry, depth int) {
	d := m.decl(id)

	var wantType, bind bool
	switch d.Kind {
	case decl.DeclStruct, decl.DeclClass, decl.DeclEnum, decl.DeclProtocol, decl.DeclTypeAlias:
		wantType, bind = false, false
	case decl.DeclFunc, decl.DeclConstructor, decl.DeclDestructor:
		wantType, bind = true, false
	case decl.DeclVar, decl.DeclSubscript:
		wantType, bind = true, true
	case decl.DeclEnumElement:
		wantType, bind = true, m.enumElementHasPayload(d)
	default:
		panic("mangle: bad declaration kind " + d.Kind.String())
	}

	if bind {
		if list := m.decls.GenericParamsOfContext(d.Context); list.IsValid() {
			depth = m.bindGenericParamChain(list, depth)
		}
	}
	if wantType {
		m.mangleType(d.Type, explosion, uncurry, depth)
	}
}

// enumElementHasPayload reports whether the element carries a payload:
// such elements have an injection function type instead of the bare
// enum type.
func (m *Mangler) enumElementHasPayload(d *decl.Decl) bool {
	if !d.Type.IsValid() {
		return false
	}
	switch m.types.MustLookup(d.Type).Kind {
	case types.KindFunction, types.KindPolyFunction:
		return true
	default:
		return false
	}
}
