package mangle

import (
	"sylph/internal/decl"
	"sylph/internal/types"
)

// standardSubstitutions maps the base-library scalar type names to
// their fixed two-character tokens. The tokens never start with 's'
// (reserved for the base module itself), a digit or '_', and their
// spelling must stay stable across compiler versions.
var standardSubstitutions = map[string]string{
	"Int64":   "Si",
	"UInt64":  "Su",
	"Bool":    "Sb",
	"Char":    "Sc",
	"Float64": "Sd",
	"Float32": "Sf",
	"String":  "SS",
}

// mangleType writes one type.
//
// Type manglings never start with [0-9_] and never end with [0-9].
//
//	<type> ::= A <natural> <type>    # fixed-size array
//	<type> ::= Bf <natural> _        # builtin float
//	<type> ::= Bi <natural> _        # builtin integer
//	<type> ::= BO                    # builtin foreign object pointer
//	<type> ::= Bo                    # builtin object pointer
//	<type> ::= Bp                    # builtin raw pointer
//	<type> ::= Bu                    # builtin opaque pointer
//	<type> ::= C <decl>              # class (substitutable)
//	<type> ::= F <type> <type>       # function type
//	<type> ::= f <type> <type>       # uncurried function type
//	<type> ::= b <type> <type>       # foreign-block function type
//	<type> ::= G <type> <type>+ _    # bound generic type
//	<type> ::= M <type>              # metatype
//	<type> ::= O <decl>              # enum (substitutable)
//	<type> ::= P <protocol-list> _   # protocol composition
//	<type> ::= Q <index>             # archetype, relative depth 0
//	<type> ::= Qd <index> <index>    # archetype, relative depth M+1
//	<type> ::= R <type>              # lvalue reference
//	<type> ::= T <tuple-element>* _  # tuple
//	<type> ::= U <generics> <type>   # universal quantification
//	<type> ::= V <decl>              # struct (substitutable)
//
//	<tuple-element> ::= <identifier>? <type>
//
// Except for the outermost call on a function entity's own signature,
// all substructure is encoded at minimal explosion and uncurry level
// zero: explosion and uncurry select the calling convention of a
// top-level signature, never the identity of nested component types.
func (m *Mangler) mangleType(id types.TypeID, explosion ExplosionKind, uncurry, depth int) {
	if !id.IsValid() {
		panic("mangle: mangling an invalid type")
	}
	tt := m.types.MustLookup(id)

	switch tt.Kind {
	case types.KindInvalid:
		panic("mangle: mangling an error or unresolved type")

	case types.KindModule:
		panic("mangle: mangling a module type")

	case types.KindBuiltinFloat:
		switch tt.Width {
		case types.Width16, types.Width32, types.Width64, types.Width80, types.Width128:
			m.emit("Bf")
			m.emitInt(int(tt.Width))
			m.emitByte('_')
		default:
			panic("mangle: bad builtin float width")
		}

	case types.KindBuiltinInteger:
		m.emit("Bi")
		m.emitInt(int(tt.Width))
		m.emitByte('_')

	case types.KindBuiltinRawPointer:
		m.emit("Bp")

	case types.KindBuiltinOpaquePointer:
		m.emit("Bu")

	case types.KindBuiltinObjectPointer:
		m.emit("Bo")

	case types.KindBuiltinForeignPointer:
		m.emit("BO")

	case types.KindAlias:
		// Sugar unwraps before encoding: a written alias and its
		// expansion must mangle identically.
		info, ok := m.types.AliasInfo(id)
		if !ok {
			panic("mangle: alias without info")
		}
		m.mangleType(info.Underlying, explosion, uncurry, depth)

	case types.KindMetatype:
		m.emitByte('M')
		m.mangleType(tt.Elem, ExplosionMinimal, 0, depth)

	case types.KindLValue:
		m.emitByte('R')
		m.mangleType(tt.Elem, ExplosionMinimal, 0, depth)

	case types.KindTuple:
		info, ok := m.types.TupleInfo(id)
		if !ok {
			panic("mangle: tuple without info")
		}
		m.emitByte('T')
		for _, field := range info.Fields {
			if field.Name != "" {
				m.mangleIdentifier(field.Name, false)
			}
			m.mangleType(field.Type, explosion, 0, depth)
		}
		m.emitByte('_')

	case types.KindNominal:
		info, ok := m.types.NominalInfo(id)
		if !ok {
			panic("mangle: nominal type without info")
		}
		m.mangleNominalType(decl.DeclID(info.Decl), depth)

	case types.KindBoundGeneric:
		info, ok := m.types.BoundInfo(id)
		if !ok {
			panic("mangle: bound generic without info")
		}
		m.emitByte('G')
		m.mangleNominalType(decl.DeclID(info.Decl), depth)
		for _, arg := range info.Args {
			m.mangleType(arg, ExplosionMinimal, 0, depth)
		}
		m.emitByte('_')

	case types.KindPolyFunction:
		info, ok := m.types.PolyFnInfo(id)
		if !ok {
			panic("mangle: polymorphic function without info")
		}
		m.emitByte('U')
		m.manglePolymorphicType(info, explosion, uncurry, depth)

	case types.KindArchetype:
		m.mangleArchetype(id, depth)

	case types.KindFunction:
		info, ok := m.types.FnInfo(id)
		if !ok {
			panic("mangle: function type without info")
		}
		m.mangleFunctionType(info.Input, info.Result, info.Block, explosion, uncurry, depth)

	case types.KindArray:
		m.emitByte('A')
		m.emitInt(int(tt.Count))
		m.mangleType(tt.Elem, ExplosionMinimal, 0, depth)

	case types.KindComposition:
		info, ok := m.types.CompositionInfo(id)
		if !ok {
			panic("mangle: composition without info")
		}
		// A singleton composition collapses upstream to the protocol's
		// nominal type; meeting one here is a model bug.
		if len(info.Protocols) == 1 {
			panic("mangle: singleton protocol composition")
		}
		m.emitByte('P')
		for _, proto := range info.Protocols {
			m.mangleProtocolName(decl.DeclID(proto), depth)
		}
		m.emitByte('_')

	default:
		panic("mangle: bad type kind " + tt.Kind.String())
	}
}

// mangleFunctionType writes a function signature. The foreign-block
// convention wins over uncurrying; otherwise an uncurry level above
// zero selects the uncurried marker and the level is decremented by
// one as the result type is recursed into.
func (m *Mangler) mangleFunctionType(input, result types.TypeID, block bool, explosion ExplosionKind, uncurry, depth int) {
	switch {
	case block:
		m.emitByte('b')
	case uncurry > 0:
		m.emitByte('f')
	default:
		m.emitByte('F')
	}
	m.mangleType(input, explosion, 0, depth)
	next := 0
	if uncurry > 0 {
		next = uncurry - 1
	}
	m.mangleType(result, explosion, next, depth)
}

// mangleNominalType writes a nominal-type reference: the fixed
// base-library token when one applies, a substitution back-reference
// when the declaration was already spelled, and otherwise one kind
// letter followed by the declaration name.
func (m *Mangler) mangleNominalType(id decl.DeclID, depth int) {
	d := m.decl(id)
	if !d.Kind.IsNominal() {
		panic("mangle: not a nominal type declaration: " + d.Kind.String())
	}

	if m.tryMangleStandardSubstitution(d) {
		return
	}

	key := declKey(id)
	if m.tryMangleSubstitution(key) {
		return
	}

	switch d.Kind {
	case decl.DeclClass:
		m.emitByte('C')
	case decl.DeclStruct:
		m.emitByte('V')
	case decl.DeclEnum:
		m.emitByte('O')
	case decl.DeclProtocol:
		m.emitByte('P')
	}
	m.mangleDeclName(id, false, depth)

	m.addSubstitution(key)
}

// tryMangleStandardSubstitution emits the fixed two-character token
// for a base-library scalar and reports whether it did. The check
// fires only when the declaring context is the base module itself.
func (m *Mangler) tryMangleStandardSubstitution(d *decl.Decl) bool {
	if !d.Context.IsValid() {
		return false
	}
	if m.context(d.Context).Kind != decl.CtxBaseModule {
		return false
	}
	token, ok := standardSubstitutions[d.Name]
	if !ok {
		return false
	}
	m.emit(token)
	return true
}

// mangleProtocolName writes a protocol reference. It shares its
// substitution key with the protocol's nominal-type production but is
// spelled without the surrounding 'P' … '_'.
func (m *Mangler) mangleProtocolName(id decl.DeclID, depth int) {
	d := m.decl(id)
	if d.Kind != decl.DeclProtocol {
		panic("mangle: not a protocol declaration: " + d.Kind.String())
	}
	key := declKey(id)
	if m.tryMangleSubstitution(key) {
		return
	}
	m.mangleDeclName(id, false, depth)
	m.addSubstitution(key)
}
