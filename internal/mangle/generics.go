package mangle

import (
	"sylph/internal/decl"
	"sylph/internal/types"
)

// bindGenericParams assigns every parameter of list its (depth, index)
// pair and returns the new depth. Depth is the chain length from the
// outermost list, inclusive, added to the caller's depth; only the
// given list's own parameters are registered — outer lists are bound
// by the contexts that declared them.
//
// When declare is true the list's grammar is emitted too:
//
//	<generic-parameter> ::= <protocol-list> '_'
//	<generics> ::= <generic-parameter>+ '_'
//
// When declare is false the parameters are registered for later
// archetype references without emitting anything.
//
// Depth is threaded as an explicit parameter through the whole
// recursion, so a caller's depth is untouched once the nested descent
// returns. Re-binding an archetype within one request panics.
func (m *Mangler) bindGenericParams(listID decl.ParamListID, declare bool, depth int) int {
	list := m.decls.ParamList(listID)
	if list == nil {
		panic("mangle: binding an invalid generic parameter list")
	}

	for id := listID; id.IsValid(); id = m.decls.ParamList(id).Outer {
		depth++
	}

	for index, param := range list.Params {
		if !param.Archetype.IsValid() {
			panic("mangle: generic parameter without an archetype")
		}
		if _, bound := m.archetypes[param.Archetype]; bound {
			panic("mangle: archetype bound twice in one request")
		}
		m.archetypes[param.Archetype] = archetypeBinding{depth: depth, index: index}

		if !declare {
			continue
		}
		for _, proto := range param.Conforms {
			m.mangleProtocolName(proto, depth)
		}
		m.emitByte('_')
	}

	if declare {
		m.emitByte('_')
	}
	return depth
}

// bindGenericParamChain binds every list in the chain ending at listID,
// outermost first, so a storage declaration nested in generic scopes
// can reference any enclosing parameter. Returns the innermost depth.
func (m *Mangler) bindGenericParamChain(listID decl.ParamListID, depth int) int {
	var chain []decl.ParamListID
	for id := listID; id.IsValid(); id = m.decls.ParamList(id).Outer {
		chain = append(chain, id)
	}
	base := depth
	for i := len(chain) - 1; i >= 0; i-- {
		depth = m.bindGenericParams(chain[i], false, base)
	}
	return depth
}

// mangleArchetype writes an archetype reference relative to the
// currently bound depth.
//
//	<type> ::= Q <index>            # depth delta 0, index N
//	<type> ::= Qd <index> <index>   # depth delta M+1, index N
//
// The delta keeps manglings independent of how many additional outer
// generic scopes enclose a given use.
func (m *Mangler) mangleArchetype(id types.TypeID, depth int) {
	info, ok := m.archetypes[id]
	if !ok {
		panic("mangle: reference to an unbound archetype")
	}
	if info.depth > depth {
		panic("mangle: archetype bound deeper than the current scope")
	}

	m.emitByte('Q')
	if delta := depth - info.depth; delta != 0 {
		m.emitByte('d')
		m.mangleIndex(delta - 1)
	}
	m.mangleIndex(info.index)
}

// manglePolymorphicType declares the generic parameter list and then
// mangles the quantified signature as a function type. The caller has
// already written the 'U' marker.
func (m *Mangler) manglePolymorphicType(info *types.PolyFnInfo, explosion ExplosionKind, uncurry, depth int) {
	inner := m.bindGenericParams(decl.ParamListID(info.Params), true, depth)
	m.mangleFunctionType(info.Input, info.Result, info.Block, explosion, uncurry, inner)
}
