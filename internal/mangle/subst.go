package mangle

import "sylph/internal/decl"

// subKey identifies one substitution candidate. Module contexts key by
// their ContextID, nominal-type and protocol declarations by their
// DeclID; exactly one of the two fields is set.
type subKey struct {
	module decl.ContextID
	decl   decl.DeclID
}

func moduleKey(id decl.ContextID) subKey { return subKey{module: id} }
func declKey(id decl.DeclID) subKey      { return subKey{decl: id} }

// tryMangleSubstitution emits a back-reference if the key has been
// fully spelled before in this request and reports whether it did.
//
//	<substitution> ::= 'S' <integer>? '_'
func (m *Mangler) tryMangleSubstitution(key subKey) bool {
	index, ok := m.subs[key]
	if !ok {
		return false
	}
	m.emitByte('S')
	if index != 0 {
		m.emitInt(index - 1)
	}
	m.emitByte('_')
	return true
}

// addSubstitution records the key with the next sequential index.
// Callers invoke it only after the key's full spelling has been
// emitted once; indices are never reassigned.
func (m *Mangler) addSubstitution(key subKey) {
	if _, ok := m.subs[key]; ok {
		return
	}
	m.subs[key] = len(m.subs)
}
