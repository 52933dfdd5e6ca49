package decl

import (
	"fmt"

	"fortio.org/safecast"
)

// Table stores declarations, contexts and generic parameter lists in
// compact slice-based arenas. Index 0 of every arena is reserved for
// the invalid sentinel.
type Table struct {
	decls    []Decl
	contexts []Context
	params   []ParamList
}

// NewTable creates an empty declaration table.
func NewTable() *Table {
	return &Table{
		decls:    make([]Decl, 1, 64),
		contexts: make([]Context, 1, 32),
		params:   make([]ParamList, 1, 8),
	}
}

// NewDecl allocates a declaration and returns its ID.
func (t *Table) NewDecl(d Decl) DeclID {
	value, err := safecast.Conv[uint32](len(t.decls))
	if err != nil {
		panic(fmt.Errorf("decl arena overflow: %w", err))
	}
	t.decls = append(t.decls, d)
	return DeclID(value)
}

// NewContext allocates a context node and returns its ID.
func (t *Table) NewContext(c Context) ContextID {
	value, err := safecast.Conv[uint32](len(t.contexts))
	if err != nil {
		panic(fmt.Errorf("context arena overflow: %w", err))
	}
	t.contexts = append(t.contexts, c)
	return ContextID(value)
}

// NewParamList allocates a generic parameter list and returns its ID.
func (t *Table) NewParamList(l ParamList) ParamListID {
	value, err := safecast.Conv[uint32](len(t.params))
	if err != nil {
		panic(fmt.Errorf("param list arena overflow: %w", err))
	}
	t.params = append(t.params, l)
	return ParamListID(value)
}

// Decl returns the declaration pointer or nil for an invalid ID.
func (t *Table) Decl(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(t.decls) {
		return nil
	}
	return &t.decls[id]
}

// Context returns the context pointer or nil for an invalid ID.
func (t *Table) Context(id ContextID) *Context {
	if !id.IsValid() || int(id) >= len(t.contexts) {
		return nil
	}
	return &t.contexts[id]
}

// ParamList returns the list pointer or nil for an invalid ID.
func (t *Table) ParamList(id ParamListID) *ParamList {
	if !id.IsValid() || int(id) >= len(t.params) {
		return nil
	}
	return &t.params[id]
}

// DeclCount reports the number of declarations excluding the sentinel.
func (t *Table) DeclCount() int { return len(t.decls) - 1 }

// GenericParamsOfContext walks the parent chain from ctx and returns
// the parameter list of the nearest generic-bearing nominal or
// extension context. Storage declarations bind this list before their
// type is mangled so archetype references inside it resolve.
func (t *Table) GenericParamsOfContext(ctx ContextID) ParamListID {
	for id := ctx; id.IsValid(); {
		c := t.Context(id)
		if c == nil {
			return NoParamListID
		}
		switch c.Kind {
		case CtxNominal, CtxExtension:
			if c.Generics.IsValid() {
				return c.Generics
			}
		}
		id = c.Parent
	}
	return NoParamListID
}
