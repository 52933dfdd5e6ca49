// Package mangle converts fully resolved declarations and types into
// compact, unique, linker-safe symbol strings.
//
// One Mangler serves exactly one mangle request: the substitution
// table and the archetype bindings accumulated while encoding are
// meaningless for any other entity, and replaying them would corrupt
// unrelated output. Callers construct a fresh Mangler per request.
//
// Every malformed or unsupported input is a fatal precondition
// violation and panics: by contract all inputs reaching this package
// were already validated by the semantic model, so meeting a bad one
// here signals a bug upstream, not a recoverable condition.
package mangle

import (
	"strconv"
	"strings"

	"sylph/internal/decl"
	"sylph/internal/types"
)

// SchemePrefix marks the mangling grammar generation: every symbol
// this package produces starts with it, except raw foreign and
// assembler names and the anonymous-function literal.
const SchemePrefix = "_T"

// ExplosionKind selects the calling-convention expansion strategy for
// a top-level function signature. It is threaded through the whole
// recursion because the code generator owns the policy, but it never
// contributes bytes to the output.
type ExplosionKind uint8

const (
	ExplosionMinimal ExplosionKind = iota
	ExplosionMaximal
)

type archetypeBinding struct {
	depth int
	index int
}

// Mangler encodes one link entity. The zero value is unusable; call
// New.
type Mangler struct {
	types *types.Interner
	decls *decl.Table

	buf        strings.Builder
	subs       map[subKey]int
	archetypes map[types.TypeID]archetypeBinding
	used       bool
}

// New creates a Mangler for a single request against the given type
// interner and declaration table.
func New(tt *types.Interner, dt *decl.Table) *Mangler {
	if tt == nil || dt == nil {
		panic("mangle: nil type interner or declaration table")
	}
	return &Mangler{
		types:      tt,
		decls:      dt,
		subs:       make(map[subKey]int, 8),
		archetypes: make(map[types.TypeID]archetypeBinding, 4),
	}
}

func (m *Mangler) emit(s string) {
	m.buf.WriteString(s)
}

func (m *Mangler) emitByte(b byte) {
	m.buf.WriteByte(b)
}

func (m *Mangler) emitInt(n int) {
	m.buf.WriteString(strconv.Itoa(n))
}

// mangleIndex writes the compact index production: value 0 is a bare
// terminator, value v>0 writes v-1 before it.
//
//	<index> ::= _            # 0
//	<index> ::= <natural> _  # N+1
func (m *Mangler) mangleIndex(n int) {
	if n != 0 {
		m.emitInt(n - 1)
	}
	m.emitByte('_')
}

func (m *Mangler) decl(id decl.DeclID) *decl.Decl {
	d := m.decls.Decl(id)
	if d == nil {
		panic("mangle: invalid declaration reference")
	}
	return d
}

func (m *Mangler) context(id decl.ContextID) *decl.Context {
	c := m.decls.Context(id)
	if c == nil {
		panic("mangle: invalid context reference")
	}
	return c
}
