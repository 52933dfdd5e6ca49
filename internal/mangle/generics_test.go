package mangle

import (
	"testing"

	"sylph/internal/decl"
	"sylph/internal/types"
)

// paramList registers archetypes for the named parameters and
// allocates the list.
func (f *fixture) paramList(outer decl.ParamListID, names []string, conforms map[string][]decl.DeclID) (decl.ParamListID, []types.TypeID) {
	params := make([]decl.Param, len(names))
	archetypes := make([]types.TypeID, len(names))
	for i, name := range names {
		archetypes[i] = f.types.RegisterArchetype(name)
		params[i] = decl.Param{Name: name, Archetype: archetypes[i], Conforms: conforms[name]}
	}
	return f.decls.NewParamList(decl.ParamList{Outer: outer, Params: params}), archetypes
}

func TestPolymorphicFunction(t *testing.T) {
	f := newModel(t)
	app := f.module("app", decl.NoContextID)
	comparable, _, _ := f.nominal(decl.DeclProtocol, "Comparable", app)
	boolTy := f.scalar("Bool")

	list, archetypes := f.paramList(decl.NoParamListID, []string{"T"},
		map[string][]decl.DeclID{"T": {comparable}})
	poly := f.types.RegisterPolyFn(uint32(list), archetypes[0], boolTy, false)

	if got, want := f.mangleType(poly), "U3app10Comparable__FQ_Sb"; got != want {
		t.Fatalf("polymorphic type = %q, want %q", got, want)
	}
}

func TestArchetypeDepthRelativity(t *testing.T) {
	f := newModel(t)
	outerList, outerArch := f.paramList(decl.NoParamListID, []string{"T"}, nil)
	innerList, innerArch := f.paramList(outerList, []string{"U"}, nil)

	m := New(f.types, f.decls)
	depth := m.bindGenericParams(outerList, false, 0)
	if depth != 1 {
		t.Fatalf("outer depth = %d, want 1", depth)
	}

	// From the outer scope the parameter is innermost: delta 0.
	m.mangleArchetype(outerArch[0], depth)
	if got, want := m.buf.String(), "Q_"; got != want {
		t.Fatalf("outer reference = %q, want %q", got, want)
	}

	inner := m.bindGenericParams(innerList, false, 0)
	if inner != 2 {
		t.Fatalf("inner depth = %d, want 2", inner)
	}

	// From the nested scope the same parameter is one level out: the
	// encoding is relative to the bound depth, not absolute.
	m.buf.Reset()
	m.mangleArchetype(outerArch[0], inner)
	if got, want := m.buf.String(), "Qd__"; got != want {
		t.Fatalf("nested reference = %q, want %q", got, want)
	}

	m.buf.Reset()
	m.mangleArchetype(innerArch[0], inner)
	if got, want := m.buf.String(), "Q_"; got != want {
		t.Fatalf("inner reference = %q, want %q", got, want)
	}
}

func TestArchetypeIndexEncoding(t *testing.T) {
	f := newModel(t)
	list, archetypes := f.paramList(decl.NoParamListID, []string{"T", "U", "V"}, nil)

	m := New(f.types, f.decls)
	depth := m.bindGenericParams(list, false, 0)

	wants := []string{"Q_", "Q0_", "Q1_"}
	for i, arch := range archetypes {
		m.buf.Reset()
		m.mangleArchetype(arch, depth)
		if got := m.buf.String(); got != wants[i] {
			t.Errorf("index %d = %q, want %q", i, got, wants[i])
		}
	}
}

func TestStorageBindsEnclosingGenerics(t *testing.T) {
	f := newModel(t)
	app := f.module("app", decl.NoContextID)
	list, archetypes := f.paramList(decl.NoParamListID, []string{"T"}, nil)

	boxDecl := f.decls.NewDecl(decl.Decl{Name: "Box", Kind: decl.DeclStruct, Context: app, Generics: list})
	boxCtx := f.decls.NewContext(decl.Context{Kind: decl.CtxNominal, Parent: app, Decl: boxDecl, Generics: list})

	value := f.decls.NewDecl(decl.Decl{Name: "value", Kind: decl.DeclVar, Type: archetypes[0], Context: boxCtx})

	// The stored property's type is the archetype itself; mangling
	// the entity must bind Box's parameters first so the reference
	// resolves.
	got := f.mangle(OtherEntity(value, ExplosionMinimal, 0))
	if want := "_TV3app3Box5valueQ_"; got != want {
		t.Fatalf("stored property = %q, want %q", got, want)
	}
}

func TestStorageBindsWholeGenericChain(t *testing.T) {
	f := newModel(t)
	app := f.module("app", decl.NoContextID)
	outerList, outerArch := f.paramList(decl.NoParamListID, []string{"T"}, nil)
	innerList, innerArch := f.paramList(outerList, []string{"U"}, nil)

	outerDecl := f.decls.NewDecl(decl.Decl{Name: "Outer", Kind: decl.DeclStruct, Context: app, Generics: outerList})
	outerCtx := f.decls.NewContext(decl.Context{Kind: decl.CtxNominal, Parent: app, Decl: outerDecl, Generics: outerList})
	innerDecl := f.decls.NewDecl(decl.Decl{Name: "Inner", Kind: decl.DeclStruct, Context: outerCtx, Generics: innerList})
	innerCtx := f.decls.NewContext(decl.Context{Kind: decl.CtxNominal, Parent: outerCtx, Decl: innerDecl, Generics: innerList})

	pair := f.types.RegisterTuple([]types.TupleField{
		{Type: outerArch[0]},
		{Type: innerArch[0]},
	})
	pin := f.decls.NewDecl(decl.Decl{Name: "pin", Kind: decl.DeclVar, Type: pair, Context: innerCtx})

	// The outer parameter resolves one level out, the inner one at the
	// innermost depth.
	got := f.mangle(OtherEntity(pin, ExplosionMinimal, 0))
	if want := "_TVV3app5Outer5Inner3pinTQd__Q__"; got != want {
		t.Fatalf("nested stored property = %q, want %q", got, want)
	}
}

func TestUnboundArchetypePanics(t *testing.T) {
	f := newModel(t)
	arch := f.types.RegisterArchetype("T")
	expectPanic(t, "unbound archetype", func() {
		f.mangleType(arch)
	})
}

func TestRebindingArchetypePanics(t *testing.T) {
	f := newModel(t)
	list, _ := f.paramList(decl.NoParamListID, []string{"T"}, nil)

	m := New(f.types, f.decls)
	m.bindGenericParams(list, false, 0)
	expectPanic(t, "bound twice", func() {
		m.bindGenericParams(list, false, 0)
	})
}

// Binding is scoped by the explicit depth parameter: a descent into a
// nested generic scope never disturbs the caller's depth.
func TestNestedBindingRestoresDepth(t *testing.T) {
	f := newModel(t)
	boolTy := f.scalar("Bool")
	outerList, outerArch := f.paramList(decl.NoParamListID, []string{"T"}, nil)
	innerList, innerArch := f.paramList(decl.NoParamListID, []string{"U"}, nil)
	poly := f.types.RegisterPolyFn(uint32(innerList), innerArch[0], boolTy, false)

	m := New(f.types, f.decls)
	depth := m.bindGenericParams(outerList, false, 0)

	// Tuple of the outer archetype and a polymorphic function: after
	// the nested 'U' descent the outer reference still encodes at the
	// caller's depth.
	tuple := f.types.RegisterTuple([]types.TupleField{
		{Type: poly},
		{Type: outerArch[0]},
	})
	m.mangleType(tuple, ExplosionMinimal, 0, depth)
	if got, want := m.buf.String(), "TU__FQ_SbQ__"; got != want {
		t.Fatalf("mangled = %q, want %q", got, want)
	}
}
