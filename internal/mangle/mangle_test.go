package mangle

import (
	"strings"
	"testing"

	"sylph/internal/decl"
	"sylph/internal/types"
)

// fixture assembles a small semantic model for mangling tests: the
// sylph base module plus whatever the test declares on top of it.
type fixture struct {
	t     *testing.T
	types *types.Interner
	decls *decl.Table
	base  decl.ContextID
}

func newModel(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, types: types.NewInterner(), decls: decl.NewTable()}
	f.base = f.decls.NewContext(decl.Context{Kind: decl.CtxBaseModule, Name: "sylph"})
	return f
}

// module declares an ordinary module context.
func (f *fixture) module(name string, parent decl.ContextID) decl.ContextID {
	return f.decls.NewContext(decl.Context{Kind: decl.CtxModule, Parent: parent, Name: name})
}

// nominal declares a nominal type in the given context and returns the
// declaration, its body context and its declared type.
func (f *fixture) nominal(kind decl.DeclKind, name string, parent decl.ContextID) (decl.DeclID, decl.ContextID, types.TypeID) {
	d := f.decls.NewDecl(decl.Decl{Name: name, Kind: kind, Context: parent})
	ctx := f.decls.NewContext(decl.Context{Kind: decl.CtxNominal, Parent: parent, Decl: d})
	return d, ctx, f.types.RegisterNominal(uint32(d))
}

// scalar declares a base-library scalar struct by name.
func (f *fixture) scalar(name string) types.TypeID {
	_, _, ty := f.nominal(decl.DeclStruct, name, f.base)
	return ty
}

// mangleType runs one type through a fresh request.
func (f *fixture) mangleType(id types.TypeID) string {
	m := New(f.types, f.decls)
	m.mangleType(id, ExplosionMinimal, 0, 0)
	return m.buf.String()
}

func (f *fixture) mangle(ent LinkEntity) string {
	return New(f.types, f.decls).Mangle(ent)
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", substr)
		}
		msg, ok := r.(string)
		if !ok {
			if err, isErr := r.(error); isErr {
				msg = err.Error()
			} else {
				t.Fatalf("unexpected panic payload %v", r)
			}
		}
		if !strings.Contains(msg, substr) {
			t.Fatalf("panic %q does not contain %q", msg, substr)
		}
	}()
	fn()
}

func TestManglerSingleUse(t *testing.T) {
	f := newModel(t)
	d := f.decls.NewDecl(decl.Decl{
		Name:    "main",
		Kind:    decl.DeclFunc,
		Type:    f.types.RegisterFn(f.types.RegisterTuple(nil), f.types.RegisterTuple(nil), false),
		Context: f.base,
	})

	m := New(f.types, f.decls)
	if got := m.Mangle(FunctionEntity(d, ExplosionMinimal, 0)); got == "" {
		t.Fatalf("empty symbol")
	}
	expectPanic(t, "reused", func() {
		m.Mangle(FunctionEntity(d, ExplosionMinimal, 0))
	})
}

func TestMangleDeterminism(t *testing.T) {
	f := newModel(t)
	app := f.module("app", decl.NoContextID)
	_, _, pair := f.nominal(decl.DeclStruct, "Pair", app)
	int64Ty := f.scalar("Int64")
	fn := f.types.RegisterFn(f.types.RegisterTuple([]types.TupleField{{Type: pair}, {Type: int64Ty}}), pair, false)
	d := f.decls.NewDecl(decl.Decl{Name: "merge", Kind: decl.DeclFunc, Type: fn, Context: app})

	ent := FunctionEntity(d, ExplosionMaximal, 1)
	first := f.mangle(ent)
	second := f.mangle(ent)
	if first != second {
		t.Fatalf("mangling is not deterministic: %q vs %q", first, second)
	}
}

func TestMangleInjectivity(t *testing.T) {
	f := newModel(t)
	app := f.module("app", decl.NoContextID)
	int64Ty := f.scalar("Int64")
	boolTy := f.scalar("Bool")
	fnII := f.types.RegisterFn(int64Ty, int64Ty, false)
	fnIB := f.types.RegisterFn(int64Ty, boolTy, false)

	a := f.decls.NewDecl(decl.Decl{Name: "f", Kind: decl.DeclFunc, Type: fnII, Context: app})
	b := f.decls.NewDecl(decl.Decl{Name: "f", Kind: decl.DeclFunc, Type: fnIB, Context: app})
	c := f.decls.NewDecl(decl.Decl{Name: "g", Kind: decl.DeclFunc, Type: fnII, Context: app})
	v := f.decls.NewDecl(decl.Decl{Name: "f", Kind: decl.DeclVar, Type: int64Ty, Context: app})

	entities := []LinkEntity{
		FunctionEntity(a, ExplosionMinimal, 0),
		FunctionEntity(a, ExplosionMinimal, 1),
		FunctionEntity(b, ExplosionMinimal, 0),
		FunctionEntity(c, ExplosionMinimal, 0),
		OtherEntity(v, ExplosionMinimal, 0),
		GetterEntity(v, ExplosionMinimal, 0),
		SetterEntity(v, ExplosionMinimal, 0),
	}

	seen := make(map[string]int, len(entities))
	for i, ent := range entities {
		sym := f.mangle(ent)
		if prev, dup := seen[sym]; dup {
			t.Fatalf("entities %d and %d collide on %q", prev, i, sym)
		}
		seen[sym] = i
	}
}

// Output must stay linker-safe without separators: never a leading
// digit or underscore, never a trailing digit.
func TestMangleTokenBoundarySafety(t *testing.T) {
	f := newModel(t)
	app := f.module("app", decl.NoContextID)
	_, _, pair := f.nominal(decl.DeclStruct, "Pair", app)
	int64Ty := f.scalar("Int64")
	float32Ty := f.scalar("Float32")
	fn := f.types.RegisterFn(int64Ty, pair, false)
	d := f.decls.NewDecl(decl.Decl{Name: "make", Kind: decl.DeclFunc, Type: fn, Context: app})

	symbols := []string{
		f.mangle(FunctionEntity(d, ExplosionMinimal, 0)),
		f.mangle(TypeManglingEntity(f.types.Intern(types.MakeArray(float32Ty, 4)))),
		f.mangle(TypeManglingEntity(f.types.Intern(types.MakeMetatype(pair)))),
		f.mangle(TypeMetadataEntity(pair, true, true)),
		f.mangle(ValueWitnessEntity(pair, WitnessProjectBuffer)),
	}
	for _, sym := range symbols {
		if sym == "" {
			t.Fatal("empty symbol")
		}
		first, last := sym[0], sym[len(sym)-1]
		if first == '_' && !strings.HasPrefix(sym, "_T") {
			t.Errorf("%q starts with a bare underscore", sym)
		}
		if first >= '0' && first <= '9' {
			t.Errorf("%q starts with a digit", sym)
		}
		if last >= '0' && last <= '9' {
			t.Errorf("%q ends with a digit", sym)
		}
	}
}
