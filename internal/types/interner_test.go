package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if b.Invalid != NoTypeID {
		t.Errorf("Invalid = %v, want %v", b.Invalid, NoTypeID)
	}
	if !b.Int64.IsValid() || !b.Float32.IsValid() {
		t.Fatal("builtin scalars not seeded")
	}
	if got := in.MustLookup(b.Int64); got.Kind != KindBuiltinInteger || got.Width != Width64 {
		t.Errorf("Int64 descriptor = %+v", got)
	}
	if got := in.MustLookup(b.ForeignPointer); got.Kind != KindBuiltinForeignPointer {
		t.Errorf("ForeignPointer descriptor = %+v", got)
	}
}

func TestInternStructuralDedup(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	meta1 := in.Intern(MakeMetatype(b.Int64))
	meta2 := in.Intern(MakeMetatype(b.Int64))
	if meta1 != meta2 {
		t.Errorf("metatype not deduplicated: %v vs %v", meta1, meta2)
	}

	arr1 := in.Intern(MakeArray(b.Float32, 4))
	arr2 := in.Intern(MakeArray(b.Float32, 4))
	arr3 := in.Intern(MakeArray(b.Float32, 8))
	if arr1 != arr2 {
		t.Errorf("array not deduplicated: %v vs %v", arr1, arr2)
	}
	if arr1 == arr3 {
		t.Error("arrays of different counts share one ID")
	}
}

func TestRegisterCompoundDedup(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	fields := []TupleField{{Name: "x", Type: b.Int64}, {Type: b.Float64}}
	t1 := in.RegisterTuple(fields)
	t2 := in.RegisterTuple(fields)
	if t1 != t2 {
		t.Errorf("tuple not deduplicated: %v vs %v", t1, t2)
	}
	unnamed := in.RegisterTuple([]TupleField{{Type: b.Int64}, {Type: b.Float64}})
	if unnamed == t1 {
		t.Error("field labels must be part of tuple identity")
	}

	f1 := in.RegisterFn(t1, b.Int64, false)
	f2 := in.RegisterFn(t1, b.Int64, false)
	blk := in.RegisterFn(t1, b.Int64, true)
	if f1 != f2 {
		t.Errorf("function not deduplicated: %v vs %v", f1, f2)
	}
	if f1 == blk {
		t.Error("block convention must be part of function identity")
	}

	g1 := in.RegisterBoundGeneric(7, []TypeID{b.Int64})
	g2 := in.RegisterBoundGeneric(7, []TypeID{b.Int64})
	g3 := in.RegisterBoundGeneric(7, []TypeID{b.Float64})
	if g1 != g2 {
		t.Errorf("bound generic not deduplicated: %v vs %v", g1, g2)
	}
	if g1 == g3 {
		t.Error("generic arguments must be part of identity")
	}
}

func TestNominalIdentity(t *testing.T) {
	in := NewInterner()

	n1 := in.RegisterNominal(1)
	n2 := in.RegisterNominal(1)
	n3 := in.RegisterNominal(2)
	if n1 != n2 {
		t.Errorf("one declaration must have one nominal type: %v vs %v", n1, n2)
	}
	if n1 == n3 {
		t.Error("distinct declarations share one nominal type")
	}

	// Archetypes are never deduplicated, even with equal names.
	a1 := in.RegisterArchetype("T")
	a2 := in.RegisterArchetype("T")
	if a1 == a2 {
		t.Error("archetypes must keep nominal identity")
	}
}

func TestSideTableAccessors(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	alias := in.RegisterAlias("Offset", b.Int64)
	info, ok := in.AliasInfo(alias)
	if !ok || info.Name != "Offset" || info.Underlying != b.Int64 {
		t.Fatalf("AliasInfo = %+v, %v", info, ok)
	}
	if _, ok := in.AliasInfo(b.Int64); ok {
		t.Error("AliasInfo should reject non-alias IDs")
	}

	comp := in.RegisterComposition([]uint32{3, 4})
	cinfo, ok := in.CompositionInfo(comp)
	if !ok || len(cinfo.Protocols) != 2 {
		t.Fatalf("CompositionInfo = %+v, %v", cinfo, ok)
	}

	fn := in.RegisterFn(b.Int64, b.Int64, true)
	finfo, ok := in.FnInfo(fn)
	if !ok || !finfo.Block {
		t.Fatalf("FnInfo = %+v, %v", finfo, ok)
	}
}

func TestInternRejectsSideTableDescriptors(t *testing.T) {
	in := NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a side-table descriptor")
		}
	}()
	in.Intern(Type{Kind: KindTuple, Payload: 1})
}
