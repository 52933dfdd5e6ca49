package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"sylph/internal/mangle"
)

func symbols(t *testing.T, model *Model) map[string]string {
	t.Helper()
	out := make(map[string]string, len(model.Requests))
	for _, req := range model.Requests {
		if _, dup := out[req.Label]; dup {
			t.Fatalf("duplicate request label %q", req.Label)
		}
		out[req.Label] = mangle.New(model.Types, model.Decls).Mangle(req.Entity)
	}
	return out
}

func TestLoadBasicManifest(t *testing.T) {
	model, err := Load(filepath.Join("testdata", "basic.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := symbols(t, model)

	want := map[string]string{
		"add":           "_T3app3addfTSiSi_Si",
		"value_getter":  "_TV3app4Pair5valueQ_g",
		"bool_metadata": "_TMdSb",
		"pair_metadata": "_TMdGV3app4PairSiSb_",
		"offset_type":   "Si",
		"putchar":       "putchar",
		"entry":         "closure",
	}
	if len(got) != len(want) {
		t.Errorf("resolved %d requests, want %d", len(got), len(want))
	}
	for label, sym := range want {
		if got[label] != sym {
			t.Errorf("%s = %q, want %q", label, got[label], sym)
		}
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
[[module]]
name = "app"
flavor = "strawberry"
`))
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("err = %v, want unknown key rejection", err)
	}
}

func TestParseDuplicateNames(t *testing.T) {
	cases := map[string]string{
		"module": `
[[module]]
name = "app"
[[module]]
name = "app"
`,
		"type": `
[[type]]
name = "Box"
kind = "struct"
[[type]]
name = "Box"
kind = "class"
`,
		"type shadowing a module": `
[[module]]
name = "Box"
[[type]]
name = "Box"
kind = "struct"
`,
		"alias": `
[[type]]
name = "Int64"
kind = "struct"
[[alias]]
name = "Offset"
type = "Int64"
[[alias]]
name = "Offset"
type = "Int64"
`,
		"decl": `
[[decl]]
name = "run"
kind = "func"
[[decl]]
name = "run"
kind = "func"
`,
		"entity label": `
[[entity]]
label = "x"
kind = "closure"
[[entity]]
label = "x"
kind = "closure"
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); !errors.Is(err, ErrDuplicateName) {
				t.Errorf("err = %v, want ErrDuplicateName", err)
			}
		})
	}
}

func TestParseUnknownReferences(t *testing.T) {
	cases := map[string]string{
		"parent module": `
[[module]]
name = "app"
parent = "nope"
`,
		"type container": `
[[type]]
name = "Box"
kind = "struct"
in = "nope"
`,
		"generic constraint": `
[[type]]
name = "Box"
kind = "struct"
generics = ["T: Nope"]
`,
		"decl type": `
[[decl]]
name = "run"
kind = "func"
type = "Nope"
`,
		"entity decl": `
[[entity]]
label = "x"
kind = "function"
decl = "nope"
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); !errors.Is(err, ErrUnknownReference) {
				t.Errorf("err = %v, want ErrUnknownReference", err)
			}
		})
	}
}

func TestParseMalformedSections(t *testing.T) {
	cases := map[string]string{
		"unknown type kind": `
[[type]]
name = "Box"
kind = "union"
`,
		"unknown decl kind": `
[[decl]]
name = "run"
kind = "method"
`,
		"unknown entity kind": `
[[entity]]
label = "x"
kind = "wormhole"
`,
		"entity without label": `
[[entity]]
kind = "closure"
`,
		"function entity without decl": `
[[entity]]
label = "x"
kind = "function"
`,
		"metadata entity without type": `
[[entity]]
label = "x"
kind = "metadata"
`,
		"unknown value witness": `
[[type]]
name = "Int64"
kind = "struct"
[[entity]]
label = "x"
kind = "value-witness"
type = "Int64"
witness = "teleport"
`,
		"unknown explosion": `
[[type]]
name = "Int64"
kind = "struct"
[[decl]]
name = "run"
kind = "func"
type = "fn(tuple(),Int64)"
[[entity]]
label = "x"
kind = "function"
decl = "run"
explosion = "huge"
`,
		"unbalanced type expression": `
[[alias]]
name = "Bad"
type = "fn(tuple(,Int64)"
`,
		"unknown type constructor": `
[[alias]]
name = "Bad"
type = "list(Int64)"
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTypeExpressions(t *testing.T) {
	// One manifest per expression keeps the substitution tables of the
	// resulting symbols independent.
	cases := []struct {
		name string
		expr string
		want string
	}{
		{"builtin int", "int(64)", "Bi64_"},
		{"builtin float", "float(32)", "Bf32_"},
		{"raw pointer", "rawptr", "Bp"},
		{"object pointer", "objectptr", "Bo"},
		{"empty tuple", "tuple()", "T_"},
		{"labeled tuple", "tuple(x:Int64,Float32)", "T1xSiSf_"},
		{"array", "array(4,Float32)", "A4Sf"},
		{"metatype", "meta(Int64)", "MSi"},
		{"lvalue", "ref(Int64)", "RSi"},
		{"block function", "blockfn(tuple(),tuple())", "bT_T_"},
		{"composition", "compose(P,Q)", "PSs1PSs1Q_"},
		{"empty composition", "compose()", "P_"},
	}
	const prelude = `
[[type]]
name = "Int64"
kind = "struct"
[[type]]
name = "Float32"
kind = "struct"
[[type]]
name = "P"
kind = "protocol"
[[type]]
name = "Q"
kind = "protocol"
`
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := prelude + `
[[entity]]
label = "x"
kind = "type"
type = "` + tc.expr + `"
`
			model, err := Parse([]byte(src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := symbols(t, model)["x"]; got != tc.want {
				t.Errorf("%s = %q, want %q", tc.expr, got, tc.want)
			}
		})
	}
}

func TestNestedModuleContext(t *testing.T) {
	model, err := Parse([]byte(`
[[module]]
name = "outer"
[[module]]
name = "inner"
parent = "outer"
[[type]]
name = "Int64"
kind = "struct"
[[decl]]
name = "run"
kind = "func"
in = "inner"
type = "fn(tuple(),Int64)"
[[entity]]
label = "run"
kind = "function"
decl = "run"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := symbols(t, model)["run"]; got != "_T5outer5inner3runFT_Si" {
		t.Errorf("run = %q, want %q", got, "_T5outer5inner3runFT_Si")
	}
}

func TestGenericScopeShadowing(t *testing.T) {
	// The inner type's parameter list chains onto the outer one, and
	// its own T shadows the outer T in type expressions.
	model, err := Parse([]byte(`
[[module]]
name = "app"
[[type]]
name = "Outer"
kind = "struct"
in = "app"
generics = ["T"]
[[type]]
name = "Inner"
kind = "struct"
in = "Outer"
generics = ["U"]
[[decl]]
name = "pin"
kind = "var"
in = "Inner"
type = "tuple(T,U)"
[[entity]]
label = "pin"
kind = "getter"
decl = "pin"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// T binds at the outer depth, U one level deeper.
	want := "_TVV3app5Outer5Inner3pinTQd__Q__g"
	if got := symbols(t, model)["pin"]; got != want {
		t.Errorf("pin = %q, want %q", got, want)
	}
}
