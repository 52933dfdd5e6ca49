// Package manifest loads TOML symbol manifests: deterministic
// descriptions of modules, types, declarations and link entities from
// which a semantic model is built without a front end. The CLI and
// golden tests drive the mangler through manifests.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"sylph/internal/decl"
	"sylph/internal/mangle"
	"sylph/internal/types"
)

// BaseModuleName is the implicit parentless standard-library module
// every manifest model starts with.
const BaseModuleName = "sylph"

var (
	// ErrDuplicateName is returned when two manifest items claim one
	// name in the same namespace.
	ErrDuplicateName = errors.New("manifest: duplicate name")

	// ErrUnknownReference is returned when an item refers to a
	// module, type or declaration the manifest never defines.
	ErrUnknownReference = errors.New("manifest: unknown reference")
)

// Document is the raw TOML layout of a symbol manifest.
type Document struct {
	Modules  []ModuleSection `toml:"module"`
	Types    []TypeSection   `toml:"type"`
	Aliases  []AliasSection  `toml:"alias"`
	Decls    []DeclSection   `toml:"decl"`
	Entities []EntitySection `toml:"entity"`
}

// ModuleSection declares an ordinary or foreign module.
type ModuleSection struct {
	Name    string `toml:"name"`
	Parent  string `toml:"parent"`
	Foreign bool   `toml:"foreign"`
}

// TypeSection declares a nominal type. A generic type nested in
// another generic type chains its parameter list onto the container's,
// so the container must be declared first.
type TypeSection struct {
	Name     string   `toml:"name"`
	Kind     string   `toml:"kind"` // struct|class|enum|protocol
	In       string   `toml:"in"`   // module or type name; default base module
	Generics []string `toml:"generics"`
	ObjC     bool     `toml:"objc"`
	Foreign  bool     `toml:"foreign"`
}

// AliasSection declares a transparent type alias.
type AliasSection struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// DeclSection declares a value declaration.
type DeclSection struct {
	Name     string `toml:"name"`
	Kind     string `toml:"kind"` // func|constructor|destructor|var|subscript|enum-element
	In       string `toml:"in"`
	Type     string `toml:"type"`
	Operator bool   `toml:"operator"`
	Asm      string `toml:"asm"`
	Foreign  bool   `toml:"foreign"`
}

// EntitySection requests one symbol.
type EntitySection struct {
	Label     string `toml:"label"`
	Kind      string `toml:"kind"`
	Decl      string `toml:"decl"`
	Type      string `toml:"type"`
	Explosion string `toml:"explosion"` // minimal|maximal
	Uncurry   int    `toml:"uncurry"`
	Local     bool   `toml:"local"`
	Ctor      string `toml:"ctor"` // allocating|initializing
	Dtor      string `toml:"dtor"` // deallocating|destroying
	Witness   string `toml:"witness"`
	Pattern   bool   `toml:"pattern"`
	Indirect  bool   `toml:"indirect"`
}

// Request is one labeled mangle request from a manifest.
type Request struct {
	Label  string
	Entity mangle.LinkEntity
}

// Model is the semantic model a manifest resolves to.
type Model struct {
	Types    *types.Interner
	Decls    *decl.Table
	Base     decl.ContextID
	Requests []Request
}

// Load reads, parses and resolves a manifest file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

// Parse resolves a manifest from raw TOML bytes.
func Parse(data []byte) (*Model, error) {
	var doc Document
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to parse TOML: %w", err)
	}
	for _, key := range meta.Undecoded() {
		return nil, fmt.Errorf("manifest: unknown key %q", key.String())
	}
	return resolve(&doc)
}
