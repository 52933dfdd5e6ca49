package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// NominalInfo stores metadata for a nominal type: a reference to the
// struct/class/enum/protocol declaration. The decl id lives in the
// declaration table and is stored raw. Unapplied generic nominals use
// the same kind; they mangle as their declaration.
type NominalInfo struct {
	Decl uint32 // decl.DeclID
}

// BoundInfo stores metadata for a bound generic type: the nominal
// declaration applied to explicit generic arguments.
type BoundInfo struct {
	Decl uint32 // decl.DeclID
	Args []TypeID
}

// ArchetypeInfo stores metadata for an archetype. Archetypes have
// nominal identity: every registration mints a fresh TypeID, and the
// generic context binder keys its bindings on that id.
type ArchetypeInfo struct {
	Name string
}

// CompositionInfo stores the protocols of a protocol composition, as raw
// decl ids. Singleton compositions collapse upstream to the protocol's
// nominal type; the mangler rejects a composition of exactly one.
type CompositionInfo struct {
	Protocols []uint32 // decl.DeclID
}

// AliasInfo stores metadata for a sugar/alias type. Aliases unwrap
// transparently and are never mangled as themselves.
type AliasInfo struct {
	Name       string
	Underlying TypeID
}

// ModuleInfo records a module used in type position. Such a type is
// representable but can never be mangled.
type ModuleInfo struct {
	Ctx uint32 // decl.ContextID
}

// RegisterNominal creates or finds the declared type of a nominal
// declaration. There is exactly one nominal type per declaration.
func (in *Interner) RegisterNominal(declID uint32) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindNominal {
			continue
		}
		if int(tt.Payload) >= len(in.nominals) {
			continue
		}
		if in.nominals[tt.Payload].Decl == declID {
			return id
		}
	}
	slot := in.appendNominalInfo(NominalInfo{Decl: declID})
	return in.internRaw(Type{Kind: KindNominal, Payload: slot})
}

// NominalInfo retrieves nominal type metadata by TypeID.
func (in *Interner) NominalInfo(id TypeID) (*NominalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNominal {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.nominals) {
		return nil, false
	}
	return &in.nominals[tt.Payload], true
}

// RegisterBoundGeneric creates or finds a bound generic application.
func (in *Interner) RegisterBoundGeneric(declID uint32, args []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindBoundGeneric {
			continue
		}
		if int(tt.Payload) >= len(in.bounds) {
			continue
		}
		info := in.bounds[tt.Payload]
		if info.Decl == declID && slices.Equal(info.Args, args) {
			return id
		}
	}
	slot := in.appendBoundInfo(BoundInfo{Decl: declID, Args: cloneTypeArgs(args)})
	return in.internRaw(Type{Kind: KindBoundGeneric, Payload: slot})
}

// BoundInfo retrieves bound generic metadata by TypeID.
func (in *Interner) BoundInfo(id TypeID) (*BoundInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindBoundGeneric {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.bounds) {
		return nil, false
	}
	return &in.bounds[tt.Payload], true
}

// RegisterArchetype mints a fresh archetype type. Callers record the
// returned id on the generic parameter that the archetype stands for.
func (in *Interner) RegisterArchetype(name string) TypeID {
	slot := in.appendArchetypeInfo(ArchetypeInfo{Name: name})
	return in.internRaw(Type{Kind: KindArchetype, Payload: slot})
}

// ArchetypeInfo retrieves archetype metadata by TypeID.
func (in *Interner) ArchetypeInfo(id TypeID) (*ArchetypeInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArchetype {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.archetypes) {
		return nil, false
	}
	return &in.archetypes[tt.Payload], true
}

// RegisterComposition creates or finds a protocol composition.
func (in *Interner) RegisterComposition(protocols []uint32) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindComposition {
			continue
		}
		if int(tt.Payload) >= len(in.compositions) {
			continue
		}
		if slices.Equal(in.compositions[tt.Payload].Protocols, protocols) {
			return id
		}
	}
	slot := in.appendCompositionInfo(CompositionInfo{Protocols: slices.Clone(protocols)})
	return in.internRaw(Type{Kind: KindComposition, Payload: slot})
}

// CompositionInfo retrieves composition metadata by TypeID.
func (in *Interner) CompositionInfo(id TypeID) (*CompositionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindComposition {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.compositions) {
		return nil, false
	}
	return &in.compositions[tt.Payload], true
}

// RegisterAlias mints a fresh alias wrapping an underlying type.
func (in *Interner) RegisterAlias(name string, underlying TypeID) TypeID {
	slot := in.appendAliasInfo(AliasInfo{Name: name, Underlying: underlying})
	return in.internRaw(Type{Kind: KindAlias, Payload: slot})
}

// AliasInfo retrieves alias metadata by TypeID.
func (in *Interner) AliasInfo(id TypeID) (*AliasInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindAlias {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.aliases) {
		return nil, false
	}
	return &in.aliases[tt.Payload], true
}

// RegisterModuleType records a module in type position.
func (in *Interner) RegisterModuleType(ctx uint32) TypeID {
	return in.internRaw(Type{Kind: KindModule, Count: ctx})
}

func (in *Interner) appendNominalInfo(info NominalInfo) uint32 {
	if in.nominals == nil {
		in.nominals = append(in.nominals, NominalInfo{})
	}
	in.nominals = append(in.nominals, info)
	slot, err := safecast.Conv[uint32](len(in.nominals) - 1)
	if err != nil {
		panic(fmt.Errorf("nominal info overflow: %w", err))
	}
	return slot
}

func (in *Interner) appendBoundInfo(info BoundInfo) uint32 {
	if in.bounds == nil {
		in.bounds = append(in.bounds, BoundInfo{})
	}
	in.bounds = append(in.bounds, info)
	slot, err := safecast.Conv[uint32](len(in.bounds) - 1)
	if err != nil {
		panic(fmt.Errorf("bound generic info overflow: %w", err))
	}
	return slot
}

func (in *Interner) appendArchetypeInfo(info ArchetypeInfo) uint32 {
	if in.archetypes == nil {
		in.archetypes = append(in.archetypes, ArchetypeInfo{})
	}
	in.archetypes = append(in.archetypes, info)
	slot, err := safecast.Conv[uint32](len(in.archetypes) - 1)
	if err != nil {
		panic(fmt.Errorf("archetype info overflow: %w", err))
	}
	return slot
}

func (in *Interner) appendCompositionInfo(info CompositionInfo) uint32 {
	if in.compositions == nil {
		in.compositions = append(in.compositions, CompositionInfo{})
	}
	in.compositions = append(in.compositions, info)
	slot, err := safecast.Conv[uint32](len(in.compositions) - 1)
	if err != nil {
		panic(fmt.Errorf("composition info overflow: %w", err))
	}
	return slot
}

func (in *Interner) appendAliasInfo(info AliasInfo) uint32 {
	if in.aliases == nil {
		in.aliases = append(in.aliases, AliasInfo{})
	}
	in.aliases = append(in.aliases, info)
	slot, err := safecast.Conv[uint32](len(in.aliases) - 1)
	if err != nil {
		panic(fmt.Errorf("alias info overflow: %w", err))
	}
	return slot
}
