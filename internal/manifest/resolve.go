package manifest

import (
	"fmt"
	"strings"

	"sylph/internal/decl"
	"sylph/internal/mangle"
	"sylph/internal/types"
)

// resolver carries the name tables built while turning a Document
// into a Model. Manifest names are flat: every module, type and
// declaration name must be unique in its namespace.
type resolver struct {
	model *Model

	contexts   map[string]decl.ContextID // modules and type bodies
	typeDecls  map[string]decl.DeclID    // nominal type declarations
	aliasTypes map[string]types.TypeID
	valueDecls map[string]decl.DeclID
}

func resolve(doc *Document) (*Model, error) {
	model := &Model{
		Types: types.NewInterner(),
		Decls: decl.NewTable(),
	}
	model.Base = model.Decls.NewContext(decl.Context{Kind: decl.CtxBaseModule, Name: BaseModuleName})

	r := &resolver{
		model:      model,
		contexts:   map[string]decl.ContextID{BaseModuleName: model.Base},
		typeDecls:  make(map[string]decl.DeclID),
		aliasTypes: make(map[string]types.TypeID),
		valueDecls: make(map[string]decl.DeclID),
	}

	if err := r.modules(doc.Modules); err != nil {
		return nil, err
	}
	if err := r.nominalTypes(doc.Types); err != nil {
		return nil, err
	}
	if err := r.aliases(doc.Aliases); err != nil {
		return nil, err
	}
	if err := r.decls(doc.Decls); err != nil {
		return nil, err
	}
	if err := r.entities(doc.Entities); err != nil {
		return nil, err
	}
	return model, nil
}

func (r *resolver) modules(sections []ModuleSection) error {
	// Two passes so a parent may be declared after its child.
	for _, s := range sections {
		if s.Name == "" {
			return fmt.Errorf("manifest: module without a name")
		}
		if _, dup := r.contexts[s.Name]; dup {
			return fmt.Errorf("%w: module %q", ErrDuplicateName, s.Name)
		}
		kind := decl.CtxModule
		if s.Foreign {
			kind = decl.CtxForeignModule
		}
		r.contexts[s.Name] = r.model.Decls.NewContext(decl.Context{Kind: kind, Name: s.Name})
	}
	for _, s := range sections {
		if s.Parent == "" {
			continue
		}
		parent, ok := r.contexts[s.Parent]
		if !ok {
			return fmt.Errorf("%w: parent module %q", ErrUnknownReference, s.Parent)
		}
		r.model.Decls.Context(r.contexts[s.Name]).Parent = parent
	}
	return nil
}

func nominalKind(kind string) (decl.DeclKind, error) {
	switch kind {
	case "struct":
		return decl.DeclStruct, nil
	case "class":
		return decl.DeclClass, nil
	case "enum":
		return decl.DeclEnum, nil
	case "protocol":
		return decl.DeclProtocol, nil
	default:
		return decl.DeclInvalid, fmt.Errorf("manifest: unknown type kind %q", kind)
	}
}

func (r *resolver) nominalTypes(sections []TypeSection) error {
	// Declarations and contexts first so generics may reference any
	// protocol and nesting may reference any type body.
	type pending struct {
		section TypeSection
		id      decl.DeclID
		body    decl.ContextID
	}
	order := make([]pending, 0, len(sections))

	for _, s := range sections {
		if s.Name == "" {
			return fmt.Errorf("manifest: type without a name")
		}
		if _, dup := r.typeDecls[s.Name]; dup {
			return fmt.Errorf("%w: type %q", ErrDuplicateName, s.Name)
		}
		if _, dup := r.contexts[s.Name]; dup {
			return fmt.Errorf("%w: type %q", ErrDuplicateName, s.Name)
		}
		kind, err := nominalKind(s.Kind)
		if err != nil {
			return err
		}
		id := r.model.Decls.NewDecl(decl.Decl{
			Name:    s.Name,
			Kind:    kind,
			Foreign: s.Foreign,
			ObjC:    s.ObjC,
		})
		body := r.model.Decls.NewContext(decl.Context{Kind: decl.CtxNominal, Decl: id})
		r.typeDecls[s.Name] = id
		r.contexts[s.Name] = body
		order = append(order, pending{section: s, id: id, body: body})
	}

	for _, p := range order {
		parent, err := r.contextRef(p.section.In)
		if err != nil {
			return fmt.Errorf("type %q: %w", p.section.Name, err)
		}
		d := r.model.Decls.Decl(p.id)
		d.Context = parent
		r.model.Decls.Context(p.body).Parent = parent

		if len(p.section.Generics) > 0 {
			list, err := r.paramList(p.section.Generics, r.outerParams(parent))
			if err != nil {
				return fmt.Errorf("type %q: %w", p.section.Name, err)
			}
			d.Generics = list
			r.model.Decls.Context(p.body).Generics = list
		}
	}
	return nil
}

// paramList parses "Name: Proto + Proto" generic parameter specs.
func (r *resolver) paramList(specs []string, outer decl.ParamListID) (decl.ParamListID, error) {
	params := make([]decl.Param, 0, len(specs))
	for _, spec := range specs {
		name, constraint, _ := strings.Cut(spec, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return decl.NoParamListID, fmt.Errorf("manifest: generic parameter without a name")
		}
		p := decl.Param{Name: name, Archetype: r.model.Types.RegisterArchetype(name)}
		for _, proto := range strings.Split(constraint, "+") {
			proto = strings.TrimSpace(proto)
			if proto == "" {
				continue
			}
			id, ok := r.typeDecls[proto]
			if !ok {
				return decl.NoParamListID, fmt.Errorf("%w: protocol %q", ErrUnknownReference, proto)
			}
			p.Conforms = append(p.Conforms, id)
		}
		params = append(params, p)
	}
	return r.model.Decls.NewParamList(decl.ParamList{Outer: outer, Params: params}), nil
}

// outerParams finds the generic parameter list a nested type's own
// list chains onto.
func (r *resolver) outerParams(ctx decl.ContextID) decl.ParamListID {
	return r.model.Decls.GenericParamsOfContext(ctx)
}

func (r *resolver) aliases(sections []AliasSection) error {
	for _, s := range sections {
		if s.Name == "" {
			return fmt.Errorf("manifest: alias without a name")
		}
		if _, dup := r.aliasTypes[s.Name]; dup {
			return fmt.Errorf("%w: alias %q", ErrDuplicateName, s.Name)
		}
		underlying, err := r.parseType(s.Type, nil)
		if err != nil {
			return fmt.Errorf("alias %q: %w", s.Name, err)
		}
		r.aliasTypes[s.Name] = r.model.Types.RegisterAlias(s.Name, underlying)
	}
	return nil
}

func declKind(kind string) (decl.DeclKind, error) {
	switch kind {
	case "func":
		return decl.DeclFunc, nil
	case "constructor":
		return decl.DeclConstructor, nil
	case "destructor":
		return decl.DeclDestructor, nil
	case "var":
		return decl.DeclVar, nil
	case "subscript":
		return decl.DeclSubscript, nil
	case "enum-element":
		return decl.DeclEnumElement, nil
	default:
		return decl.DeclInvalid, fmt.Errorf("manifest: unknown decl kind %q", kind)
	}
}

func (r *resolver) decls(sections []DeclSection) error {
	for _, s := range sections {
		if s.Name == "" {
			return fmt.Errorf("manifest: decl without a name")
		}
		if _, dup := r.valueDecls[s.Name]; dup {
			return fmt.Errorf("%w: decl %q", ErrDuplicateName, s.Name)
		}
		kind, err := declKind(s.Kind)
		if err != nil {
			return err
		}
		ctx, err := r.contextRef(s.In)
		if err != nil {
			return fmt.Errorf("decl %q: %w", s.Name, err)
		}

		var ty types.TypeID
		if s.Type != "" {
			ty, err = r.parseType(s.Type, r.paramScope(ctx))
			if err != nil {
				return fmt.Errorf("decl %q: %w", s.Name, err)
			}
		}

		r.valueDecls[s.Name] = r.model.Decls.NewDecl(decl.Decl{
			Name:     s.Name,
			Operator: s.Operator,
			Kind:     kind,
			Type:     ty,
			Context:  ctx,
			AsmName:  s.Asm,
			Foreign:  s.Foreign,
		})
	}
	return nil
}

func (r *resolver) contextRef(name string) (decl.ContextID, error) {
	if name == "" {
		return r.model.Base, nil
	}
	ctx, ok := r.contexts[name]
	if !ok {
		return decl.NoContextID, fmt.Errorf("%w: context %q", ErrUnknownReference, name)
	}
	return ctx, nil
}

func (r *resolver) declRef(name string) (decl.DeclID, error) {
	if d, ok := r.valueDecls[name]; ok {
		return d, nil
	}
	if d, ok := r.typeDecls[name]; ok {
		return d, nil
	}
	return decl.NoDeclID, fmt.Errorf("%w: decl %q", ErrUnknownReference, name)
}

func explosionKind(name string) (mangle.ExplosionKind, error) {
	switch name {
	case "", "minimal":
		return mangle.ExplosionMinimal, nil
	case "maximal":
		return mangle.ExplosionMaximal, nil
	default:
		return mangle.ExplosionMinimal, fmt.Errorf("manifest: unknown explosion kind %q", name)
	}
}

var witnessNames = map[string]mangle.ValueWitness{
	"allocateBuffer":                   mangle.WitnessAllocateBuffer,
	"assignWithCopy":                   mangle.WitnessAssignWithCopy,
	"assignWithTake":                   mangle.WitnessAssignWithTake,
	"deallocateBuffer":                 mangle.WitnessDeallocateBuffer,
	"destroy":                          mangle.WitnessDestroy,
	"destroyBuffer":                    mangle.WitnessDestroyBuffer,
	"initializeBufferWithCopyOfBuffer": mangle.WitnessInitializeBufferWithCopyOfBuffer,
	"initializeBufferWithCopy":         mangle.WitnessInitializeBufferWithCopy,
	"initializeWithCopy":               mangle.WitnessInitializeWithCopy,
	"initializeBufferWithTake":         mangle.WitnessInitializeBufferWithTake,
	"initializeWithTake":               mangle.WitnessInitializeWithTake,
	"projectBuffer":                    mangle.WitnessProjectBuffer,
}

func (r *resolver) entities(sections []EntitySection) error {
	labels := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		if s.Label == "" {
			return fmt.Errorf("manifest: entity without a label")
		}
		if _, dup := labels[s.Label]; dup {
			return fmt.Errorf("%w: entity label %q", ErrDuplicateName, s.Label)
		}
		labels[s.Label] = struct{}{}
		ent, err := r.entity(s)
		if err != nil {
			return fmt.Errorf("entity %q: %w", s.Label, err)
		}
		r.model.Requests = append(r.model.Requests, Request{Label: s.Label, Entity: ent})
	}
	return nil
}

func (r *resolver) entity(s EntitySection) (mangle.LinkEntity, error) {
	var zero mangle.LinkEntity

	explosion, err := explosionKind(s.Explosion)
	if err != nil {
		return zero, err
	}

	declID := decl.NoDeclID
	if s.Decl != "" {
		if declID, err = r.declRef(s.Decl); err != nil {
			return zero, err
		}
	}
	typeID := types.NoTypeID
	if s.Type != "" {
		scope := map[string]types.TypeID{}
		if declID.IsValid() {
			scope = r.paramScope(r.model.Decls.Decl(declID).Context)
		}
		if typeID, err = r.parseType(s.Type, scope); err != nil {
			return zero, err
		}
	}

	switch s.Kind {
	case "function", "other", "getter", "setter", "constructor", "destructor",
		"metaclass", "witness-offset", "field-offset", "foreign-class", "foreign-metaclass":
		if !declID.IsValid() {
			return zero, fmt.Errorf("manifest: entity kind %q needs a decl", s.Kind)
		}
	case "metadata", "value-witness", "value-witness-table", "bridge", "type":
		if !typeID.IsValid() {
			return zero, fmt.Errorf("manifest: entity kind %q needs a type", s.Kind)
		}
	}

	var ent mangle.LinkEntity
	switch s.Kind {
	case "function":
		ent = mangle.FunctionEntity(declID, explosion, s.Uncurry)
	case "other":
		ent = mangle.OtherEntity(declID, explosion, s.Uncurry)
	case "getter":
		ent = mangle.GetterEntity(declID, explosion, s.Uncurry)
	case "setter":
		ent = mangle.SetterEntity(declID, explosion, s.Uncurry)
	case "constructor":
		kind := mangle.ConstructorAllocating
		if s.Ctor == "initializing" {
			kind = mangle.ConstructorInitializing
		} else if s.Ctor != "" && s.Ctor != "allocating" {
			return zero, fmt.Errorf("manifest: unknown constructor kind %q", s.Ctor)
		}
		ent = mangle.ConstructorEntity(declID, kind, explosion, s.Uncurry)
	case "destructor":
		kind := mangle.DestructorDeallocating
		if s.Dtor == "destroying" {
			kind = mangle.DestructorDestroying
		} else if s.Dtor != "" && s.Dtor != "deallocating" {
			return zero, fmt.Errorf("manifest: unknown destructor kind %q", s.Dtor)
		}
		ent = mangle.DestructorEntity(declID, kind)
	case "metadata":
		ent = mangle.TypeMetadataEntity(typeID, s.Pattern, s.Indirect)
	case "metaclass":
		ent = mangle.MetaclassStubEntity(declID)
	case "witness-offset":
		ent = mangle.WitnessTableOffsetEntity(declID, explosion, s.Uncurry)
	case "field-offset":
		ent = mangle.FieldOffsetEntity(declID, s.Indirect)
	case "value-witness":
		w, ok := witnessNames[s.Witness]
		if !ok {
			return zero, fmt.Errorf("manifest: unknown value witness %q", s.Witness)
		}
		ent = mangle.ValueWitnessEntity(typeID, w)
	case "value-witness-table":
		ent = mangle.ValueWitnessTableEntity(typeID)
	case "bridge":
		ent = mangle.BridgeToBlockEntity(typeID)
	case "type":
		ent = mangle.TypeManglingEntity(typeID)
	case "foreign-class":
		ent = mangle.ForeignClassEntity(declID)
	case "foreign-metaclass":
		ent = mangle.ForeignMetaclassEntity(declID)
	case "closure":
		ent = mangle.AnonymousFunctionEntity()
	default:
		return zero, fmt.Errorf("manifest: unknown entity kind %q", s.Kind)
	}

	ent.Local = s.Local
	return ent, nil
}
