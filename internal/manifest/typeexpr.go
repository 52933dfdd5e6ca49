package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"sylph/internal/decl"
	"sylph/internal/types"
)

// parseType resolves a manifest type expression against the resolver
// state. The grammar is a small prefix notation:
//
//	int(64) float(32) rawptr opaqueptr objectptr foreignptr
//	tuple(x:Int64,Float32)  fn(Int64,Bool)  blockfn(Int64,Bool)
//	array(4,Float32)  meta(T)  ref(T)  compose(P,Q)
//	generic(Pair,Int64,Bool)
//
// A bare name resolves to a generic parameter in scope, then to a
// declared nominal type or alias.
func (r *resolver) parseType(expr string, scope map[string]types.TypeID) (types.TypeID, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return types.NoTypeID, fmt.Errorf("manifest: empty type expression")
	}

	head, args, err := splitCall(expr)
	if err != nil {
		return types.NoTypeID, err
	}

	if args == nil {
		return r.parseName(head, scope)
	}

	switch head {
	case "int", "float":
		if len(args) != 1 {
			return types.NoTypeID, fmt.Errorf("manifest: %s() takes one width argument", head)
		}
		width, err := strconv.Atoi(args[0])
		if err != nil {
			return types.NoTypeID, fmt.Errorf("manifest: bad width %q: %w", args[0], err)
		}
		w, err := safecast.Conv[uint16](width)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("manifest: width overflow: %w", err)
		}
		if head == "int" {
			return r.model.Types.Intern(types.MakeBuiltinInt(types.Width(w))), nil
		}
		return r.model.Types.Intern(types.MakeBuiltinFloat(types.Width(w))), nil

	case "tuple":
		fields := make([]types.TupleField, 0, len(args))
		for _, arg := range args {
			name, rest := splitLabel(arg)
			ty, err := r.parseType(rest, scope)
			if err != nil {
				return types.NoTypeID, err
			}
			fields = append(fields, types.TupleField{Name: name, Type: ty})
		}
		return r.model.Types.RegisterTuple(fields), nil

	case "fn", "blockfn":
		if len(args) != 2 {
			return types.NoTypeID, fmt.Errorf("manifest: %s() takes input and result", head)
		}
		input, err := r.parseType(args[0], scope)
		if err != nil {
			return types.NoTypeID, err
		}
		result, err := r.parseType(args[1], scope)
		if err != nil {
			return types.NoTypeID, err
		}
		return r.model.Types.RegisterFn(input, result, head == "blockfn"), nil

	case "array":
		if len(args) != 2 {
			return types.NoTypeID, fmt.Errorf("manifest: array() takes count and element")
		}
		count, err := strconv.Atoi(args[0])
		if err != nil || count < 0 {
			return types.NoTypeID, fmt.Errorf("manifest: bad array count %q", args[0])
		}
		n, err := safecast.Conv[uint32](count)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("manifest: array count overflow: %w", err)
		}
		elem, err := r.parseType(args[1], scope)
		if err != nil {
			return types.NoTypeID, err
		}
		return r.model.Types.Intern(types.MakeArray(elem, n)), nil

	case "meta":
		if len(args) != 1 {
			return types.NoTypeID, fmt.Errorf("manifest: meta() takes one type")
		}
		inst, err := r.parseType(args[0], scope)
		if err != nil {
			return types.NoTypeID, err
		}
		return r.model.Types.Intern(types.MakeMetatype(inst)), nil

	case "ref":
		if len(args) != 1 {
			return types.NoTypeID, fmt.Errorf("manifest: ref() takes one type")
		}
		obj, err := r.parseType(args[0], scope)
		if err != nil {
			return types.NoTypeID, err
		}
		return r.model.Types.Intern(types.MakeLValue(obj)), nil

	case "compose":
		protocols := make([]uint32, 0, len(args))
		for _, arg := range args {
			p, ok := r.typeDecls[strings.TrimSpace(arg)]
			if !ok {
				return types.NoTypeID, fmt.Errorf("%w: protocol %q", ErrUnknownReference, arg)
			}
			protocols = append(protocols, uint32(p))
		}
		return r.model.Types.RegisterComposition(protocols), nil

	case "generic":
		if len(args) < 2 {
			return types.NoTypeID, fmt.Errorf("manifest: generic() takes a type and arguments")
		}
		base, ok := r.typeDecls[strings.TrimSpace(args[0])]
		if !ok {
			return types.NoTypeID, fmt.Errorf("%w: type %q", ErrUnknownReference, args[0])
		}
		genericArgs := make([]types.TypeID, 0, len(args)-1)
		for _, arg := range args[1:] {
			ty, err := r.parseType(arg, scope)
			if err != nil {
				return types.NoTypeID, err
			}
			genericArgs = append(genericArgs, ty)
		}
		return r.model.Types.RegisterBoundGeneric(uint32(base), genericArgs), nil

	default:
		return types.NoTypeID, fmt.Errorf("manifest: unknown type constructor %q", head)
	}
}

func (r *resolver) parseName(name string, scope map[string]types.TypeID) (types.TypeID, error) {
	switch name {
	case "rawptr":
		return r.model.Types.Builtins().RawPointer, nil
	case "opaqueptr":
		return r.model.Types.Builtins().OpaquePointer, nil
	case "objectptr":
		return r.model.Types.Builtins().ObjectPointer, nil
	case "foreignptr":
		return r.model.Types.Builtins().ForeignPointer, nil
	}
	if arch, ok := scope[name]; ok {
		return arch, nil
	}
	if alias, ok := r.aliasTypes[name]; ok {
		return alias, nil
	}
	if d, ok := r.typeDecls[name]; ok {
		return r.model.Types.RegisterNominal(uint32(d)), nil
	}
	return types.NoTypeID, fmt.Errorf("%w: type %q", ErrUnknownReference, name)
}

// splitCall divides "head(a, b(c), d)" into its head and top-level
// arguments. A bare name returns nil arguments.
func splitCall(expr string) (string, []string, error) {
	open := strings.IndexByte(expr, '(')
	if open < 0 {
		return expr, nil, nil
	}
	if !strings.HasSuffix(expr, ")") {
		return "", nil, fmt.Errorf("manifest: unbalanced parentheses in %q", expr)
	}
	head := strings.TrimSpace(expr[:open])
	inner := expr[open+1 : len(expr)-1]
	if strings.TrimSpace(inner) == "" {
		return head, []string{}, nil
	}

	var args []string
	depth, start := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", nil, fmt.Errorf("manifest: unbalanced parentheses in %q", expr)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, fmt.Errorf("manifest: unbalanced parentheses in %q", expr)
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return head, args, nil
}

// splitLabel divides a "label:type" tuple field; the label is empty
// when the colon is absent or belongs to a nested expression.
func splitLabel(arg string) (string, string) {
	colon := strings.IndexByte(arg, ':')
	if colon < 0 {
		return "", arg
	}
	if open := strings.IndexByte(arg, '('); open >= 0 && open < colon {
		return "", arg
	}
	return strings.TrimSpace(arg[:colon]), strings.TrimSpace(arg[colon+1:])
}

// paramScope builds the archetype lookup for the generic parameters
// visible from a context, outermost first so inner names shadow.
func (r *resolver) paramScope(ctx decl.ContextID) map[string]types.TypeID {
	var chain []decl.ParamListID
	for list := r.model.Decls.GenericParamsOfContext(ctx); list.IsValid(); list = r.model.Decls.ParamList(list).Outer {
		chain = append(chain, list)
	}
	scope := make(map[string]types.TypeID)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, p := range r.model.Decls.ParamList(chain[i]).Params {
			scope[p.Name] = p.Archetype
		}
	}
	return scope
}
