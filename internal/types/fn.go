package types

import (
	"fmt"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types. Input is a single type;
// multi-argument functions take a tuple. Block marks the foreign-block
// calling convention.
type FnInfo struct {
	Input  TypeID
	Result TypeID
	Block  bool
}

// PolyFnInfo stores metadata for polymorphic function types: a function
// signature still carrying its own unapplied generic parameter list. The
// list id lives in the declaration table and is stored raw.
type PolyFnInfo struct {
	Params uint32 // decl.ParamListID
	Input  TypeID
	Result TypeID
	Block  bool
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(input, result TypeID, block bool) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFunction {
			continue
		}
		if int(tt.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Input == input && info.Result == result && info.Block == block {
			return id
		}
	}
	slot := in.appendFnInfo(FnInfo{Input: input, Result: result, Block: block})
	return in.internRaw(Type{Kind: KindFunction, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// RegisterPolyFn creates or finds a polymorphic function type.
func (in *Interner) RegisterPolyFn(params uint32, input, result TypeID, block bool) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindPolyFunction {
			continue
		}
		if int(tt.Payload) >= len(in.polyFns) {
			continue
		}
		info := in.polyFns[tt.Payload]
		if info.Params == params && info.Input == input && info.Result == result && info.Block == block {
			return id
		}
	}
	slot := in.appendPolyFnInfo(PolyFnInfo{Params: params, Input: input, Result: result, Block: block})
	return in.internRaw(Type{Kind: KindPolyFunction, Payload: slot})
}

// PolyFnInfo retrieves polymorphic function metadata by TypeID.
func (in *Interner) PolyFnInfo(id TypeID) (*PolyFnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindPolyFunction {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.polyFns) {
		return nil, false
	}
	return &in.polyFns[tt.Payload], true
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	if in.fns == nil {
		in.fns = append(in.fns, FnInfo{})
	}
	in.fns = append(in.fns, info)
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}

func (in *Interner) appendPolyFnInfo(info PolyFnInfo) uint32 {
	if in.polyFns == nil {
		in.polyFns = append(in.polyFns, PolyFnInfo{})
	}
	in.polyFns = append(in.polyFns, info)
	slot, err := safecast.Conv[uint32](len(in.polyFns) - 1)
	if err != nil {
		panic(fmt.Errorf("poly fn info overflow: %w", err))
	}
	return slot
}
