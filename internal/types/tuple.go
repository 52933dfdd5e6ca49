package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// TupleField describes one tuple element with an optional label.
type TupleField struct {
	Name string // empty for unlabeled fields
	Type TypeID
}

// TupleInfo stores the fields of a tuple type.
type TupleInfo struct {
	Fields []TupleField
}

// RegisterTuple creates or finds a tuple type with the given fields.
// Field labels are part of the tuple's identity.
func (in *Interner) RegisterTuple(fields []TupleField) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindTuple {
			continue
		}
		if int(tt.Payload) >= len(in.tuples) {
			continue
		}
		if slices.Equal(in.tuples[tt.Payload].Fields, fields) {
			return id
		}
	}
	slot := in.appendTupleInfo(TupleInfo{Fields: cloneTupleFields(fields)})
	return in.internRaw(Type{Kind: KindTuple, Payload: slot})
}

// TupleInfo returns the fields for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

func (in *Interner) appendTupleInfo(info TupleInfo) uint32 {
	if in.tuples == nil {
		in.tuples = append(in.tuples, TupleInfo{})
	}
	in.tuples = append(in.tuples, info)
	slot, err := safecast.Conv[uint32](len(in.tuples) - 1)
	if err != nil {
		panic(fmt.Errorf("tuple info overflow: %w", err))
	}
	return slot
}

func cloneTupleFields(fields []TupleField) []TupleField {
	if len(fields) == 0 {
		return nil
	}
	return slices.Clone(fields)
}
