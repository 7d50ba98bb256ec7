package codec

import (
	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

const (
	minTupleArity = 2
	maxTupleArity = 12
)

// Pair is a 2-tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a 3-tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// PairOf encodes the members in order with no framing.
func PairOf[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return Funcs[Pair[A, B]]{
		EncodeFunc: func(buf bytearena.Buffer, o Order, v Pair[A, B]) error {
			if err := a.Encode(buf, o, v.First); err != nil {
				return errors.AtIndex(errors.PhaseEncode, nil, 0, err)
			}
			if err := b.Encode(buf, o, v.Second); err != nil {
				return errors.AtIndex(errors.PhaseEncode, nil, 1, err)
			}
			return nil
		},
		DecodeFunc: func(buf bytearena.Buffer, o Order) (Pair[A, B], error) {
			var v Pair[A, B]
			var err error
			if v.First, err = a.Decode(buf, o); err != nil {
				return Pair[A, B]{}, errors.AtIndex(errors.PhaseDecode, nil, 0, err)
			}
			if v.Second, err = b.Decode(buf, o); err != nil {
				return Pair[A, B]{}, errors.AtIndex(errors.PhaseDecode, nil, 1, err)
			}
			return v, nil
		},
	}
}

// TripleOf encodes the members in order with no framing.
func TripleOf[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[Triple[A, B, C]] {
	return Funcs[Triple[A, B, C]]{
		EncodeFunc: func(buf bytearena.Buffer, o Order, v Triple[A, B, C]) error {
			if err := a.Encode(buf, o, v.First); err != nil {
				return errors.AtIndex(errors.PhaseEncode, nil, 0, err)
			}
			if err := b.Encode(buf, o, v.Second); err != nil {
				return errors.AtIndex(errors.PhaseEncode, nil, 1, err)
			}
			if err := c.Encode(buf, o, v.Third); err != nil {
				return errors.AtIndex(errors.PhaseEncode, nil, 2, err)
			}
			return nil
		},
		DecodeFunc: func(buf bytearena.Buffer, o Order) (Triple[A, B, C], error) {
			var v Triple[A, B, C]
			var err error
			if v.First, err = a.Decode(buf, o); err != nil {
				return Triple[A, B, C]{}, errors.AtIndex(errors.PhaseDecode, nil, 0, err)
			}
			if v.Second, err = b.Decode(buf, o); err != nil {
				return Triple[A, B, C]{}, errors.AtIndex(errors.PhaseDecode, nil, 1, err)
			}
			if v.Third, err = c.Decode(buf, o); err != nil {
				return Triple[A, B, C]{}, errors.AtIndex(errors.PhaseDecode, nil, 2, err)
			}
			return v, nil
		},
	}
}

// Tuple encodes a fixed list of 2 to 12 heterogeneous members in order.
// Build the members with Erase.
func Tuple(members ...Codec[any]) Codec[[]any] {
	return tupleCodec{members: members}
}

type tupleCodec struct {
	members []Codec[any]
}

func (t tupleCodec) check(phase errors.Phase) error {
	if n := len(t.members); n < minTupleArity || n > maxTupleArity {
		return errors.New(phase, errors.KindUnsupported).
			Detail("tuple arity %d outside %d..%d", n, minTupleArity, maxTupleArity).
			Build()
	}
	return nil
}

func (t tupleCodec) Encode(b bytearena.Buffer, o Order, v []any) error {
	if err := t.check(errors.PhaseEncode); err != nil {
		return err
	}
	if len(v) != len(t.members) {
		return errors.Other(errors.PhaseEncode, nil, "tuple of %d members holds %d", len(t.members), len(v))
	}
	for i, m := range t.members {
		if err := m.Encode(b, o, v[i]); err != nil {
			return errors.AtIndex(errors.PhaseEncode, nil, i, err)
		}
	}
	return nil
}

func (t tupleCodec) Decode(b bytearena.Buffer, o Order) ([]any, error) {
	if err := t.check(errors.PhaseDecode); err != nil {
		return nil, err
	}
	out := make([]any, len(t.members))
	for i, m := range t.members {
		v, err := m.Decode(b, o)
		if err != nil {
			return nil, errors.AtIndex(errors.PhaseDecode, nil, i, err)
		}
		out[i] = v
	}
	return out, nil
}
