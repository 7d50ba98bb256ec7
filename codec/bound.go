package codec

import (
	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// BoundKind is the discriminant of a Bound.
type BoundKind uint8

const (
	Unbounded BoundKind = 1
	Included  BoundKind = 2
	Excluded  BoundKind = 3
)

func (k BoundKind) String() string {
	switch k {
	case Unbounded:
		return "unbounded"
	case Included:
		return "included"
	case Excluded:
		return "excluded"
	default:
		return "invalid"
	}
}

// Bound is one end of a range. The zero Bound has no valid Kind and fails to
// encode; build bounds with IncludedBound, ExcludedBound or UnboundedBound.
type Bound[T any] struct {
	Kind  BoundKind
	Value T
}

// IncludedBound returns an inclusive bound at v.
func IncludedBound[T any](v T) Bound[T] { return Bound[T]{Kind: Included, Value: v} }

// ExcludedBound returns an exclusive bound at v.
func ExcludedBound[T any](v T) Bound[T] { return Bound[T]{Kind: Excluded, Value: v} }

// UnboundedBound returns an open end.
func UnboundedBound[T any]() Bound[T] { return Bound[T]{Kind: Unbounded} }

// BoundOf encodes a Bound as a tag followed by the value for bounded ends.
func BoundOf[T any](c Codec[T]) Codec[Bound[T]] {
	return boundCodec[T]{elem: c}
}

type boundCodec[T any] struct {
	elem Codec[T]
}

func (c boundCodec[T]) Encode(b bytearena.Buffer, o Order, v Bound[T]) error {
	switch v.Kind {
	case Unbounded:
		return WriteTag(b, uint8(Unbounded))
	case Included, Excluded:
		if err := WriteTag(b, uint8(v.Kind)); err != nil {
			return err
		}
		return c.elem.Encode(b, o, v.Value)
	default:
		return errors.InvalidDiscriminant(errors.PhaseEncode, nil, "bound", uint8(v.Kind))
	}
}

func (c boundCodec[T]) Decode(b bytearena.Buffer, o Order) (Bound[T], error) {
	tag, err := readRawTag(b)
	if err != nil {
		return Bound[T]{}, err
	}
	switch k := BoundKind(tag); k {
	case Unbounded:
		return UnboundedBound[T](), nil
	case Included, Excluded:
		v, err := c.elem.Decode(b, o)
		if err != nil {
			return Bound[T]{}, err
		}
		return Bound[T]{Kind: k, Value: v}, nil
	default:
		return Bound[T]{}, errors.InvalidDiscriminant(errors.PhaseDecode, nil, "bound", tag)
	}
}

// Range is the half-open interval [Start, End).
type Range[T any] struct {
	Start T
	End   T
}

// RangeInclusive is the closed interval [Start, End].
type RangeInclusive[T any] struct {
	Start T
	End   T
}

// RangeOf encodes the start then the end. Endpoint errors are returned
// unchanged.
func RangeOf[T any](c Codec[T]) Codec[Range[T]] {
	return Map(endpoints(c),
		func(v [2]T) Range[T] { return Range[T]{Start: v[0], End: v[1]} },
		func(r Range[T]) [2]T { return [2]T{r.Start, r.End} },
	)
}

// RangeInclusiveOf encodes the start then the end.
func RangeInclusiveOf[T any](c Codec[T]) Codec[RangeInclusive[T]] {
	return Map(endpoints(c),
		func(v [2]T) RangeInclusive[T] { return RangeInclusive[T]{Start: v[0], End: v[1]} },
		func(r RangeInclusive[T]) [2]T { return [2]T{r.Start, r.End} },
	)
}

func endpoints[T any](c Codec[T]) Codec[[2]T] {
	return Funcs[[2]T]{
		EncodeFunc: func(b bytearena.Buffer, o Order, v [2]T) error {
			if err := c.Encode(b, o, v[0]); err != nil {
				return err
			}
			return c.Encode(b, o, v[1])
		},
		DecodeFunc: func(b bytearena.Buffer, o Order) ([2]T, error) {
			var v [2]T
			var err error
			if v[0], err = c.Decode(b, o); err != nil {
				return [2]T{}, err
			}
			if v[1], err = c.Decode(b, o); err != nil {
				return [2]T{}, err
			}
			return v, nil
		},
	}
}
