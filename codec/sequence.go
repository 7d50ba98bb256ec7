package codec

import (
	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Array encodes a slice that must hold exactly n elements: a u64 count
// equal to n, then the elements. A failed decode returns no elements.
func Array[T any](n int, c Codec[T]) Codec[[]T] {
	return arrayCodec[T]{n: n, elem: c}
}

type arrayCodec[T any] struct {
	n    int
	elem Codec[T]
}

func (c arrayCodec[T]) Encode(b bytearena.Buffer, o Order, v []T) error {
	if len(v) != c.n {
		return errors.Other(errors.PhaseEncode, nil, "array of %d elements holds %d", c.n, len(v))
	}
	if err := writeSize(b, o, c.n); err != nil {
		return err
	}
	for i := range v {
		if err := c.elem.Encode(b, o, v[i]); err != nil {
			return errors.AtIndex(errors.PhaseEncode, nil, i, err)
		}
	}
	return nil
}

func (c arrayCodec[T]) Decode(b bytearena.Buffer, o Order) ([]T, error) {
	n, err := readSize(b, o)
	if err != nil {
		return nil, err
	}
	if n != c.n {
		return nil, errors.Other(errors.PhaseDecode, nil, "array size %d does not match %d", n, c.n)
	}
	out := make([]T, c.n)
	for i := range out {
		v, err := c.elem.Decode(b, o)
		if err != nil {
			return nil, errors.AtIndex(errors.PhaseDecode, nil, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Slice encodes a variable-length sequence: a u64 count, then the elements.
// Element errors are returned unchanged.
func Slice[T any](c Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: c}
}

type sliceCodec[T any] struct {
	elem Codec[T]
}

func (c sliceCodec[T]) Encode(b bytearena.Buffer, o Order, v []T) error {
	if err := writeSize(b, o, len(v)); err != nil {
		return err
	}
	for i := range v {
		if err := c.elem.Encode(b, o, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c sliceCodec[T]) Decode(b bytearena.Buffer, o Order) ([]T, error) {
	n, err := readSize(b, o)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []T{}, nil
	}
	out := make([]T, 0, preallocate(b, n))
	for i := 0; i < n; i++ {
		v, err := c.elem.Decode(b, o)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Strings is Slice(String).
var Strings = Slice(String)
