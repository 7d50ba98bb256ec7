package codec

import (
	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Result discriminants.
const (
	TagOk  uint8 = 1
	TagErr uint8 = 2
)

// Result holds either a success value or a failure value.
type Result[T, E any] struct {
	Ok    T
	Err   E
	IsErr bool
}

// Ok returns a successful result.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{Ok: v}
}

// Err returns a failed result.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{Err: e, IsErr: true}
}

// ResultOf encodes a Result as a tag followed by the active payload.
func ResultOf[T, E any](ok Codec[T], fail Codec[E]) Codec[Result[T, E]] {
	return resultCodec[T, E]{ok: ok, err: fail}
}

type resultCodec[T, E any] struct {
	ok  Codec[T]
	err Codec[E]
}

func (c resultCodec[T, E]) Encode(b bytearena.Buffer, o Order, v Result[T, E]) error {
	if v.IsErr {
		if err := WriteTag(b, TagErr); err != nil {
			return err
		}
		return c.err.Encode(b, o, v.Err)
	}
	if err := WriteTag(b, TagOk); err != nil {
		return err
	}
	return c.ok.Encode(b, o, v.Ok)
}

func (c resultCodec[T, E]) Decode(b bytearena.Buffer, o Order) (Result[T, E], error) {
	tag, err := readRawTag(b)
	if err != nil {
		return Result[T, E]{}, err
	}
	switch tag {
	case TagOk:
		v, err := c.ok.Decode(b, o)
		if err != nil {
			return Result[T, E]{}, err
		}
		return Ok[T, E](v), nil
	case TagErr:
		e, err := c.err.Decode(b, o)
		if err != nil {
			return Result[T, E]{}, err
		}
		return Err[T](e), nil
	default:
		return Result[T, E]{}, errors.InvalidDiscriminant(errors.PhaseDecode, nil, "result", tag)
	}
}
