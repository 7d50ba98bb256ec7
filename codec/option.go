package codec

import (
	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Optional discriminants.
const (
	TagPresent uint8 = 1
	TagAbsent  uint8 = 2
)

// Optional is a value that may be absent.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an absent optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// Option encodes an Optional as a tag followed by the payload when present.
func Option[T any](c Codec[T]) Codec[Optional[T]] {
	return optionCodec[T]{elem: c}
}

type optionCodec[T any] struct {
	elem Codec[T]
}

func (c optionCodec[T]) Encode(b bytearena.Buffer, o Order, v Optional[T]) error {
	if !v.Valid {
		return WriteTag(b, TagAbsent)
	}
	if err := WriteTag(b, TagPresent); err != nil {
		return err
	}
	return c.elem.Encode(b, o, v.Value)
}

func (c optionCodec[T]) Decode(b bytearena.Buffer, o Order) (Optional[T], error) {
	tag, err := readRawTag(b)
	if err != nil {
		return Optional[T]{}, err
	}
	switch tag {
	case TagPresent:
		v, err := c.elem.Decode(b, o)
		if err != nil {
			return Optional[T]{}, err
		}
		return Some(v), nil
	case TagAbsent:
		return None[T](), nil
	default:
		return Optional[T]{}, errors.InvalidDiscriminant(errors.PhaseDecode, nil, "option", tag)
	}
}

// Pointer encodes *T with the Option layout: nil is absent.
func Pointer[T any](c Codec[T]) Codec[*T] {
	return pointerCodec[T]{opt: optionCodec[T]{elem: c}}
}

type pointerCodec[T any] struct {
	opt optionCodec[T]
}

func (c pointerCodec[T]) Encode(b bytearena.Buffer, o Order, v *T) error {
	if v == nil {
		return c.opt.Encode(b, o, None[T]())
	}
	return c.opt.Encode(b, o, Some(*v))
}

func (c pointerCodec[T]) Decode(b bytearena.Buffer, o Order) (*T, error) {
	v, err := c.opt.Decode(b, o)
	if err != nil || !v.Valid {
		return nil, err
	}
	return &v.Value, nil
}
