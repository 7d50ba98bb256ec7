package codec

import (
	"reflect"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Codec encodes and decodes values of type T through a byte arena.
//
// Encode writes v at the cursor. Decode reads a value at the cursor. Both
// advance the cursor past the bytes they consume.
type Codec[T any] interface {
	Encode(b bytearena.Buffer, o Order, v T) error
	Decode(b bytearena.Buffer, o Order) (T, error)
}

// Write encodes v in native order.
func Write[T any](b bytearena.Buffer, c Codec[T], v T) error {
	return c.Encode(b, Native, v)
}

// WriteLE encodes v in little-endian order.
func WriteLE[T any](b bytearena.Buffer, c Codec[T], v T) error {
	return c.Encode(b, LittleEndian, v)
}

// WriteBE encodes v in big-endian order.
func WriteBE[T any](b bytearena.Buffer, c Codec[T], v T) error {
	return c.Encode(b, BigEndian, v)
}

// Read decodes a value in native order.
func Read[T any](b bytearena.Buffer, c Codec[T]) (T, error) {
	return c.Decode(b, Native)
}

// ReadLE decodes a value in little-endian order.
func ReadLE[T any](b bytearena.Buffer, c Codec[T]) (T, error) {
	return c.Decode(b, LittleEndian)
}

// ReadBE decodes a value in big-endian order.
func ReadBE[T any](b bytearena.Buffer, c Codec[T]) (T, error) {
	return c.Decode(b, BigEndian)
}

// Funcs builds a codec from a pair of functions.
type Funcs[T any] struct {
	EncodeFunc func(b bytearena.Buffer, o Order, v T) error
	DecodeFunc func(b bytearena.Buffer, o Order) (T, error)
}

func (f Funcs[T]) Encode(b bytearena.Buffer, o Order, v T) error {
	return f.EncodeFunc(b, o, v)
}

func (f Funcs[T]) Decode(b bytearena.Buffer, o Order) (T, error) {
	return f.DecodeFunc(b, o)
}

// Map adapts a codec of T to a codec of U through a pair of conversions.
// The wire layout is that of T.
func Map[T, U any](c Codec[T], to func(T) U, from func(U) T) Codec[U] {
	return Funcs[U]{
		EncodeFunc: func(b bytearena.Buffer, o Order, v U) error {
			return c.Encode(b, o, from(v))
		},
		DecodeFunc: func(b bytearena.Buffer, o Order) (U, error) {
			v, err := c.Decode(b, o)
			if err != nil {
				var zero U
				return zero, err
			}
			return to(v), nil
		},
	}
}

// Erase hides the value type of c so heterogeneous codecs can be listed
// together, as Tuple does.
func Erase[T any](c Codec[T]) Codec[any] {
	return erased[T]{c: c}
}

type erased[T any] struct {
	c Codec[T]
}

func (e erased[T]) Encode(b bytearena.Buffer, o Order, v any) error {
	t, ok := v.(T)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, nil, typeName(v), typeNameOf[T]())
	}
	return e.c.Encode(b, o, t)
}

func (e erased[T]) Decode(b bytearena.Buffer, o Order) (any, error) {
	v, err := e.c.Decode(b, o)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func typeNameOf[T any]() string {
	return reflect.TypeFor[T]().String()
}
