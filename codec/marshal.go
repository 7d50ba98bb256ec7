package codec

import "github.com/wippyai/bytearena"

// Marshaler is implemented by types that encode themselves.
type Marshaler interface {
	MarshalArena(b bytearena.Buffer, o Order) error
}

// Unmarshaler is implemented by types that decode themselves. It is called
// on a zero value.
type Unmarshaler interface {
	UnmarshalArena(b bytearena.Buffer, o Order) error
}

// SelfCoder is a pointer type whose element encodes and decodes itself.
type SelfCoder[T any] interface {
	*T
	Marshaler
	Unmarshaler
}

// Self returns the codec of a type implementing Marshaler and Unmarshaler.
//
//	type Point struct{ X, Y int32 }
//
//	func (p *Point) MarshalArena(b bytearena.Buffer, o codec.Order) error { ... }
//	func (p *Point) UnmarshalArena(b bytearena.Buffer, o codec.Order) error { ... }
//
//	c := codec.Self[Point]()
func Self[T any, PT SelfCoder[T]]() Codec[T] {
	return selfCodec[T, PT]{}
}

type selfCodec[T any, PT SelfCoder[T]] struct{}

func (selfCodec[T, PT]) Encode(b bytearena.Buffer, o Order, v T) error {
	return PT(&v).MarshalArena(b, o)
}

func (selfCodec[T, PT]) Decode(b bytearena.Buffer, o Order) (T, error) {
	var v T
	if err := PT(&v).UnmarshalArena(b, o); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
