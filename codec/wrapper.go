package codec

import (
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Box encodes a non-nil *T as T. Encoding nil fails.
func Box[T any](c Codec[T]) Codec[*T] {
	return Funcs[*T]{
		EncodeFunc: func(b bytearena.Buffer, o Order, v *T) error {
			if v == nil {
				return errors.Other(errors.PhaseEncode, nil, "nil box of %s", typeNameOf[T]())
			}
			return c.Encode(b, o, *v)
		},
		DecodeFunc: func(b bytearena.Buffer, o Order) (*T, error) {
			v, err := c.Decode(b, o)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}

// Cow holds either a borrowed reference or an owned value.
type Cow[T any] struct {
	Borrowed *T
	Owned    T
}

// Borrowed wraps a reference.
func Borrowed[T any](v *T) Cow[T] { return Cow[T]{Borrowed: v} }

// Owned wraps a value.
func Owned[T any](v T) Cow[T] { return Cow[T]{Owned: v} }

// Get returns the referenced or owned value.
func (c Cow[T]) Get() T {
	if c.Borrowed != nil {
		return *c.Borrowed
	}
	return c.Owned
}

// CowOf encodes a Cow as its value. Decoding always yields an owned Cow.
func CowOf[T any](c Codec[T]) Codec[Cow[T]] {
	return Map(c, Owned[T], Cow[T].Get)
}

// Cell is an unguarded mutable slot.
type Cell[T any] struct {
	v T
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) Cell[T] { return Cell[T]{v: v} }

func (c *Cell[T]) Get() T  { return c.v }
func (c *Cell[T]) Set(v T) { c.v = v }

// CellOf encodes a Cell as its value.
func CellOf[T any](c Codec[T]) Codec[Cell[T]] {
	return Map(c, NewCell[T], func(v Cell[T]) T { return v.v })
}

// RefCell is a slot guarded by a reader/writer lock. Encoding takes a shared
// borrow and fails if an exclusive borrow is held.
type RefCell[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewRefCell returns a checked cell holding v.
func NewRefCell[T any](v T) *RefCell[T] {
	return &RefCell[T]{v: v}
}

// Borrow returns a copy of the value under a shared borrow.
func (c *RefCell[T]) Borrow() (T, error) {
	if !c.mu.TryRLock() {
		var zero T
		return zero, errors.AlreadyBorrowed(errors.PhaseEncode, typeNameOf[*RefCell[T]]())
	}
	defer c.mu.RUnlock()
	return c.v, nil
}

// BorrowMut takes an exclusive borrow. The returned release func must be
// called to end it.
func (c *RefCell[T]) BorrowMut() (*T, func(), error) {
	if !c.mu.TryLock() {
		return nil, nil, errors.AlreadyBorrowed(errors.PhaseEncode, typeNameOf[*RefCell[T]]())
	}
	return &c.v, c.mu.Unlock, nil
}

// RefCellOf encodes a RefCell as its value.
func RefCellOf[T any](c Codec[T]) Codec[*RefCell[T]] {
	return Funcs[*RefCell[T]]{
		EncodeFunc: func(b bytearena.Buffer, o Order, v *RefCell[T]) error {
			if v == nil {
				return errors.Other(errors.PhaseEncode, nil, "nil RefCell of %s", typeNameOf[T]())
			}
			val, err := v.Borrow()
			if err != nil {
				return err
			}
			return c.Encode(b, o, val)
		},
		DecodeFunc: func(b bytearena.Buffer, o Order) (*RefCell[T], error) {
			v, err := c.Decode(b, o)
			if err != nil {
				return nil, err
			}
			return NewRefCell(v), nil
		},
	}
}

// NonZero is an integer known not to be zero.
type NonZero[T constraints.Integer] struct {
	v T
}

// NewNonZero returns v as a NonZero, or false if v is zero.
func NewNonZero[T constraints.Integer](v T) (NonZero[T], bool) {
	return NonZero[T]{v: v}, v != 0
}

// Get returns the integer.
func (n NonZero[T]) Get() T { return n.v }

// NonZeroOf encodes a NonZero as its integer. Decoding zero fails.
func NonZeroOf[T constraints.Integer](c Codec[T]) Codec[NonZero[T]] {
	return Funcs[NonZero[T]]{
		EncodeFunc: func(b bytearena.Buffer, o Order, v NonZero[T]) error {
			if v.v == 0 {
				return errors.NonZeroIsZero(errors.PhaseEncode, nil, typeNameOf[T]())
			}
			return c.Encode(b, o, v.v)
		},
		DecodeFunc: func(b bytearena.Buffer, o Order) (NonZero[T], error) {
			v, err := c.Decode(b, o)
			if err != nil {
				return NonZero[T]{}, err
			}
			if v == 0 {
				return NonZero[T]{}, errors.NonZeroIsZero(errors.PhaseDecode, nil, typeNameOf[T]())
			}
			return NonZero[T]{v: v}, nil
		},
	}
}

// Wrapping is an integer with modular arithmetic.
type Wrapping[T constraints.Integer] struct {
	V T
}

func (w Wrapping[T]) Add(x T) Wrapping[T] { return Wrapping[T]{V: w.V + x} }
func (w Wrapping[T]) Sub(x T) Wrapping[T] { return Wrapping[T]{V: w.V - x} }

// WrappingOf encodes a Wrapping as its integer.
func WrappingOf[T constraints.Integer](c Codec[T]) Codec[Wrapping[T]] {
	return Map(c, func(v T) Wrapping[T] { return Wrapping[T]{V: v} }, func(w Wrapping[T]) T { return w.V })
}

// Saturating is an integer whose arithmetic clamps at the bounds of T.
type Saturating[T constraints.Integer] struct {
	V T
}

func (s Saturating[T]) Add(x T) Saturating[T] {
	r := s.V + x
	switch {
	case x > 0 && r < s.V:
		return Saturating[T]{V: maxOf[T]()}
	case x < 0 && r > s.V:
		return Saturating[T]{V: minOf[T]()}
	}
	return Saturating[T]{V: r}
}

func (s Saturating[T]) Sub(x T) Saturating[T] {
	r := s.V - x
	switch {
	case x > 0 && r > s.V:
		return Saturating[T]{V: minOf[T]()}
	case x < 0 && r < s.V:
		return Saturating[T]{V: maxOf[T]()}
	}
	return Saturating[T]{V: r}
}

func maxOf[T constraints.Integer]() T {
	var zero T
	ones := ^zero
	if ones < 0 {
		// signed: clear the sign bit
		return ones ^ (ones << (bitsOf[T]() - 1))
	}
	return ones
}

func minOf[T constraints.Integer]() T {
	var zero T
	ones := ^zero
	if ones < 0 {
		return ones << (bitsOf[T]() - 1)
	}
	return 0
}

func bitsOf[T constraints.Integer]() uint {
	var n uint
	for v := ^T(0); v != 0; v <<= 1 {
		n++
	}
	return n
}

// SaturatingOf encodes a Saturating as its integer.
func SaturatingOf[T constraints.Integer](c Codec[T]) Codec[Saturating[T]] {
	return Map(c, func(v T) Saturating[T] { return Saturating[T]{V: v} }, func(s Saturating[T]) T { return s.V })
}

// Phantom carries a type parameter and no data.
type Phantom[T any] struct{}

// PhantomOf encodes nothing.
func PhantomOf[T any]() Codec[Phantom[T]] {
	return Map(Unit, func(struct{}) Phantom[T] { return Phantom[T]{} }, func(Phantom[T]) struct{} { return struct{}{} })
}
