package codec

import (
	"unicode/utf8"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Number is the set of fixed-width numeric kinds.
type Number interface {
	constraints.Integer | constraints.Float
}

// Numeric returns the codec of a fixed-width numeric type, including named
// types such as `type Port uint16`. The value occupies unsafe.Sizeof(T)
// bytes, so int and uint should go through Int and Uint instead.
func Numeric[T Number]() Codec[T] {
	return numeric[T]{}
}

var (
	U8  Codec[uint8]   = numeric[uint8]{}
	U16 Codec[uint16]  = numeric[uint16]{}
	U32 Codec[uint32]  = numeric[uint32]{}
	U64 Codec[uint64]  = numeric[uint64]{}
	I8  Codec[int8]    = numeric[int8]{}
	I16 Codec[int16]   = numeric[int16]{}
	I32 Codec[int32]   = numeric[int32]{}
	I64 Codec[int64]   = numeric[int64]{}
	F32 Codec[float32] = numeric[float32]{}
	F64 Codec[float64] = numeric[float64]{}

	// Int and Uint are carried as 8 bytes on every platform.
	Int  Codec[int]  = Map(I64, func(v int64) int { return int(v) }, func(v int) int64 { return int64(v) })
	Uint Codec[uint] = Map(U64, func(v uint64) uint { return uint(v) }, func(v uint) uint64 { return uint64(v) })

	Bool   Codec[bool]     = boolCodec{}
	Rune   Codec[rune]     = runeCodec{}
	String Codec[string]   = stringCodec{}
	Bytes  Codec[[]byte]   = bytesCodec{}
	Unit   Codec[struct{}] = unitCodec{}
)

type numeric[T Number] struct{}

func (numeric[T]) Encode(b bytearena.Buffer, o Order, v T) error {
	var buf [8]byte
	bo := o.byteOrder()
	p := unsafe.Pointer(&v)
	switch unsafe.Sizeof(v) {
	case 1:
		buf[0] = *(*uint8)(p)
		return b.WriteSlice(buf[:1])
	case 2:
		bo.PutUint16(buf[:], *(*uint16)(p))
		return b.WriteSlice(buf[:2])
	case 4:
		bo.PutUint32(buf[:], *(*uint32)(p))
		return b.WriteSlice(buf[:4])
	default:
		bo.PutUint64(buf[:], *(*uint64)(p))
		return b.WriteSlice(buf[:8])
	}
}

func (numeric[T]) Decode(b bytearena.Buffer, o Order) (T, error) {
	var v T
	bo := o.byteOrder()
	n := int(unsafe.Sizeof(v))
	src, err := b.ReadSlice(n)
	if err != nil {
		return v, err
	}
	p := unsafe.Pointer(&v)
	switch n {
	case 1:
		*(*uint8)(p) = src[0]
	case 2:
		*(*uint16)(p) = bo.Uint16(src)
	case 4:
		*(*uint32)(p) = bo.Uint32(src)
	default:
		*(*uint64)(p) = bo.Uint64(src)
	}
	return v, nil
}

type boolCodec struct{}

func (boolCodec) Encode(b bytearena.Buffer, _ Order, v bool) error {
	var x [1]byte
	if v {
		x[0] = 1
	}
	return b.WriteSlice(x[:])
}

func (boolCodec) Decode(b bytearena.Buffer, _ Order) (bool, error) {
	p, err := b.ReadSlice(1)
	if err != nil {
		return false, err
	}
	return p[0] != 0, nil
}

// runeCodec carries a Unicode scalar value as a 4-byte code point.
type runeCodec struct{}

func (runeCodec) Encode(b bytearena.Buffer, o Order, v rune) error {
	if !utf8.ValidRune(v) {
		return errors.NotAChar(errors.PhaseEncode, nil, uint32(v))
	}
	return numeric[uint32]{}.Encode(b, o, uint32(v))
}

func (runeCodec) Decode(b bytearena.Buffer, o Order) (rune, error) {
	cp, err := numeric[uint32]{}.Decode(b, o)
	if err != nil {
		return 0, err
	}
	if !utf8.ValidRune(rune(cp)) {
		return 0, errors.NotAChar(errors.PhaseDecode, nil, cp)
	}
	return rune(cp), nil
}

type stringCodec struct{}

func (stringCodec) Encode(b bytearena.Buffer, o Order, v string) error {
	if err := writeSize(b, o, len(v)); err != nil {
		return err
	}
	return b.WriteSlice(unsafe.Slice(unsafe.StringData(v), len(v)))
}

func (stringCodec) Decode(b bytearena.Buffer, o Order) (string, error) {
	n, err := readSize(b, o)
	if err != nil {
		return "", err
	}
	p, err := b.ReadSlice(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, p)
	}
	return string(p), nil
}

// bytesCodec is the sequence of uint8 written as one block.
type bytesCodec struct{}

func (bytesCodec) Encode(b bytearena.Buffer, o Order, v []byte) error {
	if err := writeSize(b, o, len(v)); err != nil {
		return err
	}
	return b.WriteSlice(v)
}

func (bytesCodec) Decode(b bytearena.Buffer, o Order) ([]byte, error) {
	n, err := readSize(b, o)
	if err != nil {
		return nil, err
	}
	p, err := b.ReadSlice(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

type unitCodec struct{}

func (unitCodec) Encode(bytearena.Buffer, Order, struct{}) error { return nil }

func (unitCodec) Decode(bytearena.Buffer, Order) (struct{}, error) { return struct{}{}, nil }
