package codec

import (
	"math"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// writeSize writes a length or element count as a u64.
func writeSize(b bytearena.Buffer, o Order, n int) error {
	return numeric[uint64]{}.Encode(b, o, uint64(n))
}

// readSize reads a u64 length or element count.
func readSize(b bytearena.Buffer, o Order) (int, error) {
	n, err := numeric[uint64]{}.Decode(b, o)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, errors.Other(errors.PhaseDecode, nil, "size %d exceeds the address space", n)
	}
	return int(n), nil
}

// WriteSize writes a u64 length prefix, for hand-written codecs.
func WriteSize(b bytearena.Buffer, o Order, n int) error {
	return writeSize(b, o, n)
}

// ReadSize reads a u64 length prefix, for hand-written codecs.
func ReadSize(b bytearena.Buffer, o Order) (int, error) {
	return readSize(b, o)
}

// WriteTag writes a 1-byte sum type discriminant. Variants are numbered from
// 1 in declaration order.
func WriteTag(b bytearena.Buffer, tag uint8) error {
	var x = [1]byte{tag}
	return b.WriteSlice(x[:])
}

// ReadTag reads a discriminant and checks it names one of count variants.
// Anything else fails with an "invalid id" error.
func ReadTag(b bytearena.Buffer, count uint8) (uint8, error) {
	p, err := b.ReadSlice(1)
	if err != nil {
		return 0, err
	}
	tag := p[0]
	if tag == 0 || tag > count {
		return 0, InvalidID(tag)
	}
	return tag, nil
}

// InvalidID is the error for an unknown sum type discriminant.
func InvalidID(id uint8) error {
	return errors.InvalidID(errors.PhaseDecode, nil, id)
}

func readRawTag(b bytearena.Buffer) (uint8, error) {
	p, err := b.ReadSlice(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// preallocate bounds an untrusted element count by the bytes left to read.
func preallocate(b bytearena.Buffer, count int) int {
	if rem := b.Len() - b.Cursor(); count > rem {
		return rem
	}
	return count
}
