package codec

import (
	"encoding/binary"
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/errors"
)

var orders = []Order{Native, LittleEndian, BigEndian}

func roundTrip[T any](t *testing.T, c Codec[T], o Order, v T) T {
	t.Helper()
	a := arena.New()
	require.NoError(t, c.Encode(a, o, v))
	a.MoveCursorToStart()
	got, err := c.Decode(a, o)
	require.NoError(t, err)
	require.Equal(t, a.Len(), a.Cursor(), "decode did not consume the encoding")
	return got
}

func checkKinds[T comparable](t *testing.T, c Codec[T], values ...T) {
	t.Helper()
	for _, o := range orders {
		for _, v := range values {
			require.Equal(t, v, roundTrip(t, c, o, v), "order %s", o)
		}
	}
}

func TestNumericRoundTrip(t *testing.T) {
	t.Run("uint8", func(t *testing.T) { checkKinds(t, U8, 0, math.MaxUint8/2, math.MaxUint8) })
	t.Run("uint16", func(t *testing.T) { checkKinds(t, U16, 0, math.MaxUint16/2, math.MaxUint16) })
	t.Run("uint32", func(t *testing.T) { checkKinds(t, U32, 0, math.MaxUint32/2, math.MaxUint32) })
	t.Run("uint64", func(t *testing.T) { checkKinds(t, U64, 0, math.MaxUint64/2, math.MaxUint64) })
	t.Run("uint", func(t *testing.T) { checkKinds(t, Uint, 0, math.MaxUint/2, math.MaxUint) })
	t.Run("int8", func(t *testing.T) { checkKinds(t, I8, math.MinInt8, 0, math.MaxInt8) })
	t.Run("int16", func(t *testing.T) { checkKinds(t, I16, math.MinInt16, 0, math.MaxInt16) })
	t.Run("int32", func(t *testing.T) { checkKinds(t, I32, math.MinInt32, 0, math.MaxInt32) })
	t.Run("int64", func(t *testing.T) { checkKinds(t, I64, math.MinInt64, 0, math.MaxInt64) })
	t.Run("int", func(t *testing.T) { checkKinds(t, Int, math.MinInt, 0, math.MaxInt) })
	t.Run("float32", func(t *testing.T) {
		checkKinds(t, F32, -math.MaxFloat32, math.SmallestNonzeroFloat32, 0, 1.5, math.MaxFloat32)
	})
	t.Run("float64", func(t *testing.T) {
		checkKinds(t, F64, -math.MaxFloat64, math.SmallestNonzeroFloat64, 0, 1.5, math.MaxFloat64)
	})
	t.Run("bool", func(t *testing.T) { checkKinds(t, Bool, false, true) })
}

func TestNumericQuick(t *testing.T) {
	for _, o := range orders {
		u64 := func(v uint64) bool {
			a := arena.New()
			if U64.Encode(a, o, v) != nil {
				return false
			}
			a.MoveCursorToStart()
			got, err := U64.Decode(a, o)
			return err == nil && got == v
		}
		require.NoError(t, quick.Check(u64, nil), "order %s", o)

		i16 := func(v int16) bool {
			a := arena.New()
			if I16.Encode(a, o, v) != nil {
				return false
			}
			a.MoveCursorToStart()
			got, err := I16.Decode(a, o)
			return err == nil && got == v
		}
		require.NoError(t, quick.Check(i16, nil), "order %s", o)

		f64 := func(v float64) bool {
			a := arena.New()
			if F64.Encode(a, o, v) != nil {
				return false
			}
			a.MoveCursorToStart()
			got, err := F64.Decode(a, o)
			return err == nil && math.Float64bits(got) == math.Float64bits(v)
		}
		require.NoError(t, quick.Check(f64, nil), "order %s", o)

		str := func(v string) bool {
			a := arena.New()
			if String.Encode(a, o, v) != nil {
				return false
			}
			a.MoveCursorToStart()
			got, err := String.Decode(a, o)
			return err == nil && got == v
		}
		require.NoError(t, quick.Check(str, nil), "order %s", o)
	}
}

func TestNamedNumeric(t *testing.T) {
	type Port uint16
	c := Numeric[Port]()
	require.Equal(t, Port(8080), roundTrip(t, c, BigEndian, Port(8080)))

	a := arena.New()
	require.NoError(t, WriteBE(a, c, Port(0x1f90)))
	require.Equal(t, []byte{0x1f, 0x90}, a.Bytes())
}

func TestByteOrderLayout(t *testing.T) {
	const v = uint32(0x01020304)

	le := arena.New()
	require.NoError(t, WriteLE(le, U32, v))
	require.Equal(t, []byte{4, 3, 2, 1}, le.Bytes())

	be := arena.New()
	require.NoError(t, WriteBE(be, U32, v))
	require.Equal(t, []byte{1, 2, 3, 4}, be.Bytes())

	ne := arena.New()
	require.NoError(t, Write(ne, U32, v))
	want := binary.NativeEndian.AppendUint32(nil, v)
	require.Equal(t, want, ne.Bytes())
}

func TestFloatLayout(t *testing.T) {
	a := arena.New()
	require.NoError(t, WriteBE(a, F64, 1.0))
	require.Equal(t, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}, a.Bytes())
}

func TestIntIsEightBytes(t *testing.T) {
	a := arena.New()
	require.NoError(t, WriteLE(a, Int, -2))
	require.Equal(t, 8, a.Len())
	require.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, a.Bytes())
}

func TestSingleByteKindsIgnoreOrder(t *testing.T) {
	for _, o := range orders {
		a := arena.New()
		require.NoError(t, I8.Encode(a, o, -1))
		require.NoError(t, U8.Encode(a, o, 7))
		require.NoError(t, Bool.Encode(a, o, true))
		require.Equal(t, []byte{0xff, 7, 1}, a.Bytes())
	}
}

func TestBoolDecodesNonZero(t *testing.T) {
	a, err := arena.FromBytes([]byte{0, 1, 2, 0xff})
	require.NoError(t, err)
	for _, want := range []bool{false, true, true, true} {
		got, err := Read(a, Bool)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDecodeShortInput(t *testing.T) {
	a, err := arena.FromBytes([]byte{1, 2, 3})
	require.NoError(t, err)
	_, err = Read(a, U32)
	require.True(t, errors.IsKind(err, errors.KindReadOutOfBounds))
	require.Equal(t, 0, a.Cursor())
}

func TestRune(t *testing.T) {
	checkKinds(t, Rune, 0, 'a', 'é', '世', '😀', 0x10FFFF)

	a := arena.New()
	require.NoError(t, WriteBE(a, Rune, 'A'))
	require.Equal(t, []byte{0, 0, 0, 0x41}, a.Bytes())

	t.Run("surrogate decode", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, WriteLE(a, U32, 0xD800))
		a.MoveCursorToStart()
		_, err := ReadLE(a, Rune)
		require.Equal(t, errors.KindNotAChar, errors.KindOf(err))
	})

	t.Run("past max decode", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, WriteBE(a, U32, 0x110000))
		a.MoveCursorToStart()
		_, err := ReadBE(a, Rune)
		require.Equal(t, errors.KindNotAChar, errors.KindOf(err))
	})

	t.Run("invalid encode", func(t *testing.T) {
		a := arena.New()
		err := Write(a, Rune, rune(-1))
		require.Equal(t, errors.KindNotAChar, errors.KindOf(err))
		require.Equal(t, 0, a.Len())
	})
}

func TestString(t *testing.T) {
	checkKinds(t, String, "", "hello", "héllo wörld", "日本語")

	a := arena.New()
	require.NoError(t, WriteLE(a, String, "hi"))
	require.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0, 'h', 'i'}, a.Bytes())

	t.Run("invalid utf8", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, WriteLE(a, Bytes, []byte{0xff, 0xfe}))
		a.MoveCursorToStart()
		_, err := ReadLE(a, String)
		require.Equal(t, errors.KindInvalidUTF8, errors.KindOf(err))
	})

	t.Run("length past end", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, WriteLE(a, U64, 100))
		a.MoveCursorToStart()
		_, err := ReadLE(a, String)
		require.Equal(t, errors.KindReadOutOfBounds, errors.KindOf(err))
	})

	t.Run("length past address space", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, WriteLE(a, U64, math.MaxUint64))
		a.MoveCursorToStart()
		_, err := ReadLE(a, String)
		require.Equal(t, errors.KindOther, errors.KindOf(err))
	})
}

func TestBytesCopies(t *testing.T) {
	a := arena.New()
	require.NoError(t, Write(a, Bytes, []byte{1, 2, 3}))
	a.MoveCursorToStart()
	got, err := Read(a, Bytes)
	require.NoError(t, err)

	a.MoveCursorToStart()
	require.NoError(t, Write(a, Bytes, []byte{9, 9, 9}))
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestUnit(t *testing.T) {
	a := arena.New()
	require.NoError(t, Write(a, Unit, struct{}{}))
	require.Equal(t, 0, a.Len())
	_, err := Read(a, Unit)
	require.NoError(t, err)
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"native": Native, "le": LittleEndian, "big": BigEndian} {
		got, ok := ParseOrder(in)
		require.True(t, ok)
		require.Equal(t, want, got)
		if in != "big" {
			require.Equal(t, in, got.String())
		}
	}
	_, ok := ParseOrder("middle")
	require.False(t, ok)
}

func BenchmarkU64Encode(b *testing.B) {
	a, _ := arena.WithCapacity(1 << 16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if a.Cursor()+8 > a.Cap() {
			a.Reset()
		}
		_ = U64.Encode(a, LittleEndian, uint64(i))
	}
}

func BenchmarkU64Decode(b *testing.B) {
	a, _ := arena.WithCapacity(1 << 16)
	for a.Len() < a.Cap() {
		_ = U64.Encode(a, LittleEndian, 42)
	}
	a.MoveCursorToStart()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if a.Remaining() < 8 {
			a.MoveCursorToStart()
		}
		_, _ = U64.Decode(a, LittleEndian)
	}
}
