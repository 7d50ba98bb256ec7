package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/errors"
)

type header struct {
	Magic   [4]byte
	Version uint16
	Flags   []bool
	Name    string
	Cache   map[string]int `arena:"-"`
	TTL     time.Duration
	Parent  *header
	Payload []byte
	Scale   float32
	Count   int
	secret  int
}

func TestForStruct(t *testing.T) {
	c, err := For[header]()
	require.NoError(t, err)

	v := header{
		Magic:   [4]byte{'A', 'R', 'N', 'A'},
		Version: 3,
		Flags:   []bool{true, false},
		Name:    "root",
		TTL:     90 * time.Second,
		Parent:  &header{Name: "parent", Flags: []bool{}, Payload: []byte{}},
		Payload: []byte{0xde, 0xad},
		Scale:   0.5,
		Count:   -7,
	}
	for _, o := range orders {
		got := roundTrip(t, c, o, v)
		require.Equal(t, v, got, "order %s", o)
	}
}

func TestForSkipsTaggedAndUnexported(t *testing.T) {
	type rec struct {
		A      uint8
		Skip   uint64 `arena:"-"`
		B      uint8
		hidden uint32
	}
	c, err := For[rec]()
	require.NoError(t, err)

	a := arena.New()
	require.NoError(t, Write(a, c, rec{A: 1, Skip: 99, B: 2, hidden: 5}))
	require.Equal(t, []byte{1, 2}, a.Bytes())

	got, err := Read(a, c)
	require.NoError(t, err)
	require.Equal(t, rec{A: 1, B: 2}, got)
}

func TestForMatchesHandBuiltCodecs(t *testing.T) {
	type pair struct {
		ID   uint32
		Tags []string
	}
	c, err := For[pair]()
	require.NoError(t, err)

	v := pair{ID: 9, Tags: []string{"x", "yz"}}
	byReflect := arena.New()
	require.NoError(t, WriteBE(byReflect, c, v))

	byHand := arena.New()
	require.NoError(t, WriteBE(byHand, PairOf(U32, Slice(String)), Pair[uint32, []string]{v.ID, v.Tags}))
	require.Equal(t, byHand.Bytes(), byReflect.Bytes())
}

func TestForArraySizeMismatch(t *testing.T) {
	small, err := For[[2]uint8]()
	require.NoError(t, err)
	big, err := For[[3]uint8]()
	require.NoError(t, err)

	a := arena.New()
	require.NoError(t, Write(a, small, [2]uint8{1, 2}))
	a.MoveCursorToStart()
	got, err := Read(a, big)
	require.Equal(t, errors.KindOther, errors.KindOf(err))
	require.Equal(t, [3]uint8{}, got)
}

func TestForRecursive(t *testing.T) {
	type node struct {
		Value int16
		Next  *node
	}
	c, err := For[node]()
	require.NoError(t, err)

	list := node{Value: 1, Next: &node{Value: 2, Next: &node{Value: 3}}}
	got := roundTrip(t, c, LittleEndian, list)
	require.Equal(t, list, got)
	require.Nil(t, got.Next.Next.Next)
}

func TestForSelfCoder(t *testing.T) {
	type shape struct {
		Origin point
		Points []point
	}
	c, err := For[shape]()
	require.NoError(t, err)

	v := shape{Origin: point{1, 2}, Points: []point{{3, 4}}}
	require.Equal(t, v, roundTrip(t, c, BigEndian, v))

	a := arena.New()
	require.NoError(t, WriteBE(a, c, v))
	require.Equal(t, 8+8+8, a.Len())
}

func TestForUnsupported(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"map", func() error { _, err := For[map[string]int](); return err }},
		{"chan", func() error { _, err := For[chan int](); return err }},
		{"func field", func() error {
			type withFunc struct{ F func() }
			_, err := For[withFunc]()
			return err
		}},
		{"interface", func() error { _, err := For[any](); return err }},
		{"complex", func() error { _, err := For[complex64](); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			require.Equal(t, errors.KindUnsupported, errors.KindOf(err))
		})
	}
}

func TestForCaches(t *testing.T) {
	type cached struct{ A uint8 }
	c1, err := For[cached]()
	require.NoError(t, err)
	c2, err := For[cached]()
	require.NoError(t, err)
	require.Same(t, c1.(reflectCodec[cached]).p, c2.(reflectCodec[cached]).p)
}

func TestForNamedScalars(t *testing.T) {
	type Level int8
	type Label string
	type rec struct {
		L  Level
		N  Label
		On bool
	}
	c, err := For[rec]()
	require.NoError(t, err)
	v := rec{L: -3, N: "lbl", On: true}
	require.Equal(t, v, roundTrip(t, c, Native, v))
}
