package nested

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/codec"
	"github.com/wippyai/bytearena/errors"
)

type config struct {
	Name    string            `json:"name" yaml:"name"`
	Ports   []int             `json:"ports" yaml:"ports"`
	Labels  map[string]string `json:"labels" yaml:"labels"`
	Enabled bool              `json:"enabled" yaml:"enabled"`
}

func sample() config {
	return config{
		Name:    "edge",
		Ports:   []int{80, 443},
		Labels:  map[string]string{"zone": "a"},
		Enabled: true,
	}
}

func TestFormats(t *testing.T) {
	formats := map[string]Format{
		"json":      JSON,
		"yaml":      YAML,
		"zstd+json": Zstd(JSON),
		"zstd+yaml": Zstd(YAML),
	}
	for name, f := range formats {
		t.Run(name, func(t *testing.T) {
			c := Of[config](f)
			for _, o := range []codec.Order{codec.Native, codec.LittleEndian, codec.BigEndian} {
				a := arena.New()
				require.NoError(t, c.Encode(a, o, sample()))
				a.MoveCursorToStart()
				got, err := c.Decode(a, o)
				require.NoError(t, err)
				require.Equal(t, sample(), got)
				require.Equal(t, a.Len(), a.Cursor())
			}
		})
	}
}

func TestJSONFraming(t *testing.T) {
	a := arena.New()
	require.NoError(t, codec.WriteBE(a, Of[[]int](JSON), []int{1, 2}))

	raw := a.Bytes()
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 5}, raw[:8])
	require.Equal(t, "[1,2]", string(raw[8:]))
}

func TestNestedInsideComposite(t *testing.T) {
	c := codec.PairOf(codec.U32, Of[map[string]int](Zstd(JSON)))
	v := codec.Pair[uint32, map[string]int]{First: 3, Second: map[string]int{"a": 1}}

	a := arena.New()
	require.NoError(t, codec.WriteLE(a, c, v))
	a.MoveCursorToStart()
	got, err := codec.ReadLE(a, c)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestCompressionShrinksRepetitivePayload(t *testing.T) {
	long := strings.Repeat("arena ", 500)

	plain := arena.New()
	require.NoError(t, codec.WriteLE(plain, Of[string](JSON), long))
	packed := arena.New()
	require.NoError(t, codec.WriteLE(packed, Of[string](Zstd(JSON)), long))

	require.Less(t, packed.Len(), plain.Len()/4)
}

func TestErrors(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		err := codec.Write(arena.New(), Of[chan int](JSON), make(chan int))
		require.Equal(t, errors.KindOther, errors.KindOf(err))
		var e *errors.Error
		require.True(t, stderrors.As(err, &e))
		require.Equal(t, errors.PhaseInterop, e.Phase)
	})

	t.Run("unmarshal", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, codec.Write(a, codec.Bytes, []byte("{not json")))
		a.MoveCursorToStart()
		_, err := codec.Read(a, Of[config](JSON))
		require.Equal(t, errors.KindOther, errors.KindOf(err))
	})

	t.Run("corrupt zstd", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, codec.Write(a, codec.Bytes, []byte{1, 2, 3, 4}))
		a.MoveCursorToStart()
		_, err := codec.Read(a, Of[config](Zstd(JSON)))
		require.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		a := arena.New()
		require.NoError(t, codec.Write(a, codec.U64, 50))
		a.MoveCursorToStart()
		_, err := codec.Read(a, Of[config](JSON))
		require.Equal(t, errors.KindReadOutOfBounds, errors.KindOf(err))
	})
}
