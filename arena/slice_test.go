package arena

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/bytearena/errors"
)

func TestWriteSliceGrowth(t *testing.T) {
	a := New()
	steps := []struct {
		write   int
		wantCap int
	}{
		{8, 8},
		{2, 16},
		{6, 16},
		{1, 32},
	}

	for i, s := range steps {
		mustWrite(t, a, make([]byte, s.write))
		if a.Cap() != s.wantCap {
			t.Errorf("step %d: Cap() = %d, want %d", i, a.Cap(), s.wantCap)
		}
		checkInvariants(t, a)
	}
}

func TestWriteSliceLengthAndCursor(t *testing.T) {
	a := New()
	mustWrite(t, a, make([]byte, 8))
	if a.Len() != 8 || a.Cursor() != 8 {
		t.Fatalf("len=%d cursor=%d, want 8 8", a.Len(), a.Cursor())
	}

	if err := a.MoveCursor(6); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, a, []byte{1, 2, 3, 4})
	if a.Len() != 10 || a.Cursor() != 10 {
		t.Errorf("len=%d cursor=%d, want 10 10", a.Len(), a.Cursor())
	}

	_ = a.MoveCursor(2)
	mustWrite(t, a, []byte{0xaa})
	if a.Len() != 10 {
		t.Errorf("overwrite inside length changed it to %d", a.Len())
	}
}

func TestWriteSliceEmpty(t *testing.T) {
	a := New()
	mustWrite(t, a, nil)
	if a.Len() != 0 || a.Cursor() != 0 {
		t.Errorf("empty write moved len=%d cursor=%d", a.Len(), a.Cursor())
	}
}

func TestGrowTarget(t *testing.T) {
	tests := []struct {
		need int
		want int
		kind errors.Kind
	}{
		{0, MinSize, ""},
		{1, MinSize, ""},
		{2, MinSize, ""},
		{8, 8, ""},
		{9, 16, ""},
		{16, 16, ""},
		{1 << 40, 1 << 40, ""},
		{1<<40 + 1, 1 << 41, ""},
		{1<<62 + 1, 0, errors.KindMaxCapacity},
		{math.MaxInt, 0, errors.KindMaxCapacity},
	}

	for _, tt := range tests {
		got, err := growTarget(tt.need)
		if errors.KindOf(err) != tt.kind {
			t.Errorf("growTarget(%d) err = %v, want kind %q", tt.need, err, tt.kind)
			continue
		}
		if got != tt.want {
			t.Errorf("growTarget(%d) = %d, want %d", tt.need, got, tt.want)
		}
	}
}

func TestReadSlice(t *testing.T) {
	a := New()
	mustWrite(t, a, []byte{1, 2, 3, 4})
	a.MoveCursorToStart()

	p, err := a.ReadSlice(2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p, []byte{1, 2}) {
		t.Errorf("ReadSlice(2) = %v, want [1 2]", p)
	}
	if a.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", a.Cursor())
	}

	p, err = a.ReadSlice(0)
	if err != nil || len(p) != 0 {
		t.Errorf("ReadSlice(0) = %v, %v", p, err)
	}
}

func TestReadSliceOutOfBounds(t *testing.T) {
	a := New()
	mustWrite(t, a, []byte{0xff, 0xff, 0xff, 0x7f})
	a.MoveCursorToStart()

	_, err := a.ReadSlice(5)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("ReadSlice(5) err = %v, want *errors.Error", err)
	}
	if e.Kind != errors.KindReadOutOfBounds {
		t.Errorf("Kind = %v, want %v", e.Kind, errors.KindReadOutOfBounds)
	}
	if e.Value != (errors.ReadBounds{Length: 4, Start: 0, End: 5}) {
		t.Errorf("Value = %+v, want {4 0 5}", e.Value)
	}
	if a.Cursor() != 0 {
		t.Errorf("failed read moved cursor to %d", a.Cursor())
	}
}

func TestReadSliceStopsAtLength(t *testing.T) {
	a, _ := WithCapacity(32)
	mustWrite(t, a, []byte{1, 2})
	a.MoveCursorToStart()
	if _, err := a.ReadSlice(3); err == nil {
		t.Error("read past length but inside capacity succeeded")
	}
}

func TestReadInto(t *testing.T) {
	a := New()
	mustWrite(t, a, []byte{4, 5, 6})
	a.MoveCursorToStart()

	dst := make([]byte, 3)
	if err := a.ReadInto(dst); err != nil {
		t.Fatal(err)
	}
	if err := a.Resize(1024); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, []byte{4, 5, 6}) {
		t.Errorf("ReadInto = %v, want [4 5 6]", dst)
	}
}

func TestSliceFrom(t *testing.T) {
	a := New()
	mustWrite(t, a, []byte{10, 11, 12, 13, 14})

	p, err := a.SliceFrom(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p, []byte{11, 12, 13}) {
		t.Errorf("SliceFrom(1, 3) = %v", p)
	}
	if a.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", a.Cursor())
	}

	_, err = a.SliceFrom(3, 3)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Value != (errors.ReadBounds{Length: 5, Start: 3, End: 6}) {
		t.Errorf("SliceFrom(3, 3) err = %v", err)
	}
	if a.Cursor() != 4 {
		t.Errorf("failed SliceFrom moved cursor to %d", a.Cursor())
	}

	if _, err := a.SliceFrom(6, 0); errors.KindOf(err) != errors.KindCursorOutOfBounds {
		t.Errorf("SliceFrom(6, 0) err = %v, want cursor out of bounds", err)
	}
}

func TestReadToArena(t *testing.T) {
	a := New()
	mustWrite(t, a, []byte{1, 2, 3, 4, 5, 6})
	_ = a.MoveCursor(2)

	sub, err := a.ReadToArena(3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Cap() != 3 || sub.Len() != 3 || sub.Cursor() != 0 {
		t.Errorf("sub cap=%d len=%d cursor=%d, want 3 3 0", sub.Cap(), sub.Len(), sub.Cursor())
	}
	if !bytes.Equal(sub.Bytes(), []byte{3, 4, 5}) {
		t.Errorf("sub content = %v", sub.Bytes())
	}
	if a.Cursor() != 5 {
		t.Errorf("source cursor = %d, want 5", a.Cursor())
	}

	if _, err := a.ReadToArena(0); errors.KindOf(err) != errors.KindMinCapacity {
		t.Errorf("ReadToArena(0) err = %v, want min capacity", err)
	}
	if _, err := a.ReadToArena(2); errors.KindOf(err) != errors.KindReadOutOfBounds {
		t.Errorf("ReadToArena(2) err = %v, want read out of bounds", err)
	}
}

func TestBytes(t *testing.T) {
	a := New()
	if len(a.Bytes()) != 0 {
		t.Error("Bytes() of an empty arena is not empty")
	}
	mustWrite(t, a, []byte{1, 2, 3})
	if !bytes.Equal(a.Bytes(), []byte{1, 2, 3}) || a.Cursor() != 0 {
		t.Errorf("Bytes() = %v cursor=%d", a.Bytes(), a.Cursor())
	}
}

func TestContentKeepsCursor(t *testing.T) {
	a := New()
	if len(a.Content()) != 0 {
		t.Error("Content() of an empty arena is not empty")
	}
	mustWrite(t, a, []byte{1, 2, 3, 4})
	if err := a.MoveCursor(3); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Content(), []byte{1, 2, 3, 4}) || a.Cursor() != 3 {
		t.Errorf("Content() = %v cursor=%d, want [1 2 3 4] 3", a.Content(), a.Cursor())
	}
}

func BenchmarkWriteSlice(b *testing.B) {
	p := make([]byte, 8)
	a, _ := WithCapacity(4096)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if a.Cursor()+len(p) > a.Cap() {
			a.Reset()
		}
		_ = a.WriteSlice(p)
	}
}

func BenchmarkReadSlice(b *testing.B) {
	a, _ := WithCapacity(4096)
	_ = a.WriteSlice(make([]byte, 4096))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if a.Remaining() < 8 {
			a.MoveCursorToStart()
		}
		_, _ = a.ReadSlice(8)
	}
}
