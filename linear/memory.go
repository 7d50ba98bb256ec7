package linear

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/errors"
)

// FrameHeader is the size of the little-endian u64 length that precedes a
// framed arena in linear memory.
const FrameHeader = 8

// Memory copies arenas in and out of a WebAssembly linear memory.
type Memory struct {
	Mem api.Memory
}

// NewMemory wraps mem. It returns nil for a nil memory.
func NewMemory(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{Mem: mem}
}

// Size returns the current size of the memory in bytes.
func (m *Memory) Size() uint32 { return m.Mem.Size() }

func readBounds(offset, length uint32, size uint32) *errors.Error {
	return errors.New(errors.PhaseInterop, errors.KindReadOutOfBounds).
		Value(errors.ReadBounds{Length: int(size), Start: int(offset), End: int(offset) + int(length)}).
		Detail("memory read out of bounds: offset=%d, length=%d", offset, length).
		Build()
}

func writeBounds(offset uint32, length int) *errors.Error {
	return errors.Other(errors.PhaseInterop, nil, "memory write out of bounds: offset=%d, length=%d", offset, length)
}

func contentLen(a *arena.Arena) (uint32, error) {
	if uint64(a.Len()) > math.MaxUint32 {
		return 0, errors.MaxCapacity(errors.PhaseInterop, math.MaxUint32)
	}
	return uint32(a.Len()), nil
}

// Store writes the logical content of a at offset. The arena cursor is left
// unchanged.
func (m *Memory) Store(offset uint32, a *arena.Arena) error {
	if _, err := contentLen(a); err != nil {
		return err
	}
	data := a.Content()
	if !m.Mem.Write(offset, data) {
		return writeBounds(offset, len(data))
	}
	Logger().Debug("stored arena", zap.Uint32("offset", offset), zap.Int("length", len(data)))
	return nil
}

// Load copies length bytes at offset into a new arena with the cursor at 0.
func (m *Memory) Load(offset, length uint32) (*arena.Arena, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, readBounds(offset, length, m.Mem.Size())
	}
	a, err := arena.FromBytes(data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("loaded arena", zap.Uint32("offset", offset), zap.Uint32("length", length))
	return a, nil
}

// StoreFramed writes the content length of a as a little-endian u64 followed
// by the content, and returns the number of bytes written.
func (m *Memory) StoreFramed(offset uint32, a *arena.Arena) (uint32, error) {
	n, err := contentLen(a)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32-FrameHeader || offset > math.MaxUint32-FrameHeader-n {
		return 0, writeBounds(offset, int(n)+FrameHeader)
	}
	if !m.Mem.WriteUint64Le(offset, uint64(n)) {
		return 0, writeBounds(offset, FrameHeader)
	}
	if err := m.Store(offset+FrameHeader, a); err != nil {
		return 0, err
	}
	return n + FrameHeader, nil
}

// LoadFramed reads a frame written by StoreFramed and returns the arena and
// the total frame size.
func (m *Memory) LoadFramed(offset uint32) (*arena.Arena, uint32, error) {
	n, ok := m.Mem.ReadUint64Le(offset)
	if !ok {
		return nil, 0, readBounds(offset, FrameHeader, m.Mem.Size())
	}
	if n > math.MaxUint32-FrameHeader || offset > math.MaxUint32-FrameHeader {
		return nil, 0, readBounds(offset, math.MaxUint32, m.Mem.Size())
	}
	a, err := m.Load(offset+FrameHeader, uint32(n))
	if err != nil {
		return nil, 0, err
	}
	return a, uint32(n) + FrameHeader, nil
}
