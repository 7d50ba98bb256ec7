package linear

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/errors"
)

// Allocator reserves guest memory through an exported realloc function with
// the signature (old_ptr, old_size, align, new_size) -> ptr.
type Allocator struct {
	Ctx context.Context
	Fn  api.Function
}

// NewAllocator wraps fn. It returns nil for a nil function.
func NewAllocator(ctx context.Context, fn api.Function) *Allocator {
	if fn == nil {
		return nil
	}
	return &Allocator{Ctx: ctx, Fn: fn}
}

// Alloc reserves size bytes aligned to align.
func (a *Allocator) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseInterop, int(size), err)
	}
	if len(results) == 0 {
		return 0, errors.Other(errors.PhaseInterop, nil, "allocation returned no result")
	}
	return uint32(results[0]), nil
}

// Free releases a block returned by Alloc.
func (a *Allocator) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}

// Transfer allocates a guest buffer for the content of src, copies it in and
// returns the pointer and length. An empty arena yields (0, 0) without
// calling the allocator.
func Transfer(m *Memory, alloc *Allocator, src *arena.Arena) (ptr, size uint32, err error) {
	size, err = contentLen(src)
	if err != nil || size == 0 {
		return 0, 0, err
	}
	ptr, err = alloc.Alloc(size, 1)
	if err != nil {
		return 0, 0, err
	}
	if err := m.Store(ptr, src); err != nil {
		alloc.Free(ptr, size, 1)
		return 0, 0, err
	}
	return ptr, size, nil
}
