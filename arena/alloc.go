package arena

import (
	"fmt"
	"math/bits"

	"github.com/wippyai/bytearena/errors"
)

// allocate returns a zeroed block of n bytes. A runtime refusal of the
// request (size past the address space limit) is reported instead of
// panicking.
func allocate(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.AllocationFailed(errors.PhaseAlloc, n, fmt.Errorf("%v", r))
		}
	}()
	return make([]byte, n), nil
}

// growTarget returns the smallest power of two >= need, and at least MinSize.
func growTarget(need int) (int, error) {
	if need <= MinSize {
		return MinSize, nil
	}
	shift := bits.Len(uint(need - 1))
	if shift >= bits.UintSize-1 {
		return 0, errors.MaxCapacity(errors.PhaseAlloc, MaxSize)
	}
	return 1 << shift, nil
}
