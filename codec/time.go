package codec

import (
	"math"
	"time"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// Duration encodes a non-negative time.Duration as u64 seconds followed by
// u32 nanoseconds.
var Duration Codec[time.Duration] = durationCodec{}

type durationCodec struct{}

func (durationCodec) Encode(b bytearena.Buffer, o Order, v time.Duration) error {
	if v < 0 {
		return errors.Other(errors.PhaseEncode, nil, "negative duration %s", v)
	}
	secs := uint64(v / time.Second)
	nanos := uint32(v % time.Second)
	if err := U64.Encode(b, o, secs); err != nil {
		return err
	}
	return U32.Encode(b, o, nanos)
}

func (durationCodec) Decode(b bytearena.Buffer, o Order) (time.Duration, error) {
	secs, err := U64.Decode(b, o)
	if err != nil {
		return 0, err
	}
	nanos, err := U32.Decode(b, o)
	if err != nil {
		return 0, err
	}
	// Nanoseconds past one second carry into the seconds.
	const nsPerSec = uint64(time.Second)
	extra := uint64(nanos) / nsPerSec
	rem := uint64(nanos) % nsPerSec
	if secs > math.MaxUint64-extra {
		return 0, overflowErr()
	}
	secs += extra
	if secs > math.MaxInt64/nsPerSec {
		return 0, overflowErr()
	}
	total := secs * nsPerSec
	if total > math.MaxInt64-rem {
		return 0, overflowErr()
	}
	return time.Duration(total + rem), nil
}

func overflowErr() error {
	return errors.Other(errors.PhaseDecode, nil, "overflow in Duration")
}
