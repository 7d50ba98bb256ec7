package nested

import (
	"encoding/json"
	"sync"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/codec"
	"github.com/wippyai/bytearena/errors"
)

// Format is an external serializer whose output is embedded in an arena.
type Format interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Of returns a codec that embeds the Format encoding of T as a u64 byte
// length followed by the payload. The length follows the requested order;
// the payload is opaque to it.
func Of[T any](f Format) codec.Codec[T] {
	return payloadCodec[T]{f: f}
}

type payloadCodec[T any] struct {
	f Format
}

func (c payloadCodec[T]) Encode(b bytearena.Buffer, o codec.Order, v T) error {
	data, err := c.f.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.PhaseInterop, errors.KindOther, err, "nested marshal")
	}
	return codec.Bytes.Encode(b, o, data)
}

func (c payloadCodec[T]) Decode(b bytearena.Buffer, o codec.Order) (T, error) {
	var v T
	n, err := codec.ReadSize(b, o)
	if err != nil {
		return v, err
	}
	data, err := b.ReadSlice(n)
	if err != nil {
		return v, err
	}
	if err := c.f.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, errors.Wrap(errors.PhaseInterop, errors.KindOther, err, "nested unmarshal")
	}
	return v, nil
}

type funcs struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func (f funcs) Marshal(v any) ([]byte, error)      { return f.marshal(v) }
func (f funcs) Unmarshal(data []byte, v any) error { return f.unmarshal(data, v) }

var (
	// JSON embeds encoding/json documents.
	JSON Format = funcs{marshal: json.Marshal, unmarshal: json.Unmarshal}
	// YAML embeds YAML documents.
	YAML Format = funcs{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
)

// Zstd compresses the output of inner with zstd.
func Zstd(inner Format) Format {
	return zstdFormat{inner: inner}
}

type zstdFormat struct {
	inner Format
}

var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
)

// zstdCoders returns the shared encoder and decoder. EncodeAll and DecodeAll
// are safe for concurrent use.
func zstdCoders() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEnc, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if zstdErr != nil {
			return
		}
		zstdDec, zstdErr = zstd.NewReader(nil)
	})
	return zstdEnc, zstdDec, zstdErr
}

func (z zstdFormat) Marshal(v any) ([]byte, error) {
	raw, err := z.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	enc, _, err := zstdCoders()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(raw, nil), nil
}

func (z zstdFormat) Unmarshal(data []byte, v any) error {
	_, dec, err := zstdCoders()
	if err != nil {
		return err
	}
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return err
	}
	return z.inner.Unmarshal(raw, v)
}
