// Package codec maps Go values to deterministic byte layouts in an arena.
//
// A Codec[T] encodes and decodes T in one of three byte orders. Codecs for
// primitives are package variables (U8 ... F64, Int, Uint, Bool, Rune,
// String, Bytes, Unit, Duration); composite codecs are built from them:
//
//	c := codec.Slice(codec.Option(codec.U64))      // []Optional[uint64]
//	err := codec.WriteBE(a, c, []codec.Optional[uint64]{codec.Some[uint64](7), codec.None[uint64]()})
//
// Layout rules:
//
//	numeric, bool   natural width in the requested order; bool is 1 byte
//	int, uint       8 bytes
//	rune            4-byte code point, validated on both sides
//	string, []byte  u64 byte length, then the bytes
//	Slice           u64 count, then the elements
//	Array(n)        u64 count equal to n, then the elements
//	Option          tag 1 + payload, or tag 2
//	ResultOf        tag 1 + ok payload, or tag 2 + err payload
//	BoundOf         tag 1, or tag 2/3 + value
//	tuples, ranges  members in order, no framing
//	Duration        u64 seconds, u32 nanoseconds
//
// For derives a codec from a Go type by reflection. Types may take over
// their own layout by implementing Marshaler and Unmarshaler.
package codec
