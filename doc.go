// Package bytearena provides a growable, cursor-addressed byte arena and a
// typed binary codec that lays values out deterministically in native,
// little-endian or big-endian order.
//
// # Architecture Overview
//
//	bytearena/        Root package with the Buffer, SliceReader and SliceWriter contracts
//	├── arena/        Owned byte arena: capacity, length, cursor, power-of-two growth
//	├── codec/        Primitive and composite codecs (option, result, array, slice, tuple, ...)
//	├── errors/       Structured error types for the closed failure taxonomy
//	├── schema/       WIT type expressions as a runtime schema for arena contents
//	├── nested/       Length-prefixed payloads produced by external codecs
//	├── linear/       Transfer of arena contents to and from WebAssembly linear memory
//	└── cmd/arenadump Inspector that decodes a binary file against a layout
//
// # Quick Start
//
//	a := arena.New()
//	defer a.Release()
//
//	if err := codec.WriteLE(a, codec.Slice(codec.U16), []uint16{1, 2, 3}); err != nil {
//	    log.Fatal(err)
//	}
//	a.MoveCursorToStart()
//
//	vals, err := codec.ReadLE(a, codec.Slice(codec.U16))
//
// # Wire Format
//
// Every numeric kind occupies its natural width. Size prefixes of sequences,
// arrays and strings are 8-byte unsigned integers in the requested order.
// Sum types start with a 1-byte discriminant numbered from 1 in declaration
// order; 0 and values past the last variant fail to decode.
//
// # Thread Safety
//
// An Arena has no internal synchronization. It may be handed between
// goroutines but must not be mutated concurrently. Codecs are stateless and
// safe for concurrent use; the reflection compiler caches plans in a sync.Map.
package bytearena
