// Package schema describes arena contents with WIT type expressions and
// encodes or decodes them dynamically.
//
// A schema is a wit.Type, usually obtained from Parse:
//
//	t, err := schema.Parse("record { id: u32, tags: list<string>, parent: option<u32> }")
//	v, err := schema.Decode(a, codec.LittleEndian, t)
//	// v == map[string]any{"id": uint32(7), "tags": []any{"a"}, "parent": nil}
//
// The layout of each WIT type is the one the codec package uses for the
// matching Go shape: records are their fields in order, lists are
// sequences, enum and variant cases are 1-byte tags numbered from 1.
package schema
