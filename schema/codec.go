package schema

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/codec"
	"github.com/wippyai/bytearena/errors"
)

// maxCases is the largest number of enum or variant cases a 1-byte
// discriminant numbered from 1 can name.
const maxCases = 255

// Dynamic values:
//
//	bool, u8..u64, s8..s64, f32, f64  bool, uint8..uint64, int8..int64, float32, float64
//	char                              rune
//	string                            string
//	list<T>                           []any ([]byte is accepted for list<u8> on encode)
//	option<T>                         nil or the value
//	result<T, E>                      map[string]any{"ok": v} or map[string]any{"err": v}
//	tuple<...>                        []any
//	record {...}                      map[string]any keyed by field name
//	enum {...}                        string case name
//	variant {...}                     map[string]any{case: payload}, payload nil without a type
//
// nil always stands for the outermost absent option, so option<option<T>>
// cannot carry a present outer value holding an absent inner one.

// Encode writes v laid out as t.
func Encode(b bytearena.Buffer, o codec.Order, t wit.Type, v any) error {
	return encodeValue(b, o, t, v, nil)
}

// Decode reads a value laid out as t.
func Decode(b bytearena.Buffer, o codec.Order, t wit.Type) (any, error) {
	return decodeValue(b, o, t, nil)
}

// Skip advances the cursor past a value laid out as t and validates it.
func Skip(b bytearena.Buffer, o codec.Order, t wit.Type) error {
	_, err := decodeValue(b, o, t, nil)
	return err
}

func mismatch(path []string, v any, want string) error {
	return errors.TypeMismatch(errors.PhaseSchema, path, fmt.Sprintf("%T", v), want)
}

func subPath(path []string, elem string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), elem)
}

func encodeValue(b bytearena.Buffer, o codec.Order, t wit.Type, v any, path []string) error {
	switch t := t.(type) {
	case wit.Bool:
		return encodeAs(b, o, codec.Bool, v, path, "bool")
	case wit.U8:
		return encodeAs(b, o, codec.U8, v, path, "uint8")
	case wit.U16:
		return encodeAs(b, o, codec.U16, v, path, "uint16")
	case wit.U32:
		return encodeAs(b, o, codec.U32, v, path, "uint32")
	case wit.U64:
		return encodeAs(b, o, codec.U64, v, path, "uint64")
	case wit.S8:
		return encodeAs(b, o, codec.I8, v, path, "int8")
	case wit.S16:
		return encodeAs(b, o, codec.I16, v, path, "int16")
	case wit.S32:
		return encodeAs(b, o, codec.I32, v, path, "int32")
	case wit.S64:
		return encodeAs(b, o, codec.I64, v, path, "int64")
	case wit.F32:
		return encodeAs(b, o, codec.F32, v, path, "float32")
	case wit.F64:
		return encodeAs(b, o, codec.F64, v, path, "float64")
	case wit.Char:
		return encodeAs(b, o, codec.Rune, v, path, "rune")
	case wit.String:
		return encodeAs(b, o, codec.String, v, path, "string")
	case *wit.TypeDef:
		return encodeTypeDef(b, o, t, v, path)
	default:
		return errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported WIT type: %T", t).
			Build()
	}
}

func encodeAs[T any](b bytearena.Buffer, o codec.Order, c codec.Codec[T], v any, path []string, want string) error {
	x, ok := v.(T)
	if !ok {
		return mismatch(path, v, want)
	}
	return c.Encode(b, o, x)
}

func encodeTypeDef(b bytearena.Buffer, o codec.Order, t *wit.TypeDef, v any, path []string) error {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, v, "map[string]any")
		}
		for _, f := range kind.Fields {
			fv, ok := m[f.Name]
			if !ok {
				return errors.New(errors.PhaseSchema, errors.KindInvalidInput).
					Path(subPath(path, f.Name)...).
					Detail("missing field %q", f.Name).
					Build()
			}
			if err := encodeValue(b, o, f.Type, fv, subPath(path, f.Name)); err != nil {
				return err
			}
		}
		return nil

	case *wit.List:
		if raw, ok := v.([]byte); ok {
			if _, isU8 := kind.Type.(wit.U8); isU8 {
				return codec.Bytes.Encode(b, o, raw)
			}
		}
		items, ok := v.([]any)
		if !ok {
			return mismatch(path, v, "[]any")
		}
		if err := codec.WriteSize(b, o, len(items)); err != nil {
			return err
		}
		for i, item := range items {
			if err := encodeValue(b, o, kind.Type, item, subPath(path, fmt.Sprintf("[%d]", i))); err != nil {
				return err
			}
		}
		return nil

	case *wit.Option:
		if v == nil {
			return codec.WriteTag(b, codec.TagAbsent)
		}
		if err := codec.WriteTag(b, codec.TagPresent); err != nil {
			return err
		}
		return encodeValue(b, o, kind.Type, v, path)

	case *wit.Result:
		m, ok := v.(map[string]any)
		if !ok || len(m) != 1 {
			return mismatch(path, v, `map with a single "ok" or "err" key`)
		}
		if payload, isOk := m["ok"]; isOk {
			return encodeTagged(b, o, codec.TagOk, kind.OK, payload, subPath(path, "ok"))
		}
		if payload, isErr := m["err"]; isErr {
			return encodeTagged(b, o, codec.TagErr, kind.Err, payload, subPath(path, "err"))
		}
		return mismatch(path, v, `map with a single "ok" or "err" key`)

	case *wit.Tuple:
		items, ok := v.([]any)
		if !ok || len(items) != len(kind.Types) {
			return mismatch(path, v, fmt.Sprintf("[]any of %d members", len(kind.Types)))
		}
		for i, mt := range kind.Types {
			if err := encodeValue(b, o, mt, items[i], path); err != nil {
				return errors.AtIndex(errors.PhaseSchema, path, i, err)
			}
		}
		return nil

	case *wit.Enum:
		name, ok := v.(string)
		if !ok {
			return mismatch(path, v, "string")
		}
		if err := checkCases(len(kind.Cases), path); err != nil {
			return err
		}
		for i, c := range kind.Cases {
			if c.Name == name {
				return codec.WriteTag(b, uint8(i+1))
			}
		}
		return errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Path(path...).
			Detail("unknown enum case %q", name).
			Build()

	case *wit.Variant:
		m, ok := v.(map[string]any)
		if !ok || len(m) != 1 {
			return mismatch(path, v, "map with a single case key")
		}
		if err := checkCases(len(kind.Cases), path); err != nil {
			return err
		}
		for i, c := range kind.Cases {
			if payload, found := m[c.Name]; found {
				return encodeTagged(b, o, uint8(i+1), c.Type, payload, subPath(path, c.Name))
			}
		}
		return errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Path(path...).
			Detail("no known variant case in %v", m).
			Build()

	case wit.Type:
		return encodeValue(b, o, kind, v, path)

	default:
		return errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported TypeDef kind: %T", kind).
			Build()
	}
}

func encodeTagged(b bytearena.Buffer, o codec.Order, tag uint8, t wit.Type, payload any, path []string) error {
	if err := codec.WriteTag(b, tag); err != nil {
		return err
	}
	if t == nil {
		if payload != nil {
			return mismatch(path, payload, "nil payload")
		}
		return nil
	}
	return encodeValue(b, o, t, payload, path)
}

func decodeValue(b bytearena.Buffer, o codec.Order, t wit.Type, path []string) (any, error) {
	switch t := t.(type) {
	case wit.Bool:
		return decodeAs(b, o, codec.Bool)
	case wit.U8:
		return decodeAs(b, o, codec.U8)
	case wit.U16:
		return decodeAs(b, o, codec.U16)
	case wit.U32:
		return decodeAs(b, o, codec.U32)
	case wit.U64:
		return decodeAs(b, o, codec.U64)
	case wit.S8:
		return decodeAs(b, o, codec.I8)
	case wit.S16:
		return decodeAs(b, o, codec.I16)
	case wit.S32:
		return decodeAs(b, o, codec.I32)
	case wit.S64:
		return decodeAs(b, o, codec.I64)
	case wit.F32:
		return decodeAs(b, o, codec.F32)
	case wit.F64:
		return decodeAs(b, o, codec.F64)
	case wit.Char:
		return decodeAs(b, o, codec.Rune)
	case wit.String:
		return decodeAs(b, o, codec.String)
	case *wit.TypeDef:
		return decodeTypeDef(b, o, t, path)
	default:
		return nil, errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported WIT type: %T", t).
			Build()
	}
}

func decodeAs[T any](b bytearena.Buffer, o codec.Order, c codec.Codec[T]) (any, error) {
	v, err := c.Decode(b, o)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeTypeDef(b bytearena.Buffer, o codec.Order, t *wit.TypeDef, path []string) (any, error) {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		out := make(map[string]any, len(kind.Fields))
		for _, f := range kind.Fields {
			v, err := decodeValue(b, o, f.Type, subPath(path, f.Name))
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil

	case *wit.List:
		n, err := codec.ReadSize(b, o)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, min(n, b.Len()-b.Cursor()))
		for i := 0; i < n; i++ {
			v, err := decodeValue(b, o, kind.Type, subPath(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case *wit.Option:
		tag, err := readTag(b, 2, path)
		if err != nil {
			return nil, err
		}
		if tag == codec.TagAbsent {
			return nil, nil
		}
		return decodeValue(b, o, kind.Type, path)

	case *wit.Result:
		tag, err := readTag(b, 2, path)
		if err != nil {
			return nil, err
		}
		key, payloadType := "ok", kind.OK
		if tag == codec.TagErr {
			key, payloadType = "err", kind.Err
		}
		var payload any
		if payloadType != nil {
			if payload, err = decodeValue(b, o, payloadType, subPath(path, key)); err != nil {
				return nil, err
			}
		}
		return map[string]any{key: payload}, nil

	case *wit.Tuple:
		out := make([]any, len(kind.Types))
		for i, mt := range kind.Types {
			v, err := decodeValue(b, o, mt, path)
			if err != nil {
				return nil, errors.AtIndex(errors.PhaseSchema, path, i, err)
			}
			out[i] = v
		}
		return out, nil

	case *wit.Enum:
		tag, err := readTag(b, len(kind.Cases), path)
		if err != nil {
			return nil, err
		}
		return kind.Cases[tag-1].Name, nil

	case *wit.Variant:
		tag, err := readTag(b, len(kind.Cases), path)
		if err != nil {
			return nil, err
		}
		c := kind.Cases[tag-1]
		var payload any
		if c.Type != nil {
			if payload, err = decodeValue(b, o, c.Type, subPath(path, c.Name)); err != nil {
				return nil, err
			}
		}
		return map[string]any{c.Name: payload}, nil

	case wit.Type:
		return decodeValue(b, o, kind, path)

	default:
		return nil, errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported TypeDef kind: %T", kind).
			Build()
	}
}

// checkCases rejects sum types whose tags do not fit a 1-byte discriminant.
func checkCases(count int, path []string) error {
	if count > maxCases {
		return errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("%d cases exceed the limit of %d", count, maxCases).
			Build()
	}
	return nil
}

func readTag(b bytearena.Buffer, count int, path []string) (uint8, error) {
	if err := checkCases(count, path); err != nil {
		return 0, err
	}
	tag, err := codec.ReadTag(b, uint8(count))
	if err != nil {
		if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
			e.Path = path
		}
		return 0, err
	}
	return tag, nil
}
