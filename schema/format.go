package schema

import (
	"strings"

	"go.bytecodealliance.org/wit"
)

// Format renders t in the syntax Parse accepts. Named type definitions are
// expanded in place.
func Format(t wit.Type) string {
	var b strings.Builder
	format(&b, t)
	return b.String()
}

func format(b *strings.Builder, t wit.Type) {
	switch t := t.(type) {
	case nil:
		b.WriteByte('_')
	case wit.Bool:
		b.WriteString("bool")
	case wit.U8:
		b.WriteString("u8")
	case wit.U16:
		b.WriteString("u16")
	case wit.U32:
		b.WriteString("u32")
	case wit.U64:
		b.WriteString("u64")
	case wit.S8:
		b.WriteString("s8")
	case wit.S16:
		b.WriteString("s16")
	case wit.S32:
		b.WriteString("s32")
	case wit.S64:
		b.WriteString("s64")
	case wit.F32:
		b.WriteString("f32")
	case wit.F64:
		b.WriteString("f64")
	case wit.Char:
		b.WriteString("char")
	case wit.String:
		b.WriteString("string")
	case *wit.TypeDef:
		formatTypeDef(b, t)
	default:
		b.WriteString("<unsupported>")
	}
}

func formatTypeDef(b *strings.Builder, t *wit.TypeDef) {
	switch kind := t.Kind.(type) {
	case *wit.List:
		b.WriteString("list<")
		format(b, kind.Type)
		b.WriteByte('>')
	case *wit.Option:
		b.WriteString("option<")
		format(b, kind.Type)
		b.WriteByte('>')
	case *wit.Result:
		b.WriteString("result")
		switch {
		case kind.OK == nil && kind.Err == nil:
		case kind.Err == nil:
			b.WriteByte('<')
			format(b, kind.OK)
			b.WriteByte('>')
		default:
			b.WriteByte('<')
			format(b, kind.OK)
			b.WriteString(", ")
			format(b, kind.Err)
			b.WriteByte('>')
		}
	case *wit.Tuple:
		b.WriteString("tuple<")
		for i, mt := range kind.Types {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, mt)
		}
		b.WriteByte('>')
	case *wit.Record:
		b.WriteString("record { ")
		for i, f := range kind.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			format(b, f.Type)
		}
		b.WriteString(" }")
	case *wit.Enum:
		b.WriteString("enum { ")
		for i, c := range kind.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
		}
		b.WriteString(" }")
	case *wit.Variant:
		b.WriteString("variant { ")
		for i, c := range kind.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
			if c.Type != nil {
				b.WriteByte('(')
				format(b, c.Type)
				b.WriteByte(')')
			}
		}
		b.WriteString(" }")
	case wit.Type:
		format(b, kind)
	default:
		b.WriteString("<unsupported>")
	}
}
