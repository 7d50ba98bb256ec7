package schema

import (
	"fmt"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bytearena/errors"
)

// Parse reads a type expression in WIT syntax:
//
//	bool u8 u16 u32 u64 s8 s16 s32 s64 f32 f64 char string
//	list<T>  option<T>  tuple<T, ...>
//	result  result<T>  result<T, E>  result<_, E>
//	record { name: T, ... }  enum { a, b, ... }  variant { a(T), b, ... }
func Parse(expr string) (wit.Type, error) {
	p := &parser{src: expr}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q after type", p.tok)
	}
	return t, nil
}

// MustParse is Parse for expressions known to be valid. It panics on error.
func MustParse(expr string) wit.Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
	tok string
	at  int
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Detail("offset %d: %s", p.at, fmt.Sprintf(format, args...)).
		Build()
}

// next advances to the next token: an identifier or a single punctuation rune.
func (p *parser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	p.at = p.pos
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	start := p.pos
	if isIdent(p.src[p.pos]) {
		for p.pos < len(p.src) && isIdent(p.src[p.pos]) {
			p.pos++
		}
	} else {
		p.pos++
	}
	p.tok = p.src[start:p.pos]
}

func isIdent(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (p *parser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q, got end of input", tok)
		}
		return p.errorf("expected %q, got %q", tok, p.tok)
	}
	p.next()
	return nil
}

func (p *parser) ident(what string) (string, error) {
	if p.tok == "" || !isIdent(p.tok[0]) {
		return "", p.errorf("expected %s, got %q", what, p.tok)
	}
	name := p.tok
	p.next()
	return name, nil
}

var primitives = map[string]wit.Type{
	"bool":   wit.Bool{},
	"u8":     wit.U8{},
	"u16":    wit.U16{},
	"u32":    wit.U32{},
	"u64":    wit.U64{},
	"s8":     wit.S8{},
	"s16":    wit.S16{},
	"s32":    wit.S32{},
	"s64":    wit.S64{},
	"f32":    wit.F32{},
	"f64":    wit.F64{},
	"char":   wit.Char{},
	"string": wit.String{},
}

func (p *parser) parseType() (wit.Type, error) {
	name, err := p.ident("type")
	if err != nil {
		return nil, err
	}
	if t, ok := primitives[name]; ok {
		return t, nil
	}

	switch name {
	case "list":
		elem, err := p.parseArgs(1, 1, false)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem[0]}}, nil
	case "option":
		elem, err := p.parseArgs(1, 1, false)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Option{Type: elem[0]}}, nil
	case "tuple":
		elems, err := p.parseArgs(1, 0, false)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Tuple{Types: elems}}, nil
	case "result":
		return p.parseResult()
	case "record":
		return p.parseRecord()
	case "enum":
		return p.parseEnum()
	case "variant":
		return p.parseVariant()
	default:
		return nil, p.errorf("unknown type %q", name)
	}
}

// parseArgs reads <T, ...> with at least minN and, if maxN > 0, at most maxN
// arguments. With allowBlank, "_" stands for no type and yields nil.
func (p *parser) parseArgs(minN, maxN int, allowBlank bool) ([]wit.Type, error) {
	if err := p.expect("<"); err != nil {
		return nil, err
	}
	var out []wit.Type
	for {
		if p.tok == "_" {
			if !allowBlank {
				return nil, p.errorf("_ is only allowed in result")
			}
			p.next()
			out = append(out, nil)
		} else {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		if p.tok != "," {
			break
		}
		p.next()
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	if len(out) < minN || maxN > 0 && len(out) > maxN {
		return nil, p.errorf("wrong number of type arguments: %d", len(out))
	}
	return out, nil
}

func (p *parser) parseResult() (wit.Type, error) {
	r := &wit.Result{}
	if p.tok == "<" {
		args, err := p.parseArgs(1, 2, true)
		if err != nil {
			return nil, err
		}
		r.OK = args[0]
		if len(args) == 2 {
			r.Err = args[1]
		}
	}
	return &wit.TypeDef{Kind: r}, nil
}

func (p *parser) parseRecord() (wit.Type, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	r := &wit.Record{}
	for p.tok != "}" {
		name, err := p.ident("field name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		r.Fields = append(r.Fields, wit.Field{Name: name, Type: t})
		if p.tok != "," {
			break
		}
		p.next()
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if len(r.Fields) == 0 {
		return nil, p.errorf("record has no fields")
	}
	return &wit.TypeDef{Kind: r}, nil
}

func (p *parser) parseEnum() (wit.Type, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	e := &wit.Enum{}
	for p.tok != "}" {
		name, err := p.ident("case name")
		if err != nil {
			return nil, err
		}
		e.Cases = append(e.Cases, wit.EnumCase{Name: name})
		if p.tok != "," {
			break
		}
		p.next()
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if err := checkCaseCount(p, len(e.Cases)); err != nil {
		return nil, err
	}
	return &wit.TypeDef{Kind: e}, nil
}

func (p *parser) parseVariant() (wit.Type, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	v := &wit.Variant{}
	for p.tok != "}" {
		name, err := p.ident("case name")
		if err != nil {
			return nil, err
		}
		c := wit.Case{Name: name}
		if p.tok == "(" {
			p.next()
			if c.Type, err = p.parseType(); err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
		}
		v.Cases = append(v.Cases, c)
		if p.tok != "," {
			break
		}
		p.next()
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if err := checkCaseCount(p, len(v.Cases)); err != nil {
		return nil, err
	}
	return &wit.TypeDef{Kind: v}, nil
}

// checkCaseCount enforces the 1-byte discriminant numbered from 1.
func checkCaseCount(p *parser, n int) error {
	if n == 0 {
		return p.errorf("no cases")
	}
	if n > maxCases {
		return p.errorf("%d cases exceed the limit of %d", n, maxCases)
	}
	return nil
}
