package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/codec"
	"github.com/wippyai/bytearena/schema"
)

type options struct {
	layout string
	order  codec.Order
	offset int
	all    bool
	hex    bool
	json   bool
}

type styles struct {
	title  lipgloss.Style
	offset lipgloss.Style
	value  lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

// newStyles returns colored styles, or unstyled ones when color is false.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, offset: plain, value: plain, err: plain, help: plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		offset: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// entry is one decoded value and the byte range it occupied.
type entry struct {
	Offset int `json:"offset"`
	Size   int `json:"size"`
	Value  any `json:"value"`
}

// decodeAll decodes values of type t starting at offset. With all it keeps
// decoding until no bytes remain; otherwise it stops after one value.
func decodeAll(data []byte, t wit.Type, o codec.Order, offset int, all bool) ([]entry, error) {
	a, err := arena.FromBytes(data)
	if err != nil {
		return nil, err
	}
	defer a.Release()
	if err := a.MoveCursor(offset); err != nil {
		return nil, err
	}

	var out []entry
	for {
		start := a.Cursor()
		v, err := schema.Decode(a, o, t)
		if err != nil {
			return out, fmt.Errorf("value at offset %d: %w", start, err)
		}
		out = append(out, entry{Offset: start, Size: a.Cursor() - start, Value: v})
		if !all || a.Remaining() == 0 {
			return out, nil
		}
	}
}

func dump(w io.Writer, data []byte, opts options, st styles) error {
	if opts.hex {
		fmt.Fprintln(w, st.title.Render(fmt.Sprintf("%d bytes", len(data))))
		fmt.Fprint(w, hex.Dump(data))
	}
	if opts.layout == "" {
		return nil
	}

	t, err := schema.Parse(opts.layout)
	if err != nil {
		return err
	}
	entries, err := decodeAll(data, t, opts.order, opts.offset, opts.all)

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if jerr := enc.Encode(entries); jerr != nil {
			return jerr
		}
		return err
	}

	fmt.Fprintln(w, st.title.Render(schema.Format(t)), st.help.Render(opts.order.String()))
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n",
			st.offset.Render(fmt.Sprintf("@%d+%d", e.Offset, e.Size)),
			st.value.Render(formatValue(t, e.Value)))
	}
	return err
}

// formatValue renders a decoded value of type t. Record fields keep their
// declaration order.
func formatValue(t wit.Type, v any) string {
	var b strings.Builder
	writeValue(&b, t, v)
	return b.String()
}

func writeValue(b *strings.Builder, t wit.Type, v any) {
	switch t := t.(type) {
	case wit.Char:
		fmt.Fprintf(b, "%q", v)
	case wit.String:
		fmt.Fprintf(b, "%q", v)
	case *wit.TypeDef:
		writeTypeDef(b, t, v)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func writeList(b *strings.Builder, open, close byte, types func(int) wit.Type, items []any) {
	b.WriteByte(open)
	for i, e := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, types(i), e)
	}
	b.WriteByte(close)
}

func writeTypeDef(b *strings.Builder, t *wit.TypeDef, v any) {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		m, _ := v.(map[string]any)
		b.WriteByte('{')
		for i, f := range kind.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			writeValue(b, f.Type, m[f.Name])
		}
		b.WriteByte('}')
	case *wit.List:
		items, _ := v.([]any)
		writeList(b, '[', ']', func(int) wit.Type { return kind.Type }, items)
	case *wit.Tuple:
		items, _ := v.([]any)
		writeList(b, '(', ')', func(i int) wit.Type { return kind.Types[i] }, items)
	case *wit.Option:
		if v == nil {
			b.WriteString("none")
			return
		}
		b.WriteString("some(")
		writeValue(b, kind.Type, v)
		b.WriteByte(')')
	case *wit.Result:
		m, _ := v.(map[string]any)
		if payload, ok := m["ok"]; ok {
			writeCase(b, "ok", kind.OK, payload)
		} else {
			writeCase(b, "err", kind.Err, m["err"])
		}
	case *wit.Variant:
		m, _ := v.(map[string]any)
		for _, c := range kind.Cases {
			if payload, ok := m[c.Name]; ok {
				writeCase(b, c.Name, c.Type, payload)
				return
			}
		}
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func writeCase(b *strings.Builder, name string, t wit.Type, payload any) {
	b.WriteString(name)
	if t == nil {
		return
	}
	b.WriteByte('(')
	writeValue(b, t, payload)
	b.WriteByte(')')
}
