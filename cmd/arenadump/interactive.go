package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/bytearena/codec"
	"github.com/wippyai/bytearena/schema"
)

// hexPreview bounds the hex view of the interactive inspector.
const hexPreview = 256

var orders = []codec.Order{codec.LittleEndian, codec.BigEndian, codec.Native}

type interactiveModel struct {
	err      error
	st       styles
	filename string
	data     []byte
	entries  []entry
	layout   string
	input    textinput.Model
	order    codec.Order
	showHex  bool
}

func newInteractiveModel(filename string, data []byte, layout string, o codec.Order) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "record { id: u32, name: string }"
	ti.Prompt = "layout: "
	ti.Width = 60
	ti.SetValue(layout)
	ti.Focus()

	m := &interactiveModel{
		st:       newStyles(true),
		filename: filename,
		data:     data,
		input:    ti,
		order:    o,
		showHex:  true,
	}
	m.decode()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// decode re-runs the layout over the whole input.
func (m *interactiveModel) decode() {
	m.layout = strings.TrimSpace(m.input.Value())
	m.entries = nil
	m.err = nil
	if m.layout == "" {
		return
	}
	t, err := schema.Parse(m.layout)
	if err != nil {
		m.err = err
		return
	}
	m.entries, m.err = decodeAll(m.data, t, m.order, 0, true)
}

func (m *interactiveModel) nextOrder() {
	for i, o := range orders {
		if o == m.order {
			m.order = orders[(i+1)%len(orders)]
			return
		}
	}
	m.order = orders[0]
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.nextOrder()
			m.decode()
			return m, nil
		case "ctrl+x":
			m.showHex = !m.showHex
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if strings.TrimSpace(m.input.Value()) != m.layout {
		m.decode()
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(m.st.title.Render("Arena Dump"))
	fmt.Fprintf(&b, " %s (%d bytes, %s)\n\n", m.filename, len(m.data), m.order)

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.showHex {
		preview := m.data
		if len(preview) > hexPreview {
			preview = preview[:hexPreview]
		}
		b.WriteString(m.st.help.Render(hex.Dump(preview)))
		if len(m.data) > hexPreview {
			b.WriteString(m.st.help.Render(fmt.Sprintf("... %d more bytes", len(m.data)-hexPreview)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.entries) > 0 {
		t, _ := schema.Parse(m.layout)
		for _, e := range m.entries {
			b.WriteString(m.st.offset.Render(fmt.Sprintf("@%d+%d", e.Offset, e.Size)))
			b.WriteString(" ")
			b.WriteString(m.st.value.Render(formatValue(t, e.Value)))
			b.WriteString("\n")
		}
	}
	if m.err != nil {
		b.WriteString(m.st.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.st.help.Render("type a layout • tab byte order • ctrl+x hex view • esc quit"))
	return b.String()
}

func runInteractive(filename string, data []byte, layout string, o codec.Order) error {
	p := tea.NewProgram(newInteractiveModel(filename, data, layout, o), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
