package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bytearena/arena"
	"github.com/wippyai/bytearena/codec"
	"github.com/wippyai/bytearena/linear"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to the binary input (- for stdin)")
		layout      = flag.String("layout", "", "WIT type expression of each value, e.g. record { id: u32, tags: list<string> }")
		order       = flag.String("order", "le", "Byte order: native, le or be")
		offset      = flag.Int("offset", 0, "Byte offset of the first value")
		all         = flag.Bool("all", false, "Decode values until the input is exhausted")
		hexDump     = flag.Bool("hex", false, "Print a hex dump of the input")
		asJSON      = flag.Bool("json", false, "Print values as JSON")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" || *layout == "" && !*hexDump && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: arenadump -file <input> -layout <type> [-order le|be|native] [-offset n] [-all] [-json]")
		fmt.Fprintln(os.Stderr, "       arenadump -file <input> -hex")
		fmt.Fprintln(os.Stderr, "       arenadump -file <input> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = l.Sync() }()
		arena.SetLogger(l)
		codec.SetLogger(l)
		linear.SetLogger(l)
	}

	o, ok := codec.ParseOrder(*order)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown byte order %q\n", *order)
		os.Exit(1)
	}

	data, err := readInput(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*file, data, *layout, o); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		layout: *layout,
		order:  o,
		offset: *offset,
		all:    *all,
		hex:    *hexDump,
		json:   *asJSON,
	}
	st := newStyles(term.IsTerminal(int(os.Stdout.Fd())))
	if err := dump(os.Stdout, data, opts, st); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
