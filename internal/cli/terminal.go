package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Terminal provides the synchronous prompt and display primitives the menu
// loops are built on. Input and output are injected so scripted sessions can
// drive the whole application in tests.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// NewTerminal constructs a Terminal over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// EOF reports whether input has been exhausted. Once true, every prompt
// returns its zero value immediately.
func (t *Terminal) EOF() bool {
	return t.eof
}

// Prompt reads one trimmed line of input for the labelled field.
func (t *Terminal) Prompt(label string) string {
	if t.eof {
		return ""
	}
	fmt.Fprintf(t.out, "%s: ", label)
	line, err := t.in.ReadString('\n')
	if err != nil {
		t.eof = true
	}
	return strings.TrimSpace(line)
}

// PromptInt re-prompts until the input parses as an integer. Malformed input
// is recoverable, never fatal.
func (t *Terminal) PromptInt(label string) int64 {
	for {
		raw := t.Prompt(label)
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			if t.eof {
				return 0
			}
			t.Errorf("expected a number, got %q", raw)
			continue
		}
		return n
	}
}

// PromptFloat re-prompts until the input parses as a number.
func (t *Terminal) PromptFloat(label string) float64 {
	for {
		raw := t.Prompt(label)
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if t.eof {
				return 0
			}
			t.Errorf("expected a number, got %q", raw)
			continue
		}
		return f
	}
}

// PromptDate re-prompts until the input is a YYYY-MM-DD date.
func (t *Terminal) PromptDate(label string) string {
	for {
		raw := t.Prompt(label)
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			if t.eof {
				return ""
			}
			t.Errorf("expected a date in YYYY-MM-DD format, got %q", raw)
			continue
		}
		return raw
	}
}

// Message writes one informational line.
func (t *Terminal) Message(msg string) {
	fmt.Fprintln(t.out, msg)
}

// Errorf writes one error line.
func (t *Terminal) Errorf(format string, args ...any) {
	fmt.Fprintf(t.out, "Error: "+format+"\n", args...)
}

// Table renders rows under headers with column-width alignment.
func (t *Terminal) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Fprintln(t.out)
	for i, h := range headers {
		fmt.Fprintf(t.out, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(t.out)
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(t.out, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(t.out)
	}
}

// Pause blocks until the user presses enter.
func (t *Terminal) Pause() {
	if t.eof {
		return
	}
	fmt.Fprintln(t.out, "\nPress Enter to continue...")
	if _, err := t.in.ReadString('\n'); err != nil {
		t.eof = true
	}
}
