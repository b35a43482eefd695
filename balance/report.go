package balance

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
)

// TailSize is how many unclosed delimiters a report lists.
const TailSize = 5

// Report is the outcome of scanning one file.
type Report struct {
	Filename string

	// Mismatch is the first mismatched closing delimiter, nil if there was none.
	Mismatch *Mismatch

	// Stack holds the delimiters still open when scanning ended, in push order.
	Stack []Delimiter

	DoubleQuotes int
	SingleQuotes int
	Backticks    int
}

// Balanced reports whether every delimiter was closed by its matching pair.
func (r *Report) Balanced() bool {
	return r.Mismatch == nil && len(r.Stack) == 0
}

// Tail returns a copy of up to the last n entries of the final stack, oldest
// first.
func (r *Report) Tail(n int) []Delimiter {
	if n <= 0 {
		return nil
	}
	return slices.Clone(r.Stack[max(0, len(r.Stack)-n):])
}

// WriteTo writes the human-readable report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "file: %s\n", r.Filename)

	if m := r.Mismatch; m != nil {
		top := "none"
		if m.Top != nil {
			top = m.Top.String()
		}
		fmt.Fprintf(&buf, "first mismatch at line %d col %d found %c top of stack %s\n",
			m.Pos.Line, m.Pos.Column, m.Found, top)
	} else {
		buf.WriteString("no bracket mismatch\n")
	}

	fmt.Fprintf(&buf, "stack size %d\n", len(r.Stack))

	if len(r.Stack) > 0 {
		tail := r.Tail(TailSize)
		entries := make([]string, len(tail))
		for i, d := range tail {
			entries[i] = d.String()
		}
		fmt.Fprintf(&buf, "top of stack last %d: [%s]\n", TailSize, strings.Join(entries, ", "))
	}

	fmt.Fprintf(&buf, "double quotes count %d\n", r.DoubleQuotes)
	fmt.Fprintf(&buf, "single quotes count %d\n", r.SingleQuotes)
	fmt.Fprintf(&buf, "backticks count %d\n", r.Backticks)

	return buf.WriteTo(w)
}
