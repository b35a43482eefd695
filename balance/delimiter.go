package balance

import "fmt"

// Delimiter is an opening or closing bracket together with where it was seen.
type Delimiter struct {
	Char rune
	Pos  Position
}

// String renders the delimiter the way it appears in reports, e.g. '(' 3:14 offset 52.
func (d Delimiter) String() string {
	return fmt.Sprintf("'%c' %d:%d offset %d", d.Char, d.Pos.Line, d.Pos.Column, d.Pos.Offset)
}

// IsOpen reports whether ch opens a delimiter pair.
func IsOpen(ch rune) bool {
	return ch == '(' || ch == '[' || ch == '{'
}

// IsClose reports whether ch closes a delimiter pair.
func IsClose(ch rune) bool {
	return ch == ')' || ch == ']' || ch == '}'
}

// Opener returns the opening delimiter matching the closer ch.
func Opener(ch rune) rune {
	switch ch {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return 0
}

// Mismatch records the first closing delimiter that did not match.
type Mismatch struct {
	Pos   Position
	Found rune
	// Top is the stack top at the moment of the mismatch, nil when the stack was empty.
	Top *Delimiter
}

// Message describes the mismatch in one line.
func (m *Mismatch) Message() string {
	if m.Top == nil {
		return fmt.Sprintf("unexpected '%c' with no open delimiter", m.Found)
	}
	return fmt.Sprintf("'%c' does not close '%c' opened at %d:%d", m.Found, m.Top.Char, m.Top.Pos.Line, m.Top.Pos.Column)
}
