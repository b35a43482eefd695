package balance

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestScan(t *testing.T) {
	t.Run("Nested delimiters are balanced", func(t *testing.T) {
		report := Scan("", []byte("({[]})"))
		assert.Zero(t, report.Mismatch)
		assert.Equal(t, 0, len(report.Stack))
		assert.True(t, report.Balanced())
	})

	t.Run("Wrong closer reports mismatch with stack top", func(t *testing.T) {
		report := Scan("", []byte("(]"))
		assert.NotZero(t, report.Mismatch)
		assert.Equal(t, 1, report.Mismatch.Pos.Line)
		assert.Equal(t, 2, report.Mismatch.Pos.Column)
		assert.Equal(t, ']', report.Mismatch.Found)
		assert.NotZero(t, report.Mismatch.Top)
		assert.Equal(t, '(', report.Mismatch.Top.Char)
		assert.Equal(t, 1, report.Mismatch.Top.Pos.Line)
		assert.Equal(t, 1, report.Mismatch.Top.Pos.Column)
	})

	t.Run("Unclosed openers stay on the stack", func(t *testing.T) {
		report := Scan("", []byte("((("))
		assert.Zero(t, report.Mismatch)
		assert.Equal(t, 3, len(report.Stack))
		for i, d := range report.Stack {
			assert.Equal(t, '(', d.Char)
			assert.Equal(t, i+1, d.Pos.Column)
			assert.Equal(t, i, d.Pos.Offset)
		}
		assert.False(t, report.Balanced())
	})

	t.Run("Closer on empty stack has no top", func(t *testing.T) {
		report := Scan("", []byte(")"))
		assert.NotZero(t, report.Mismatch)
		assert.Equal(t, 1, report.Mismatch.Pos.Line)
		assert.Equal(t, 1, report.Mismatch.Pos.Column)
		assert.Equal(t, ')', report.Mismatch.Found)
		assert.Zero(t, report.Mismatch.Top)
	})

	t.Run("Scan halts at the first mismatch", func(t *testing.T) {
		report := Scan("", []byte("(x]) ((( }"))
		assert.NotZero(t, report.Mismatch)
		assert.Equal(t, 3, report.Mismatch.Pos.Column)
		assert.Equal(t, 1, len(report.Stack))
		assert.Equal(t, '(', report.Stack[0].Char)
	})

	t.Run("Quote counts cover the whole file", func(t *testing.T) {
		report := Scan("", []byte(`"a"(]"b"`))
		assert.NotZero(t, report.Mismatch)
		assert.Equal(t, 4, report.DoubleQuotes)
		assert.Equal(t, 0, report.SingleQuotes)
		assert.Equal(t, 0, report.Backticks)
	})

	t.Run("Single quotes and backticks are counted", func(t *testing.T) {
		report := Scan("", []byte("'a' `b` 'c"))
		assert.Equal(t, 3, report.SingleQuotes)
		assert.Equal(t, 2, report.Backticks)
	})

	t.Run("Newline advances line and resets column", func(t *testing.T) {
		report := Scan("", []byte("(\n]"))
		assert.NotZero(t, report.Mismatch)
		assert.Equal(t, 2, report.Mismatch.Pos.Line)
		assert.Equal(t, 1, report.Mismatch.Pos.Column)
		assert.Equal(t, 2, report.Mismatch.Pos.Offset)
	})

	t.Run("Match across lines", func(t *testing.T) {
		report := Scan("", []byte("(\n)"))
		assert.True(t, report.Balanced())
	})

	t.Run("CRLF counts as one newline", func(t *testing.T) {
		report := Scan("", []byte("a\r\nb\r(\r\n  ]"))
		assert.NotZero(t, report.Mismatch)
		assert.Equal(t, 4, report.Mismatch.Pos.Line)
		assert.Equal(t, 3, report.Mismatch.Pos.Column)
		assert.NotZero(t, report.Mismatch.Top)
		assert.Equal(t, 3, report.Mismatch.Top.Pos.Line)
		assert.Equal(t, 1, report.Mismatch.Top.Pos.Column)
	})

	t.Run("Columns count characters not bytes", func(t *testing.T) {
		report := Scan("", []byte("héllo ("))
		assert.Equal(t, 1, len(report.Stack))
		assert.Equal(t, 7, report.Stack[0].Pos.Column)
		assert.Equal(t, 7, report.Stack[0].Pos.Offset)
	})

	t.Run("Empty input", func(t *testing.T) {
		report := Scan("", nil)
		assert.True(t, report.Balanced())
		assert.Equal(t, 0, report.DoubleQuotes)
	})

	t.Run("Filename is carried into positions", func(t *testing.T) {
		report := Scan("main.kt", []byte("{"))
		assert.Equal(t, "main.kt", report.Filename)
		assert.Equal(t, "main.kt:1:1", report.Stack[0].Pos.String())
	})
}

func TestScanMatchingRule(t *testing.T) {
	tests := []struct {
		input    string
		balanced bool
	}{
		{"()", true},
		{"[]", true},
		{"{}", true},
		{"(}", false},
		{"[)", false},
		{"{]", false},
		{"fun main() { listOf(1, 2)[0] }", true},
		{"if (a[0] == b) {", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			report := Scan("", []byte(tt.input))
			assert.Equal(t, tt.balanced, report.Balanced())
		})
	}
}

func TestDelimiters(t *testing.T) {
	delims := Delimiters("", []byte("a(b]\n{"))
	assert.Equal(t, 3, len(delims))
	assert.Equal(t, '(', delims[0].Char)
	assert.Equal(t, ']', delims[1].Char)
	assert.Equal(t, 4, delims[1].Pos.Column)
	assert.Equal(t, '{', delims[2].Char)
	assert.Equal(t, 2, delims[2].Pos.Line)
}
