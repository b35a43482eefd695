package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/devcheck/balance"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// tabWidth is how many spaces lipgloss renders a tab as.
const tabWidth = 4

// CommandError signals a command failure with a specific exit code.
// Commands return this after handling all output (printing errors to stderr).
// Main centralizes exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.exitCode)
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// ErrorRenderer renders positioned problems with terminal styling and source context.
type ErrorRenderer struct {
	lines []string
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	text := strings.ToValidUTF8(string(source), "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &ErrorRenderer{lines: strings.Split(text, "\n")}
}

// Render formats err, adding source context when it carries a position.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(interface {
		GetPosition() balance.Position
		Error() string
	}); ok {
		return r.renderWithSourceContext(e.GetPosition(), e.Error())
	}
	return err.Error()
}

// RenderMismatch formats the first mismatch of a report with the lines around it.
func (r *ErrorRenderer) RenderMismatch(m *balance.Mismatch) string {
	out := r.renderWithSourceContext(m.Pos, fmt.Sprintf("%s: %s", m.Pos, m.Message()))
	if m.Top != nil && m.Top.Pos.Line != m.Pos.Line {
		out += "\n" + r.renderWithSourceContext(m.Top.Pos, fmt.Sprintf("%s: '%c' opened here", m.Top.Pos, m.Top.Char))
	}
	return out
}

func (r *ErrorRenderer) renderWithSourceContext(pos balance.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	startLine := pos.Line - 3
	endLine := pos.Line

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(r.lines) {
		endLine = len(r.lines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(r.lines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(caretPadding(r.lines[i], pos.Column))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// caretPadding returns the whitespace that puts a caret under the given
// 1-indexed character column of line. Tabs match lipgloss' default tab
// expansion and wide characters take their display width.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	n := 0
	for _, ch := range line {
		if n >= column-1 {
			break
		}
		n++
		if ch == '\t' {
			pad.WriteString(strings.Repeat(" ", tabWidth))
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(ch)))
	}
	return pad.String()
}
