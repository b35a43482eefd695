// Package cli implements the devcheck commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/devcheck/balance"
	"github.com/robinvdvleuten/devcheck/output"
	"github.com/robinvdvleuten/devcheck/telemetry"
)

const stdinFilename = "<stdin>"

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// promptYesNo prompts the user with a yes/no question.
// Returns false by default if stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}

var isTerminal = stdinIsTerminal

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// startTelemetry returns the context commands run in. With --telemetry it
// carries a timing collector rooted at name, and the returned func ends the
// root timer and prints the report to stderr. The func is safe to call twice.
func startTelemetry(ctx *kong.Context, globals *Globals, name string) (context.Context, func()) {
	runCtx := context.Background()
	if globals == nil || !globals.Telemetry {
		return runCtx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)

	timer := collector.Start(name)
	runCtx = telemetry.WithRootTimer(runCtx, timer)

	var once sync.Once
	return runCtx, func() {
		once.Do(func() {
			timer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		})
	}
}

// FileOrStdin accepts either a file path or "-" for stdin.
// For stdin: Filename="<stdin>", Contents populated.
// For files: Filename set as given, Contents nil (read on demand).
type FileOrStdin struct {
	Filename string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == "-" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Filename = stdinFilename
		f.Contents = contents
		return nil
	}

	// Existence is checked when the file is read so that a missing file
	// surfaces as a *balance.FileAccessError.
	f.Filename = filename
	f.Contents = nil

	return nil
}

// IsStdin reports whether the contents came from standard input.
func (f *FileOrStdin) IsStdin() bool {
	return f.Filename == stdinFilename
}

// Load returns the validated contents.
func (f *FileOrStdin) Load() ([]byte, error) {
	if f.IsStdin() {
		if err := balance.Decode(f.Filename, f.Contents); err != nil {
			return nil, err
		}
		return f.Contents, nil
	}
	return balance.Load(f.Filename)
}

// Raw returns the contents without UTF-8 validation.
func (f *FileOrStdin) Raw() ([]byte, error) {
	if f.IsStdin() {
		return f.Contents, nil
	}
	return os.ReadFile(f.Filename)
}

// Check scans the file for bracket balance.
func (f *FileOrStdin) Check(ctx context.Context) (*balance.Report, error) {
	if f.IsStdin() {
		return balance.CheckBytes(ctx, f.Filename, f.Contents)
	}
	return balance.Check(ctx, f.Filename)
}
