package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/devcheck/balance"
	"github.com/robinvdvleuten/devcheck/output"
)

// DoctorCmd provides doctor utilities for debugging bracket problems.
type DoctorCmd struct {
	Delimiters DelimitersCmd `cmd:"" help:"List every delimiter in a file with its position."`
	Report     ReportCmd     `cmd:"" help:"Dump the raw balance report of a file."`
}

// DelimitersCmd lists every delimiter in a file.
type DelimitersCmd struct {
	File FileOrStdin `help:"Text file to inspect (use '-' for stdin)." arg:""`
}

// Run executes the delimiters command.
func (cmd *DelimitersCmd) Run(ctx *kong.Context) error {
	content, err := cmd.File.Load()
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	styles := output.NewStyles(ctx.Stdout)

	// Format: KIND line:col "ch"
	for _, d := range balance.Delimiters(cmd.File.Filename, content) {
		kind := "close"
		if balance.IsOpen(d.Char) {
			kind = "open"
		}
		pos := styles.Delimiter(fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column))
		char := styles.Delimiter(fmt.Sprintf("%q", string(d.Char)))
		_, _ = fmt.Fprintf(ctx.Stdout, "%-6s %s    %s\n", kind, pos, char)
	}

	return nil
}

// ReportCmd dumps the balance report struct.
type ReportCmd struct {
	File FileOrStdin `help:"Text file to inspect (use '-' for stdin)." arg:""`
}

// Run executes the report command.
func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(ctx, globals, "doctor report")
	defer reportTelemetry()

	report, err := cmd.File.Check(runCtx)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	repr.New(ctx.Stdout).Println(report)
	return nil
}
