package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/devcheck/balance"
)

type BalanceCmd struct {
	File    FileOrStdin `help:"Text file to check (use '-' for stdin)." arg:""`
	Context bool        `help:"Show source context around the first mismatch on stderr."`
}

func (cmd *BalanceCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("balance %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	report, err := cmd.File.Check(runCtx)
	if err != nil {
		var decodeErr *balance.DecodeError
		if errors.As(err, &decodeErr) {
			if raw, rawErr := cmd.File.Raw(); rawErr == nil {
				_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(raw).Render(decodeErr))
				return NewCommandError(1)
			}
		}
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if _, err := report.WriteTo(ctx.Stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cmd.Context && report.Mismatch != nil {
		source, err := cmd.File.Load()
		if err != nil {
			return fmt.Errorf("failed to read file for error context: %w", err)
		}
		_, _ = fmt.Fprintln(ctx.Stderr)
		_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(source).RenderMismatch(report.Mismatch))
	}

	return nil
}
