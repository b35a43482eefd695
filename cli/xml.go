package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/devcheck/xmlcheck"
)

type XMLCmd struct {
	Root string `help:"Resource directory to scan recursively (default app/src/main/res)." arg:"" optional:""`
}

func (cmd *XMLCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(ctx, globals, "xml")
	defer reportTelemetry()

	root := cmd.Root
	if root == "" {
		root = xmlcheck.DefaultRoot
	}

	result, err := xmlcheck.Check(runCtx, root)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if _, err := result.WriteTo(ctx.Stdout); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if !result.OK() {
		return NewCommandError(1)
	}

	return nil
}
