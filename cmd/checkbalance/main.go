// Command checkbalance prints the bracket balance report of a single file.
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/devcheck/balance"
)

var cli struct {
	File string `help:"Text file to check." arg:""`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("checkbalance"),
		kong.Description("Report the first bracket mismatch, open brackets and quote counts of a file."),
	)

	report, err := balance.Check(context.Background(), cli.File)
	ctx.FatalIfErrorf(err)

	_, err = report.WriteTo(os.Stdout)
	ctx.FatalIfErrorf(err)
}
