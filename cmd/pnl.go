package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/renderer"
)

type pnlCmd struct{}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "show realized profit and loss per instrument" }
func (*pnlCmd) Usage() string {
	return `npf pnl

  Shows the cumulative realized profit or loss per instrument, matching each
  sell against the oldest remaining purchases (FIFO). This intentionally
  differs from the weighted-average cost shown on individual sells.
`
}

func (*pnlCmd) SetFlags(f *flag.FlagSet) {}

func (c *pnlCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	history, err := loadHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	records, err := nepfolio.ComputeRealized(history)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RealizedMarkdown(records))
	return subcommands.ExitSuccess
}
