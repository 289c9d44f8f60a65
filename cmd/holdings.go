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

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show current positions marked to market" }
func (*holdingsCmd) Usage() string {
	return `npf holdings

  Shows the open position per instrument under the pooled weighted average
  cost model, valued at the last fetched quotes. Instruments without a quote
  value at zero; run "npf fetch" first for live prices.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	history, err := loadHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	market, err := loadQuotes()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	positions := nepfolio.Aggregate(history.SortedByDate())
	printMarkdown(renderer.HoldingsMarkdown(nepfolio.MarkToMarket(positions, market)))
	return subcommands.ExitSuccess
}
