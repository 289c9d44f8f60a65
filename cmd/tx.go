package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nepfolio/nepfolio/renderer"
)

type txCmd struct {
	head   int
	tail   int
	remove string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list or delete transactions in the ledger" }
func (*txCmd) Usage() string {
	return `npf tx [-head <n> | -tail <n>] [-delete <id>]

  Lists the recorded transactions in date order, or with -delete removes one
  by id. Transactions are immutable: to fix a mistake, delete and re-enter.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
	f.StringVar(&p.remove, "delete", "", "Delete the transaction with this id.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.remove != "" {
		if err := deleteTransaction(p.remove); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted transaction %s\n", p.remove)
		return subcommands.ExitSuccess
	}

	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	history, err := loadHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	history = history.SortedByDate()
	if p.head > 0 && len(history) > p.head {
		history = history[:p.head]
	}
	if p.tail > 0 && len(history) > p.tail {
		history = history[len(history)-p.tail:]
	}

	printMarkdown(renderer.HistoryMarkdown(history))
	return subcommands.ExitSuccess
}
