package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	nepfolio "github.com/nepfolio/nepfolio"
)

type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "bulk-import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `npf import -file <trades.csv>

  Records many transactions at once from a CSV file with a header row and
  the columns: Company Symbol, Transaction Date, Type, Quantity, Price.
  The import is all or nothing: if any row fails, nothing is recorded and
  every error is reported with its row number.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "CSV file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	r, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	history, err := loadHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	imported, rowErrs := nepfolio.ImportCSV(r, history)
	if len(rowErrs) > 0 {
		for _, re := range rowErrs {
			fmt.Fprintln(os.Stderr, "Error:", re)
		}
		fmt.Fprintf(os.Stderr, "%d error(s), nothing imported from %s\n", len(rowErrs), c.file)
		return subcommands.ExitFailure
	}

	for _, tx := range imported {
		if status := recordTransaction(tx); status != subcommands.ExitSuccess {
			return status
		}
	}
	fmt.Printf("Imported %d transaction(s) from %s\n", len(imported), c.file)
	return subcommands.ExitSuccess
}
