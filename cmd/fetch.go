package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/subcommands"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/renderer"
)

type fetchCmd struct {
	sheet string
	gid   string
	index bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch market quotes and the NEPSE index" }
func (*fetchCmd) Usage() string {
	return `npf fetch -sheet <sheet_id> [-gid <gid>] [-index]

  Downloads today's prices from the CSV export of a shared Google Sheet and
  stores them in the quotes file. With -index, also queries the exchange for
  the current NEPSE index value. Responses are cached on disk for the day.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "", "Google Sheet id of the price sheet")
	f.StringVar(&c.gid, "gid", "0", "Tab gid within the sheet")
	f.BoolVar(&c.index, "index", false, "Also fetch the NEPSE index")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.sheet == "" && !c.index {
		f.Usage()
		return subcommands.ExitUsageError
	}

	if c.sheet != "" {
		market, err := nepfolio.FetchQuotes(nepfolio.SheetCSVURL(c.sheet, c.gid))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}

		w, err := os.Create(*quotesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating quotes file %q: %v\n", *quotesFile, err)
			return subcommands.ExitFailure
		}
		defer w.Close()
		if err := nepfolio.EncodeMarketData(w, market); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Fetched %d quote(s) into %s\n", market.Len(), *quotesFile)
	}

	if c.index {
		value, change, err := nepfolio.FetchNEPSEIndex(http.DefaultClient)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Print(renderer.IndexMarkdown(value, change))
	}
	return subcommands.ExitSuccess
}
