package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/date"
)

type buyCmd struct {
	date     string
	symbol   string
	quantity string
	price    string
	source   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `npf buy -s <symbol> -q <quantity> -p <price> [-d <date>] [-src <source>]

  Records a share purchase. Fees are computed from the notional amount and
  the source; IPO, FPO, Right and Bonus Share acquisitions pay only the DP
  charge. The instrument's weighted average cost is updated accordingly.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Company symbol")
	f.StringVar(&c.quantity, "q", "", "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.source, "src", "", "Transaction source (IPO, FPO, Right, Bonus Share, Secondary); defaults to Secondary")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	proposed, status := c.proposed(f)
	if status != subcommands.ExitSuccess {
		return status
	}

	history, err := loadHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	tx, err := nepfolio.ValidateAndEnrich(proposed, history, nepfolio.Aggregate(history))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if status := recordTransaction(tx); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Amount payable: %s (commission %s), new WACC: %s\n",
		tx.AmountPayable, tx.Fees.Total(), tx.WACC)
	return subcommands.ExitSuccess
}

func (c *buyCmd) proposed(f *flag.FlagSet) (nepfolio.Proposed, subcommands.ExitStatus) {
	if c.symbol == "" || c.quantity == "" || c.price == "" {
		f.Usage()
		return nepfolio.Proposed{}, subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return nepfolio.Proposed{}, subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return nepfolio.Proposed{}, subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return nepfolio.Proposed{}, subcommands.ExitUsageError
	}
	var source nepfolio.Source
	if c.source != "" {
		source, err = nepfolio.ParseSource(c.source)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return nepfolio.Proposed{}, subcommands.ExitUsageError
		}
	}

	return nepfolio.Proposed{
		Symbol:   c.symbol,
		Date:     day,
		Side:     nepfolio.Buy,
		Quantity: nepfolio.Q(quantity),
		Price:    nepfolio.M(price),
		Source:   source,
	}, subcommands.ExitSuccess
}
