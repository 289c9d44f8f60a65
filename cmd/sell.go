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

type sellCmd struct {
	date     string
	symbol   string
	quantity string
	price    string
	holding  string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `npf sell -s <symbol> -q <quantity> -p <price> [-d <date>] [-hold <holding>]

  Records a share sale. The sale is rejected when the instrument was never
  bought or when it would sell more shares than are held. Profit is computed
  against the instrument's weighted average cost, and capital gains tax by
  the declared holding period.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Company symbol")
	f.StringVar(&c.quantity, "q", "", "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.holding, "hold", "", `Holding period ("Short Term" or "Long Term"); defaults to Short Term`)
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	fmt.Printf("Amount receivable: %s, net P/L: %s (%s), capital gains tax: %s\n",
		tx.AmountReceivable, tx.NetProfitLoss.SignedString(), tx.NetProfitLossPct.SignedString(), tx.CapitalGainTax)
	return subcommands.ExitSuccess
}

func (c *sellCmd) proposed(f *flag.FlagSet) (nepfolio.Proposed, subcommands.ExitStatus) {
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
	var holding nepfolio.HoldingType
	if c.holding != "" {
		holding, err = nepfolio.ParseHoldingType(c.holding)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return nepfolio.Proposed{}, subcommands.ExitUsageError
		}
	}

	return nepfolio.Proposed{
		Symbol:      c.symbol,
		Date:        day,
		Side:        nepfolio.Sell,
		Quantity:    nepfolio.Q(quantity),
		Price:       nepfolio.M(price),
		HoldingType: holding,
	}, subcommands.ExitSuccess
}
