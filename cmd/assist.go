package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/renderer"
)

type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant a question about the portfolio" }
func (*assistCmd) Usage() string {
	return `npf assist <question>

  Asks Gemini a question about the ledger. The current holdings, realized
  P&L and transaction reports are provided as context. Requires the
  GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	question := strings.Join(f.Args(), " ")

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
	records, err := nepfolio.ComputeRealized(history)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var prompt strings.Builder
	prompt.WriteString("You are an assistant for a NEPSE share portfolio. ")
	prompt.WriteString("Answer the user's question using only the reports below.\n\n")
	prompt.WriteString(renderer.HoldingsMarkdown(nepfolio.MarkToMarket(nepfolio.Aggregate(history.SortedByDate()), market)))
	prompt.WriteString("\n")
	prompt.WriteString(renderer.RealizedMarkdown(records))
	prompt.WriteString("\n")
	prompt.WriteString(renderer.HistoryMarkdown(history))
	prompt.WriteString("\nQuestion: ")
	prompt.WriteString(question)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.String()), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error querying Gemini:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
