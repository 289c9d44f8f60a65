// Package cmd implements the CLI application to manage a NEPSE share ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/store"
)

// Register the subcommands.
// A main package calls Register() to declare subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&importCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")

	c.Register(&fetchCmd{}, "market data")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var quotesFile = flag.String("quotes-file", "quotes.jsonl", "Path to the market quotes file (JSONL format)")
var dbFile = flag.String("db-file", "", "Path to a SQLite ledger database. When set it replaces the JSONL ledger file")

// loadHistory reads the full transaction history from the configured backend.
func loadHistory() (nepfolio.History, error) {
	if *dbFile != "" {
		s, err := store.Open(*dbFile)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.History()
	}

	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty history")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return nepfolio.DecodeHistory(f)
}

// recordTransaction appends one enriched transaction to the configured backend.
func recordTransaction(tx nepfolio.Transaction) subcommands.ExitStatus {
	if *dbFile != "" {
		s, err := store.Open(*dbFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		defer s.Close()
		if err := s.Append(tx); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Successfully recorded transaction %s in %s\n", tx.ID, *dbFile)
		return subcommands.ExitSuccess
	}

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := nepfolio.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended transaction %s to %s\n", tx.ID, *ledgerFile)
	return subcommands.ExitSuccess
}

// deleteTransaction removes a transaction by id. On the JSONL backend this
// rewrites the whole file without the removed line.
func deleteTransaction(id string) error {
	if *dbFile != "" {
		s, err := store.Open(*dbFile)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Delete(id)
	}

	history, err := loadHistory()
	if err != nil {
		return err
	}
	kept := make(nepfolio.History, 0, len(history))
	found := false
	for _, tx := range history {
		if tx.ID == id {
			found = true
			continue
		}
		kept = append(kept, tx)
	}
	if !found {
		return fmt.Errorf("no transaction with id %s", id)
	}

	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("cannot rewrite ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return nepfolio.EncodeHistory(f, kept)
}

// loadQuotes reads the market quotes file, tolerating its absence.
func loadQuotes() (*nepfolio.MarketData, error) {
	f, err := os.Open(*quotesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nepfolio.NewMarketData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes file %q: %w", *quotesFile, err)
	}
	defer f.Close()
	return nepfolio.DecodeMarketData(f)
}

func printMarkdown(md string) { fmt.Println(md) }
