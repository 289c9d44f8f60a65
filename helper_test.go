package nepfolio

import (
	"testing"

	"github.com/shopspring/decimal"
)

// m parses an exact rupee amount for test expectations.
func m(s string) Money { return M(decimal.RequireFromString(s)) }

// mustAdd validates and appends a proposed transaction, failing the test on
// any validation error. It returns the grown history.
func mustAdd(t *testing.T, history History, p Proposed) History {
	t.Helper()
	tx, err := ValidateAndEnrich(p, history, Aggregate(history))
	if err != nil {
		t.Fatalf("ValidateAndEnrich(%+v) error = %v", p, err)
	}
	return append(history, tx)
}

// buy is a shorthand for a secondary-market buy proposal.
func buy(day, symbol string, quantity, price float64) Proposed {
	return Proposed{
		Symbol:   symbol,
		Date:     mustParseDate(day),
		Side:     Buy,
		Quantity: Q(quantity),
		Price:    M(price),
		Source:   Secondary,
	}
}

// sell is a shorthand for a short-term sell proposal.
func sell(day, symbol string, quantity, price float64) Proposed {
	return Proposed{
		Symbol:      symbol,
		Date:        mustParseDate(day),
		Side:        Sell,
		Quantity:    Q(quantity),
		Price:       M(price),
		HoldingType: ShortTerm,
	}
}

func mustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
