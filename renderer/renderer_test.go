package renderer

import (
	"strings"
	"testing"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/date"
)

func enrich(t *testing.T, history nepfolio.History, p nepfolio.Proposed) nepfolio.History {
	t.Helper()
	tx, err := nepfolio.ValidateAndEnrich(p, history, nepfolio.Aggregate(history))
	if err != nil {
		t.Fatalf("ValidateAndEnrich(%+v) error = %v", p, err)
	}
	return append(history, tx)
}

func sampleHistory(t *testing.T) nepfolio.History {
	t.Helper()
	history := enrich(t, nil, nepfolio.Proposed{
		Symbol: "NABIL", Date: date.New(2025, 1, 10), Side: nepfolio.Buy,
		Quantity: nepfolio.Q(100), Price: nepfolio.M(10),
	})
	history = enrich(t, history, nepfolio.Proposed{
		Symbol: "NICA", Date: date.New(2025, 2, 1), Side: nepfolio.Buy,
		Quantity: nepfolio.Q(10), Price: nepfolio.M(500),
	})
	return enrich(t, history, nepfolio.Proposed{
		Symbol: "NABIL", Date: date.New(2025, 6, 1), Side: nepfolio.Sell,
		Quantity: nepfolio.Q(40), Price: nepfolio.M(25),
	})
}

func TestHistoryMarkdown(t *testing.T) {
	got := HistoryMarkdown(sampleHistory(t))

	if !strings.Contains(got, "# Transactions") {
		t.Error("report is missing its title")
	}
	for _, want := range []string{"| 2025-01-10 | NABIL | Buy | 100 |", "| 2025-02-01 | NICA | Buy | 10 |", "| 2025-06-01 | NABIL | Sell | 40 |"} {
		if !strings.Contains(got, want) {
			t.Errorf("report is missing row %q:\n%s", want, got)
		}
	}
	// Rows come out chronologically even though the table is rebuilt from a map-free history.
	if strings.Index(got, "NICA") > strings.Index(got, "Sell") {
		t.Error("rows are not in date order")
	}
}

func TestHistoryMarkdown_Empty(t *testing.T) {
	got := HistoryMarkdown(nil)
	if !strings.Contains(got, "No transactions recorded.") {
		t.Errorf("empty report = %q", got)
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	history := sampleHistory(t)
	market := nepfolio.NewMarketData()
	market.Add(nepfolio.Quote{Symbol: "NABIL", LTP: nepfolio.M(12), PreviousClose: nepfolio.M(11)})

	got := HoldingsMarkdown(nepfolio.MarkToMarket(nepfolio.Aggregate(history), market))

	if !strings.Contains(got, "# Holdings") {
		t.Error("report is missing its title")
	}
	// Both open positions appear, NABIL first.
	if !strings.Contains(got, "| NABIL | 60 |") {
		t.Errorf("report is missing the NABIL position:\n%s", got)
	}
	if !strings.Contains(got, "| NICA | 10 |") {
		t.Errorf("report is missing the NICA position:\n%s", got)
	}
	if strings.Index(got, "NABIL") > strings.Index(got, "NICA") {
		t.Error("positions are not sorted by symbol")
	}
	if !strings.Contains(got, "**Total**") {
		t.Error("report is missing the totals row")
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	got := HoldingsMarkdown(nil)
	if !strings.Contains(got, "No open positions.") {
		t.Errorf("empty report = %q", got)
	}
}

func TestRealizedMarkdown(t *testing.T) {
	history := sampleHistory(t)
	records, err := nepfolio.ComputeRealized(history)
	if err != nil {
		t.Fatalf("ComputeRealized() error = %v", err)
	}

	got := RealizedMarkdown(records)
	if !strings.Contains(got, "# Realized P&L") {
		t.Error("report is missing its title")
	}
	if !strings.Contains(got, "| NABIL | 40 |") {
		t.Errorf("report is missing the NABIL record:\n%s", got)
	}
	// NICA was never sold.
	if strings.Contains(got, "NICA") {
		t.Errorf("unsold instrument should not appear:\n%s", got)
	}
	if !strings.Contains(got, "**Total**") {
		t.Error("report is missing the totals row")
	}
}

func TestRealizedMarkdown_Empty(t *testing.T) {
	got := RealizedMarkdown(nil)
	if !strings.Contains(got, "Nothing sold yet.") {
		t.Errorf("empty report = %q", got)
	}
}

func TestIndexMarkdown(t *testing.T) {
	got := IndexMarkdown(2014.36, -12.5)
	if !strings.Contains(got, "2014.36") || !strings.Contains(got, "-12.50") {
		t.Errorf("index line = %q", got)
	}
}
