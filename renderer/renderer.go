// Package renderer turns engine outputs into markdown reports for the CLI.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	nepfolio "github.com/nepfolio/nepfolio"
)

// HistoryMarkdown renders the transaction ledger as a markdown table,
// chronological, one row per transaction. Buys show the amount payable,
// sells the amount receivable.
func HistoryMarkdown(history nepfolio.History) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(history) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Company | Type | Quantity | Price | Commission | Settlement | ID |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|:---|")
	for _, tx := range history.SortedByDate() {
		settlement := tx.AmountPayable
		if tx.Side == nepfolio.Sell {
			settlement = tx.AmountReceivable
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date,
			tx.Symbol,
			tx.Side,
			tx.Quantity,
			tx.Price,
			tx.Fees.Total(),
			settlement,
			tx.ID,
		)
	}
	return b.String()
}

// HoldingsMarkdown renders the current positions marked to market, one row
// per instrument plus a totals row.
func HoldingsMarkdown(valuations []nepfolio.HoldingValuation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	if len(valuations) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Company | Quantity | WACC | Investment | LTP | Value | P/L | P/L % | Point Chg | Chg Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")

	var totalCost, totalValue, totalPL nepfolio.Money
	for _, v := range valuations {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			v.Symbol,
			v.Quantity,
			v.WACC,
			v.CostBasis,
			v.LTP,
			v.Value,
			v.ProfitLoss.SignedString(),
			v.ProfitLossPct.SignedString(),
			v.PointChange.SignedString(),
			v.ChangeValue.SignedString(),
		)
		totalCost = totalCost.Add(v.CostBasis)
		totalValue = totalValue.Add(v.Value)
		totalPL = totalPL.Add(v.ProfitLoss)
	}
	fmt.Fprintf(&b, "| **Total** | | | %s | | %s | %s | | | |\n",
		totalCost, totalValue, totalPL.SignedString())
	return b.String()
}

// RealizedMarkdown renders the cumulative realized profit and loss per
// instrument, sorted by symbol, plus a totals row.
func RealizedMarkdown(records map[string]nepfolio.RealizedPnLRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Realized P&L\n\n")
	if len(records) == 0 {
		fmt.Fprintln(&b, "Nothing sold yet.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Company | Units Traded | Investment | Sold Value | Realized P/L | P/L % |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")

	symbols := make([]string, 0, len(records))
	for symbol := range records {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var totalInvestment, totalSold, totalPL nepfolio.Money
	for _, symbol := range symbols {
		rec := records[symbol]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			rec.Symbol,
			rec.UnitsTraded,
			rec.TotalInvestment,
			rec.SoldValue,
			rec.RealizedPnL.SignedString(),
			rec.RealizedPnLPct.SignedString(),
		)
		totalInvestment = totalInvestment.Add(rec.TotalInvestment)
		totalSold = totalSold.Add(rec.SoldValue)
		totalPL = totalPL.Add(rec.RealizedPnL)
	}
	fmt.Fprintf(&b, "| **Total** | | %s | %s | %s | |\n",
		totalInvestment, totalSold, totalPL.SignedString())
	return b.String()
}

// IndexMarkdown renders the NEPSE index headline shown above the holdings
// report.
func IndexMarkdown(value, change float64) string {
	return fmt.Sprintf("NEPSE Index: %.2f (%+.2f)\n", value, change)
}
