package nepfolio

// RealizedPnLRecord is the cumulative realized profit or loss of one
// instrument under FIFO lot matching. Derived; recomputed from the full
// history.
type RealizedPnLRecord struct {
	Symbol          string
	UnitsTraded     Quantity // cumulative units matched by sells
	TotalInvestment Money    // cost basis of the matched units
	SoldValue       Money    // cumulative amount receivable of the sells
	RealizedPnL     Money
	RealizedPnLPct  Percent
}

// ComputeRealized replays the history through FIFO lot matching and returns
// the realized profit or loss per instrument.
//
// This is deliberately a different cost model from Aggregate's pooled WACC:
// each sold share is matched against the oldest unconsumed purchase, so the
// two outputs diverge whenever buys happened at different prices. Both views
// are exposed; downstream consumers rely on each independently.
//
// Transactions are replayed per instrument in date order, with the original
// input order breaking ties. A history accepted in full by ValidateAndEnrich
// never exhausts its lots; if the given history does, ComputeRealized returns
// a *LotExhaustionError and no result.
func ComputeRealized(history History) (map[string]RealizedPnLRecord, error) {
	sorted := history.SortedByDate()

	queues := make(map[string]lots)
	records := make(map[string]RealizedPnLRecord)

	for _, tx := range sorted {
		switch tx.Side {
		case Buy:
			queues[tx.Symbol] = queues[tx.Symbol].push(tx.Quantity, tx.AmountPayable)
		case Sell:
			cost, rest, unmatched := queues[tx.Symbol].consume(tx.Quantity)
			if unmatched.IsPositive() {
				return nil, &LotExhaustionError{Symbol: tx.Symbol, Unmatched: unmatched}
			}
			queues[tx.Symbol] = rest

			rec := records[tx.Symbol]
			rec.Symbol = tx.Symbol
			rec.UnitsTraded = rec.UnitsTraded.Add(tx.Quantity)
			rec.TotalInvestment = rec.TotalInvestment.Add(cost)
			rec.SoldValue = rec.SoldValue.Add(tx.AmountReceivable)
			rec.RealizedPnL = rec.RealizedPnL.Add(tx.AmountReceivable.Sub(cost))
			if rec.TotalInvestment.IsZero() {
				rec.RealizedPnLPct = 0
			} else {
				ratio := rec.RealizedPnL.Ratio(rec.TotalInvestment).Mul(Q(100))
				rec.RealizedPnLPct = Percent(ratio.InexactFloat64())
			}
			records[tx.Symbol] = rec
		}
	}

	for symbol, rec := range records {
		if rec.UnitsTraded.IsZero() {
			delete(records, symbol)
		}
	}
	return records, nil
}
