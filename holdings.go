package nepfolio

// Position is the current holding of one instrument under the pooled
// weighted-average-cost model. It is entirely derived: recomputed from the
// full history whenever the history changes.
type Position struct {
	Symbol    string
	Quantity  Quantity
	CostBasis Money // total cost carried by the remaining shares
	WACC      Money // weighted average cost per share
}

// Aggregate folds the ordered transaction history into the current position
// per instrument. The fold is a running-average model, not FIFO: a sell
// reduces the cost basis by quantity x WACC-before-the-sell, pooling all
// remaining cost over the remaining shares.
//
// The caller is responsible for chronological ordering. Instruments whose
// final quantity is zero are excluded; a position that reaches zero quantity
// carries no residual cost or WACC forward.
func Aggregate(history History) map[string]Position {
	positions := make(map[string]Position)

	for _, tx := range history {
		pos := positions[tx.Symbol]
		pos.Symbol = tx.Symbol

		switch tx.Side {
		case Buy:
			pos.Quantity = pos.Quantity.Add(tx.Quantity)
			pos.CostBasis = pos.CostBasis.Add(tx.AmountPayable)
			pos.WACC = pos.CostBasis.Div(pos.Quantity)
		case Sell:
			// Reduce cost basis at the WACC in effect before this sell.
			reduction := pos.WACC.Mul(tx.Quantity)
			pos.Quantity = pos.Quantity.Sub(tx.Quantity)
			pos.CostBasis = pos.CostBasis.Sub(reduction)
			if !pos.Quantity.IsPositive() {
				pos = Position{Symbol: tx.Symbol}
			} else {
				pos.WACC = pos.CostBasis.Div(pos.Quantity)
			}
		}

		positions[tx.Symbol] = pos
	}

	for symbol, pos := range positions {
		if !pos.Quantity.IsPositive() {
			delete(positions, symbol)
		}
	}
	return positions
}
