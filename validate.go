package nepfolio

import "github.com/google/uuid"

// Proposed is a transaction as submitted by the user, before enrichment.
type Proposed struct {
	Symbol      string
	Date        Date
	Side        Side
	Quantity    Quantity
	Price       Money
	Source      Source      // buys only; defaults to Secondary
	HoldingType HoldingType // sells only; defaults to ShortTerm
}

// ValidateAndEnrich checks a proposed transaction against the history and
// the current positions, and produces the enriched record: fee breakdown,
// settlement amount, and for sells the full tax computation against the
// instrument's current WACC.
//
// It has no side effect: persisting the result and recomputing aggregates is
// the caller's job, and a rejected transaction must leave the history
// untouched.
func ValidateAndEnrich(proposed Proposed, history History, positions map[string]Position) (Transaction, error) {
	if proposed.Symbol == "" {
		return Transaction{}, &InvalidInputError{Reason: "company symbol is missing"}
	}
	if !proposed.Quantity.IsPositive() {
		return Transaction{}, &InvalidInputError{Reason: "quantity must be positive, got " + proposed.Quantity.String()}
	}
	if proposed.Price.IsNegative() {
		return Transaction{}, &InvalidInputError{Reason: "price must not be negative, got " + proposed.Price.String()}
	}
	if proposed.Date.IsZero() {
		proposed.Date = Today()
	}

	switch proposed.Side {
	case Buy:
		return enrichBuy(proposed, positions)
	case Sell:
		return enrichSell(proposed, history, positions)
	default:
		return Transaction{}, &InvalidInputError{Reason: "unknown transaction side: " + string(proposed.Side)}
	}
}

func enrichBuy(proposed Proposed, positions map[string]Position) (Transaction, error) {
	source := proposed.Source
	if source == "" {
		source = Secondary
	}

	notional := proposed.Price.Mul(proposed.Quantity)
	fees := CalculateFees(notional, proposed.Quantity, source)
	amountPayable := notional.Add(fees.Total())

	// The WACC recorded on a buy already includes this buy.
	pos := positions[proposed.Symbol]
	newQuantity := pos.Quantity.Add(proposed.Quantity)
	newCostBasis := pos.CostBasis.Add(amountPayable)
	wacc := newCostBasis.Div(newQuantity)

	return Transaction{
		ID:            uuid.NewString(),
		Symbol:        proposed.Symbol,
		Date:          proposed.Date,
		Side:          Buy,
		Quantity:      proposed.Quantity,
		Price:         proposed.Price,
		Source:        source,
		Fees:          fees,
		AmountPayable: amountPayable,
		WACC:          wacc,
	}, nil
}

func enrichSell(proposed Proposed, history History, positions map[string]Position) (Transaction, error) {
	var bought, sold Quantity
	hasBuy := false
	for _, tx := range history {
		if tx.Symbol != proposed.Symbol {
			continue
		}
		switch tx.Side {
		case Buy:
			hasBuy = true
			bought = bought.Add(tx.Quantity)
		case Sell:
			sold = sold.Add(tx.Quantity)
		}
	}
	if !hasBuy {
		return Transaction{}, &NoPriorHoldingError{Symbol: proposed.Symbol}
	}
	available := bought.Sub(sold)
	if proposed.Quantity.GreaterThan(available) {
		return Transaction{}, &InsufficientHoldingsError{
			Symbol:    proposed.Symbol,
			Requested: proposed.Quantity,
			Available: available,
		}
	}

	holding := proposed.HoldingType
	if holding == "" {
		holding = ShortTerm
	}

	// Cost basis at the current pooled WACC, not FIFO.
	wacc := positions[proposed.Symbol].WACC
	investment := wacc.Mul(proposed.Quantity)

	notional := proposed.Price.Mul(proposed.Quantity)
	fees := CalculateFees(notional, proposed.Quantity, Secondary)
	profitBeforeTax := notional.Sub(investment).Sub(fees.Total())
	tax := CalculateCapitalGainTax(profitBeforeTax, holding)
	netProfitLoss := profitBeforeTax.Sub(tax)

	var pct Percent
	if investment.IsPositive() {
		pct = Percent(netProfitLoss.Ratio(investment).Mul(Q(100)).InexactFloat64())
	}

	return Transaction{
		ID:               uuid.NewString(),
		Symbol:           proposed.Symbol,
		Date:             proposed.Date,
		Side:             Sell,
		Quantity:         proposed.Quantity,
		Price:            proposed.Price,
		Source:           Secondary,
		HoldingType:      holding,
		Fees:             fees,
		Investment:       investment,
		ProfitBeforeTax:  profitBeforeTax,
		CapitalGainTax:   tax,
		NetProfitLoss:    netProfitLoss,
		NetProfitLossPct: pct,
		AmountReceivable: notional.Sub(fees.Total()).Sub(tax),
	}, nil
}
