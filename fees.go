package nepfolio

import "github.com/shopspring/decimal"

// Broker commission schedule for NEPSE secondary-market trades. Exactly one
// bracket applies, selected by the trade notional; the schedule is flat per
// bracket, not marginal.
type brokerBracket struct {
	upTo Money // inclusive upper bound of the bracket
	rate Quantity
}

func rate(s string) Quantity { return Q(decimal.RequireFromString(s)) }

var (
	// Below this notional the commission is a flat amount.
	flatBracketCeiling = M(2_500)
	flatBrokerFee      = M(10)

	brokerBrackets = []brokerBracket{
		{upTo: M(50_000), rate: rate("0.0036")},
		{upTo: M(500_000), rate: rate("0.0033")},
		{upTo: M(2_000_000), rate: rate("0.0031")},
		{upTo: M(10_000_000), rate: rate("0.0027")},
	}
	topBrokerRate = rate("0.0024") // above the last bracket

	sebonRate = rate("0.00015") // SEBON regulatory fee, 0.015% of notional

	dpCharge = M(25) // flat depository participant charge per transaction
)

// brokerCommission returns the commission for a secondary-market trade of the
// given notional.
func brokerCommission(notional Money) Money {
	if notional.LessThan(flatBracketCeiling) {
		return flatBrokerFee
	}
	for _, b := range brokerBrackets {
		if notional.LessThanOrEqual(b.upTo) {
			return notional.Mul(b.rate)
		}
	}
	return notional.Mul(topBrokerRate)
}

// CalculateFees computes the fee breakdown for a trade. Broker commission and
// the SEBON fee apply only to secondary-market trades (all sells are
// secondary); the DP charge applies to any transaction with a positive
// quantity, regardless of source. Zero or negative notional yields no broker
// or SEBON fee.
func CalculateFees(notional Money, quantity Quantity, source Source) Fees {
	var f Fees
	if source == Secondary && notional.IsPositive() {
		f.Broker = brokerCommission(notional)
		f.Sebon = notional.Mul(sebonRate)
	}
	if quantity.IsPositive() {
		f.DPCharge = dpCharge
	}
	return f
}
