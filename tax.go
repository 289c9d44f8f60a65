package nepfolio

// Capital-gains tax rates by holding period.
var (
	shortTermTaxRate = rate("0.075") // held less than one year
	longTermTaxRate  = rate("0.05")  // held more than one year
)

// CalculateCapitalGainTax returns the capital-gains tax due on a realized
// profit. Losses are not taxed and carry no relief: tax is zero whenever
// profit before tax is zero or negative.
func CalculateCapitalGainTax(profitBeforeTax Money, holding HoldingType) Money {
	if !profitBeforeTax.IsPositive() {
		return Money{}
	}
	if holding == LongTerm {
		return profitBeforeTax.Mul(longTermTaxRate)
	}
	return profitBeforeTax.Mul(shortTermTaxRate)
}
