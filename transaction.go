package nepfolio

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Side identifies the direction of a transaction.
type Side string

// Transaction sides.
const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "Buy":
		return Buy, nil
	case "Sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown transaction side: %q", s)
	}
}

// Source identifies how shares were acquired. Only Secondary-market trades
// attract broker commission and the SEBON regulatory fee.
type Source string

// Transaction sources.
const (
	IPO        Source = "IPO"
	FPO        Source = "FPO"
	Right      Source = "Right"
	BonusShare Source = "Bonus Share"
	Secondary  Source = "Secondary"
)

// ParseSource parses a string into a Source.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case IPO, FPO, Right, BonusShare, Secondary:
		return Source(s), nil
	default:
		return "", fmt.Errorf("unknown transaction source: %q", s)
	}
}

// HoldingType classifies a sell by holding period, which decides the
// capital-gains tax rate.
type HoldingType string

// Holding types.
const (
	ShortTerm HoldingType = "Short Term" // held less than one year, taxed at 7.5%
	LongTerm  HoldingType = "Long Term"  // held more than one year, taxed at 5%
)

// ParseHoldingType parses a string into a HoldingType.
func ParseHoldingType(s string) (HoldingType, error) {
	switch HoldingType(s) {
	case ShortTerm, LongTerm:
		return HoldingType(s), nil
	default:
		return "", fmt.Errorf("unknown holding type: %q", s)
	}
}

// Fees is the fee breakdown of a single trade.
type Fees struct {
	Broker   Money // broker commission, tiered on notional
	Sebon    Money // SEBON regulatory fee, 0.015% of notional
	DPCharge Money // flat depository participant charge
}

// Total returns the total commission of the trade.
func (f Fees) Total() Money { return f.Broker.Add(f.Sebon).Add(f.DPCharge) }

// Transaction is a fully enriched buy or sell, immutable once created by
// ValidateAndEnrich. Sell-only fields are zero on buys and vice versa.
type Transaction struct {
	ID       string
	Symbol   string
	Date     Date
	Side     Side
	Quantity Quantity
	Price    Money

	Source      Source      // buys only
	HoldingType HoldingType // sells only

	Fees Fees

	// Buy side.
	AmountPayable Money // notional + total commission
	WACC          Money // weighted average cost per share after this buy

	// Sell side.
	Investment       Money // quantity x WACC at the time of the sell
	ProfitBeforeTax  Money
	CapitalGainTax   Money
	NetProfitLoss    Money
	NetProfitLossPct Percent
	AmountReceivable Money // notional - total commission - tax
}

// Notional returns quantity x unit price, before any fee.
func (t Transaction) Notional() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON writes the transaction with a stable field order, keeping the
// persisted form diffable line by line.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("company", t.Symbol)
	w.Append("date", t.Date)
	w.Append("type", t.Side)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Optional("transactionSource", string(t.Source))
	w.Optional("holdingType", string(t.HoldingType))
	w.Append("brokerCommission", t.Fees.Broker)
	w.Append("sebonFee", t.Fees.Sebon)
	w.Append("dpCharge", t.Fees.DPCharge)
	w.Append("totalCommission", t.Fees.Total())
	switch t.Side {
	case Buy:
		w.Append("amountPayable", t.AmountPayable)
		w.Append("wacc", t.WACC)
	case Sell:
		w.Append("investment", t.Investment)
		w.Append("profitBeforeTax", t.ProfitBeforeTax)
		w.Append("capitalGainTax", t.CapitalGainTax)
		w.Append("netProfitLoss", t.NetProfitLoss)
		w.Append("netProfitLossPercentage", float64(t.NetProfitLossPct))
		w.Append("amountReceivable", t.AmountReceivable)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID               string   `json:"id"`
		Symbol           string   `json:"company"`
		Date             Date     `json:"date"`
		Side             string   `json:"type"`
		Quantity         Quantity `json:"quantity"`
		Price            Money    `json:"price"`
		Source           string   `json:"transactionSource"`
		HoldingType      string   `json:"holdingType"`
		Broker           Money    `json:"brokerCommission"`
		Sebon            Money    `json:"sebonFee"`
		DPCharge         Money    `json:"dpCharge"`
		AmountPayable    Money    `json:"amountPayable"`
		WACC             Money    `json:"wacc"`
		Investment       Money    `json:"investment"`
		ProfitBeforeTax  Money    `json:"profitBeforeTax"`
		CapitalGainTax   Money    `json:"capitalGainTax"`
		NetProfitLoss    Money    `json:"netProfitLoss"`
		NetProfitLossPct float64  `json:"netProfitLossPercentage"`
		AmountReceivable Money    `json:"amountReceivable"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	side, err := ParseSide(temp.Side)
	if err != nil {
		return err
	}
	*t = Transaction{
		ID:               temp.ID,
		Symbol:           temp.Symbol,
		Date:             temp.Date,
		Side:             side,
		Quantity:         temp.Quantity,
		Price:            temp.Price,
		Source:           Source(temp.Source),
		HoldingType:      HoldingType(temp.HoldingType),
		Fees:             Fees{Broker: temp.Broker, Sebon: temp.Sebon, DPCharge: temp.DPCharge},
		AmountPayable:    temp.AmountPayable,
		WACC:             temp.WACC,
		Investment:       temp.Investment,
		ProfitBeforeTax:  temp.ProfitBeforeTax,
		CapitalGainTax:   temp.CapitalGainTax,
		NetProfitLoss:    temp.NetProfitLoss,
		NetProfitLossPct: Percent(temp.NetProfitLossPct),
		AmountReceivable: temp.AmountReceivable,
	}
	return nil
}

// History is the chronological record of all transactions. It is the sole
// source of truth: every aggregate is recomputed from it in full.
type History []Transaction

// SortedByDate returns a copy of the history stably sorted by date, keeping
// the original order for transactions on the same day.
func (h History) SortedByDate() History {
	sorted := slices.Clone(h)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Symbols returns the distinct instrument symbols in input order.
func (h History) Symbols() []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, tx := range h {
		if !seen[tx.Symbol] {
			seen[tx.Symbol] = true
			symbols = append(symbols, tx.Symbol)
		}
	}
	return symbols
}
