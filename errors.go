package nepfolio

import "fmt"

// InvalidInputError reports a proposed transaction rejected before any fee or
// tax computation: non-positive quantity or negative price.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid transaction: %s", e.Reason)
}

// NoPriorHoldingError reports a sell for an instrument with no prior buy in
// the history.
type NoPriorHoldingError struct {
	Symbol string
}

func (e *NoPriorHoldingError) Error() string {
	return fmt.Sprintf("cannot sell %s: no buy transaction found for this company", e.Symbol)
}

// InsufficientHoldingsError reports a sell whose quantity exceeds the net
// quantity held (bought minus sold to date).
type InsufficientHoldingsError struct {
	Symbol    string
	Requested Quantity
	Available Quantity
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("selling quantity (%s) exceeds available holdings (%s) for %s",
		e.Requested, e.Available, e.Symbol)
}

// LotExhaustionError reports a sell that consumed more shares than all
// remaining lots hold. A validated history can never produce it; seeing one
// means the history itself is inconsistent.
type LotExhaustionError struct {
	Symbol    string
	Unmatched Quantity
}

func (e *LotExhaustionError) Error() string {
	return fmt.Sprintf("FIFO lots exhausted for %s with %s shares of the sell unmatched: history is inconsistent",
		e.Symbol, e.Unmatched)
}
