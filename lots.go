package nepfolio

// lot represents a single purchase of a security, used for FIFO matching.
// Its cost is the full amount payable of the buy, fees included.
type lot struct {
	quantity  Quantity // quantity originally acquired
	remaining Quantity // quantity not yet consumed by sells
	cost      Money    // total acquisition cost of the original lot
}

// lots is a FIFO queue of purchases for one instrument, oldest at the head.
type lots []lot

// push appends a new lot for a buy.
func (l lots) push(quantity Quantity, cost Money) lots {
	return append(l, lot{quantity: quantity, remaining: quantity, cost: cost})
}

// consume matches a sell of quantityToSell shares against the oldest
// remaining lots. It returns the cost basis of the matched shares, the lots
// left after the sell, and any unmatched quantity. Unmatched is zero for any
// history that passed validation; a positive value means the history is
// inconsistent.
func (l lots) consume(quantityToSell Quantity) (cost Money, rest lots, unmatched Quantity) {
	remaining := quantityToSell
	for _, currentLot := range l {
		if !remaining.IsPositive() {
			rest = append(rest, currentLot)
			continue
		}

		matched := remaining.Min(currentLot.remaining)
		perShare := currentLot.cost.Div(currentLot.quantity)
		cost = cost.Add(perShare.Mul(matched))

		remaining = remaining.Sub(matched)
		currentLot.remaining = currentLot.remaining.Sub(matched)
		if currentLot.remaining.IsPositive() {
			rest = append(rest, currentLot)
		}
	}
	return cost, rest, remaining
}

// held returns the total remaining quantity across all lots.
func (l lots) held() Quantity {
	var total Quantity
	for _, currentLot := range l {
		total = total.Add(currentLot.remaining)
	}
	return total
}
