package nepfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Quote is the last traded price and previous close of one instrument.
type Quote struct {
	Symbol        string `json:"symbol"`
	LTP           Money  `json:"ltp"`
	PreviousClose Money  `json:"previousClose"`
}

// MarketData is a symbol-keyed snapshot of quotes. It feeds presentation-side
// mark-to-market only; the accounting engine never depends on it.
type MarketData struct {
	quotes map[string]Quote
}

// NewMarketData creates an empty quote snapshot.
func NewMarketData() *MarketData {
	return &MarketData{quotes: make(map[string]Quote)}
}

// Add inserts or replaces the quote for its symbol.
func (m *MarketData) Add(q Quote) { m.quotes[q.Symbol] = q }

// Get returns the quote for a symbol.
func (m *MarketData) Get(symbol string) (Quote, bool) {
	q, ok := m.quotes[symbol]
	return q, ok
}

// Len returns the number of quotes held.
func (m *MarketData) Len() int { return len(m.quotes) }

// HoldingValuation is a position marked to market with the day's quote.
// An instrument without a quote values at zero.
type HoldingValuation struct {
	Position
	LTP           Money
	PreviousClose Money
	Value         Money // quantity x LTP
	ProfitLoss    Money // value - cost basis
	ProfitLossPct Percent
	PointChange   Money // LTP - previous close
	ChangeValue   Money // point change x quantity
}

// MarkToMarket values every position with the given quotes, sorted by symbol.
func MarkToMarket(positions map[string]Position, market *MarketData) []HoldingValuation {
	valuations := make([]HoldingValuation, 0, len(positions))
	for symbol, pos := range positions {
		v := HoldingValuation{Position: pos}
		if q, ok := market.Get(symbol); ok {
			v.LTP = q.LTP
			v.PreviousClose = q.PreviousClose
		}
		v.Value = v.LTP.Mul(pos.Quantity)
		v.ProfitLoss = v.Value.Sub(pos.CostBasis)
		if pos.CostBasis.IsPositive() {
			v.ProfitLossPct = Percent(v.ProfitLoss.Ratio(pos.CostBasis).Mul(Q(100)).InexactFloat64())
		}
		v.PointChange = v.LTP.Sub(v.PreviousClose)
		v.ChangeValue = v.PointChange.Mul(pos.Quantity)
		valuations = append(valuations, v)
	}
	sort.Slice(valuations, func(i, j int) bool { return valuations[i].Symbol < valuations[j].Symbol })
	return valuations
}

// DecodeMarketData reads quotes from a stream of JSONL data, one quote per line.
func DecodeMarketData(r io.Reader) (*MarketData, error) {
	m := NewMarketData()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var q Quote
		if err := json.Unmarshal(line, &q); err != nil {
			return nil, fmt.Errorf("could not parse quote line %q: %w", string(line), err)
		}
		m.Add(q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return m, nil
}

// EncodeMarketData persists the quotes to an io.Writer in JSONL format,
// sorted by symbol for a canonical output.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	symbols := make([]string, 0, len(m.quotes))
	for symbol := range m.quotes {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		data, err := json.Marshal(m.quotes[symbol])
		if err != nil {
			return fmt.Errorf("cannot marshal quote %q: %w", symbol, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write quote: %w", err)
		}
	}
	return nil
}
