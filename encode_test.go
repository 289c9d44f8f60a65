package nepfolio

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeHistory_RoundTrip(t *testing.T) {
	history := mustAdd(t, nil, buy("2025-01-10", "NABIL", 100, 10))
	history = mustAdd(t, history, sell("2025-06-01", "NABIL", 40, 25))

	var buf bytes.Buffer
	if err := EncodeHistory(&buf, history); err != nil {
		t.Fatalf("EncodeHistory() error = %v", err)
	}

	decoded, err := DecodeHistory(&buf)
	if err != nil {
		t.Fatalf("DecodeHistory() error = %v", err)
	}
	if len(decoded) != len(history) {
		t.Fatalf("decoded %d transactions, want %d", len(decoded), len(history))
	}
	for i := range history {
		want, got := history[i], decoded[i]
		if got.ID != want.ID || got.Symbol != want.Symbol || got.Side != want.Side {
			t.Errorf("transaction %d = %+v, want %+v", i, got, want)
		}
		if !got.Quantity.Equal(want.Quantity) || !got.Price.Equal(want.Price) {
			t.Errorf("transaction %d quantity/price = %s/%s, want %s/%s",
				i, got.Quantity, got.Price.Decimal(), want.Quantity, want.Price.Decimal())
		}
		if !got.Fees.Total().Equal(want.Fees.Total()) {
			t.Errorf("transaction %d total commission = %s, want %s",
				i, got.Fees.Total().Decimal(), want.Fees.Total().Decimal())
		}
	}

	// The sell-side tax fields must survive the round trip.
	if !decoded[1].CapitalGainTax.Equal(history[1].CapitalGainTax) {
		t.Errorf("capital gain tax = %s, want %s",
			decoded[1].CapitalGainTax.Decimal(), history[1].CapitalGainTax.Decimal())
	}
	if !decoded[0].WACC.Equal(history[0].WACC) {
		t.Errorf("WACC = %s, want %s", decoded[0].WACC.Decimal(), history[0].WACC.Decimal())
	}
}

func TestDecodeHistory_SortsByDate(t *testing.T) {
	lines := `{"id":"b","company":"NABIL","date":"2025-02-01","type":"Sell","quantity":10,"price":12,"holdingType":"Short Term","brokerCommission":10,"sebonFee":0.018,"dpCharge":25,"totalCommission":35.018,"investment":103.515,"profitBeforeTax":-18.533,"capitalGainTax":0,"netProfitLoss":-18.533,"netProfitLossPercentage":-17.9,"amountReceivable":84.982}
{"id":"a","company":"NABIL","date":"2025-01-10","type":"Buy","quantity":100,"price":10,"transactionSource":"Secondary","brokerCommission":10,"sebonFee":0.15,"dpCharge":25,"totalCommission":35.15,"amountPayable":1035.15,"wacc":10.3515}
`
	history, err := DecodeHistory(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("DecodeHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("decoded %d transactions, want 2", len(history))
	}
	if history[0].ID != "a" || history[1].ID != "b" {
		t.Errorf("decode order = %s, %s; want a, b (date order)", history[0].ID, history[1].ID)
	}
}

func TestDecodeHistory_SkipsEmptyLines(t *testing.T) {
	lines := "\n\n{\"id\":\"a\",\"company\":\"NABIL\",\"date\":\"2025-01-10\",\"type\":\"Buy\",\"quantity\":100,\"price\":10,\"amountPayable\":1035.15,\"wacc\":10.3515}\n\n"
	history, err := DecodeHistory(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("DecodeHistory() error = %v", err)
	}
	if len(history) != 1 {
		t.Errorf("decoded %d transactions, want 1", len(history))
	}
}

func TestDecodeHistory_RejectsGarbage(t *testing.T) {
	if _, err := DecodeHistory(strings.NewReader("not json\n")); err == nil {
		t.Error("expected an error for a malformed line")
	}
}

func TestEncodeTransaction_StableFieldOrder(t *testing.T) {
	history := mustAdd(t, nil, buy("2025-01-10", "NABIL", 100, 10))

	var a, b bytes.Buffer
	if err := EncodeTransaction(&a, history[0]); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	if err := EncodeTransaction(&b, history[0]); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	if a.String() != b.String() {
		t.Error("encoding the same transaction twice produced different bytes")
	}
	if !strings.HasPrefix(a.String(), `{"id":`) {
		t.Errorf("encoded transaction should start with the id field, got %s", a.String())
	}
}
