package nepfolio

import "testing"

func TestCalculateFees_BracketBoundaries(t *testing.T) {
	// Exactly one bracket applies, selected by notional. The schedule is
	// flat per bracket, so a rupee of notional can move the whole commission.
	tests := []struct {
		name       string
		notional   string
		wantBroker string
	}{
		{name: "just below flat ceiling", notional: "2499.99", wantBroker: "10"},
		{name: "at flat ceiling uses 0.36%", notional: "2500", wantBroker: "9"},
		{name: "mid first rate bracket", notional: "10000", wantBroker: "36"},
		{name: "at 50k uses 0.36%", notional: "50000", wantBroker: "180"},
		{name: "just above 50k uses 0.33%", notional: "50000.01", wantBroker: "165.000033"},
		{name: "at 500k uses 0.33%", notional: "500000", wantBroker: "1650"},
		{name: "just above 500k uses 0.31%", notional: "500000.01", wantBroker: "1550.0000031"},
		{name: "at 2M uses 0.31%", notional: "2000000", wantBroker: "6200"},
		{name: "just above 2M uses 0.27%", notional: "2000000.01", wantBroker: "5400.0000027"},
		{name: "at 10M uses 0.27%", notional: "10000000", wantBroker: "27000"},
		{name: "above 10M uses 0.24%", notional: "10000000.01", wantBroker: "24000.000024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := CalculateFees(m(tt.notional), Q(100), Secondary)
			if !fees.Broker.Equal(m(tt.wantBroker)) {
				t.Errorf("broker commission for notional %s = %s, want %s", tt.notional, fees.Broker.Decimal(), tt.wantBroker)
			}
		})
	}
}

func TestCalculateFees_SebonFee(t *testing.T) {
	fees := CalculateFees(M(1000), Q(100), Secondary)
	if !fees.Sebon.Equal(m("0.15")) {
		t.Errorf("SEBON fee for notional 1000 = %s, want 0.15", fees.Sebon.Decimal())
	}
}

func TestCalculateFees_NonSecondarySources(t *testing.T) {
	// IPO, FPO, rights and bonus shares attract no broker commission and no
	// SEBON fee, but the DP charge still applies.
	for _, source := range []Source{IPO, FPO, Right, BonusShare} {
		fees := CalculateFees(M(100000), Q(10), source)
		if !fees.Broker.IsZero() {
			t.Errorf("%s: broker commission = %s, want 0", source, fees.Broker.Decimal())
		}
		if !fees.Sebon.IsZero() {
			t.Errorf("%s: SEBON fee = %s, want 0", source, fees.Sebon.Decimal())
		}
		if !fees.DPCharge.Equal(M(25)) {
			t.Errorf("%s: DP charge = %s, want 25", source, fees.DPCharge.Decimal())
		}
	}
}

func TestCalculateFees_ZeroNotional(t *testing.T) {
	fees := CalculateFees(M(0), Q(10), Secondary)
	if !fees.Broker.IsZero() || !fees.Sebon.IsZero() {
		t.Errorf("zero notional should yield no broker/SEBON fee, got %s / %s",
			fees.Broker.Decimal(), fees.Sebon.Decimal())
	}
	if !fees.DPCharge.Equal(M(25)) {
		t.Errorf("DP charge = %s, want 25 (applies whenever quantity > 0)", fees.DPCharge.Decimal())
	}

	fees = CalculateFees(M(0), Q(0), Secondary)
	if !fees.Total().IsZero() {
		t.Errorf("zero quantity and notional should yield zero total, got %s", fees.Total().Decimal())
	}
}

func TestFees_Total(t *testing.T) {
	f := Fees{Broker: M(10), Sebon: m("0.15"), DPCharge: M(25)}
	if !f.Total().Equal(m("35.15")) {
		t.Errorf("Total() = %s, want 35.15", f.Total().Decimal())
	}
}
