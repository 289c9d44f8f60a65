package nepfolio

import (
	"strings"
	"testing"
)

const importHeader = "Company Symbol,Transaction Date,Type,Quantity,Price\n"

func TestImportCSV(t *testing.T) {
	csv := importHeader +
		"NABIL,2025-01-10,Buy,100,10\n" +
		"NABIL,2025-02-01,Sell,40,12\n" +
		"NICA,2025-02-10,Buy,30,500\n"

	imported, errs := ImportCSV(strings.NewReader(csv), nil)
	if len(errs) > 0 {
		t.Fatalf("ImportCSV() errors = %v", errs)
	}
	if len(imported) != 3 {
		t.Fatalf("imported %d transactions, want 3", len(imported))
	}

	// The buy was enriched as a secondary-market purchase.
	if imported[0].Source != Secondary {
		t.Errorf("buy source = %s, want Secondary", imported[0].Source)
	}
	if !imported[0].AmountPayable.Equal(m("1035.15")) {
		t.Errorf("amount payable = %s, want 1035.15", imported[0].AmountPayable.Decimal())
	}
	// The sell defaulted to short-term and saw the buy's WACC.
	if imported[1].HoldingType != ShortTerm {
		t.Errorf("sell holding type = %s, want Short Term", imported[1].HoldingType)
	}
	if !imported[1].Investment.Equal(m("414.06")) {
		t.Errorf("sell investment = %s, want 414.06 (40 x 10.3515)", imported[1].Investment.Decimal())
	}
}

func TestImportCSV_ReportsBadRowsWithRowNumbers(t *testing.T) {
	csv := importHeader +
		"NABIL,2025-01-10,Buy,100,10\n" +
		"NABIL,2025-02-01,Hold,40,12\n" +
		",2025-02-10,Buy,30,500\n" +
		"NICA,2025-02-10,Buy,thirty,500\n"

	imported, errs := ImportCSV(strings.NewReader(csv), nil)
	if imported != nil {
		t.Errorf("a failing batch must commit nothing, got %d transactions", len(imported))
	}
	if len(errs) != 3 {
		t.Fatalf("got %d row errors, want 3: %v", len(errs), errs)
	}
	wantRows := []int{3, 4, 5}
	for i, e := range errs {
		if e.Row != wantRows[i] {
			t.Errorf("error %d reported row %d, want %d (%v)", i, e.Row, wantRows[i], e)
		}
	}
}

func TestImportCSV_AllOrNothingOnValidationFailure(t *testing.T) {
	// Every row is well-formed, but the oversell fails engine validation:
	// the whole batch must be dropped.
	csv := importHeader +
		"NABIL,2025-01-10,Buy,100,10\n" +
		"NABIL,2025-02-01,Sell,150,12\n"

	imported, errs := ImportCSV(strings.NewReader(csv), nil)
	if imported != nil {
		t.Errorf("a failing batch must commit nothing, got %d transactions", len(imported))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d row errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Row != 3 {
		t.Errorf("error reported row %d, want 3", errs[0].Row)
	}
}

func TestImportCSV_SellSeesExistingHistory(t *testing.T) {
	history := mustAdd(t, nil, buy("2025-01-10", "NABIL", 100, 10))

	csv := importHeader + "NABIL,2025-02-01,Sell,100,12\n"
	imported, errs := ImportCSV(strings.NewReader(csv), history)
	if len(errs) > 0 {
		t.Fatalf("ImportCSV() errors = %v", errs)
	}
	if len(imported) != 1 {
		t.Fatalf("imported %d transactions, want 1", len(imported))
	}
	if !imported[0].Investment.Equal(m("1035.15")) {
		t.Errorf("sell investment = %s, want 1035.15", imported[0].Investment.Decimal())
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	if _, errs := ImportCSV(strings.NewReader(importHeader), nil); len(errs) == 0 {
		t.Error("expected an error for a file with no transaction rows")
	}
}
