package nepfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// RowError reports a bulk-import failure for one CSV row. Row numbers count
// from the top of the file, header included, so they match what the user
// sees in a spreadsheet.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportCSV parses tabular transactions and runs each row through
// ValidateAndEnrich against the given history. The expected columns are:
//
//	Company Symbol, Transaction Date, Type (Buy/Sell), Quantity, Price
//
// The first line is a header and is skipped. Buys imported this way are
// secondary-market purchases and sells default to short-term holding, as a
// broker statement export carries neither field.
//
// The import is all-or-nothing: every malformed row is reported with its row
// number, and if any row fails - shape check or engine validation - no
// transaction is returned.
func ImportCSV(r io.Reader, history History) ([]Transaction, []RowError) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // row width is checked per row below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, []RowError{{Row: 1, Err: fmt.Errorf("cannot parse CSV: %w", err)}}
	}
	if len(records) < 2 {
		return nil, []RowError{{Row: 1, Err: fmt.Errorf("no transaction rows found")}}
	}

	// Shape and type checks first, collecting every bad row.
	var rowErrs []RowError
	var proposals []Proposed
	for i, record := range records[1:] {
		row := i + 2 // 1-based, after the header
		p, err := parseImportRow(record)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}
		proposals = append(proposals, p)
	}
	if len(rowErrs) > 0 {
		return nil, rowErrs
	}

	// Enrich sequentially: each accepted row becomes part of the working
	// history so a later sell sees the WACC its preceding buys produced.
	working := append(History{}, history...)
	var imported []Transaction
	for i, p := range proposals {
		tx, err := ValidateAndEnrich(p, working, Aggregate(working))
		if err != nil {
			return nil, []RowError{{Row: i + 2, Err: err}}
		}
		working = append(working, tx)
		imported = append(imported, tx)
	}
	return imported, nil
}

func parseImportRow(record []string) (Proposed, error) {
	if len(record) < 5 {
		return Proposed{}, fmt.Errorf("has insufficient data: want 5 columns, got %d", len(record))
	}
	for i, field := range record[:5] {
		if strings.TrimSpace(field) == "" {
			return Proposed{}, fmt.Errorf("has missing required fields (column %d)", i+1)
		}
	}

	symbol := strings.TrimSpace(record[0])

	day, err := ParseDate(strings.TrimSpace(record[1]))
	if err != nil {
		return Proposed{}, err
	}

	side, err := ParseSide(strings.TrimSpace(record[2]))
	if err != nil {
		return Proposed{}, fmt.Errorf("has invalid transaction type %q", record[2])
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return Proposed{}, fmt.Errorf("has invalid quantity %q", record[3])
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return Proposed{}, fmt.Errorf("has invalid price %q", record[4])
	}

	p := Proposed{
		Symbol:   symbol,
		Date:     day,
		Side:     side,
		Quantity: Q(quantity),
		Price:    M(price),
	}
	if side == Buy {
		p.Source = Secondary
	} else {
		p.HoldingType = ShortTerm
	}
	return p, nil
}
