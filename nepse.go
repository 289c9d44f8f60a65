package nepfolio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Quote feed for NEPSE instruments. Today's prices are published to a shared
// Google Sheet and fetched as its CSV export; the NEPSE index comes from the
// exchange's own JSON endpoint.

const nepseIndexURL = "https://www.nepalstock.com/api/nots/nepse-index"

// SheetCSVURL builds the CSV export URL of one tab of a Google Sheet.
func SheetCSVURL(sheetID, gid string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", sheetID, gid)
}

// FetchQuotes downloads today's prices from the given CSV address and
// returns them keyed by symbol. The sheet must carry "symbol", "ltp" and
// "previousClose" columns; rows with an unparseable price are skipped.
// Responses are cached on disk for the day.
func FetchQuotes(addr string) (*MarketData, error) {
	body, err := wget(daily(), addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch quotes: %w", err)
	}
	return parseQuoteCSV(bytes.NewReader(body))
}

func parseQuoteCSV(r io.Reader) (*MarketData, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read quote header: %w", err)
	}
	col := make(map[string]int)
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, want := range []string{"symbol", "ltp", "previousClose"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("quote feed is missing column %q", want)
		}
	}

	m := NewMarketData()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read quote row: %w", err)
		}
		symbol := strings.TrimSpace(record[col["symbol"]])
		if symbol == "" {
			continue
		}
		ltp, err1 := decimal.NewFromString(strings.TrimSpace(record[col["ltp"]]))
		prev, err2 := decimal.NewFromString(strings.TrimSpace(record[col["previousClose"]]))
		if err1 != nil || err2 != nil {
			continue // suspended or unquoted instrument, no usable price
		}
		m.Add(Quote{Symbol: symbol, LTP: M(ltp), PreviousClose: M(prev)})
	}
	return m, nil
}

// FetchNEPSEIndex returns the current value and daily change of the NEPSE
// index from the exchange's JSON endpoint.
func FetchNEPSEIndex(client *http.Client) (value, change float64, err error) {
	var jobj any
	if err := jwget(client, nepseIndexURL, &jobj); err != nil {
		return 0, 0, fmt.Errorf("error fetching NEPSE index: %w", err)
	}
	value, err = jsonFloat(jobj, "$[?(@.index == \"NEPSE Index\")].currentValue")
	if err != nil {
		return 0, 0, err
	}
	change, err = jsonFloat(jobj, "$[?(@.index == \"NEPSE Index\")].change")
	if err != nil {
		return 0, 0, err
	}
	return value, change, nil
}

// jsonFloat extracts a single float from a parsed JSON document.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing index response: %q %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing index response: %q is not a number: %v", path, jval)
	}
	return val, nil
}
