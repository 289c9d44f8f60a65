package nepfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeHistory reads transactions from a stream of JSONL data, one enriched
// transaction per line, and returns them stably sorted by date.
func DecodeHistory(r io.Reader) (History, error) {
	var history History
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("could not parse transaction line %q: %w", string(line), err)
		}
		history = append(history, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return history.SortedByDate(), nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeHistory reorders transactions by date and persists them to an
// io.Writer in JSONL format. The sort is stable, so transactions on the same
// day keep their original relative order.
func EncodeHistory(w io.Writer, history History) error {
	for _, tx := range history.SortedByDate() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
