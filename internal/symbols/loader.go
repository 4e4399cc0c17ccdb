// Package symbols loads the list of selectable tickers.
package symbols

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrColumnNotFound is returned when the header lacks the symbol column.
var ErrColumnNotFound = errors.New("symbol column not found")

// List is an ordered set of symbols.
type List []string

// Contains reports whether sym is one of the loaded symbols.
func (l List) Contains(sym string) bool {
	for _, s := range l {
		if s == sym {
			return true
		}
	}
	return false
}

// Load reads the symbol column from the CSV file at path.
func Load(path, column string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols file: %w", err)
	}
	defer f.Close()
	return Read(f, column)
}

// Read parses a header-first CSV table and returns the values of column in
// file order, skipping blanks and duplicates.
func Read(r io.Reader, column string) (List, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var out List
	seen := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if idx >= len(rec) {
			continue
		}
		sym := strings.TrimSpace(rec[idx])
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out, nil
}
