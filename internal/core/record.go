// Package core holds the expense ledger domain: typed records parsed from raw
// store rows, period filtering, aggregation and summary rendering.
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts used for the date and time cells of an expense row.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Record is a typed expense reconstructed from one raw row. It is derived per
// query and never stored as a distinct structure.
type Record struct {
	Date     time.Time // naive local date, midnight
	Time     string    // wall-clock entry time, informational only
	Item     string
	Price    decimal.Decimal
	Category string // raw category cell, possibly a comma-joined list
}

// Row-level parse failures. Rows failing any of these are skipped and logged,
// never fatal to the batch.
var (
	ErrShortRow  = errors.New("row has fewer than 5 fields")
	ErrBadDate   = errors.New("unparsable date")
	ErrBadPrice  = errors.New("unparsable price")
	ErrEmptyItem = errors.New("empty item")
)

// ParseRow converts a raw row into a Record. idx is the zero-based position of
// the row in the snapshot and is only used for error context.
func ParseRow(row []string, idx int) (Record, error) {
	if len(row) < 5 {
		return Record{}, fmt.Errorf("row %d: %w", idx, ErrShortRow)
	}

	dateStr := strings.TrimSpace(row[0])
	date, err := time.ParseInLocation(DateLayout, dateStr, time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("row %d: %w: %q", idx, ErrBadDate, dateStr)
	}

	item := strings.TrimSpace(row[2])
	if item == "" {
		return Record{}, fmt.Errorf("row %d: %w", idx, ErrEmptyItem)
	}

	price, err := ParsePrice(row[3])
	if err != nil {
		return Record{}, fmt.Errorf("row %d: %w: %q", idx, ErrBadPrice, strings.TrimSpace(row[3]))
	}

	return Record{
		Date:     date,
		Time:     strings.TrimSpace(row[1]),
		Item:     item,
		Price:    price,
		Category: strings.TrimSpace(row[4]),
	}, nil
}

// ParsePrice parses a non-negative decimal amount. The decimal comma is
// normalized to a dot, matching what spreadsheet locales produce.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, ErrBadPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrBadPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrBadPrice
	}
	return d, nil
}

// SplitCategories splits a category cell on commas into trimmed, non-empty
// tokens. A plain single-category cell yields one token.
func SplitCategories(cell string) []string {
	var out []string
	for _, tok := range strings.Split(cell, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// EffectiveCategory returns the first token of the record's category cell, or
// the empty string when the row carries none.
func (r Record) EffectiveCategory() string {
	toks := SplitCategories(r.Category)
	if len(toks) == 0 {
		return ""
	}
	return toks[0]
}

// InCategory reports whether any token of the record's category cell equals
// name, case-insensitively.
func (r Record) InCategory(name string) bool {
	for _, tok := range SplitCategories(r.Category) {
		if strings.EqualFold(tok, name) {
			return true
		}
	}
	return false
}
