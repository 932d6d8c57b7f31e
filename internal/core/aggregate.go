package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate selects the records whose date falls in the period ending at
// today, optionally filtered by category, and returns the running total
// together with the matches in their original row order.
//
// The category filter matches case-insensitively against any comma-split
// token of the record's category cell, so a row tagged "Food, Drinks"
// matches a query for "drinks". An empty category disables the filter.
//
// No matches is not an error: the total is zero and matches is empty.
func Aggregate(records []Record, period Period, today time.Time, category string) (decimal.Decimal, []Record) {
	total := decimal.Zero
	var matches []Record
	for _, r := range records {
		if category != "" && !r.InCategory(category) {
			continue
		}
		if !period.Contains(r.Date, today) {
			continue
		}
		total = total.Add(r.Price)
		matches = append(matches, r)
	}
	return total, matches
}
