package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatSummary renders a human-readable spending report.
//
// Matches are sorted by price descending with ties kept in original row order,
// then truncated to topN when 0 < topN < len(matches). Each line carries the
// item, its category cell (or "N/A"), the price with the session divider
// symbol, and a date suffix: relative for the day period, absolute otherwise.
func FormatSummary(matches []Record, total decimal.Decimal, period Period, category string, topN int, divider rune, today time.Time) string {
	in := ""
	if category != "" {
		in = fmt.Sprintf(" in %s", category)
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No spendings recorded for this %s%s.", period, in)
	}

	sorted := make([]Record, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.GreaterThan(sorted[j].Price)
	})
	if topN > 0 && topN < len(sorted) {
		sorted = sorted[:topN]
	}

	today = DateOnly(today)
	var b strings.Builder
	fmt.Fprintf(&b, "Spending for %s%s:\n", period, in)
	for _, r := range sorted {
		cat := r.Category
		if cat == "" {
			cat = "N/A"
		}
		fmt.Fprintf(&b, "- %s (%s): %s%c (%s)\n", r.Item, cat, r.Price.StringFixed(2), divider, dateDisplay(r.Date, today, period))
	}
	fmt.Fprintf(&b, "\nTotal for %s: %s%c", period, total.StringFixed(2), divider)
	return b.String()
}

// dateDisplay renders a relative date for the day period and an absolute ISO
// date for the others.
func dateDisplay(date, today time.Time, period Period) string {
	if period != PeriodDay {
		return date.Format(DateLayout)
	}
	days := int(today.Sub(DateOnly(date)).Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
