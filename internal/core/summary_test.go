package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sum(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Price)
	}
	return total
}

func TestFormatSummaryEmpty(t *testing.T) {
	today := date(2026, time.August, 30)
	got := FormatSummary(nil, decimal.Zero, PeriodWeek, "", 0, '$', today)
	if got != "No spendings recorded for this week." {
		t.Fatalf("unexpected message: %q", got)
	}
	got = FormatSummary(nil, decimal.Zero, PeriodDay, "Food", 0, '$', today)
	if got != "No spendings recorded for this day in Food." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestFormatSummaryRanksByPriceDescStable(t *testing.T) {
	today := date(2026, time.August, 30)
	matches := []Record{
		rec(30, "Snack", "5", ""),
		rec(30, "Lunch", "20", ""),
		rec(30, "Dinner", "20", ""),
		rec(30, "Bus", "3", ""),
	}
	got := FormatSummary(matches, sum(matches), PeriodDay, "", 0, '$', today)

	lines := strings.Split(got, "\n")
	want := []string{"Lunch", "Dinner", "Snack", "Bus"}
	for i, item := range want {
		if !strings.HasPrefix(lines[i+1], "- "+item+" ") {
			t.Fatalf("line %d: got %q, want item %s", i+1, lines[i+1], item)
		}
	}
	if !strings.HasSuffix(got, "Total for day: 48.00$") {
		t.Fatalf("unexpected total line: %q", got)
	}
}

func TestFormatSummaryTopNTruncates(t *testing.T) {
	today := date(2026, time.August, 30)
	matches := []Record{
		rec(30, "A", "1", ""),
		rec(30, "B", "2", ""),
		rec(30, "C", "3", ""),
	}
	total := sum(matches)

	got := FormatSummary(matches, total, PeriodDay, "", 2, '$', today)
	if strings.Contains(got, "- A ") {
		t.Fatalf("cheapest item should be cut: %q", got)
	}
	// The total still covers all matches, not just the shown ones.
	if !strings.HasSuffix(got, "Total for day: 6.00$") {
		t.Fatalf("total should be unaffected by top-N: %q", got)
	}

	// topN >= len is a no-op.
	full := FormatSummary(matches, total, PeriodDay, "", 5, '$', today)
	for _, item := range []string{"- A ", "- B ", "- C "} {
		if !strings.Contains(full, item) {
			t.Fatalf("missing %q in %q", item, full)
		}
	}
}

func TestFormatSummaryLineFormat(t *testing.T) {
	today := date(2026, time.August, 30)
	matches := []Record{rec(30, "Coffee", "10", "Food, Drinks")}
	got := FormatSummary(matches, sum(matches), PeriodDay, "", 0, '#', today)
	if !strings.Contains(got, "- Coffee (Food, Drinks): 10.00# (0 days ago)") {
		t.Fatalf("unexpected line: %q", got)
	}

	uncat := []Record{rec(30, "Coffee", "10", "")}
	got = FormatSummary(uncat, sum(uncat), PeriodDay, "", 0, '$', today)
	if !strings.Contains(got, "(N/A)") {
		t.Fatalf("missing category placeholder: %q", got)
	}
}

func TestFormatSummaryDates(t *testing.T) {
	today := date(2026, time.August, 30)

	// Day period renders relative dates with pluralization.
	day := []Record{rec(29, "Lunch", "12", "")}
	got := FormatSummary(day, sum(day), PeriodDay, "", 0, '$', today)
	if !strings.Contains(got, "(1 day ago)") {
		t.Fatalf("expected singular relative date: %q", got)
	}

	older := []Record{rec(27, "Lunch", "12", "")}
	got = FormatSummary(older, sum(older), PeriodDay, "", 0, '$', today)
	if !strings.Contains(got, "(3 days ago)") {
		t.Fatalf("expected plural relative date: %q", got)
	}

	// Other periods render absolute ISO dates.
	got = FormatSummary(older, sum(older), PeriodWeek, "", 0, '$', today)
	if !strings.Contains(got, "(2026-08-27)") {
		t.Fatalf("expected absolute date: %q", got)
	}
}
