package core

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"day", "week", "month"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
	}
	if _, err := ParsePeriod("year"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPeriodDayContains(t *testing.T) {
	today := date(2026, time.August, 30)
	if !PeriodDay.Contains(today, today) {
		t.Fatalf("today should be in day period")
	}
	if PeriodDay.Contains(date(2026, time.August, 29), today) {
		t.Fatalf("yesterday should not be in day period")
	}
}

func TestPeriodWeekStartsMondayTruncatedAtToday(t *testing.T) {
	// 2026-08-26 is a Wednesday; its week starts Monday 2026-08-24.
	today := date(2026, time.August, 26)

	if !PeriodWeek.Contains(date(2026, time.August, 24), today) {
		t.Fatalf("monday should be in week")
	}
	if !PeriodWeek.Contains(today, today) {
		t.Fatalf("today should be in week")
	}
	if PeriodWeek.Contains(date(2026, time.August, 23), today) {
		t.Fatalf("previous sunday should not be in week")
	}
	if PeriodWeek.Contains(date(2026, time.August, 27), today) {
		t.Fatalf("tomorrow should not be in week")
	}
}

func TestPeriodWeekOnSunday(t *testing.T) {
	// 2026-08-30 is a Sunday; the whole week back to Monday 24th qualifies.
	today := date(2026, time.August, 30)
	if !PeriodWeek.Contains(date(2026, time.August, 24), today) {
		t.Fatalf("monday should be in week on sunday")
	}
}

func TestPeriodMonthContains(t *testing.T) {
	today := date(2026, time.August, 30)
	if !PeriodMonth.Contains(date(2026, time.August, 1), today) {
		t.Fatalf("first of month should be in month")
	}
	if PeriodMonth.Contains(date(2026, time.July, 31), today) {
		t.Fatalf("previous month should not match")
	}
	if PeriodMonth.Contains(date(2025, time.August, 15), today) {
		t.Fatalf("same month of another year should not match")
	}
}

func TestDateOnlyStripsClock(t *testing.T) {
	ts := time.Date(2026, time.August, 30, 23, 59, 58, 0, time.Local)
	got := DateOnly(ts)
	if got.Hour() != 0 || got.Minute() != 0 || !got.Equal(date(2026, time.August, 30)) {
		t.Fatalf("unexpected truncation: %v", got)
	}
}
