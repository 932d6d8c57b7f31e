// Package ledger implements the expense query engine over a row store: it
// reads a fresh snapshot per query, parses raw rows into records, aggregates
// them by period and category, and renders the summary.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"spendbot/internal/core"
	"spendbot/internal/rowstore"
)

// Service runs spending queries and appends expense rows. It holds no state
// between calls: every query re-reads the store.
type Service struct {
	store rowstore.Store
}

func New(store rowstore.Store) *Service {
	return &Service{store: store}
}

// SummaryRequest carries the arguments of one spending query.
type SummaryRequest struct {
	Period   core.Period
	Category string // optional filter, matched case-insensitively
	TopN     int    // 0 means no truncation
	Divider  rune   // session divider symbol used in rendering
}

// Summary answers an aggregate spending query from a fresh full read of the
// store. The first row is treated as a header and never parsed. Malformed
// rows are skipped with a warning; a store failure is returned wrapped in
// rowstore.ErrUnavailable so callers can degrade to an error reply.
func (s *Service) Summary(ctx context.Context, req SummaryRequest) (string, error) {
	records, err := s.readRecords(ctx)
	if err != nil {
		return "", err
	}
	today := time.Now()
	total, matches := core.Aggregate(records, req.Period, today, req.Category)
	return core.FormatSummary(matches, total, req.Period, req.Category, req.TopN, req.Divider, today), nil
}

func (s *Service) readRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := s.store.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		// Header only, or empty store.
		return nil, nil
	}
	records := make([]core.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := core.ParseRow(row, i+1)
		if err != nil {
			slog.WarnContext(ctx, "Skipping invalid row", "row", row, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// AppendExpense appends one expense row dated now. The price is stored as its
// plain decimal string so the row round-trips through the parser.
func (s *Service) AppendExpense(ctx context.Context, item string, price decimal.Decimal, category string, now time.Time) error {
	row := []string{
		now.Format(core.DateLayout),
		now.Format(core.TimeLayout),
		item,
		price.String(),
		category,
	}
	if err := s.store.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense appended",
		"item", item,
		"price", price.StringFixed(2),
		"category", category)
	return nil
}
