// Package rowstore defines the port consumed by the ledger and registry
// against a row-oriented spreadsheet-like store.
package rowstore

import (
	"context"
	"errors"
)

// Column positions of an expense row. 1-based, matching spreadsheet addressing.
const (
	ColDate     = 1
	ColTime     = 2
	ColItem     = 3
	ColPrice    = 4
	ColCategory = 5

	// RowWidth is the number of positional cells in an expense row.
	RowWidth = 5
)

// HeaderRow is the first row of a fresh store. It is never parsed as an
// expense.
var HeaderRow = []string{"Date", "Time", "Item", "Price", "Category"}

// ErrUnavailable marks transport or auth failures reaching the store.
// Callers degrade to an "error fetching data" reply rather than crashing.
var ErrUnavailable = errors.New("row store unavailable")

// Store is the outbound port for the backing tabular store.
//
// Reads return full snapshots; writes are single-row appends or single-cell
// updates. No locking or versioning is provided: concurrent read-modify-write
// sequences can lose updates, and callers needing strict consistency must
// serialize access externally.
type Store interface {
	// ReadAllRows returns a full snapshot of every row, header included.
	ReadAllRows(ctx context.Context) ([][]string, error)

	// AppendRow inserts values as a new row past the last row with a
	// non-empty first cell. Existing rows at or below that position shift
	// down, so registry-only cells parked there survive the insert.
	AppendRow(ctx context.Context, values []string) error

	// WriteCell overwrites a single cell. Row and column are 1-based.
	WriteCell(ctx context.Context, row, col int, value string) error

	// ReadColumn returns a column top to bottom, blank cells included in
	// position at least up to the column's last non-empty cell. Trailing
	// blanks beyond that may be omitted, so callers must not treat the
	// slice length as the grid height.
	ReadColumn(ctx context.Context, col int) ([]string, error)
}
