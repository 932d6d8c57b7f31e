// Package memory provides an in-memory row store used as the default backend
// and as the test double for the ledger and registry.
package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"spendbot/internal/rowstore"
)

// Store keeps the row grid in memory behind a mutex. Cells read as empty
// strings when outside the written grid, matching spreadsheet behavior.
type Store struct {
	mu   sync.Mutex
	rows [][]string
}

var _ rowstore.Store = (*Store)(nil)

// New returns a store seeded with the given rows. A nil argument yields a
// store holding only the header row.
func New(rows [][]string) *Store {
	if rows == nil {
		rows = [][]string{rowstore.HeaderRow}
	}
	s := &Store{rows: make([][]string, len(rows))}
	for i, r := range rows {
		s.rows[i] = append([]string(nil), r...)
	}
	return s
}

// NewFromFiles seeds the category column from base/seed_categories.txt, one
// registry-only row per name. Missing file means an empty registry.
func NewFromFiles(base string) *Store {
	s := New(nil)
	for _, name := range readLines(filepath.Join(base, "seed_categories.txt")) {
		s.rows = append(s.rows, []string{"", "", "", "", name})
	}
	return s
}

func (s *Store) ReadAllRows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

// AppendRow inserts values one past the last row with a non-empty first
// cell, shifting any later rows down.
func (s *Store) AppendRow(_ context.Context, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := 0
	for i, r := range s.rows {
		if len(r) > 0 && strings.TrimSpace(r[0]) != "" {
			last = i + 1
		}
	}

	width := len(values)
	if width < rowstore.RowWidth {
		width = rowstore.RowWidth
	}
	row := make([]string, width)
	copy(row, values)

	if last >= len(s.rows) {
		s.rows = append(s.rows, row)
		return nil
	}
	s.rows = append(s.rows, nil)
	copy(s.rows[last+1:], s.rows[last:])
	s.rows[last] = row
	return nil
}

// WriteCell overwrites one cell, extending the grid as needed. Indices are
// 1-based.
func (s *Store) WriteCell(_ context.Context, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.growLocked(row, col)
	s.rows[row-1][col-1] = value
	return nil
}

// ReadColumn returns a full column, blank cells included in position.
func (s *Store) ReadColumn(_ context.Context, col int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.rows))
	for i, r := range s.rows {
		if col-1 < len(r) {
			out[i] = r[col-1]
		}
	}
	return out, nil
}

// growLocked ensures the grid covers at least rows x cols cells.
func (s *Store) growLocked(rows, cols int) {
	for len(s.rows) < rows {
		s.rows = append(s.rows, make([]string, rowstore.RowWidth))
	}
	for i := range s.rows {
		for len(s.rows[i]) < cols {
			s.rows[i] = append(s.rows[i], "")
		}
	}
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
