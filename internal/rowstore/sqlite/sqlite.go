// Package sqlite implements the row store port on a local SQLite database.
// The grid is stored cell by cell so the adapter keeps the exact positional
// semantics of the spreadsheet contract, blanks included.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"spendbot/internal/rowstore"
)

type Store struct {
	db *sql.DB
}

var _ rowstore.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedHeader(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// seedHeader writes the header row into an empty grid so the first appended
// expense is never mistaken for it.
func (s *Store) seedHeader(ctx context.Context) error {
	height, err := s.gridHeight(ctx)
	if err != nil {
		return err
	}
	if height > 0 {
		return nil
	}
	for i, v := range rowstore.HeaderRow {
		if err := upsertCell(ctx, s.db, 1, i+1, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ReadAllRows(ctx context.Context) ([][]string, error) {
	height, err := s.gridHeight(ctx)
	if err != nil {
		return nil, err
	}
	grid := make([][]string, height)
	for i := range grid {
		grid[i] = make([]string, rowstore.RowWidth)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_index, col_index, value FROM cells ORDER BY row_index, col_index`)
	if err != nil {
		return nil, fmt.Errorf("%w: select cells: %v", rowstore.ErrUnavailable, err)
	}
	defer rows.Close()
	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, fmt.Errorf("%w: scan cell: %v", rowstore.ErrUnavailable, err)
		}
		for len(grid[r-1]) < c {
			grid[r-1] = append(grid[r-1], "")
		}
		grid[r-1][c-1] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate cells: %v", rowstore.ErrUnavailable, err)
	}
	return grid, nil
}

// AppendRow inserts the values one past the last row with a non-empty first
// cell. Rows below the insert point shift down; the two-step sign flip keeps
// the primary key unique while renumbering.
func (s *Store) AppendRow(ctx context.Context, values []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", rowstore.ErrUnavailable, err)
	}
	defer tx.Rollback()

	var last int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_index), 0) FROM cells WHERE col_index = 1 AND TRIM(value) <> ''`).
		Scan(&last)
	if err != nil {
		return fmt.Errorf("%w: next row: %v", rowstore.ErrUnavailable, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cells SET row_index = -(row_index + 1) WHERE row_index > ?`, last); err != nil {
		return fmt.Errorf("%w: shift rows: %v", rowstore.ErrUnavailable, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cells SET row_index = -row_index WHERE row_index < 0`); err != nil {
		return fmt.Errorf("%w: shift rows: %v", rowstore.ErrUnavailable, err)
	}
	for i, v := range values {
		if err := upsertCell(ctx, tx, last+1, i+1, v); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", rowstore.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) WriteCell(ctx context.Context, row, col int, value string) error {
	return upsertCell(ctx, s.db, row, col, value)
}

func (s *Store) ReadColumn(ctx context.Context, col int) ([]string, error) {
	height, err := s.gridHeight(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, height)

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_index, value FROM cells WHERE col_index = ?`, col)
	if err != nil {
		return nil, fmt.Errorf("%w: select column %d: %v", rowstore.ErrUnavailable, col, err)
	}
	defer rows.Close()
	for rows.Next() {
		var r int
		var v string
		if err := rows.Scan(&r, &v); err != nil {
			return nil, fmt.Errorf("%w: scan cell: %v", rowstore.ErrUnavailable, err)
		}
		out[r-1] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate cells: %v", rowstore.ErrUnavailable, err)
	}
	return out, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertCell(ctx context.Context, db execer, row, col int, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO cells (row_index, col_index, value) VALUES (?, ?, ?)
		 ON CONFLICT (row_index, col_index) DO UPDATE SET value = excluded.value`,
		row, col, value)
	if err != nil {
		return fmt.Errorf("%w: write cell (%d,%d): %v", rowstore.ErrUnavailable, row, col, err)
	}
	return nil
}

func (s *Store) gridHeight(ctx context.Context) (int, error) {
	var height int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_index), 0) FROM cells`).Scan(&height)
	if err != nil {
		return 0, fmt.Errorf("%w: grid height: %v", rowstore.ErrUnavailable, err)
	}
	return height, nil
}
