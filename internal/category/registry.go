// Package category maintains the category registry: a derived set of names
// scattered across the category column of the row store, where a single cell
// may hold a comma-joined list.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"spendbot/internal/core"
	"spendbot/internal/rowstore"
)

var (
	// ErrExists is returned by Add for a case-insensitive duplicate.
	ErrExists = errors.New("category already exists")
	// ErrNotFound is returned by Remove and Rename when no cell holds the name.
	ErrNotFound = errors.New("category not found")
)

// Registry runs add/remove/rename/list over the category column. Every
// operation re-reads the column fresh; there is no cached registry state, so
// two mutations in quick succession are not serialized against each other.
type Registry struct {
	store rowstore.Store
}

func New(store rowstore.Store) *Registry {
	return &Registry{store: store}
}

// List returns the sorted unique category names across all cells. The
// header cell is not a registry entry.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	col, err := r.store.ReadColumn(ctx, rowstore.ColCategory)
	if err != nil {
		return nil, fmt.Errorf("read category column: %w", err)
	}
	seen := map[string]struct{}{}
	var out []string
	for _, cell := range skipHeader(col) {
		for _, tok := range core.SplitCategories(cell) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out, nil
}

// skipHeader drops the first cell of a column read, which belongs to the
// header row every backend seeds.
func skipHeader(col []string) []string {
	if len(col) == 0 {
		return col
	}
	return col[1:]
}

// Add registers a new category name at the end of the category column, one
// cell past the last non-empty one. Existence is checked case-insensitively
// across every comma-split token; stored names preserve their casing.
func (r *Registry) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	col, err := r.store.ReadColumn(ctx, rowstore.ColCategory)
	if err != nil {
		return fmt.Errorf("read category column: %w", err)
	}
	last := 0
	for i, cell := range col {
		if i > 0 {
			for _, tok := range core.SplitCategories(cell) {
				if strings.EqualFold(tok, name) {
					return fmt.Errorf("%w: %s", ErrExists, name)
				}
			}
		}
		if strings.TrimSpace(cell) != "" {
			last = i + 1
		}
	}
	if err := r.store.WriteCell(ctx, last+1, rowstore.ColCategory, name); err != nil {
		return fmt.Errorf("write category cell: %w", err)
	}
	slog.InfoContext(ctx, "Category added", "name", name, "row", last+1)
	return nil
}

// Remove deletes name from the first cell whose token list contains it,
// matched exactly. The remaining tokens are rejoined with ", " and written
// back over the full cell.
func (r *Registry) Remove(ctx context.Context, name string) error {
	return r.rewrite(ctx, name, func(tokens []string, at int) []string {
		return append(tokens[:at], tokens[at+1:]...)
	})
}

// Rename substitutes newName for oldName within the first cell containing the
// exact old name.
func (r *Registry) Rename(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	return r.rewrite(ctx, oldName, func(tokens []string, at int) []string {
		tokens[at] = newName
		return tokens
	})
}

// rewrite scans cells top to bottom for the first one containing name as an
// exact token, applies edit to its token list and writes the cell back.
// Duplicates of a name in later cells are left untouched.
func (r *Registry) rewrite(ctx context.Context, name string, edit func(tokens []string, at int) []string) error {
	name = strings.TrimSpace(name)
	col, err := r.store.ReadColumn(ctx, rowstore.ColCategory)
	if err != nil {
		return fmt.Errorf("read category column: %w", err)
	}
	for i := 1; i < len(col); i++ {
		cell := col[i]
		if strings.TrimSpace(cell) == "" {
			continue
		}
		tokens := core.SplitCategories(cell)
		at := -1
		for j, tok := range tokens {
			if tok == name {
				at = j
				break
			}
		}
		if at < 0 {
			continue
		}
		updated := strings.Join(edit(tokens, at), ", ")
		if err := r.store.WriteCell(ctx, i+1, rowstore.ColCategory, updated); err != nil {
			return fmt.Errorf("write category cell: %w", err)
		}
		slog.InfoContext(ctx, "Category cell updated", "row", i+1, "cell", updated)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
