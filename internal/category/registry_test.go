package category

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"spendbot/internal/rowstore"
	"spendbot/internal/rowstore/memory"
)

func seeded() *memory.Store {
	return memory.New([][]string{
		rowstore.HeaderRow,
		{"2026-08-30", "10:00:00", "Beer", "5", "Food, Drinks"},
		{"", "", "", "", "Transport"},
	})
}

func column(t *testing.T, s *memory.Store) []string {
	t.Helper()
	col, err := s.ReadColumn(context.Background(), rowstore.ColCategory)
	if err != nil {
		t.Fatalf("read column: %v", err)
	}
	return col
}

func TestListSortedUnique(t *testing.T) {
	s := memory.New([][]string{
		rowstore.HeaderRow,
		{"", "", "", "", "Transport"},
		{"", "", "", "", "Food, Drinks"},
		{"", "", "", "", "Food"},
	})
	got, err := New(s).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Drinks", "Food", "Transport"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAddWritesAfterLastNonEmptyCell(t *testing.T) {
	s := seeded()
	if err := New(s).Add(context.Background(), "Fuel"); err != nil {
		t.Fatalf("add: %v", err)
	}
	col := column(t, s)
	if col[len(col)-1] != "Fuel" {
		t.Fatalf("unexpected column after add: %v", col)
	}
}

func TestAddDuplicateCaseInsensitive(t *testing.T) {
	s := seeded()
	err := New(s).Add(context.Background(), "drinks")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	// Duplicate inside a comma-joined cell counts too.
	if err := New(s).Add(context.Background(), "  FOOD "); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists for token match, got %v", err)
	}
}

func TestRemoveFromJoinedCell(t *testing.T) {
	s := seeded()
	if err := New(s).Remove(context.Background(), "Food"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	col := column(t, s)
	if col[1] != "Drinks" {
		t.Fatalf("unexpected cell after remove: %q", col[1])
	}
	if col[2] != "Transport" {
		t.Fatalf("later cell should be untouched: %v", col)
	}
}

func TestRemoveIsCaseSensitive(t *testing.T) {
	s := seeded()
	err := New(s).Remove(context.Background(), "food")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong case, got %v", err)
	}
}

func TestRenameWithinJoinedCell(t *testing.T) {
	s := seeded()
	if err := New(s).Rename(context.Background(), "Food", "Groceries"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	col := column(t, s)
	if col[1] != "Groceries, Drinks" {
		t.Fatalf("unexpected cell after rename: %q", col[1])
	}
}

func TestRenameNotFoundLeavesStoreUntouched(t *testing.T) {
	s := seeded()
	before := column(t, s)
	err := New(s).Rename(context.Background(), "Fuel", "Gas")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, column(t, s)) {
		t.Fatalf("store mutated on not-found")
	}
}
