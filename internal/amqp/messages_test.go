package amqp

import (
	"testing"

	"spendbot/internal/rowstore"
)

func TestExpenseAppendMessageRoundTrip(t *testing.T) {
	msg := NewExpenseAppendMessage("2026-08-30", "12:30:00", "Coffee", "10", "Food")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ExpenseAppendMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Item != "Coffee" || got.Price != "10" || got.Category != "Food" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestExpenseAppendMessageRow(t *testing.T) {
	msg := NewExpenseAppendMessage("2026-08-30", "12:30:00", "Coffee", "10", "")
	row := msg.Row()
	if len(row) != rowstore.RowWidth {
		t.Fatalf("unexpected row width: %v", row)
	}
	want := []string{"2026-08-30", "12:30:00", "Coffee", "10", ""}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("cell %d: got %q, want %q", i, row[i], want[i])
		}
	}
}

func TestExpenseAppendMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExpenseAppendMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
