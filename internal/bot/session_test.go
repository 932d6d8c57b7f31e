package bot

import "testing"

func TestSessionsDefaultDivider(t *testing.T) {
	s := NewSessions()
	if got := s.Divider(1); got != '$' {
		t.Fatalf("unexpected default divider: %c", got)
	}
}

func TestSessionsDividerIsPerChat(t *testing.T) {
	s := NewSessions()
	s.SetDivider(1, '#')
	if got := s.Divider(1); got != '#' {
		t.Fatalf("divider not set: %c", got)
	}
	if got := s.Divider(2); got != '$' {
		t.Fatalf("divider leaked across chats: %c", got)
	}
}

func TestSessionsPendingCategory(t *testing.T) {
	s := NewSessions()
	if got := s.PendingCategory(1); got != "" {
		t.Fatalf("unexpected initial category: %q", got)
	}
	s.SetPendingCategory(1, "Food")
	if got := s.PendingCategory(1); got != "Food" {
		t.Fatalf("category not set: %q", got)
	}
	if got := s.PendingCategory(2); got != "" {
		t.Fatalf("category leaked across chats: %q", got)
	}
	s.ClearPendingCategory(1)
	if got := s.PendingCategory(1); got != "" {
		t.Fatalf("category not cleared: %q", got)
	}
}
