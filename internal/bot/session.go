// Package bot parses inbound chat messages, enforces the caller allow-list
// and dispatches commands to the ledger and the category registry.
package bot

import "sync"

// DefaultDivider separates the item label from the price in an expense
// message until the session overrides it.
const DefaultDivider = '$'

type session struct {
	divider         rune
	pendingCategory string
}

// Sessions holds per-chat state: the divider symbol and the category picked
// for the next expense. State is in-memory only and resets on restart,
// keeping divider changes scoped to one chat instead of the whole process.
type Sessions struct {
	mu     sync.Mutex
	byChat map[int64]*session
}

func NewSessions() *Sessions {
	return &Sessions{byChat: make(map[int64]*session)}
}

func (s *Sessions) get(chatID int64) *session {
	if sess, ok := s.byChat[chatID]; ok {
		return sess
	}
	sess := &session{divider: DefaultDivider}
	s.byChat[chatID] = sess
	return sess
}

// Divider returns the chat's divider symbol, defaulting to '$'.
func (s *Sessions) Divider(chatID int64) rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(chatID).divider
}

func (s *Sessions) SetDivider(chatID int64, divider rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(chatID).divider = divider
}

// PendingCategory returns the category picked for the chat's next expense
// without clearing it.
func (s *Sessions) PendingCategory(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(chatID).pendingCategory
}

func (s *Sessions) SetPendingCategory(chatID int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(chatID).pendingCategory = name
}

// ClearPendingCategory drops the picked category once an expense used it.
func (s *Sessions) ClearPendingCategory(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(chatID).pendingCategory = ""
}
