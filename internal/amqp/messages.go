package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseAppendMessage carries one expense row to append to the row store.
// The webhook publishes it and the worker consumes it, so a slow or flaky
// store never blocks the chat reply.
type ExpenseAppendMessage struct {
	Date      string    `json:"date"` // YYYY-MM-DD, local date at publish time
	Time      string    `json:"time"` // HH:MM:SS
	Item      string    `json:"item"`
	Price     string    `json:"price"` // plain decimal string
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseAppendMessage(date, timeOfDay, item, price, category string) *ExpenseAppendMessage {
	return &ExpenseAppendMessage{
		Date:      date,
		Time:      timeOfDay,
		Item:      item,
		Price:     price,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Row returns the five positional cells in store order.
func (m *ExpenseAppendMessage) Row() []string {
	return []string{m.Date, m.Time, m.Item, m.Price, m.Category}
}

func (m *ExpenseAppendMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseAppendMessageFromJSON(data []byte) (*ExpenseAppendMessage, error) {
	var msg ExpenseAppendMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
