// Package adapters bridges the bot's append port onto the AMQP pipeline.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"spendbot/internal/amqp"
	"spendbot/internal/core"
)

// QueueAppender implements bot.Appender by publishing the expense row to
// AMQP instead of writing the store directly. The worker performs the actual
// append, so chat replies stay fast when the store is slow.
type QueueAppender struct {
	client *amqp.Client
}

func NewQueueAppender(client *amqp.Client) *QueueAppender {
	return &QueueAppender{client: client}
}

func (a *QueueAppender) AppendExpense(ctx context.Context, item string, price decimal.Decimal, category string, now time.Time) error {
	msg := amqp.NewExpenseAppendMessage(
		now.Format(core.DateLayout),
		now.Format(core.TimeLayout),
		item,
		price.String(),
		category,
	)
	if err := a.client.PublishExpenseAppend(ctx, msg); err != nil {
		return fmt.Errorf("queue expense: %w", err)
	}
	return nil
}
