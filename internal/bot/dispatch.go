package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendbot/internal/category"
	"spendbot/internal/core"
	"spendbot/internal/ledger"
	"spendbot/internal/log"
	"spendbot/internal/rowstore"
)

// Appender records one expense. The direct implementation writes to the row
// store; the queued one publishes to AMQP for the worker to append.
type Appender interface {
	AppendExpense(ctx context.Context, item string, price decimal.Decimal, category string, now time.Time) error
}

// Message is one inbound chat message.
type Message struct {
	ChatID int64
	UserID int64
	Text   string
}

// Dispatcher turns chat messages into replies. Every failure path yields a
// text reply; nothing is silently dropped except row-level parse skips inside
// the ledger.
type Dispatcher struct {
	ledger   *ledger.Service
	appender Appender
	registry *category.Registry
	sessions *Sessions
	allowed  map[int64]struct{}
	logger   *log.Logger
}

func NewDispatcher(svc *ledger.Service, appender Appender, registry *category.Registry, allowedUserIDs []int64, logger *log.Logger) *Dispatcher {
	allowed := make(map[int64]struct{}, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = struct{}{}
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Dispatcher{
		ledger:   svc,
		appender: appender,
		registry: registry,
		sessions: NewSessions(),
		allowed:  allowed,
		logger:   logger.WithComponent(log.ComponentBot),
	}
}

// Sessions exposes the per-chat session state, mainly for tests.
func (d *Dispatcher) Sessions() *Sessions { return d.sessions }

// Handle produces the reply for one inbound message. The allow-list is
// checked here so the ledger and registry stay authorization-agnostic.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) string {
	if _, ok := d.allowed[msg.UserID]; !ok {
		d.logger.WarnContext(ctx, "Unauthorized user", log.FieldUserID, msg.UserID)
		return fmt.Sprintf("Unauthorized access. To get access, ask the bot administrator to add your User ID %d to the ALLOWED_USER_IDS list.", msg.UserID)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return "Send an expense like Coffee" + string(d.sessions.Divider(msg.ChatID)) + "10, or /help for commands."
	}
	if strings.HasPrefix(text, "/") {
		return d.handleCommand(ctx, msg.ChatID, text)
	}
	return d.trackExpense(ctx, msg.ChatID, text)
}

func (d *Dispatcher) handleCommand(ctx context.Context, chatID int64, text string) string {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/start":
		return startReply
	case "/help":
		return helpReply
	case "/day", "/week", "/month":
		period, _ := core.ParsePeriod(strings.TrimPrefix(cmd, "/"))
		return d.summary(ctx, chatID, period, args)
	case "/setdivider":
		return d.setDivider(chatID, args)
	case "/addcat":
		return d.addCategory(ctx, args)
	case "/removecat":
		return d.removeCategory(ctx, args)
	case "/editcat":
		return d.renameCategory(ctx, args)
	case "/categories":
		return d.listCategories(ctx, chatID)
	case "/usecat":
		return d.useCategory(chatID, args)
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

// summary runs a spending query. A trailing integer argument is the top-N
// cutoff; everything before it is the category filter.
func (d *Dispatcher) summary(ctx context.Context, chatID int64, period core.Period, args []string) string {
	topN := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil && n > 0 {
			topN = n
			args = args[:len(args)-1]
		}
	}
	cat := strings.Join(args, " ")

	report, err := d.ledger.Summary(ctx, ledger.SummaryRequest{
		Period:   period,
		Category: cat,
		TopN:     topN,
		Divider:  d.sessions.Divider(chatID),
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "Summary failed",
			log.FieldPeriod, string(period),
			log.FieldCategory, cat,
			log.FieldError, err)
		return "Error fetching data."
	}
	return report
}

func (d *Dispatcher) setDivider(chatID int64, args []string) string {
	if len(args) == 0 {
		return "Please provide a divider symbol. For example: /setdivider #"
	}
	symbol := []rune(args[0])
	if len(args) > 1 || len(symbol) != 1 {
		return "Divider symbol must be a single character."
	}
	d.sessions.SetDivider(chatID, symbol[0])
	return fmt.Sprintf("Divider symbol set to: %c", symbol[0])
}

func (d *Dispatcher) addCategory(ctx context.Context, args []string) string {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "Please provide a category name to add. Example: /addcat Groceries"
	}
	switch err := d.registry.Add(ctx, name); {
	case err == nil:
		return fmt.Sprintf("Category '%s' added.", name)
	case errors.Is(err, category.ErrExists):
		return fmt.Sprintf("Category '%s' already exists.", name)
	default:
		return d.storeFailure(ctx, "addcat", err)
	}
}

func (d *Dispatcher) removeCategory(ctx context.Context, args []string) string {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "Please provide a category name to remove. Example: /removecat Groceries"
	}
	switch err := d.registry.Remove(ctx, name); {
	case err == nil:
		return fmt.Sprintf("Category '%s' removed.", name)
	case errors.Is(err, category.ErrNotFound):
		return fmt.Sprintf("Category '%s' not found.", name)
	default:
		return d.storeFailure(ctx, "removecat", err)
	}
}

func (d *Dispatcher) renameCategory(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return "Please provide the old and new category names. Example: /editcat OldCategory NewCategory"
	}
	oldName := args[0]
	newName := strings.Join(args[1:], " ")
	switch err := d.registry.Rename(ctx, oldName, newName); {
	case err == nil:
		return fmt.Sprintf("Category '%s' updated to '%s'.", oldName, newName)
	case errors.Is(err, category.ErrNotFound):
		return fmt.Sprintf("Category '%s' not found.", oldName)
	default:
		return d.storeFailure(ctx, "editcat", err)
	}
}

func (d *Dispatcher) listCategories(ctx context.Context, chatID int64) string {
	cats, err := d.registry.List(ctx)
	if err != nil {
		return d.storeFailure(ctx, "categories", err)
	}
	if len(cats) == 0 {
		return "No categories defined yet. Use /addcat to add one."
	}
	var b strings.Builder
	b.WriteString("Available categories:\n")
	for _, c := range cats {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\nUse /usecat <name> to tag your next expense.")
	return b.String()
}

func (d *Dispatcher) useCategory(chatID int64, args []string) string {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		d.sessions.ClearPendingCategory(chatID)
		return "Category cleared. Your next expense will have no category."
	}
	d.sessions.SetPendingCategory(chatID, name)
	return fmt.Sprintf("Category '%s' selected. Now send your expense (e.g., Item%cPrice).", name, d.sessions.Divider(chatID))
}

// trackExpense parses "Item<divider>Price" and records it, tagging the
// pending category when one was picked. The pending category is cleared only
// after a successful append.
func (d *Dispatcher) trackExpense(ctx context.Context, chatID int64, text string) string {
	divider := d.sessions.Divider(chatID)
	parts := strings.Split(text, string(divider))
	if len(parts) != 2 {
		return d.formatHint(divider)
	}
	item := strings.TrimSpace(parts[0])
	if item == "" {
		return d.formatHint(divider)
	}
	price, err := core.ParsePrice(parts[1])
	if err != nil {
		return d.formatHint(divider)
	}

	cat := d.sessions.PendingCategory(chatID)
	if err := d.appender.AppendExpense(ctx, item, price, cat, time.Now()); err != nil {
		d.logger.ErrorContext(ctx, "Append expense failed",
			log.FieldItem, item,
			log.FieldError, err)
		if errors.Is(err, rowstore.ErrUnavailable) {
			return "Error fetching data."
		}
		return "An error occurred. Please try again."
	}
	d.sessions.ClearPendingCategory(chatID)

	reply := fmt.Sprintf("Expense tracked: %s - %s%c", item, price.StringFixed(2), divider)
	if cat != "" {
		reply += fmt.Sprintf(" in category '%s'", cat)
	}
	return reply
}

func (d *Dispatcher) formatHint(divider rune) string {
	return fmt.Sprintf("Incorrect format. Please use: Item %cPrice (e.g., Coffee %c10)", divider, divider)
}

func (d *Dispatcher) storeFailure(ctx context.Context, op string, err error) string {
	d.logger.ErrorContext(ctx, "Registry operation failed",
		log.FieldOperation, op,
		log.FieldError, err)
	if errors.Is(err, rowstore.ErrUnavailable) {
		return "Error fetching data."
	}
	return "An error occurred. Please try again."
}

const startReply = `Hi! I am your personal expense tracker bot. I record your spendings in a spreadsheet.

Main functions:
- Track expenses: send messages like Item$Price (e.g., Coffee$10).
- Spending reports: summaries for today, this week, or this month.
- Category management: organize expenses by categories.
- Customizable divider: set your preferred divider symbol (default is $).

Use /help for the full command list.`

const helpReply = `Expense tracker commands:

/day [category] [top] - Spending for today, optionally filtered by category.
/week [category] [top] - Spending for this week.
/month [category] [top] - Spending for this month.
/setdivider <symbol> - Set the divider symbol for prices (default is $).
/addcat <name> - Add a spending category.
/removecat <name> - Remove a spending category.
/editcat <old> <new> - Rename a spending category.
/categories - List categories.
/usecat <name> - Tag your next expense with a category.
Item<divider>Price - Send an expense in this format to track it. Example: Coffee $10
/help - Show this message.`
