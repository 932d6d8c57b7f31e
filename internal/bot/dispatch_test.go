package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbot/internal/category"
	"spendbot/internal/core"
	"spendbot/internal/ledger"
	"spendbot/internal/rowstore"
	"spendbot/internal/rowstore/memory"
)

const (
	testChat int64 = 100
	testUser int64 = 42
)

// downStore fails every call with the store-unavailable condition.
type downStore struct{}

func (downStore) ReadAllRows(context.Context) ([][]string, error) {
	return nil, rowstore.ErrUnavailable
}
func (downStore) AppendRow(context.Context, []string) error { return rowstore.ErrUnavailable }
func (downStore) WriteCell(context.Context, int, int, string) error {
	return rowstore.ErrUnavailable
}
func (downStore) ReadColumn(context.Context, int) ([]string, error) {
	return nil, rowstore.ErrUnavailable
}

func newTestDispatcher(store rowstore.Store) *Dispatcher {
	svc := ledger.New(store)
	return NewDispatcher(svc, svc, category.New(store), []int64{testUser}, nil)
}

func send(d *Dispatcher, text string) string {
	return d.Handle(context.Background(), Message{ChatID: testChat, UserID: testUser, Text: text})
}

func TestHandleUnauthorized(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))
	reply := d.Handle(context.Background(), Message{ChatID: testChat, UserID: 999, Text: "/day"})
	assert.Contains(t, reply, "Unauthorized access")
	assert.Contains(t, reply, "999")
}

func TestHandleUnknownCommand(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))
	assert.Contains(t, send(d, "/frobnicate"), "Unknown command")
}

func TestTrackExpenseAndDaySummary(t *testing.T) {
	store := memory.New(nil)
	d := newTestDispatcher(store)

	reply := send(d, "Coffee$10")
	require.Equal(t, "Expense tracked: Coffee - 10.00$", reply)

	reply = send(d, "/day")
	assert.Contains(t, reply, "- Coffee (N/A): 10.00$ (0 days ago)")
	assert.True(t, strings.HasSuffix(reply, "Total for day: 10.00$"), "reply: %q", reply)
}

func TestTrackExpenseBadFormat(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))
	for _, text := range []string{"Coffee", "Coffee$ten", "Coffee$10$20", "$10"} {
		assert.Contains(t, send(d, text), "Incorrect format", "input: %q", text)
	}
}

func TestSummaryTopNAndCategoryArgs(t *testing.T) {
	now := time.Now()
	row := func(item, price, cat string) []string {
		return []string{now.Format(core.DateLayout), now.Format(core.TimeLayout), item, price, cat}
	}
	store := memory.New([][]string{
		rowstore.HeaderRow,
		row("Beer", "5", "Food, Drinks"),
		row("Bread", "2", "Food"),
		row("Steak", "30", "Food"),
	})
	d := newTestDispatcher(store)

	reply := send(d, "/day food 2")
	assert.Contains(t, reply, "Spending for day in food:")
	assert.Contains(t, reply, "Steak")
	assert.Contains(t, reply, "Beer")
	assert.NotContains(t, reply, "Bread")
	assert.True(t, strings.HasSuffix(reply, "Total for day: 37.00$"), "reply: %q", reply)

	reply = send(d, "/day drinks")
	assert.Contains(t, reply, "Beer")
	assert.NotContains(t, reply, "Steak")
}

func TestSummaryStoreDownDegrades(t *testing.T) {
	d := newTestDispatcher(downStore{})
	assert.Equal(t, "Error fetching data.", send(d, "/week"))
}

func TestSetDivider(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))

	assert.Contains(t, send(d, "/setdivider"), "Please provide a divider symbol")
	assert.Equal(t, "Divider symbol must be a single character.", send(d, "/setdivider ##"))
	assert.Equal(t, "Divider symbol set to: #", send(d, "/setdivider #"))

	reply := send(d, "Coffee#10")
	assert.Equal(t, "Expense tracked: Coffee - 10.00#", reply)

	// The divider is per chat: another chat keeps the default.
	other := d.Handle(context.Background(), Message{ChatID: 200, UserID: testUser, Text: "Tea$5"})
	assert.Equal(t, "Expense tracked: Tea - 5.00$", other)
}

func TestCategoryCommands(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))

	assert.Equal(t, "Category 'Groceries' added.", send(d, "/addcat Groceries"))
	// The duplicate check is case-insensitive but the reply echoes the name
	// as the user typed it.
	assert.Equal(t, "Category 'groceries' already exists.", send(d, "/addcat groceries"))

	reply := send(d, "/categories")
	assert.Contains(t, reply, "- Groceries")

	assert.Equal(t, "Category 'Groceries' updated to 'Food'.", send(d, "/editcat Groceries Food"))
	assert.Equal(t, "Category 'Groceries' not found.", send(d, "/removecat Groceries"))
	assert.Equal(t, "Category 'Food' removed.", send(d, "/removecat Food"))
}

func TestCategoryArgValidation(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))
	assert.Contains(t, send(d, "/addcat"), "Example: /addcat Groceries")
	assert.Contains(t, send(d, "/removecat"), "Example: /removecat Groceries")
	assert.Contains(t, send(d, "/editcat OnlyOld"), "Example: /editcat OldCategory NewCategory")
}

func TestUseCategoryTagsNextExpense(t *testing.T) {
	store := memory.New(nil)
	d := newTestDispatcher(store)
	require.Equal(t, "Category 'Food' added.", send(d, "/addcat Food"))

	reply := send(d, "/usecat Food")
	assert.Contains(t, reply, "Category 'Food' selected")

	reply = send(d, "Coffee$10")
	assert.Equal(t, "Expense tracked: Coffee - 10.00$ in category 'Food'", reply)

	// The pending category is consumed by the append.
	reply = send(d, "Tea$5")
	assert.Equal(t, "Expense tracked: Tea - 5.00$", reply)
}

func TestUseCategoryWithoutArgsClears(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))
	send(d, "/usecat Food")
	assert.Contains(t, send(d, "/usecat"), "Category cleared")
	assert.Equal(t, "Expense tracked: Coffee - 10.00$", send(d, "Coffee$10"))
}

func TestStartAndHelp(t *testing.T) {
	d := newTestDispatcher(memory.New(nil))
	assert.Contains(t, send(d, "/start"), "expense tracker bot")
	assert.Contains(t, send(d, "/help"), "/setdivider")
}
