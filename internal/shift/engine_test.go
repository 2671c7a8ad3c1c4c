package shift

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susu3304/posbot/internal/catalog"
	"github.com/susu3304/posbot/internal/ledger"
)

func bakery(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Item{
		{Name: "Cake", Price: 5000},
		{Name: "Bread", Price: 2000},
	})
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T) (*Engine, *ledger.Store) {
	t.Helper()
	store := ledger.NewStore()
	return NewEngine(store, bakery(t), Options{}), store
}

func state(t *testing.T, store *ledger.Store, userID string) ledger.State {
	t.Helper()
	sess, ok := store.Get(userID)
	require.True(t, ok)
	return sess.State
}

// openShift drives a user to the main menu.
func openShift(t *testing.T, e *Engine, userID string) {
	t.Helper()
	e.HandleIntent(userID, Start())
	r := e.HandleIntent(userID, MenuChoice(LabelOpenShift))
	require.Equal(t, HintMenu, r.Hint)
}

func sell(t *testing.T, e *Engine, userID, item string) Response {
	t.Helper()
	e.HandleIntent(userID, MenuChoice(LabelMakeSale))
	return e.HandleIntent(userID, FreeText(item))
}

func spend(t *testing.T, e *Engine, userID, entry string) Response {
	t.Helper()
	e.HandleIntent(userID, MenuChoice(LabelAddExpense))
	return e.HandleIntent(userID, FreeText(entry))
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      ledger.State
		in        Intent
		wantState ledger.State
		wantHint  Hint
		wantText  string
	}{
		{"open shift", ledger.AwaitingShiftStart, MenuChoice(LabelOpenShift), ledger.Menu, HintMenu, msgMenu},
		{"make sale", ledger.Menu, MenuChoice(LabelMakeSale), ledger.AwaitingItemSelection, HintCatalog, msgSelectItem},
		{"add expense", ledger.Menu, MenuChoice(LabelAddExpense), ledger.AwaitingExpenseEntry, HintFreeText, msgExpensePrompt},
		{"view summary", ledger.Menu, MenuChoice(LabelViewSummary), ledger.Menu, HintMenu, "Total Sales: 0 RWF"},
		{"close shift", ledger.Menu, MenuChoice(LabelCloseShift), ledger.ShiftClosed, HintStart, msgGoodbye},
		{"known item", ledger.AwaitingItemSelection, FreeText("Cake"), ledger.Menu, HintMenu, "Cake sold for 5000 RWF."},
		{"unknown item re-prompts", ledger.AwaitingItemSelection, FreeText("Pie"), ledger.AwaitingItemSelection, HintCatalog, msgUnknownItem},
		{"expense", ledger.AwaitingExpenseEntry, FreeText("Sugar 1500"), ledger.Menu, HintMenu, "Added expense: Sugar - 1500 RWF"},
		{"bad expense", ledger.AwaitingExpenseEntry, FreeText("Sugar"), ledger.Menu, HintMenu, msgFormatError},
		{"text in menu re-emits menu", ledger.Menu, FreeText("hello"), ledger.Menu, HintMenu, msgMenu},
		{"menu choice while selecting item", ledger.AwaitingItemSelection, MenuChoice(LabelViewSummary), ledger.AwaitingItemSelection, HintCatalog, msgSelectItem},
		{"open shift twice", ledger.Menu, MenuChoice(LabelOpenShift), ledger.Menu, HintMenu, msgMenu},
		{"sale before opening", ledger.AwaitingShiftStart, MenuChoice(LabelMakeSale), ledger.AwaitingShiftStart, HintOpenShift, "Welcome to RoyalBakes POS"},
		{"closed ignores menu", ledger.ShiftClosed, MenuChoice(LabelMakeSale), ledger.ShiftClosed, HintStart, msgShiftClosed},
		{"closed ignores text", ledger.ShiftClosed, FreeText("Cake"), ledger.ShiftClosed, HintStart, msgShiftClosed},
		{"cancel from menu", ledger.Menu, Cancel(), ledger.ShiftClosed, HintStart, msgGoodbye},
		{"cancel while entering expense", ledger.AwaitingExpenseEntry, Cancel(), ledger.ShiftClosed, HintStart, msgGoodbye},
		{"start from closed", ledger.ShiftClosed, Start(), ledger.AwaitingShiftStart, HintOpenShift, "Welcome to RoyalBakes POS. Tap to begin:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := newTestEngine(t)
			store.GetOrCreate("u1").State = tt.from

			r := e.HandleIntent("u1", tt.in)

			assert.Equal(t, tt.wantState, state(t, store, "u1"))
			assert.Equal(t, tt.wantHint, r.Hint)
			assert.Contains(t, r.Text, tt.wantText)
		})
	}
}

func TestResponseOptions(t *testing.T) {
	e, _ := newTestEngine(t)

	r := e.HandleIntent("u1", Start())
	assert.Equal(t, []string{LabelOpenShift}, r.Options)

	r = e.HandleIntent("u1", MenuChoice(LabelOpenShift))
	assert.Equal(t, []string{LabelMakeSale, LabelAddExpense, LabelViewSummary, LabelCloseShift}, r.Options)

	r = e.HandleIntent("u1", MenuChoice(LabelMakeSale))
	assert.Equal(t, []string{"Cake", "Bread"}, r.Options)

	r = e.HandleIntent("u1", Cancel())
	assert.Empty(t, r.Options)
}

func TestBakeryScenario(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")
	sell(t, e, "u1", "Cake")
	sell(t, e, "u1", "Bread")

	r := e.HandleIntent("u1", MenuChoice(LabelViewSummary))

	assert.Contains(t, r.Text, "Cake: 5000 RWF")
	assert.Contains(t, r.Text, "Bread: 2000 RWF")
	assert.Contains(t, r.Text, "Total Sales: 7000 RWF")
	assert.Contains(t, r.Text, "Total Expenses: 0 RWF")
	assert.True(t, strings.HasSuffix(r.Text, msgMenu))
}

func TestSummaryKeepsRecordingOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")
	sell(t, e, "u1", "Bread")
	spend(t, e, "u1", "Bag of Sugar 1500")
	sell(t, e, "u1", "Cake")
	spend(t, e, "u1", "Milk 800")
	sell(t, e, "u1", "Bread")

	s, ok := e.Summary("u1")
	require.True(t, ok)

	want := strings.Join([]string{
		"Sales:",
		"Bread: 2000 RWF",
		"Cake: 5000 RWF",
		"Bread: 2000 RWF",
		"Total Sales: 9000 RWF",
		"",
		"Expenses:",
		"Bag of Sugar: 1500 RWF",
		"Milk: 800 RWF",
		"Total Expenses: 2300 RWF",
	}, "\n")
	assert.Equal(t, want, s.String())
	assert.Equal(t, int64(9000), s.TotalSales)
	assert.Equal(t, int64(2300), s.TotalExpenses)
}

func TestViewSummaryIsIdempotent(t *testing.T) {
	e, store := newTestEngine(t)
	openShift(t, e, "u1")
	sell(t, e, "u1", "Cake")
	spend(t, e, "u1", "Sugar 1500")

	first := e.HandleIntent("u1", MenuChoice(LabelViewSummary))
	before := mustSnapshot(t, store, "u1")
	second := e.HandleIntent("u1", MenuChoice(LabelViewSummary))

	assert.Equal(t, first, second)
	assert.Equal(t, before, mustSnapshot(t, store, "u1"))
}

func mustSnapshot(t *testing.T, store *ledger.Store, userID string) ledger.Session {
	t.Helper()
	sess, ok := store.Get(userID)
	require.True(t, ok)
	return sess.Snapshot()
}

func TestStartResetsLedger(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")
	sell(t, e, "u1", "Cake")
	spend(t, e, "u1", "Sugar 1500")

	openShift(t, e, "u1")
	r := e.HandleIntent("u1", MenuChoice(LabelViewSummary))

	assert.Contains(t, r.Text, "Total Sales: 0 RWF")
	assert.Contains(t, r.Text, "Total Expenses: 0 RWF")
	assert.NotContains(t, r.Text, "Cake")
}

func TestSummaryCarriesShiftID(t *testing.T) {
	e, store := newTestEngine(t)
	openShift(t, e, "u1")

	first, ok := e.Summary("u1")
	require.True(t, ok)
	assert.Equal(t, mustSnapshot(t, store, "u1").ShiftID, first.ShiftID)
	assert.NotEmpty(t, first.ShiftID)
	assert.NotContains(t, first.String(), first.ShiftID)

	openShift(t, e, "u1")
	second, ok := e.Summary("u1")
	require.True(t, ok)
	assert.NotEqual(t, first.ShiftID, second.ShiftID)
}

func TestCloseKeepsLedgerUntilStart(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")
	sell(t, e, "u1", "Cake")
	e.HandleIntent("u1", MenuChoice(LabelCloseShift))

	s, ok := e.Summary("u1")
	require.True(t, ok)
	assert.Equal(t, "shift_closed", s.State)
	assert.Equal(t, int64(5000), s.TotalSales)
}

func TestSalePriceIsCopiedAtRecordTime(t *testing.T) {
	store := ledger.NewStore()
	e := NewEngine(store, bakery(t), Options{})
	openShift(t, e, "u1")
	sell(t, e, "u1", "Cake")

	repriced, err := catalog.New([]catalog.Item{{Name: "Cake", Price: 9999}, {Name: "Bread", Price: 1}})
	require.NoError(t, err)
	later := NewEngine(store, repriced, Options{})
	sell(t, later, "u1", "Cake")

	s, ok := later.Summary("u1")
	require.True(t, ok)
	assert.Equal(t, []ledger.Sale{{Item: "Cake", UnitPrice: 5000}, {Item: "Cake", UnitPrice: 9999}}, s.Sales)
	assert.Equal(t, int64(14999), s.TotalSales)
}

func TestBadExpenseAppendsNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")
	for _, entry := range []string{"Sugar", "1500", "   ", "Sugar -5", "Sugar 15.5"} {
		r := spend(t, e, "u1", entry)
		assert.Contains(t, r.Text, msgFormatError, entry)
	}
	s, _ := e.Summary("u1")
	assert.Empty(t, s.Expenses)
}

func TestUnknownItemThenValidItem(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")
	e.HandleIntent("u1", MenuChoice(LabelMakeSale))
	e.HandleIntent("u1", FreeText("Pie"))
	r := e.HandleIntent("u1", FreeText(" Bread "))

	assert.Equal(t, HintMenu, r.Hint)
	s, _ := e.Summary("u1")
	assert.Equal(t, []ledger.Sale{{Item: "Bread", UnitPrice: 2000}}, s.Sales)
}

func TestIntentWithoutSessionCreatesOne(t *testing.T) {
	e, store := newTestEngine(t)
	assert.False(t, e.InShift("u1"))

	r := e.HandleIntent("u1", MenuChoice(LabelOpenShift))

	assert.Equal(t, HintMenu, r.Hint)
	assert.Equal(t, ledger.Menu, state(t, store, "u1"))
	assert.True(t, e.InShift("u1"))

	e.HandleIntent("u1", Cancel())
	assert.False(t, e.InShift("u1"))
}

func TestSummaryWithoutSession(t *testing.T) {
	e, _ := newTestEngine(t)
	_, ok := e.Summary("nobody")
	assert.False(t, ok)
	assert.Zero(t, e.Sessions())
}

func TestUsersDoNotSeeEachOther(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "alice")
	openShift(t, e, "bob")
	sell(t, e, "alice", "Cake")
	sell(t, e, "bob", "Bread")
	sell(t, e, "bob", "Bread")

	a, _ := e.Summary("alice")
	b, _ := e.Summary("bob")
	assert.Equal(t, int64(5000), a.TotalSales)
	assert.Equal(t, int64(4000), b.TotalSales)
	assert.NotContains(t, a.String(), "Bread")
	assert.NotContains(t, b.String(), "Cake")
}

func TestConfiguredCurrencyAndShop(t *testing.T) {
	e := NewEngine(ledger.NewStore(), bakery(t), Options{Currency: "KES", ShopName: "Corner"})
	r := e.HandleIntent("u1", Start())
	assert.Equal(t, "Welcome to Corner POS. Tap to begin:", r.Text)

	e.HandleIntent("u1", MenuChoice(LabelOpenShift))
	r = sell(t, e, "u1", "Cake")
	assert.Contains(t, r.Text, "Cake sold for 5000 KES.")
}

func TestConcurrentIntentsFromOneUser(t *testing.T) {
	e, _ := newTestEngine(t)
	openShift(t, e, "u1")

	// Interleaved workers can steal each other's prompt; only confirmed
	// writes are counted.
	const workers, perWorker = 6, 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				e.HandleIntent("u1", MenuChoice(LabelAddExpense))
				r := e.HandleIntent("u1", FreeText(fmt.Sprintf("w%d %d", w, i)))
				if strings.HasPrefix(r.Text, "Added expense:") {
					mu.Lock()
					confirmed++
					mu.Unlock()
				}
			}
		}(w)
	}
	wg.Wait()

	s, ok := e.Summary("u1")
	require.True(t, ok)
	assert.Len(t, s.Expenses, confirmed)
	assert.Positive(t, confirmed)
}

func TestConcurrentUsers(t *testing.T) {
	e, _ := newTestEngine(t)
	const users, sales = 10, 20

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			e.HandleIntent(id, Start())
			e.HandleIntent(id, MenuChoice(LabelOpenShift))
			for i := 0; i < sales; i++ {
				e.HandleIntent(id, MenuChoice(LabelMakeSale))
				e.HandleIntent(id, FreeText("Bread"))
			}
		}(fmt.Sprintf("user-%d", u))
	}
	wg.Wait()

	for u := 0; u < users; u++ {
		s, ok := e.Summary(fmt.Sprintf("user-%d", u))
		require.True(t, ok)
		assert.Len(t, s.Sales, sales)
		assert.Equal(t, int64(sales*2000), s.TotalSales)
	}
}
