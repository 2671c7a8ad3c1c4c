package shift

import (
	"fmt"
	"log"
	"strings"

	"github.com/susu3304/posbot/internal/catalog"
	"github.com/susu3304/posbot/internal/ledger"
)

const (
	DefaultCurrency = "RWF"
	DefaultShopName = "RoyalBakes"
)

const (
	msgMenu          = "Select an option:"
	msgSelectItem    = "Select item to sell:"
	msgUnknownItem   = "Item not recognized. Please choose from the list:"
	msgExpensePrompt = "Send the expense name and amount (e.g. Sugar 1500):"
	msgFormatError   = "Format not recognized. Use: Sugar 1500"
	msgGoodbye       = "Shift closed. Goodbye!"
	msgShiftClosed   = "This shift is closed. Send /start to open a new one."
)

type Options struct {
	Currency string
	ShopName string
}

// Engine runs the shift conversation for every user. It holds no
// per-user state itself; sessions live in the store.
type Engine struct {
	store    *ledger.Store
	catalog  *catalog.Catalog
	currency string
	shopName string
}

func NewEngine(store *ledger.Store, cat *catalog.Catalog, opts Options) *Engine {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.ShopName == "" {
		opts.ShopName = DefaultShopName
	}
	return &Engine{
		store:    store,
		catalog:  cat,
		currency: opts.Currency,
		shopName: opts.ShopName,
	}
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }
func (e *Engine) Currency() string          { return e.currency }

// Sessions reports how many user sessions are held.
func (e *Engine) Sessions() int { return e.store.Len() }

// InShift reports whether the user has a session that is not closed.
func (e *Engine) InShift(userID string) bool {
	unlock := e.store.Lock(userID)
	defer unlock()

	sess, ok := e.store.Get(userID)
	return ok && sess.State != ledger.ShiftClosed
}

// step handles one (state, intent) pair. It may mutate the session and
// must leave sess.State set to the next state.
type step func(e *Engine, sess *ledger.Session, in Intent) Response

type route struct {
	state ledger.State
	kind  IntentKind
	label string
}

var transitions = map[route]step{
	{ledger.AwaitingShiftStart, IntentMenuChoice, LabelOpenShift}: (*Engine).openShift,
	{ledger.Menu, IntentMenuChoice, LabelMakeSale}:                (*Engine).promptItem,
	{ledger.Menu, IntentMenuChoice, LabelAddExpense}:              (*Engine).promptExpense,
	{ledger.Menu, IntentMenuChoice, LabelViewSummary}:             (*Engine).viewSummary,
	{ledger.Menu, IntentMenuChoice, LabelCloseShift}:              (*Engine).closeShift,
	{ledger.AwaitingItemSelection, IntentFreeText, ""}:            (*Engine).recordSale,
	{ledger.AwaitingExpenseEntry, IntentFreeText, ""}:             (*Engine).recordExpense,
}

// HandleIntent applies one intent to the user's session and returns what to
// show next. Intents for the same user are serialized.
func (e *Engine) HandleIntent(userID string, in Intent) Response {
	unlock := e.store.Lock(userID)
	defer unlock()

	switch in.Kind {
	case IntentStart:
		sess := e.store.Reset(userID)
		log.Printf("shift: user %s started shift %s", userID, sess.ShiftID)
		return e.welcome(sess)
	case IntentCancel:
		return e.closeShift(e.store.GetOrCreate(userID), in)
	}

	sess := e.store.GetOrCreate(userID)
	r := route{state: sess.State, kind: in.Kind}
	if in.Kind == IntentMenuChoice {
		r.label = canonicalLabel(in.Text)
	}
	if fn, ok := transitions[r]; ok {
		return fn(e, sess, in)
	}
	return e.prompt(sess)
}

// Summary returns the user's current ledger without changing any state.
func (e *Engine) Summary(userID string) (Summary, bool) {
	unlock := e.store.Lock(userID)
	defer unlock()

	sess, ok := e.store.Get(userID)
	if !ok {
		return Summary{}, false
	}
	return NewSummary(sess, e.currency), true
}

func (e *Engine) welcome(sess *ledger.Session) Response {
	sess.State = ledger.AwaitingShiftStart
	return Response{
		Text:    fmt.Sprintf("Welcome to %s POS. Tap to begin:", e.shopName),
		Hint:    HintOpenShift,
		Options: []string{LabelOpenShift},
	}
}

func (e *Engine) menu(sess *ledger.Session, lead string) Response {
	sess.State = ledger.Menu
	text := msgMenu
	if lead != "" {
		text = lead + "\n\n" + msgMenu
	}
	return Response{Text: text, Hint: HintMenu, Options: append([]string(nil), menuLabels...)}
}

func (e *Engine) catalogPrompt(sess *ledger.Session, text string) Response {
	sess.State = ledger.AwaitingItemSelection
	return Response{Text: text, Hint: HintCatalog, Options: e.catalog.Names()}
}

// prompt repeats whatever the current state is waiting for.
func (e *Engine) prompt(sess *ledger.Session) Response {
	switch sess.State {
	case ledger.Menu:
		return e.menu(sess, "")
	case ledger.AwaitingItemSelection:
		return e.catalogPrompt(sess, msgSelectItem)
	case ledger.AwaitingExpenseEntry:
		return Response{Text: msgExpensePrompt, Hint: HintFreeText}
	case ledger.ShiftClosed:
		return Response{Text: msgShiftClosed, Hint: HintStart}
	}
	return e.welcome(sess)
}

func (e *Engine) openShift(sess *ledger.Session, _ Intent) Response {
	return e.menu(sess, "")
}

func (e *Engine) promptItem(sess *ledger.Session, _ Intent) Response {
	return e.catalogPrompt(sess, msgSelectItem)
}

func (e *Engine) promptExpense(sess *ledger.Session, _ Intent) Response {
	sess.State = ledger.AwaitingExpenseEntry
	return Response{Text: msgExpensePrompt, Hint: HintFreeText}
}

func (e *Engine) viewSummary(sess *ledger.Session, _ Intent) Response {
	return e.menu(sess, NewSummary(sess, e.currency).String())
}

func (e *Engine) closeShift(sess *ledger.Session, _ Intent) Response {
	if sess.State != ledger.ShiftClosed {
		log.Printf("shift: user %s closed shift %s (%d sales, %d expenses)",
			sess.UserID, sess.ShiftID, len(sess.Sales), len(sess.Expenses))
	}
	sess.State = ledger.ShiftClosed
	return Response{Text: msgGoodbye, Hint: HintStart}
}

func (e *Engine) recordSale(sess *ledger.Session, in Intent) Response {
	name := strings.TrimSpace(in.Text)
	price, ok := e.catalog.Price(name)
	if !ok {
		return e.catalogPrompt(sess, msgUnknownItem)
	}
	sale := sess.AddSale(name, price)
	return e.menu(sess, fmt.Sprintf("%s sold for %d %s.", sale.Item, sale.UnitPrice, e.currency))
}

func (e *Engine) recordExpense(sess *ledger.Session, in Intent) Response {
	parsed, err := ParseExpense(in.Text)
	if err != nil {
		return e.menu(sess, msgFormatError)
	}
	exp := sess.AddExpense(parsed.Description, parsed.Amount)
	return e.menu(sess, fmt.Sprintf("Added expense: %s - %d %s", exp.Description, exp.Amount, e.currency))
}
