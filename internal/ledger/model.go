package ledger

import "time"

// State is where a user is in the shift conversation.
type State int

const (
	AwaitingShiftStart State = iota
	Menu
	AwaitingItemSelection
	AwaitingExpenseEntry
	ShiftClosed
)

func (s State) String() string {
	switch s {
	case AwaitingShiftStart:
		return "awaiting_shift_start"
	case Menu:
		return "menu"
	case AwaitingItemSelection:
		return "awaiting_item_selection"
	case AwaitingExpenseEntry:
		return "awaiting_expense_entry"
	case ShiftClosed:
		return "shift_closed"
	}
	return "unknown"
}

// Session is one user's shift: conversation state plus the ledger.
type Session struct {
	UserID   string
	ShiftID  string
	State    State
	OpenedAt time.Time
	Sales    []Sale
	Expenses []Expense
}

type Sale struct {
	Item      string `json:"item"`
	UnitPrice int64  `json:"unit_price"`
}

type Expense struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}
