package shift

import (
	"fmt"
	"strings"

	"github.com/susu3304/posbot/internal/ledger"
)

// Summary is a point-in-time view of one shift's ledger.
type Summary struct {
	ShiftID       string           `json:"shift_id"`
	State         string           `json:"state"`
	Currency      string           `json:"currency"`
	Sales         []ledger.Sale    `json:"sales"`
	Expenses      []ledger.Expense `json:"expenses"`
	TotalSales    int64            `json:"total_sales"`
	TotalExpenses int64            `json:"total_expenses"`
}

func NewSummary(sess *ledger.Session, currency string) Summary {
	snap := sess.Snapshot()
	if snap.Sales == nil {
		snap.Sales = []ledger.Sale{}
	}
	if snap.Expenses == nil {
		snap.Expenses = []ledger.Expense{}
	}
	return Summary{
		ShiftID:       snap.ShiftID,
		State:         snap.State.String(),
		Currency:      currency,
		Sales:         snap.Sales,
		Expenses:      snap.Expenses,
		TotalSales:    sess.TotalSales(),
		TotalExpenses: sess.TotalExpenses(),
	}
}

// String renders the summary in recording order.
func (s Summary) String() string {
	var b strings.Builder
	b.WriteString("Sales:\n")
	for _, sale := range s.Sales {
		fmt.Fprintf(&b, "%s: %d %s\n", sale.Item, sale.UnitPrice, s.Currency)
	}
	fmt.Fprintf(&b, "Total Sales: %d %s\n\nExpenses:\n", s.TotalSales, s.Currency)
	for _, e := range s.Expenses {
		fmt.Fprintf(&b, "%s: %d %s\n", e.Description, e.Amount, s.Currency)
	}
	fmt.Fprintf(&b, "Total Expenses: %d %s", s.TotalExpenses, s.Currency)
	return b.String()
}
