package shift

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/susu3304/posbot/internal/ledger"
)

var (
	ErrEmptyEntry         = errors.New("expense entry is empty")
	ErrMissingAmount      = errors.New("expense entry does not end with an amount")
	ErrNegativeAmount     = errors.New("expense amount is negative")
	ErrMissingDescription = errors.New("expense entry has no description")
)

// ParseExpense reads "<description...> <amount>". The last whitespace
// separated token is the amount; everything before it is the description.
func ParseExpense(text string) (ledger.Expense, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ledger.Expense{}, ErrEmptyEntry
	}
	last := fields[len(fields)-1]
	amount, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return ledger.Expense{}, fmt.Errorf("%w: %q", ErrMissingAmount, last)
	}
	if amount < 0 {
		return ledger.Expense{}, ErrNegativeAmount
	}
	desc := strings.Join(fields[:len(fields)-1], " ")
	if desc == "" {
		return ledger.Expense{}, ErrMissingDescription
	}
	return ledger.Expense{Description: desc, Amount: amount}, nil
}
