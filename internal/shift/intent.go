package shift

import (
	"errors"
	"strings"
)

// Menu button labels. Front ends send these back as MenuChoice intents.
const (
	LabelOpenShift   = "Open Shift"
	LabelMakeSale    = "Make Sale"
	LabelAddExpense  = "Add Expense"
	LabelViewSummary = "View Summary"
	LabelCloseShift  = "Close Shift"
)

var menuLabels = []string{LabelMakeSale, LabelAddExpense, LabelViewSummary, LabelCloseShift}

var allLabels = append([]string{LabelOpenShift}, menuLabels...)

var ErrUnknownIntent = errors.New("unknown intent type")

type IntentKind int

const (
	IntentStart IntentKind = iota
	IntentCancel
	IntentMenuChoice
	IntentFreeText
)

func (k IntentKind) String() string {
	switch k {
	case IntentStart:
		return "start"
	case IntentCancel:
		return "cancel"
	case IntentMenuChoice:
		return "choice"
	case IntentFreeText:
		return "text"
	}
	return "unknown"
}

// ParseIntentKind is the inverse of IntentKind.String.
func ParseIntentKind(s string) (IntentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return IntentStart, nil
	case "cancel":
		return IntentCancel, nil
	case "choice":
		return IntentMenuChoice, nil
	case "text":
		return IntentFreeText, nil
	}
	return 0, ErrUnknownIntent
}

// Intent is a transport-independent user request. Text carries the button
// label for MenuChoice and the raw message for FreeText.
type Intent struct {
	Kind IntentKind
	Text string
}

func Start() Intent  { return Intent{Kind: IntentStart} }
func Cancel() Intent { return Intent{Kind: IntentCancel} }

func MenuChoice(label string) Intent {
	return Intent{Kind: IntentMenuChoice, Text: canonicalLabel(label)}
}

func FreeText(text string) Intent {
	return Intent{Kind: IntentFreeText, Text: text}
}

// ParseText maps a typed chat message to an intent. Commands and menu labels
// are recognized; anything else is free text.
func ParseText(text string) Intent {
	t := strings.TrimSpace(text)
	switch strings.ToLower(t) {
	case "/start", "!start":
		return Start()
	case "/cancel", "!cancel":
		return Cancel()
	}
	if label, ok := lookupLabel(t); ok {
		return Intent{Kind: IntentMenuChoice, Text: label}
	}
	return FreeText(text)
}

// IsLabel reports whether s is one of the menu button labels.
func IsLabel(s string) bool {
	_, ok := lookupLabel(strings.TrimSpace(s))
	return ok
}

func lookupLabel(s string) (string, bool) {
	for _, l := range allLabels {
		if strings.EqualFold(l, s) {
			return l, true
		}
	}
	return "", false
}

func canonicalLabel(s string) string {
	s = strings.TrimSpace(s)
	if l, ok := lookupLabel(s); ok {
		return l
	}
	return s
}
