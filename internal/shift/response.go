package shift

import "fmt"

// Hint tells the front end what kind of input to offer next.
type Hint int

const (
	HintStart Hint = iota
	HintOpenShift
	HintMenu
	HintCatalog
	HintFreeText
)

var hintNames = map[Hint]string{
	HintStart:     "start",
	HintOpenShift: "open_shift",
	HintMenu:      "menu",
	HintCatalog:   "catalog",
	HintFreeText:  "free_text",
}

func (h Hint) String() string {
	if n, ok := hintNames[h]; ok {
		return n
	}
	return "unknown"
}

func (h Hint) MarshalText() ([]byte, error) {
	n, ok := hintNames[h]
	if !ok {
		return nil, fmt.Errorf("invalid hint %d", int(h))
	}
	return []byte(n), nil
}

// Response is what the engine returns for every intent. Options lists the
// quick replies a front end may render for Hint.
type Response struct {
	Text    string   `json:"text"`
	Hint    Hint     `json:"hint"`
	Options []string `json:"options,omitempty"`
}
