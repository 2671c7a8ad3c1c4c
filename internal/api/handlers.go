package api

import (
	"encoding/json"
	"net/http"

	"github.com/susu3304/posbot/internal/catalog"
	"github.com/susu3304/posbot/internal/shift"
)

type intentRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (req intentRequest) intent() (shift.Intent, error) {
	kind, err := shift.ParseIntentKind(req.Type)
	if err != nil {
		return shift.Intent{}, err
	}
	switch kind {
	case shift.IntentStart:
		return shift.Start(), nil
	case shift.IntentCancel:
		return shift.Cancel(), nil
	case shift.IntentMenuChoice:
		return shift.MenuChoice(req.Text), nil
	}
	return shift.FreeText(req.Text), nil
}

// Public handlers
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": a.engine.Sessions(),
	})
}

func (a *API) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Currency string         `json:"currency"`
		Items    []catalog.Item `json:"items"`
	}{
		Currency: a.engine.Currency(),
		Items:    a.engine.Catalog().Items(),
	})
}

// Protected handlers
func (a *API) handleIntent(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req intentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	in, err := req.intent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, a.engine.HandleIntent(claims.UserID, in))
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	summary, ok := a.engine.Summary(claims.UserID)
	if !ok {
		http.Error(w, "no shift started", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
