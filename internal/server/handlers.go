package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/ledger"
	"github.com/subtrack-dev/subtrack/internal/model"
	"github.com/subtrack-dev/subtrack/internal/recur"
	"github.com/subtrack-dev/subtrack/internal/store"
)

// handleImport runs the detection engine over posted ledger text. The
// engine fails soft, so malformed ledger content yields an empty
// suggestion list, never a 500.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CSV string `json:"csv"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CSV == "" {
		writeError(w, http.StatusBadRequest, "csv is required")
		return
	}

	suggestions := recur.Detect(ledger.Parse(req.CSV))
	if suggestions == nil {
		suggestions = []model.SubscriptionSuggestion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.List(r.Context(), s.owner(r))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list subscriptions")
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}
	if subs == nil {
		subs = []model.Subscription{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": subs})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input model.SubscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if problems := input.Validate(); len(problems) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "validation failed", problems)
		return
	}

	sub, err := s.store.Create(r.Context(), s.owner(r), input)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create subscription")
		writeError(w, http.StatusInternalServerError, "failed to create subscription")
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.Get(r.Context(), s.owner(r), r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err, "Failed to get subscription")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

var patchDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Merchant     *string          `json:"merchant"`
		Amount       *decimal.Decimal `json:"amount"`
		Period       *model.Period    `json:"period"`
		NextBillDate *string          `json:"nextBillDate"`
		Notes        *string          `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	if req.Amount != nil && !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Period != nil && *req.Period != model.PeriodMonthly && *req.Period != model.PeriodAnnual {
		writeError(w, http.StatusBadRequest, "period must be 'monthly' or 'annual'")
		return
	}
	if req.NextBillDate != nil && !patchDatePattern.MatchString(*req.NextBillDate) {
		writeError(w, http.StatusBadRequest, "nextBillDate must be YYYY-MM-DD")
		return
	}

	patch := store.UpdatePatch{
		Merchant:     req.Merchant,
		Amount:       req.Amount,
		Period:       req.Period,
		NextBillDate: req.NextBillDate,
		Notes:        req.Notes,
	}
	sub, err := s.store.Update(r.Context(), s.owner(r), r.PathValue("id"), patch)
	if err != nil {
		s.respondStoreError(w, err, "Failed to update subscription")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), s.owner(r), r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err, "Failed to delete subscription")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.Status != model.StatusActive && req.Status != model.StatusCanceled {
		writeError(w, http.StatusBadRequest, "status must be 'active' or 'canceled'")
		return
	}

	sub, err := s.store.SetStatus(r.Context(), s.owner(r), r.PathValue("id"), req.Status)
	if err != nil {
		s.respondStoreError(w, err, "Failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.List(r.Context(), s.owner(r))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to compute totals")
		writeError(w, http.StatusInternalServerError, "failed to compute totals")
		return
	}
	writeJSON(w, http.StatusOK, model.ComputeTotals(subs))
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.log.Error().Err(err).Msg(logMsg)
	writeError(w, http.StatusInternalServerError, "internal error")
}
