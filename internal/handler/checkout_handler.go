package handler

import (
	"encoding/json"
	"net/http"

	"labelia/internal/checkout"
	"labelia/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles POST /api/checkout/{session} requests.
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	logger       zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(orchestrator *checkout.Orchestrator, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit turns the session's cart into a cash-on-delivery order.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	if session == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "session ID is required", h.logger)
		return
	}

	var contact checkout.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.orchestrator.Submit(r.Context(), session, contact)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
