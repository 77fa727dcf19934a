package handler

import (
	"encoding/json"
	"net/http"

	"labelia/internal/cart"
	"labelia/internal/model"
	"labelia/internal/promotion"
	"labelia/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles the session cart HTTP surface. Sessions are opaque
// identifiers minted by the storefront client; the handler never creates
// them.
type CartHandler struct {
	carts    *cart.Service
	products service.ProductService
	resolver *promotion.Resolver
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Service, products service.ProductService, resolver *promotion.Resolver, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		resolver: resolver,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart/{session} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.carts.Get(r.Context(), session))
}

// AddItem handles POST /api/cart/{session}/items requests. The product
// is resolved from the catalogue so the cart snapshots the current name
// and price.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	view, err := h.carts.AddItem(r.Context(), session, *product, req.Color, req.Size)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// UpdateItem handles PUT /api/cart/{session}/items requests. A quantity
// of zero or less removes the line item.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Color     string `json:"color"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	view, err := h.carts.UpdateQuantity(r.Context(), session, req.ProductID, req.Color, req.Size, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/{session}/items requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	view, err := h.carts.RemoveItem(r.Context(), session, req.ProductID, req.Color, req.Size)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Clear handles DELETE /api/cart/{session} requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), session); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyPromotion handles POST /api/cart/{session}/promotion requests.
// The code is validated against the promotion store; a rejection leaves
// the cart untouched and returns 200 with valid=false.
func (h *CartHandler) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "promotion code is required", h.logger)
		return
	}

	result, err := h.resolver.ValidateCode(r.Context(), req.Code)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if !result.Valid {
		writeJSON(w, http.StatusOK, struct {
			Valid   bool      `json:"valid"`
			Message string    `json:"message"`
			Cart    cart.View `json:"cart"`
		}{
			Valid:   false,
			Message: result.Message,
			Cart:    h.carts.Get(r.Context(), session),
		})
		return
	}

	view := h.carts.ApplyPromotion(r.Context(), session, &cart.AppliedPromotion{
		Code:         result.Promotion.Code,
		Description:  result.Promotion.Description,
		Discount:     result.Promotion.Discount,
		IsPercentage: result.Promotion.IsPercentage,
	})

	writeJSON(w, http.StatusOK, struct {
		Valid bool      `json:"valid"`
		Cart  cart.View `json:"cart"`
	}{
		Valid: true,
		Cart:  view,
	})
}

// RemovePromotion handles DELETE /api/cart/{session}/promotion requests.
func (h *CartHandler) RemovePromotion(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.carts.ApplyPromotion(r.Context(), session, nil))
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	session := chi.URLParam(r, "session")
	if session == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "session ID is required", h.logger)
		return "", false
	}
	return session, true
}
