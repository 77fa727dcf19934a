// Package checkout converts a session cart plus contact details into a
// persisted order, then triggers receipt generation and cart teardown.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"labelia/internal/cart"
	"labelia/internal/model"
	"labelia/internal/receipt"

	"github.com/rs/zerolog"
)

// Contact is the customer form accompanying a checkout. All four fields
// are required.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ValidationError reports a missing contact field. It never reaches the
// order store: validation happens before any network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// OrderPlacer persists a finalised order submission.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)
}

// Result is the outcome of a successful checkout.
type Result struct {
	Order       *model.Order `json:"order"`
	OrderNumber string       `json:"orderNumber"`
	ReceiptPath string       `json:"-"`
	Message     string       `json:"message"`
}

// Orchestrator runs the single-pass checkout flow. Each session moves
// Idle -> Submitting -> back to Idle; a session already Submitting rejects
// re-entry, and a failed submission leaves the cart and form untouched so
// the customer can retry.
type Orchestrator struct {
	carts    *cart.Service
	orders   OrderPlacer
	receipts receipt.Renderer
	logger   zerolog.Logger

	mu         sync.Mutex
	submitting map[string]struct{}
}

// NewOrchestrator creates a checkout orchestrator.
func NewOrchestrator(carts *cart.Service, orders OrderPlacer, receipts receipt.Renderer, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		carts:      carts,
		orders:     orders,
		receipts:   receipts,
		logger:     logger.With().Str("component", "checkout").Logger(),
		submitting: make(map[string]struct{}),
	}
}

func (o *Orchestrator) enter(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.submitting[sessionID]; busy {
		return model.ErrCheckoutInProgress
	}
	o.submitting[sessionID] = struct{}{}
	return nil
}

func (o *Orchestrator) leave(sessionID string) {
	o.mu.Lock()
	delete(o.submitting, sessionID)
	o.mu.Unlock()
}

func validateContact(c Contact) error {
	switch {
	case c.Name == "":
		return &ValidationError{Field: "name"}
	case c.Email == "":
		return &ValidationError{Field: "email"}
	case c.Address == "":
		return &ValidationError{Field: "address"}
	case c.Phone == "":
		return &ValidationError{Field: "phone"}
	}
	return nil
}

// Submit runs one order attempt for the session.
//
// On success the cart slot is gone and the receipt artifact has been
// requested; a receipt rendering failure is logged but does not undo an
// order that is already persisted. On store failure nothing is cleared and
// the caller may resubmit.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, contact Contact) (*Result, error) {
	view := o.carts.Get(ctx, sessionID)
	if len(view.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	if err := validateContact(contact); err != nil {
		return nil, err
	}

	if err := o.enter(sessionID); err != nil {
		return nil, err
	}
	defer o.leave(sessionID)

	items := make([]model.OrderItem, len(view.Items))
	for i, li := range view.Items {
		items[i] = model.OrderItem{
			Name:     li.Product.Name,
			Price:    li.Product.Price,
			Color:    li.Color,
			Size:     li.Size,
			Quantity: li.Quantity,
		}
	}

	// The persisted total is always the discounted one; the discount is
	// applied before the order reaches the store, not cosmetically.
	req := &model.OrderRequest{
		CustomerName:    contact.Name,
		CustomerEmail:   contact.Email,
		CustomerPhone:   contact.Phone,
		CustomerAddress: contact.Address,
		Items:           items,
		Total:           view.TotalPrice - view.Discount,
	}

	o.logger.Info().
		Str("session_id", sessionID).
		Int("item_count", len(items)).
		Int64("total", req.Total).
		Msg("submitting order")

	order, err := o.orders.CreateOrder(ctx, req)
	if err != nil {
		o.logger.Error().Err(err).Str("session_id", sessionID).Msg("order submission failed")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	orderNumber := OrderNumber(order.ID.String())

	snapshot := &receipt.Snapshot{
		OrderNumber:     orderNumber,
		Date:            order.CreatedAt,
		CustomerName:    contact.Name,
		CustomerEmail:   contact.Email,
		CustomerPhone:   contact.Phone,
		CustomerAddress: contact.Address,
		Items:           receiptItems(items),
		Subtotal:        view.TotalPrice,
		Discount:        view.Discount,
		DiscountLabel:   view.Promotion.Label(),
		Total:           view.TotalPrice - view.Discount,
	}

	receiptPath, err := o.receipts.RenderToFile(ctx, snapshot)
	if err != nil {
		// The order is already persisted; a lost receipt must not fail
		// the checkout.
		o.logger.Warn().
			Err(err).
			Str("order_number", orderNumber).
			Msg("receipt generation failed")
		receiptPath = ""
	}

	if err := o.carts.Clear(ctx, sessionID); err != nil {
		o.logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to clear cart after checkout")
	}

	o.logger.Info().
		Str("session_id", sessionID).
		Str("order_id", order.ID.String()).
		Str("order_number", orderNumber).
		Msg("checkout succeeded")

	return &Result{
		Order:       order,
		OrderNumber: orderNumber,
		ReceiptPath: receiptPath,
		Message:     "Order placed successfully. Payment will be collected on delivery.",
	}, nil
}

func receiptItems(items []model.OrderItem) []receipt.Item {
	out := make([]receipt.Item, len(items))
	for i, it := range items {
		out[i] = receipt.Item{
			Name:     it.Name,
			Price:    it.Price,
			Color:    it.Color,
			Size:     it.Size,
			Quantity: it.Quantity,
		}
	}
	return out
}
