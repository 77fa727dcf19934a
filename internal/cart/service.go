package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"labelia/internal/model"

	"github.com/rs/zerolog"
)

// promotionTTL bounds how long an applied promotion survives without the
// session touching its cart. Active sessions refresh their entry on every
// load; abandoned sessions drop out of memory after this idle window.
const promotionTTL = 12 * time.Hour

type promotionEntry struct {
	promo    *AppliedPromotion
	lastSeen time.Time
}

// Service owns the carts of all live sessions. Every mutation goes through
// the pure Cart reducer and is then persisted: a non-empty cart overwrites
// its slot, an empty cart deletes the slot so a later load can never
// resurrect stale items.
//
// Applied promotions are deliberately kept in memory only. A session that
// is restored from the store starts with discount zero and must revalidate
// its code. Entries for sessions idle past promotionTTL are evicted so
// abandoned carts do not pin memory for the process lifetime.
//
// Concurrent holders of the same session key are last-write-wins on the
// slot; the storefront serves one session per customer and does not merge.
type Service struct {
	store  Store
	logger zerolog.Logger

	mu         sync.Mutex
	promotions map[string]promotionEntry
	now        func() time.Time
}

// NewService creates a cart service on top of the given store.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:      store,
		logger:     logger.With().Str("service", "cart").Logger(),
		promotions: make(map[string]promotionEntry),
		now:        time.Now,
	}
}

// load reads the session's slot into a Cart. An absent slot is an empty
// cart. A corrupt slot is logged and also treated as empty; it is never
// surfaced to the caller.
func (s *Service) load(ctx context.Context, sessionID string) *Cart {
	c := &Cart{}

	data, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("cart slot unreadable, starting empty")
		}
	} else if err := json.Unmarshal(data, &c.Items); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("cart slot corrupt, starting empty")
		c.Items = nil
	}

	s.mu.Lock()
	if e, ok := s.promotions[sessionID]; ok {
		if s.now().Sub(e.lastSeen) > promotionTTL {
			delete(s.promotions, sessionID)
		} else {
			e.lastSeen = s.now()
			s.promotions[sessionID] = e
			c.Promotion = e.promo
		}
	}
	s.mu.Unlock()

	return c
}

// sweepPromotionsLocked drops promotion entries whose session has been idle
// past the TTL. Caller holds s.mu.
func (s *Service) sweepPromotionsLocked() {
	cutoff := s.now().Add(-promotionTTL)
	for sessionID, e := range s.promotions {
		if e.lastSeen.Before(cutoff) {
			delete(s.promotions, sessionID)
		}
	}
}

// persist writes the cart's line items back to the session's slot, or
// deletes the slot when the cart is empty.
func (s *Service) persist(ctx context.Context, sessionID string, c *Cart) error {
	if c.Empty() {
		if err := s.store.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to clear cart slot: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("failed to serialise cart: %w", err)
	}
	if err := s.store.Put(ctx, sessionID, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Get returns the current cart view for the session.
func (s *Service) Get(ctx context.Context, sessionID string) View {
	return s.load(ctx, sessionID).Snapshot()
}

// AddItem merges one unit of the given product variant into the session's
// cart. The colour and size must be offered by the product.
func (s *Service) AddItem(ctx context.Context, sessionID string, product model.Product, color, size string) (View, error) {
	if !product.HasColor(color) || !product.HasSize(size) {
		return View{}, model.ErrInvalidVariant
	}

	c := s.load(ctx, sessionID)
	c.Add(product, color, size)

	if err := s.persist(ctx, sessionID, c); err != nil {
		return View{}, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("product_id", product.ID).
		Str("color", color).
		Str("size", size).
		Int("total_items", c.TotalItems()).
		Msg("item added to cart")

	return c.Snapshot(), nil
}

// UpdateQuantity overwrites the quantity of a line item; zero or less
// removes it. Updating an absent line item is a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID, color, size string, quantity int) (View, error) {
	c := s.load(ctx, sessionID)
	c.SetQuantity(productID, color, size, quantity)

	if err := s.persist(ctx, sessionID, c); err != nil {
		return View{}, err
	}

	return c.Snapshot(), nil
}

// RemoveItem deletes a line item. Removing an absent line item is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, color, size string) (View, error) {
	c := s.load(ctx, sessionID)
	c.Remove(productID, color, size)

	if err := s.persist(ctx, sessionID, c); err != nil {
		return View{}, err
	}

	return c.Snapshot(), nil
}

// Clear empties the session's cart, drops any applied promotion and
// deletes the slot.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.promotions, sessionID)
	s.mu.Unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart slot: %w", err)
	}

	s.logger.Debug().Str("session_id", sessionID).Msg("cart cleared")
	return nil
}

// ApplyPromotion attaches a validated promotion to the session. Passing
// nil removes any applied promotion.
func (s *Service) ApplyPromotion(ctx context.Context, sessionID string, promo *AppliedPromotion) View {
	s.mu.Lock()
	if promo == nil {
		delete(s.promotions, sessionID)
	} else {
		s.promotions[sessionID] = promotionEntry{promo: promo, lastSeen: s.now()}
	}
	s.sweepPromotionsLocked()
	s.mu.Unlock()

	if promo != nil {
		s.logger.Debug().
			Str("session_id", sessionID).
			Str("code", promo.Code).
			Msg("promotion applied to cart")
	}

	return s.load(ctx, sessionID).Snapshot()
}
