// Package promotion resolves user-supplied promotion codes into concrete
// discount rules.
package promotion

import (
	"context"
	"fmt"
	"time"

	"labelia/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Validated is the public shape of a successfully resolved promotion.
type Validated struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Discount     float64   `json:"discount"`
	IsPercentage bool      `json:"isPercentage"`
	Description  string    `json:"description"`
}

// Result is the outcome of validating a code. An unknown or expired code
// is a valid Result with Valid false, not an error: the storefront shows
// the message and lets the customer try again.
type Result struct {
	Valid     bool       `json:"valid"`
	Promotion *Validated `json:"promotion,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// Resolver validates promotion codes against the promotion store.
type Resolver struct {
	repo   repository.PromotionRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewResolver creates a promotion resolver.
func NewResolver(repo repository.PromotionRepository, logger zerolog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("component", "promotion-resolver").Logger(),
	}
}

// ValidateCode checks a code exactly as entered: no trimming and no case
// folding, matching the behaviour customers see on printed codes. An error
// is returned only for infrastructure failures; a rejection is carried in
// the Result.
func (r *Resolver) ValidateCode(ctx context.Context, code string) (*Result, error) {
	promo, err := r.repo.FindValidByCode(ctx, code, r.now())
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("promotion lookup failed")
		return nil, fmt.Errorf("failed to validate promotion code: %w", err)
	}

	if promo == nil {
		r.logger.Debug().Str("code", code).Msg("promotion code rejected")
		return &Result{
			Valid:   false,
			Message: "invalid or expired promotion code",
		}, nil
	}

	r.logger.Debug().
		Str("code", code).
		Float64("discount", promo.Discount).
		Bool("is_percentage", promo.IsPercentage).
		Msg("promotion code validated")

	return &Result{
		Valid: true,
		Promotion: &Validated{
			ID:           promo.ID,
			Code:         promo.Code,
			Discount:     promo.Discount,
			IsPercentage: promo.IsPercentage,
			Description:  promo.Description,
		},
	}, nil
}
