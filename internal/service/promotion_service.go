package service

import (
	"context"
	"fmt"
	"time"

	"labelia/internal/model"
	"labelia/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// promotionService implements PromotionService.
type promotionService struct {
	promoRepo repository.PromotionRepository
	logger    zerolog.Logger
}

// NewPromotionService creates a new promotion service.
func NewPromotionService(promoRepo repository.PromotionRepository, logger zerolog.Logger) PromotionService {
	return &promotionService{
		promoRepo: promoRepo,
		logger:    logger.With().Str("service", "promotion").Logger(),
	}
}

// GetAll retrieves all promotions, newest first.
func (s *promotionService) GetAll(ctx context.Context) ([]model.Promotion, error) {
	promotions, err := s.promoRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get promotions")
		return nil, fmt.Errorf("failed to get promotions: %w", err)
	}
	return promotions, nil
}

// Create adds a new promotion. New promotions are active immediately.
func (s *promotionService) Create(ctx context.Context, req *model.PromotionRequest) (*model.Promotion, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("promotion code is required")
	}
	if req.Discount == nil {
		return nil, fmt.Errorf("discount amount is required")
	}
	if *req.Discount < 0 {
		return nil, fmt.Errorf("discount amount cannot be negative")
	}

	promo := &model.Promotion{
		ID:           uuid.New(),
		Code:         req.Code,
		Description:  req.Description,
		Discount:     *req.Discount,
		IsPercentage: req.IsPercentage,
		Active:       true,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedAt:    time.Now(),
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		if err == model.ErrDuplicateCode {
			return nil, err
		}
		s.logger.Error().Err(err).Str("code", req.Code).Msg("failed to create promotion")
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.logger.Info().
		Str("promotion_id", promo.ID.String()).
		Str("code", promo.Code).
		Float64("discount", promo.Discount).
		Bool("is_percentage", promo.IsPercentage).
		Msg("promotion created")

	return promo, nil
}

// Update applies a partial update to a promotion.
func (s *promotionService) Update(ctx context.Context, id uuid.UUID, upd *model.PromotionUpdate) (*model.Promotion, error) {
	if upd.Discount != nil && *upd.Discount < 0 {
		return nil, fmt.Errorf("discount amount cannot be negative")
	}

	promo, err := s.promoRepo.Update(ctx, id, upd)
	if err != nil {
		if err == model.ErrPromotionNotFound || err == model.ErrDuplicateCode {
			return nil, err
		}
		s.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to update promotion")
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	s.logger.Info().Str("promotion_id", id.String()).Msg("promotion updated")
	return promo, nil
}

// Delete removes a promotion.
func (s *promotionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		if err == model.ErrPromotionNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to delete promotion")
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	s.logger.Info().Str("promotion_id", id.String()).Msg("promotion deleted")
	return nil
}
