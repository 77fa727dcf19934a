package repository

import (
	"context"
	"time"

	"labelia/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetAll retrieves products newest-first with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil)
	// when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update applies a partial update and returns the updated product.
	Update(ctx context.Context, id string, upd *model.ProductUpdate) (*model.Product, error)

	// Delete removes a product. Returns model.ErrProductNotFound when
	// no row matches.
	Delete(ctx context.Context, id string) error

	// Upsert inserts a product or overwrites an existing row with the
	// same ID. Used by catalogue seeding.
	Upsert(ctx context.Context, p *model.Product) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts a new order with its denormalised item snapshot.
	Create(ctx context.Context, order *model.Order) error

	// GetAll retrieves orders newest-first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves an order by ID. Returns (nil, nil) when the
	// order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateStatus sets the status of an order and returns the updated
	// row.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// Delete removes an order. Returns model.ErrOrderNotFound when no
	// row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCustomers projects orders onto distinct customers by email,
	// most recently seen first.
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

// PromotionRepository defines the interface for promotion data access.
type PromotionRepository interface {
	// GetAll retrieves promotions newest-first.
	GetAll(ctx context.Context) ([]model.Promotion, error)

	// Create inserts a new promotion. Returns model.ErrDuplicateCode on
	// a code collision.
	Create(ctx context.Context, p *model.Promotion) error

	// Update applies a partial update and returns the updated promotion.
	Update(ctx context.Context, id uuid.UUID, upd *model.PromotionUpdate) (*model.Promotion, error)

	// Delete removes a promotion. Returns model.ErrPromotionNotFound
	// when no row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindValidByCode looks up a redeemable promotion: exact code match,
	// active, and inside the date window as defined by the storefront
	// (start_date <= now OR end_date >= now). Returns (nil, nil) when no
	// promotion qualifies.
	FindValidByCode(ctx context.Context, code string, now time.Time) (*model.Promotion, error)
}

// UserRepository defines the interface for back-office account access.
type UserRepository interface {
	// GetByEmail retrieves a user by email. Returns (nil, nil) when the
	// user does not exist.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
}
