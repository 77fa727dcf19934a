package service

import (
	"context"

	"labelia/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id string, upd *model.ProductUpdate) (*model.Product, error)

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id string) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder validates and persists a new cash-on-delivery order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateStatus moves an order through its status lifecycle.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCustomers projects orders onto distinct customers.
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

// PromotionService defines operations for promotion management. Code
// validation for the storefront lives in the promotion package; this
// service covers the back office.
type PromotionService interface {
	// GetAll retrieves all promotions, newest first.
	GetAll(ctx context.Context) ([]model.Promotion, error)

	// Create adds a new promotion.
	Create(ctx context.Context, req *model.PromotionRequest) (*model.Promotion, error)

	// Update applies a partial update to a promotion.
	Update(ctx context.Context, id uuid.UUID, upd *model.PromotionUpdate) (*model.Promotion, error)

	// Delete removes a promotion.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthService defines back-office authentication operations.
type AuthService interface {
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// EnsureAdmin creates the bootstrap admin account when it does not
	// exist yet.
	EnsureAdmin(ctx context.Context) error
}
