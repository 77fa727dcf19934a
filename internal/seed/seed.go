// Package seed loads the jewellery catalogue from a JSON source and
// upserts it into the product table. It is used by cmd/seed and can be
// re-run safely: existing products are updated, new ones inserted.
package seed

import (
	"context"
	"fmt"
	"time"

	"labelia/internal/model"
	"labelia/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Loader reads a catalogue source and returns the products it contains.
type Loader interface {
	Load(ctx context.Context, source string) ([]model.Product, error)
}

// Seeder upserts a loaded catalogue into the product repository.
type Seeder struct {
	loader   Loader
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(loader Loader, products repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads the catalogue from source and upserts every product.
// Products without an ID get one assigned so re-seeding from the same
// file stays idempotent only for entries that carry stable IDs.
func (s *Seeder) Run(ctx context.Context, source string) (int, error) {
	products, err := s.loader.Load(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalogue: %w", err)
	}

	now := time.Now()
	count := 0
	for i := range products {
		p := &products[i]
		if err := validateSeedProduct(p); err != nil {
			s.logger.Warn().Err(err).Str("name", p.Name).Msg("skipping invalid catalogue entry")
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Colors == nil {
			p.Colors = []string{}
		}
		if p.Sizes == nil {
			p.Sizes = []string{}
		}
		if p.Images == nil {
			p.Images = map[string][]string{}
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now

		if err := s.products.Upsert(ctx, p); err != nil {
			return count, fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
		count++
	}

	s.logger.Info().
		Str("source", source).
		Int("products_seeded", count).
		Int("entries_read", len(products)).
		Msg("catalogue seeded")

	return count, nil
}

func validateSeedProduct(p *model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	if !model.ValidCategory(p.Category) {
		return fmt.Errorf("invalid product category: %s", p.Category)
	}
	return nil
}
