// Command seed loads the jewellery catalogue into the database.
//
// It reads SEED_FILE (default data/products.json) from the local file
// system, or from S3 when SEED_S3_ENABLED is set, and upserts every
// product. Safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"os"

	"labelia/internal/config"
	"labelia/internal/database"
	"labelia/internal/repository"
	"labelia/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting catalogue seeder")

	ctx := context.Background()

	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	fileLoader := seed.NewFileLoader(logger)
	loader := fileLoader

	if cfg.Seed.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Seed.S3Key, true, logger)
		}
	}

	productRepo := repository.NewProductRepository(pool, logger)
	seeder := seed.NewSeeder(loader, productRepo, logger)

	count, err := seeder.Run(ctx, cfg.Seed.FilePath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info().Int("products", count).Msg("catalogue seeding completed")
	return nil
}
