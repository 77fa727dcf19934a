package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labelia/internal/cart"
	"labelia/internal/checkout"
	"labelia/internal/config"
	"labelia/internal/database"
	"labelia/internal/handler"
	"labelia/internal/promotion"
	"labelia/internal/receipt"
	"labelia/internal/repository"
	"labelia/internal/router"
	"labelia/internal/service"
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
	logger.Info().Msg("starting labelia API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply pending schema migrations before opening the pool.
	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Session carts live in a local badger store, not in Postgres.
	cartStore, err := cart.NewBadgerStore(cfg.Cart.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open cart store: %w", err)
	}
	defer cartStore.Close()

	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	promotionRepo := repository.NewPromotionRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	cartService := cart.NewService(cartStore, logger)
	resolver := promotion.NewResolver(promotionRepo, logger)

	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	promotionService := service.NewPromotionService(promotionRepo, logger)
	authService := service.NewAuthService(userRepo, cfg.Auth, logger)

	if err := authService.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	renderer := receipt.NewPDFRenderer(cfg.Receipts.Dir, logger)
	orchestrator := checkout.NewOrchestrator(cartService, orderService, renderer, logger)

	mux := router.New(router.Deps{
		Products:   handler.NewProductHandler(productService, logger),
		Orders:     handler.NewOrderHandler(orderService, logger),
		Promotions: handler.NewPromotionHandler(promotionService, resolver, logger),
		Carts:      handler.NewCartHandler(cartService, productService, resolver, logger),
		Checkout:   handler.NewCheckoutHandler(orchestrator, logger),
		Auth:       handler.NewAuthHandler(authService, logger),
		Uploads:    handler.NewUploadHandler(cfg.Uploads, logger),
		UploadsDir: cfg.Uploads.Dir,
		JWTSecret:  cfg.Auth.JWTSecret,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
