// Package router wires every HTTP surface of the storefront and the
// back office onto a single chi router.
package router

import (
	"net/http"

	"labelia/internal/handler"
	"labelia/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Deps collects every handler the router mounts.
type Deps struct {
	Products   *handler.ProductHandler
	Orders     *handler.OrderHandler
	Promotions *handler.PromotionHandler
	Carts      *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Auth       *handler.AuthHandler
	Uploads    *handler.UploadHandler
	UploadsDir string
	JWTSecret  string
}

// New creates the HTTP router with all routes and middleware configured.
func New(deps Deps, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public storefront routes.
	r.Group(func(r chi.Router) {
		r.Get("/api/products", deps.Products.List)
		r.Get("/api/products/{id}", deps.Products.GetByID)

		r.Post("/api/orders", deps.Orders.Create)

		r.Post("/api/promotions/validate", deps.Promotions.Validate)

		r.Route("/api/cart/{session}", func(r chi.Router) {
			r.Get("/", deps.Carts.Get)
			r.Delete("/", deps.Carts.Clear)
			r.Post("/items", deps.Carts.AddItem)
			r.Put("/items", deps.Carts.UpdateItem)
			r.Delete("/items", deps.Carts.RemoveItem)
			r.Post("/promotion", deps.Carts.ApplyPromotion)
			r.Delete("/promotion", deps.Carts.RemovePromotion)
		})

		r.Post("/api/checkout/{session}", deps.Checkout.Submit)

		r.Post("/api/auth/login", deps.Auth.Login)
	})

	// Back-office routes, admin token required.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(deps.JWTSecret, logger))

		r.Post("/api/products", deps.Products.Create)
		r.Put("/api/products/{id}", deps.Products.Update)
		r.Delete("/api/products/{id}", deps.Products.Delete)

		r.Get("/api/orders", deps.Orders.List)
		r.Get("/api/orders/{id}", deps.Orders.GetByID)
		r.Patch("/api/orders/{id}/status", deps.Orders.UpdateStatus)
		r.Delete("/api/orders/{id}", deps.Orders.Delete)

		r.Get("/api/promotions", deps.Promotions.List)
		r.Post("/api/promotions", deps.Promotions.Create)
		r.Put("/api/promotions/{id}", deps.Promotions.Update)
		r.Delete("/api/promotions/{id}", deps.Promotions.Delete)

		r.Get("/api/customers", deps.Orders.ListCustomers)

		r.Post("/api/upload", deps.Uploads.Upload)
	})

	// Uploaded product images are served as static files.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))

	return r
}
