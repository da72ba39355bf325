package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaporvista/storefront-backend/api/controllers"
	"github.com/vaporvista/storefront-backend/api/middleware"
	"github.com/vaporvista/storefront-backend/pkg/logger"
)

// Deps carries the wired controllers and surface configuration.
type Deps struct {
	Logger            *logger.Logger
	CartSessionCookie string
	Registry          *prometheus.Registry

	Health   *controllers.HealthController
	Products *controllers.ProductsController
	Cart     *controllers.CartController
	Settings *controllers.SettingsController
	Checkout *controllers.CheckoutController
}

// New assembles the HTTP surface.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", deps.Products.List)
		r.Get("/products/{slug}", deps.Products.GetBySlug)

		r.Get("/settings", deps.Settings.Get)
		r.Put("/settings", deps.Settings.Update)

		// Cart and checkout operate on the shopper's session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(deps.CartSessionCookie, deps.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.Get)
				r.Delete("/", deps.Cart.Clear)
				r.Get("/quote", deps.Cart.Quote)
				r.Post("/items", deps.Cart.AddItem)
				r.Patch("/items/{productID}", deps.Cart.UpdateQuantity)
				r.Delete("/items/{productID}", deps.Cart.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", deps.Checkout.Create)
				r.Post("/{orderID}/confirm", deps.Checkout.Confirm)
			})
		})
	})

	return r
}
