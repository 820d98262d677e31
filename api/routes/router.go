package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cutiefy/cutiefy-backend/api/controllers"
	"github.com/cutiefy/cutiefy-backend/api/middleware"
	"github.com/cutiefy/cutiefy-backend/internal/cart"
	"github.com/cutiefy/cutiefy-backend/internal/catalog"
	"github.com/cutiefy/cutiefy-backend/internal/orders"
	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/cutiefy/cutiefy-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	Catalog     catalog.Service
	Cart        cart.Service
	Orders      orders.Service
	OrdersFeed  *orders.Watcher
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/subcategories", controllers.ListSubcategories(deps.Catalog, logg))
		r.Get("/items", controllers.ListItems(deps.Catalog, logg))
		r.Get("/items/{itemID}", controllers.GetItem(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(cfg, logg))

			r.Get("/cart", controllers.GetCart(deps.Cart, logg))
			r.Post("/cart/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/cart/items/{itemID}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/cart/items/{itemID}", controllers.RemoveCartItem(deps.Cart, logg))
			r.Delete("/cart", controllers.ClearCart(deps.Cart, logg))

			r.Post("/checkout", controllers.Checkout(deps.Orders, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth/login", controllers.AdminLogin(cfg, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWT, logg))

				r.Get("/orders", controllers.AdminListOrders(deps.Orders, logg))
				r.Get("/orders/feed", controllers.AdminOrdersFeed(deps.OrdersFeed, logg))
				r.Get("/orders/export", controllers.AdminExportOrders(deps.Orders, logg))
				r.Get("/orders/{orderID}", controllers.AdminGetOrder(deps.Orders, logg))
				r.Post("/orders/{orderID}/dispatch", controllers.AdminDispatchOrder(deps.Orders, logg))
			})
		})
	})

	return r
}
