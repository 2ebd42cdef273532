package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maisonvela/vela-backend/api/controllers"
	"github.com/maisonvela/vela-backend/api/middleware"
	"github.com/maisonvela/vela-backend/internal/adminsetup"
	"github.com/maisonvela/vela-backend/internal/analytics"
	authsvc "github.com/maisonvela/vela-backend/internal/auth"
	"github.com/maisonvela/vela-backend/internal/cart"
	"github.com/maisonvela/vela-backend/internal/catalog"
	checkoutsvc "github.com/maisonvela/vela-backend/internal/checkout"
	"github.com/maisonvela/vela-backend/internal/customers"
	"github.com/maisonvela/vela-backend/internal/media"
	"github.com/maisonvela/vela-backend/internal/orders"
	"github.com/maisonvela/vela-backend/internal/wishlist"
	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/enums"
	"github.com/maisonvela/vela-backend/pkg/logger"
	"github.com/maisonvela/vela-backend/pkg/metrics"
)

// Pinger is the readiness probe contract every hard dependency satisfies.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups everything the router wires into handlers. Media may
// be nil when object storage is not configured.
type Services struct {
	Auth       authsvc.Service
	AdminSetup adminsetup.Service
	Catalog    catalog.Service
	Cart       cart.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
	Wishlist   wishlist.Service
	Customers  customers.Service
	Analytics  analytics.Service
	Media      media.Service
}

// Probes carries the readiness pingers keyed by dependency name.
type Probes map[string]Pinger

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	svcs Services,
	probes Probes,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, probesToPingers(probes)))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
			r.Get("/{productId}/related", controllers.ProductRelated(svcs.Catalog, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(svcs.Catalog, logg))
			r.Get("/{slug}", controllers.CategoryBySlug(svcs.Catalog, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
			r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(svcs.Cart, logg))
				r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
				r.Put("/items", controllers.CartUpdateItem(svcs.Cart, logg))
				r.Delete("/items", controllers.CartRemoveItem(svcs.Cart, logg))
				r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.MyOrders(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.MyOrderDetail(svcs.Orders, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(svcs.Wishlist, logg))
				r.Post("/toggle", controllers.WishlistToggle(svcs.Wishlist, logg))
			})

			r.Post("/admin-setup", controllers.AdminSetup(svcs.AdminSetup, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(svcs.Catalog, logg))
			r.Post("/", controllers.AdminProductCreate(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.AdminProductDetail(svcs.Catalog, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(svcs.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCategoryCreate(svcs.Catalog, logg))
			r.Patch("/{categoryId}", controllers.AdminCategoryUpdate(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.AdminCustomerList(svcs.Customers, logg))
			r.Get("/{customerId}", controllers.AdminCustomerDetail(svcs.Customers, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", controllers.AdminDashboard(svcs.Analytics, logg))
			r.Get("/revenue", controllers.AdminRevenueSeries(svcs.Analytics, logg))
			r.Get("/top-sellers", controllers.AdminTopSellers(svcs.Analytics, logg))
			r.Get("/low-stock", controllers.AdminLowStock(svcs.Analytics, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", controllers.AdminMediaUpload(svcs.Media, logg))
			r.Delete("/", controllers.AdminMediaDelete(svcs.Media, logg))
		})
	})

	return r
}

func probesToPingers(probes Probes) map[string]controllers.Pinger {
	out := make(map[string]controllers.Pinger, len(probes))
	for name, p := range probes {
		if p == nil {
			continue
		}
		out[name] = p
	}
	return out
}
