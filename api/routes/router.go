package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chickorder/web/api/controllers"
	"github.com/chickorder/web/api/middleware"
	"github.com/chickorder/web/internal/cart"
	"github.com/chickorder/web/internal/payment"
	"github.com/chickorder/web/internal/ratelimit"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/config"
	"github.com/chickorder/web/pkg/logger"
	"github.com/chickorder/web/pkg/metrics"
	redisclient "github.com/chickorder/web/pkg/redis"
)

// NewRouter wires the full middleware chain and route tree.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redisclient.Client,
	upstreamClient *upstream.Client,
	sessionManager *session.Manager,
	cartService *cart.Service,
	paymentService *payment.Service,
	limiter *ratelimit.Limiter,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"redis":         redisClient,
			"order_service": upstreamClient,
		}))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalSession(sessionManager, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.IPRateLimit(limiter, "login", cfg.AuthRateLimit.LoginWindow, cfg.AuthRateLimit.LoginIPLimit, logg)).
				Post("/login", controllers.Login(upstreamClient, sessionManager, limiter, cfg.AuthRateLimit, logg))
			r.With(middleware.IPRateLimit(limiter, "register", cfg.AuthRateLimit.RegisterWindow, cfg.AuthRateLimit.RegisterIPLimit, logg)).
				Post("/register", controllers.Register(upstreamClient, sessionManager, limiter, cfg.AuthRateLimit, logg))
			r.Post("/logout", controllers.Logout(sessionManager, logg))
			r.Get("/me", controllers.Me(upstreamClient, sessionManager, logg))
		})

		r.Get("/products", controllers.ListProducts(upstreamClient, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartService, sessionManager, logg))
				r.Post("/items", controllers.AddCartItem(cartService, sessionManager, logg))
				r.Put("/items/quantity", controllers.SetCartQuantity(cartService, sessionManager, logg))
				r.Put("/items/customization", controllers.SetCartCustomization(cartService, sessionManager, logg))
			})

			r.With(middleware.Idempotency(redisClient, "checkout", logg)).
				Post("/checkout", controllers.Checkout(cartService, sessionManager, logg))

			r.Route("/orders/{orderID}", func(r chi.Router) {
				r.Get("/", controllers.GetOrderTracking(upstreamClient, sessionManager, logg))
				r.With(middleware.Idempotency(redisClient, "payment", logg)).
					Post("/payment", controllers.InitiatePayment(paymentService, sessionManager, logg))
				r.Post("/payment/confirm", controllers.ConfirmPayment(paymentService, sessionManager, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))

			r.Get("/dashboard", controllers.AdminDashboard(upstreamClient, sessionManager, logg))
			r.Get("/orders/pending", controllers.AdminPendingOrders(upstreamClient, sessionManager, logg))
			r.Post("/orders/{orderID}/advance", controllers.AdminAdvanceOrder(upstreamClient, sessionManager, logg))
			r.Put("/orders/{orderID}/status", controllers.AdminUpdateOrderStatus(upstreamClient, sessionManager, logg))
			r.Get("/sales/today", controllers.AdminTodaySales(upstreamClient, sessionManager, logg))
		})
	})

	return r
}
