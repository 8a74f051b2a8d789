package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecofinds/ecofinds-backend/api/controllers"
	"github.com/ecofinds/ecofinds-backend/api/middleware"
	assistantsvc "github.com/ecofinds/ecofinds-backend/internal/assistant"
	"github.com/ecofinds/ecofinds-backend/internal/auth"
	cartsvc "github.com/ecofinds/ecofinds-backend/internal/cart"
	checkoutsvc "github.com/ecofinds/ecofinds-backend/internal/checkout"
	ordersvc "github.com/ecofinds/ecofinds-backend/internal/orders"
	productsvc "github.com/ecofinds/ecofinds-backend/internal/products"
	"github.com/ecofinds/ecofinds-backend/pkg/auth/session"
	"github.com/ecofinds/ecofinds-backend/pkg/config"
	"github.com/ecofinds/ecofinds-backend/pkg/db"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"github.com/ecofinds/ecofinds-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services groups the domain services the router exposes.
type Services struct {
	Auth      auth.Service
	Products  productsvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Orders    ordersvc.Service
	Assistant assistantsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions sessionManager,
	services Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(services.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(services.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(sessions, cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(sessions, cfg.JWT, logg))
		})

		// Public browse and assistant surface.
		r.Get("/products", controllers.ListProducts(services.Products, logg))
		r.Get("/products/{productId}", controllers.GetProduct(services.Products, logg))
		r.Post("/assistant/messages", controllers.AssistantMessage(services.Assistant, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Use(middleware.Idempotency(redisClient, logg))

			r.Post("/products", controllers.CreateProduct(services.Products, logg))
			r.Put("/products/{productId}", controllers.UpdateProduct(services.Products, logg))
			r.Delete("/products/{productId}", controllers.DeleteProduct(services.Products, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(services.Cart, logg))
				r.Delete("/", controllers.CartClear(services.Cart, logg))
				r.Post("/items", controllers.CartAddItem(services.Cart, logg))
				r.Put("/items/{productId}", controllers.CartSetItem(services.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(services.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(services.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(services.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(services.Orders, logg))
			})
		})
	})

	return r
}
