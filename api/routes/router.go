package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/minicommerce-backend/api/controllers"
	"github.com/angelmondragon/minicommerce-backend/api/middleware"
	"github.com/angelmondragon/minicommerce-backend/pkg/config"
	"github.com/angelmondragon/minicommerce-backend/pkg/db"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
	"github.com/angelmondragon/minicommerce-backend/pkg/metrics"
	"github.com/angelmondragon/minicommerce-backend/pkg/redis"
)

// NewRouter builds the HTTP API. redisClient may be nil, which disables
// idempotent replay and drops redis from the readiness probe.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	reg *prometheus.Registry,
	dbClient *db.Client,
	redisClient *redis.Client,
	svc Services,
) http.Handler {
	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(metrics.NewHTTPMetrics(registerer)),
		middleware.ServerTiming(),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{"database": dbClient}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	r.Route("/api", func(r chi.Router) {
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, cfg.Idempotency, logg))
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.CreateUser(svc.Users, logg))
			r.Get("/", controllers.ListUsers(svc.Users, logg))
			r.Get("/{userId}", controllers.GetUser(svc.Users, logg))
			r.Put("/{userId}", controllers.UpdateUser(svc.Users, logg))
			r.Delete("/{userId}", controllers.DeleteUser(svc.Users, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(svc.Categories, logg))
			r.Get("/", controllers.ListCategories(svc.Categories, logg))
			r.Get("/{categoryId}", controllers.GetCategory(svc.Categories, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(svc.Categories, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(svc.Products, logg))
			r.Get("/", controllers.ListProducts(svc.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(svc.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(svc.Orders, logg))
			r.Get("/", controllers.ListOrders(svc.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svc.Orders, logg))
			r.Patch("/{orderId}", controllers.PatchOrderStatus(svc.Orders, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.CreateReview(svc.Reviews, logg))
			r.Get("/", controllers.ListReviews(svc.Reviews, logg))
			r.Get("/{reviewId}", controllers.GetReview(svc.Reviews, logg))
			r.Patch("/{reviewId}", controllers.PatchReview(svc.Reviews, logg))
			r.Delete("/{reviewId}", controllers.DeleteReview(svc.Reviews, logg))
		})
	})

	return r
}
