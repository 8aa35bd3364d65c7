package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/developerzohaib786/redsent-ai/internal/config"
	"github.com/developerzohaib786/redsent-ai/internal/database"
	"github.com/developerzohaib786/redsent-ai/internal/metrics"
	custommiddleware "github.com/developerzohaib786/redsent-ai/internal/middleware"
	"github.com/developerzohaib786/redsent-ai/internal/repository"
	"github.com/developerzohaib786/redsent-ai/internal/service"
	"github.com/developerzohaib786/redsent-ai/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

// NewServer assembles the router. generator may be nil when no model credentials are configured.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client, generator service.Generator) *Server {
	router := chi.NewRouter()
	m := metrics.New()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.MetricsMiddleware(m))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})
	router.Handle("/metrics", m.Handler())

	// Initialize repositories
	mongoDB := db.DB()
	userRepo := repository.NewUserRepository(mongoDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(mongoDB)
	productRepo := repository.NewProductRepositoryWithTracing(repository.NewProductRepository(mongoDB))
	commentRepo := repository.NewCommentRepository(mongoDB)

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT)
	productService := service.NewProductService(productRepo, logger)
	likeService := service.NewLikeService(productRepo, m, logger)
	commentService := service.NewCommentService(commentRepo)
	summaryService := service.NewSummaryService(generator, m, logger)

	// Route middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	writes := []func(http.Handler) http.Handler{authMiddleware}
	if cfg.Server.AdminOnlyWrites {
		writes = append(writes, custommiddleware.RequireAdmin(logger))
	}
	mw := transport.RouteMiddleware{
		Auth:         authMiddleware,
		OptionalAuth: custommiddleware.OptionalAuthMiddleware(cfg.JWT.Secret, logger),
		Writes:       writes,
		RateLimit: custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit",
		}, logger),
	}

	// Register routes
	transport.NewUserHandler(userService, logger).RegisterRoutes(router, mw)
	transport.NewProductHandler(productService, likeService, logger).RegisterRoutes(router, mw)
	transport.NewCommentHandler(commentService, logger).RegisterRoutes(router, mw)
	transport.NewSummaryHandler(summaryService, logger).RegisterRoutes(router, mw)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      otelhttp.NewHandler(router, cfg.Tracing.ServiceName),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
