package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carecompass/backend/internal/adapters/cache"
	"github.com/carecompass/backend/internal/adapters/database"
	"github.com/carecompass/backend/internal/adapters/scheduling"
	"github.com/carecompass/backend/internal/adapters/session"
	"github.com/carecompass/backend/internal/api/handlers"
	"github.com/carecompass/backend/internal/api/middleware"
	"github.com/carecompass/backend/internal/api/routes"
	"github.com/carecompass/backend/internal/application/services"
	"github.com/carecompass/backend/internal/catalog"
	"github.com/carecompass/backend/internal/domain/providers"
	"github.com/carecompass/backend/internal/domain/repositories"
	"github.com/carecompass/backend/internal/infrastructure/clients/postgres"
	"github.com/carecompass/backend/internal/infrastructure/clients/redis"
	"github.com/carecompass/backend/internal/infrastructure/cronjobs"
	"github.com/carecompass/backend/internal/infrastructure/observability"
	"github.com/carecompass/backend/pkg/config"
)

const feedbackHistoryLimit = 10000

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Postgres is only dialled when the catalog or feedback lives there
	var pgClient *postgres.Client
	if cfg.NeedsDatabase() {
		pgClient, err = postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		log.Info().Str("host", cfg.Database.Host).Msg("PostgreSQL client initialized")
	}

	// Redis is optional; memory stores take over without it
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory session and cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	// Load the catalog
	var source repositories.CatalogSource
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		source = catalog.NewFileSource(cfg.Catalog.Path)
	case config.CatalogSourcePostgres:
		source = database.NewCatalogAdapter(pgClient)
	default:
		source = catalog.NewEmbeddedSource()
	}

	cat, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("Failed to load catalog")
	}
	log.Info().
		Str("source", cfg.Catalog.Source).
		Str("version", cat.Version).
		Int("symptoms", cat.Symptoms.Len()).
		Int("doctors", len(cat.Doctors)).
		Msg("Catalog loaded")

	// Initialize adapters
	var cacheProvider providers.CacheProvider
	var concernStore repositories.ConcernRepository
	sweeps := cronjobs.NewScheduler()
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient, "carecompass:http")
		concernStore = session.NewRedisConcernStore(redisClient, cfg.Session.TTL, cfg.Session.MaxConcerns, metrics)
	} else {
		memoryCache := cache.NewMemoryAdapter()
		memoryConcerns := session.NewMemoryConcernStore(cfg.Session.TTL, cfg.Session.MaxConcerns)
		cacheProvider = memoryCache
		concernStore = memoryConcerns

		// Redis expires keys itself; memory stores need a janitor
		if err := sweeps.AddSweep(cronjobs.DefaultSweepSchedule, "response-cache", memoryCache); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule cache sweep")
		}
		if err := sweeps.AddSweep(cronjobs.DefaultSweepSchedule, "sessions", memoryConcerns); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule session sweep")
		}
	}
	sweeps.Start()
	defer sweeps.Stop()

	var feedbackStore repositories.FeedbackRepository
	if cfg.Catalog.FeedbackStore == config.FeedbackStorePostgres {
		feedbackStore = database.NewFeedbackAdapter(pgClient)
	} else {
		feedbackStore = session.NewMemoryFeedbackStore(feedbackHistoryLimit)
	}

	// Initialize services
	concernService := services.NewHealthConcernService(
		cat,
		concernStore,
		feedbackStore,
		scheduling.ForDelay(cfg.Simulation.AnalysisDelay),
		cfg.Simulation.AnalysisDelay,
	)
	doctorService := services.NewDoctorService(
		cat,
		scheduling.ForDelay(cfg.Simulation.DoctorSearchDelay),
		cfg.Simulation.DoctorSearchDelay,
	)

	// Initialize handlers
	concernHandler := handlers.NewConcernHandler(concernService, cacheProvider)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	catalogHandler := handlers.NewCatalogHandler(concernService)

	cacheMiddleware := middleware.NewCacheMiddleware(cacheProvider, cat.Version, metrics, nil)

	// Set up router
	router := routes.NewRouter(
		concernHandler,
		doctorHandler,
		catalogHandler,
		cacheMiddleware,
		metrics,
		cfg.Server.AllowedOrigins,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
