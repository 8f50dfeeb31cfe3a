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

	"github.com/gdg-garage/trip-planner/internal/auth"
	"github.com/gdg-garage/trip-planner/internal/catalog"
	"github.com/gdg-garage/trip-planner/internal/config"
	"github.com/gdg-garage/trip-planner/internal/database"
	"github.com/gdg-garage/trip-planner/internal/handlers"
	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/gdg-garage/trip-planner/internal/metrics"
	"github.com/gdg-garage/trip-planner/internal/notifier"
	"github.com/gdg-garage/trip-planner/internal/reconciler"
	"github.com/gdg-garage/trip-planner/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	log := logger.New(logger.Options{
		ServiceName: "trip-planner",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Error(ctx, "failed to connect database", err)
		os.Exit(1)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to create session store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tripMetrics := metrics.NewTripMetrics(registry)

	opts := []reconciler.Option{
		reconciler.WithLogger(log),
		reconciler.WithObserver(tripMetrics),
	}
	discordNotifier, err := notifier.NewFromConfig(cfg, db)
	if err != nil {
		log.Warn(ctx, "discord notifier not initialized", err)
	} else {
		opts = append(opts, reconciler.WithNotifier(discordNotifier))
	}
	trips := reconciler.New(reconciler.NewGormRepository(db), opts...)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db, log)

	// Initialize Router
	r := chi.NewRouter()
	if cfg.EnableCORS {
		r.Use(handlers.CORS(cfg.FrontendURL))
	}

	// Register Routes
	handlers.RegisterRoutes(r, log,
		authHandler,
		handlers.NewAPIKeyHandler(db, authHandler, log),
		handlers.NewCatalogHandler(cat, log),
		handlers.NewSessionHandler(cat, sessions, trips, authHandler, tripMetrics, log),
		handlers.NewTripHandler(trips, authHandler, log),
	)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "server shutdown", err)
		}
	}()

	// Start Server
	log.Info(log.WithField(ctx, "port", cfg.Port), "starting server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case "", "memory":
		return session.NewMemoryStore(cfg.SessionTTL), nil
	case "redis":
		return session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}
}
