package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/cache"
	"github.com/ukydev/fleet-dashboard/internal/config"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/handlers"
	"github.com/ukydev/fleet-dashboard/internal/middleware"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/predict"
)

const shutdownTimeout = 10 * time.Second

// demoFuelDays is the fuel history given to the in-memory demo fleet.
const demoFuelDays = 30

// newStore returns the vehicle store, cached in Redis when REDIS_ADDR is
// set. The returned func releases it.
func newStore(ctx context.Context, cfg *config.Config) (db.VehicleStore, func(), error) {
	store, closeStore, err := newBaseStore(ctx, cfg)
	if err != nil || cfg.RedisAddr == "" {
		return store, closeStore, err
	}

	kv, err := cache.NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, serving without vehicle cache")
		return store, closeStore, nil
	}
	log.WithField("ttl", cfg.CacheTTL).Info("Vehicle cache enabled")
	return cache.NewCachedStore(store, kv, cfg.CacheTTL), func() {
		kv.Close()
		closeStore()
	}, nil
}

// newBaseStore returns the MongoDB store when MONGO_URI is set, otherwise
// the in-memory demo fleet.
func newBaseStore(ctx context.Context, cfg *config.Config) (db.VehicleStore, func(), error) {
	if cfg.MongoURI == "" {
		log.Info("MONGO_URI not set, serving the in-memory demo fleet")
		store := db.NewMemoryStore(db.MockFleet()...)
		today := models.DateOf(time.Now())
		if err := store.InsertFuelRecords(ctx, db.MockFuelRecords(today, demoFuelDays)); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	store := db.NewMongoVehicleStore(client, cfg.MongoDB)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Failed to create vehicle indexes")
	}
	log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB successfully")

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}
	return store, closeFn, nil
}

// newRouter wires the fleet API routes and middleware.
func newRouter(cfg *config.Config, store db.VehicleStore) http.Handler {
	predictor := predict.NewRiskPredictor(store, predict.NewRandomPredictor(nil))
	fleet := handlers.NewFleetHandler(store, predictor)

	mux := http.NewServeMux()
	fleet.Register(mux)

	chain := []func(http.Handler) http.Handler{
		middleware.RequestLogger(log.StandardLogger()),
		middleware.CORS,
	}
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
		rateLimiter := middleware.NewRateLimitMiddleware().WithTrustProxy(cfg.TrustProxy)
		chain = append(chain, rateLimiter.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
	} else {
		log.Warn("Rate limiting disabled")
	}
	return middleware.Chain(mux, chain...)
}

func run(ctx context.Context, cfg *config.Config) error {
	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	cfg := config.Load()
	cfg.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
