package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/config"
	"github.com/rogerio-castellano/inventory-dashboard/internal/db"
	"github.com/rogerio-castellano/inventory-dashboard/internal/health"
	api "github.com/rogerio-castellano/inventory-dashboard/internal/http"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-dashboard/internal/logger"
	"github.com/rogerio-castellano/inventory-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

const version = "1.0.0"

// @title Inventory Dashboard API
// @version 1.0
// @description Read and import endpoints for the inventory management dashboard.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	lg, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	closeStore, err := setupStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rs.Close()
		handlers.SetFlashStore(session.NewRedisFlashStore(rs.Rdb(), cfg.Redis.FlashTTL))
		lg.Info("flash messages stored in redis", zap.String("addr", cfg.Redis.Addr))
	}
	handlers.SetCurrencySymbol(cfg.Dashboard.CurrencySymbol)

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	h, err := health.NewHealthHandler(cfg, version)
	if err != nil {
		return err
	}

	if cfg.Auth.PasswordHash == "" {
		lg.Warn("OPERATOR_PASSWORD_HASH is empty, the dashboard is not password protected")
	}

	router := api.NewRouter(api.RouterConfig{
		SessionSecret:        []byte(cfg.Session.Secret),
		SessionMaxAge:        cfg.Session.MaxAge,
		OperatorUsername:     cfg.Auth.Username,
		OperatorPasswordHash: cfg.Auth.PasswordHash,
		Limiter:              limiter,
		Health:               h.Handler(),
		Logger:               lg,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           otelhttp.NewHandler(router, "inventory-dashboard"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server running", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupStore wires the product repository for the configured driver and
// returns a function releasing its connection.
func setupStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		handlers.SetProductRepo(repo.NewInMemoryProductRepository())
		lg.Warn("using in-memory store, data is lost on restart")
		return func() {}, nil

	case config.DriverPostgres:
		database, err := db.ConnectPostgres(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("could not connect to database: %w", err)
		}
		r := repo.NewPostgresProductRepository(database, cfg.Store.Timeout)
		if err := r.EnsureSchema(ctx); err != nil {
			_ = database.Close()
			return nil, err
		}
		handlers.SetProductRepo(r)
		return func() { _ = database.Close() }, nil

	default:
		client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("could not connect to mongo: %w", err)
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				lg.Warn("mongo disconnect failed", zap.Error(err))
			}
		}
		col := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		r := repo.NewMongoProductRepository(col, cfg.Store.Timeout)
		if err := r.EnsureSchema(ctx); err != nil {
			disconnect()
			return nil, err
		}
		handlers.SetProductRepo(r)
		return disconnect, nil
	}
}
