package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/config"
	"github.com/mmynk/dinesplit/internal/editor"
	"github.com/mmynk/dinesplit/internal/ids"
	"github.com/mmynk/dinesplit/internal/middleware"
	"github.com/mmynk/dinesplit/internal/service"
	"github.com/mmynk/dinesplit/internal/share"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/storage/memory"
	"github.com/mmynk/dinesplit/internal/storage/redis"
	"github.com/mmynk/dinesplit/internal/storage/sqlite"
	"github.com/mmynk/dinesplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	kv, err := openKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	metrics := storage.NewMetrics("dinesplit", prometheus.DefaultRegisterer)
	store := storage.NewBillStore(storage.InstrumentKV(kv, metrics))
	defer store.Close()

	ed := editor.New(ids.UUID{})
	if cfg.SeedDemo {
		if _, err := store.InitializeIfEmpty(ctx, ed.DemoBill()); err != nil {
			return fmt.Errorf("failed to seed demo bill: %w", err)
		}
	}

	secret := cfg.ShareSecret
	if secret == "" {
		// Links stop working on restart without a configured secret.
		secret = uuid.NewString()
		slog.Warn("SHARE_SECRET not set, using an ephemeral secret")
	}
	tokens := share.NewTokenManager(secret, cfg.ShareTTL)

	mux := http.NewServeMux()

	// Register Connect services
	billPath, billHandler := api.NewBillServiceHandler(
		service.NewBillService(store, ed, tokens, cfg.PaymentBaseURL),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)
	mux.Handle(billPath, billHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(middleware.Logging(middleware.CORS(mux)), &http2.Server{})

	addr := cfg.HTTPAddr()
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "store", cfg.StoreBackend)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// openKV opens the configured storage medium.
func openKV(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		kv, err := redis.New(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "redis")
		return kv, nil
	case config.BackendMemory:
		slog.Warn("Storage initialized in memory; bills are lost on exit")
		return memory.New(), nil
	default:
		kv, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
		return kv, nil
	}
}
