package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-seller-dashboard/internal/backend"
	"github.com/ariefcatur/go-seller-dashboard/internal/config"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/httpx"
	"github.com/ariefcatur/go-seller-dashboard/internal/logging"
	"github.com/ariefcatur/go-seller-dashboard/internal/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.Setup(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repository: Postgres kalau POSTGRES_DSN di-set, selain itu in-memory
	repo := backend.NewMemoryRepository()
	if cfg.PostgresDSN != "" {
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		repo = backend.NewPostgresRepository(db)
	}

	svc := backend.NewService(repo, logger)
	ds, err := fallback.FromFile(cfg.FallbackFile)()
	if err != nil {
		logger.Fatal("load seed data", zap.Error(err))
	}
	if err := svc.Seed(ctx, ds); err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	faults := httpx.NewFaults(logger)
	router := httpx.NewRouter(logger, faults.Middleware)
	faults.Register(router)
	httpx.NewAPIHandler(svc, logger).Register(router)

	srv := &http.Server{Addr: cfg.MockAPIAddr, Handler: otelhttp.NewHandler(router, "mockapi")}

	go func() {
		logger.Info("mock api listening",
			zap.String("addr", cfg.MockAPIAddr),
			zap.Bool("postgres", cfg.PostgresDSN != ""))
		logger.Info("fault injection: POST /admin/inject-error, GET /admin/status, POST /admin/reset")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
