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

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/config"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/httpx"
	kafkax "github.com/ariefcatur/go-seller-dashboard/internal/kafka"
	"github.com/ariefcatur/go-seller-dashboard/internal/logging"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
	"github.com/ariefcatur/go-seller-dashboard/internal/reconcile"
	"github.com/ariefcatur/go-seller-dashboard/internal/redisx"
	"github.com/ariefcatur/go-seller-dashboard/internal/transient"
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

	tokens, closeTokens := tokenSource(ctx, cfg, logger)
	defer closeTokens()

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTokenSource(tokens),
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(logger),
	)

	// Notifications: recorder untuk GET /notifications, log, dan kafka kalau ada broker
	recent := notify.NewRecorder(100)
	notifiers := []notify.Notifier{recent, notify.Log{L: logger}}
	var events *kafkax.Events
	var producers []*kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		pNotify := kafkax.NewProducer(cfg.KafkaBrokers, cfg.NotifyTopic, 1024, logger)
		pNotify.Start(ctx)
		pChanged := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicStoreChanged, 1024, logger)
		pChanged.Start(ctx)
		producers = append(producers, pNotify, pChanged)
		events = &kafkax.Events{Notifications: pNotify, StoreChanges: pChanged, Service: cfg.ServiceName}
		notifiers = append(notifiers, events)
	}

	hookCfg := reconcile.Config{
		Notifier: notify.Multi(notifiers...),
		Logger:   logger,
		Fallback: fallback.FromFile(cfg.FallbackFile),
		TTL:      cfg.RecentlyAddedTTL,
		IDs:      reconcile.NewIDs(nil),
	}
	products := reconcile.NewProducts(client, hookCfg)
	videos := reconcile.NewVideos(client, hookCfg)
	orders := reconcile.NewOrders(client, hookCfg)
	defer products.Close()
	defer videos.Close()
	defer orders.Close()

	if events != nil {
		products.OnChange(func(ps []catalog.Product) { events.StoreChanged("products", len(ps)) })
		videos.OnChange(func(vs []catalog.VideoContent) { events.StoreChanged("video-content", len(vs)) })
		orders.OnChange(func(list []catalog.Order) { events.StoreChanged("orders", len(list)) })
	}

	// initial load, sama seperti saat dashboard pertama dibuka
	for name, fetch := range map[string]func(context.Context) (reconcile.Source, error){
		"products":      products.Fetch,
		"video-content": videos.Fetch,
		"orders":        orders.Fetch,
	} {
		src, err := fetch(ctx)
		if err != nil {
			logger.Error("initial fetch failed", zap.String("entity", name), zap.Error(err))
			continue
		}
		logger.Info("initial fetch", zap.String("entity", name), zap.String("source", string(src)))
	}

	router := httpx.NewRouter(logger)
	dh := &httpx.DashboardHandler{
		Products:  products,
		Videos:    videos,
		Orders:    orders,
		Snapshots: reconcile.NewSnapshots(client, hookCfg),
		Uploads:   client,
		Progress:  transient.NewTracker(),
		Simulator: transient.DefaultSimulator,
		Notifier:  hookCfg.Notifier,
		Recent:    recent,
		Log:       logger,
	}
	dh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: otelhttp.NewHandler(router, "dashboard")}

	go func() {
		logger.Info("dashboard listening", zap.String("addr", cfg.HTTPAddr), zap.String("api", client.BaseURL()))
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
	for _, p := range producers {
		p.Close() // tutup inbox -> flush & close writer
	}
	cancel()
	for _, p := range producers {
		p.WaitClosed()
	}
}

// tokenSource picks where the bearer token comes from. Redis wins when
// configured (AUTH_TOKEN is saved into it), otherwise AUTH_TOKEN is used as
// is. Neither means requests go out unauthenticated.
func tokenSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (apiclient.TokenSource, func()) {
	if cfg.RedisAddr == "" {
		if cfg.AuthToken == "" {
			return nil, func() {}
		}
		// tanpa redis token tetap dipakai, hanya tidak persisten
		logger.Info("using AUTH_TOKEN without persisted storage")
		return apiclient.StaticToken(cfg.AuthToken), func() {}
	}

	rdb := redisx.New(cfg.RedisAddr)
	ts := redisx.NewTokenStore(rdb, cfg.AuthTokenKey)
	if cfg.AuthToken != "" {
		if err := ts.Save(ctx, cfg.AuthToken, 0); err != nil {
			logger.Warn("saving auth token failed", zap.Error(err))
		}
	}
	if ok, err := ts.Present(ctx); err != nil {
		logger.Warn("token storage unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	} else {
		logger.Info("token storage ready", zap.Bool("token_present", ok))
	}
	return ts, func() { _ = rdb.Close() }
}
