package reconcile

import (
	"context"

	"go.uber.org/zap"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
)

type SnapshotGateway interface {
	GetMoneyData(ctx context.Context) (catalog.MoneyData, error)
	GetSocialMetrics(ctx context.Context) (catalog.SocialMetrics, error)
	GetAnalytics(ctx context.Context, startDate, endDate string) (catalog.Analytics, error)
}

// Snapshots reads the read-only aggregates (money, social, analytics).
// Nothing is cached; each call asks the backend again.
type Snapshots struct {
	gw       SnapshotGateway
	notifier notify.Notifier
	log      *zap.Logger
	fallback fallback.Loader
}

func NewSnapshots(gw SnapshotGateway, cfg Config) *Snapshots {
	cfg = cfg.withDefaults()
	return &Snapshots{gw: gw, notifier: cfg.Notifier, log: cfg.Logger, fallback: cfg.Fallback}
}

func (s *Snapshots) Money(ctx context.Context) (Result[catalog.MoneyData], error) {
	return snapshot(ctx, s, "money", s.gw.GetMoneyData,
		func(ds *fallback.Dataset) catalog.MoneyData { return ds.Money })
}

func (s *Snapshots) Social(ctx context.Context) (Result[catalog.SocialMetrics], error) {
	return snapshot(ctx, s, "social metrics", s.gw.GetSocialMetrics,
		func(ds *fallback.Dataset) catalog.SocialMetrics { return ds.Social })
}

// Analytics passes the optional date range through; the fallback ignores it.
func (s *Snapshots) Analytics(ctx context.Context, startDate, endDate string) (Result[catalog.Analytics], error) {
	return snapshot(ctx, s, "analytics",
		func(ctx context.Context) (catalog.Analytics, error) { return s.gw.GetAnalytics(ctx, startDate, endDate) },
		func(ds *fallback.Dataset) catalog.Analytics { return ds.Analytics })
}

func snapshot[T any](ctx context.Context, s *Snapshots, name string, remote func(context.Context) (T, error), local func(*fallback.Dataset) T) (Result[T], error) {
	v, err := remote(ctx)
	if err == nil {
		return Result[T]{Value: v, Source: SourceRemote}, nil
	}
	s.log.Warn("backend not available, using fallback data", zap.String("snapshot", name), zap.Error(err))

	ds, ferr := s.fallback()
	if ferr != nil {
		ferr = &FallbackError{Op: "fetch " + name, Err: ferr}
		s.notifier.Notify(ctx, errorNotification(ferr))
		return Result[T]{}, ferr
	}
	return Result[T]{Value: local(ds), Source: SourceLocal}, nil
}
