// Package reconcile keeps the local stores in step with the seller backend.
// Every mutation tries the backend first and, when that fails, applies the
// same change locally so the dashboard keeps working offline.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
	"github.com/ariefcatur/go-seller-dashboard/internal/store"
	"github.com/ariefcatur/go-seller-dashboard/internal/transient"
)

// Source tells where a result came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

type Result[T any] struct {
	Value  T      `json:"value"`
	Source Source `json:"source"`
}

// FallbackError means the backend failed and the static dataset could not
// be loaded either.
type FallbackError struct {
	Op  string
	Err error
}

func (e *FallbackError) Error() string { return e.Op + ": fallback dataset unavailable: " + e.Err.Error() }
func (e *FallbackError) Unwrap() error { return e.Err }

const pageSize = 100

type Config struct {
	Notifier notify.Notifier
	Logger   *zap.Logger
	Fallback fallback.Loader
	// TTL of the recently-added marker; zero means transient.DefaultTTL.
	TTL time.Duration
	IDs *IDs
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Notifier == nil {
		c.Notifier = notify.Discard
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Fallback == nil {
		c.Fallback = fallback.Load
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.IDs == nil {
		c.IDs = NewIDs(c.Now)
	}
	return c
}

// IDs hands out millisecond timestamps as ids for locally created entities.
// Two calls in the same millisecond still get distinct ids.
type IDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDs(now func() time.Time) *IDs {
	if now == nil {
		now = time.Now
	}
	return &IDs{now: now}
}

func (g *IDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = max(g.now().UnixMilli(), g.last+1)
	return strconv.FormatInt(g.last, 10)
}

// collection is the state shared by every entity hook.
type collection[T store.Entity] struct {
	name     string
	store    *store.Store[T]
	marker   *transient.Marker
	notifier notify.Notifier
	log      *zap.Logger
	fallback fallback.Loader
	ids      *IDs
	now      func() time.Time

	mu      sync.RWMutex
	loading bool
	err     error
}

func newCollection[T store.Entity](name string, cfg Config) *collection[T] {
	cfg = cfg.withDefaults()
	return &collection[T]{
		name:     name,
		store:    store.New[T](),
		marker:   transient.NewMarker(cfg.TTL),
		notifier: cfg.Notifier,
		log:      cfg.Logger.With(zap.String("entity", name)),
		fallback: cfg.Fallback,
		ids:      cfg.IDs,
		now:      cfg.Now,
		loading:  true,
	}
}

func (c *collection[T]) Items() []T { return c.store.Snapshot() }

func (c *collection[T]) Find(id string) (T, bool) { return c.store.Find(id) }

// OnChange forwards store snapshots to fn after every mutation.
func (c *collection[T]) OnChange(fn func([]T)) { c.store.OnChange(fn) }

func (c *collection[T]) RecentlyAdded() (string, bool) { return c.marker.Current() }

func (c *collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err is the last fetch failure, cleared by the next fetch.
func (c *collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close stops pending timers. The hook stays readable afterwards.
func (c *collection[T]) Close() { c.marker.Close() }

func (c *collection[T]) fetch(ctx context.Context, remote func(context.Context) ([]T, error), local func(*fallback.Dataset) []T) (Source, error) {
	c.mu.Lock()
	c.loading, c.err = true, nil
	c.mu.Unlock()

	src, err := c.load(ctx, remote, local)

	c.mu.Lock()
	c.loading, c.err = false, err
	c.mu.Unlock()
	if err != nil {
		c.fail(ctx, err)
	}
	return src, err
}

func (c *collection[T]) load(ctx context.Context, remote func(context.Context) ([]T, error), local func(*fallback.Dataset) []T) (Source, error) {
	items, err := remote(ctx)
	if err == nil {
		if err := c.store.Reset(items); err != nil {
			return SourceRemote, fmt.Errorf("fetch %s: %w", c.name, err)
		}
		return SourceRemote, nil
	}

	c.log.Warn("backend not available, using fallback data", zap.Error(err))
	ds, ferr := c.fallback()
	if ferr != nil {
		return SourceLocal, &FallbackError{Op: "fetch " + c.name, Err: ferr}
	}
	if err := c.store.Reset(local(ds)); err != nil {
		return SourceLocal, &FallbackError{Op: "fetch " + c.name, Err: err}
	}
	return SourceLocal, nil
}

// add appends a created entity and marks it as recently added.
func (c *collection[T]) add(item T) error {
	if err := c.store.Append(item); err != nil {
		return fmt.Errorf("add %s %q: %w", c.name, item.Key(), err)
	}
	c.marker.Mark(item.Key())
	return nil
}

func (c *collection[T]) replace(id string, item T) error {
	if err := c.store.Replace(id, item); err != nil {
		return fmt.Errorf("update %s %q: %w", c.name, id, err)
	}
	return nil
}

func (c *collection[T]) merge(id string, fn func(T) T) (T, error) {
	var out T
	err := c.store.Update(id, func(cur T) T {
		out = fn(cur)
		return out
	})
	if err != nil {
		return out, fmt.Errorf("update %s %q: %w", c.name, id, err)
	}
	return out, nil
}

func (c *collection[T]) remoteFailed(op string, err error) {
	c.log.Warn(op+": backend not available, applying locally", zap.Error(err))
}

func (c *collection[T]) createdAt() string {
	return c.now().UTC().Format(time.RFC3339)
}

func (c *collection[T]) notify(ctx context.Context, n notify.Notification) {
	c.notifier.Notify(ctx, n)
}

func (c *collection[T]) fail(ctx context.Context, err error) {
	c.notifier.Notify(ctx, errorNotification(err))
}

func errorNotification(err error) notify.Notification {
	msg := err.Error()
	var ae *apiclient.APIError
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	return notify.Notification{Title: "Error", Description: msg, Variant: notify.VariantDestructive}
}

// listAll reads every page of a paginated listing.
func listAll[T any](ctx context.Context, list func(ctx context.Context, page, limit int) ([]T, apiclient.Pagination, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		items, pg, err := list(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) == 0 || page >= pg.TotalPages {
			return all, nil
		}
	}
}

// pick chooses the remote or the local wording of a notification.
func pick(src Source, remote, local string) string {
	if src == SourceLocal {
		return local
	}
	return remote
}
