// Package notify carries user-facing outcome messages (toasts) from the
// hooks to whatever delivers them.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Variant string

const (
	VariantDefault     Variant = ""
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Multi fans a notification out to every non-nil notifier.
func Multi(ns ...Notifier) Notifier {
	out := make(multi, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type multi []Notifier

func (m multi) Notify(ctx context.Context, n Notification) {
	for _, x := range m {
		x.Notify(ctx, n)
	}
}

var Discard Notifier = Func(func(context.Context, Notification) {})

// Recorder keeps the most recent notifications, oldest first.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewRecorder keeps at most limit entries; limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = append([]Notification(nil), r.items[len(r.items)-r.limit:]...)
	}
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Log writes notifications as structured log lines.
type Log struct {
	L *zap.Logger
}

func (l Log) Notify(_ context.Context, n Notification) {
	log := l.L
	if log == nil {
		log = zap.L()
	}
	fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
	if n.Variant == VariantDestructive {
		log.Warn("notification", append(fields, zap.String("variant", string(n.Variant)))...)
		return
	}
	log.Info("notification", fields...)
}
