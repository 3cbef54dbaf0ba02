package httpx

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	FaultNormal      = "normal"
	FaultRateLimit   = "rate_limit"
	FaultServerError = "server_error"
)

type FaultConfig struct {
	Mode            string  `json:"mode"`
	RateLimitAfter  int     `json:"rate_limit_after"`
	ServerErrorRate float64 `json:"server_error_rate"`
	RetryAfterSecs  int     `json:"retry_after_secs"`
	RequestCount    int64   `json:"request_count"`
}

// Faults makes the mock API misbehave on demand so the dashboard's local
// fallback can be exercised against a live server.
type Faults struct {
	mu    sync.RWMutex
	cfg   FaultConfig
	count atomic.Int64
	log   *zap.Logger
	// rnd returns a value in [0, 1); swapped in tests.
	rnd func() float64
}

func NewFaults(log *zap.Logger) *Faults {
	if log == nil {
		log = zap.NewNop()
	}
	return &Faults{cfg: defaultFaults(), log: log, rnd: rand.Float64}
}

func defaultFaults() FaultConfig {
	return FaultConfig{Mode: FaultNormal, RateLimitAfter: 5, RetryAfterSecs: 5}
}

func (f *Faults) Config() FaultConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c := f.cfg
	c.RequestCount = f.count.Load()
	return c
}

func (f *Faults) Set(req FaultConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.Mode = req.Mode
	if req.RateLimitAfter > 0 {
		f.cfg.RateLimitAfter = req.RateLimitAfter
	}
	if req.ServerErrorRate >= 0 && req.ServerErrorRate <= 1 {
		f.cfg.ServerErrorRate = req.ServerErrorRate
	}
	if req.RetryAfterSecs > 0 {
		f.cfg.RetryAfterSecs = req.RetryAfterSecs
	}
	f.count.Store(0)
	f.log.Info("fault injection updated",
		zap.String("mode", f.cfg.Mode),
		zap.Int("rate_limit_after", f.cfg.RateLimitAfter),
		zap.Float64("server_error_rate", f.cfg.ServerErrorRate))
}

func (f *Faults) Reset() {
	f.mu.Lock()
	f.cfg = defaultFaults()
	f.mu.Unlock()
	f.count.Store(0)
	f.log.Info("fault injection reset")
}

// Middleware skips /admin and /healthz so the server stays controllable.
func (f *Faults) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/admin") || r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		cfg := f.Config()
		switch cfg.Mode {
		case FaultRateLimit:
			if n := f.count.Add(1); int(n) > cfg.RateLimitAfter {
				w.Header().Set("Retry-After", strconv.Itoa(cfg.RetryAfterSecs))
				writeJSON(w, http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": "Rate limit exceeded",
					"code":    "RATE_LIMIT_EXCEEDED",
				})
				return
			}
		case FaultServerError:
			if f.rnd() < cfg.ServerErrorRate {
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"message": "Internal server error (simulated)",
					"code":    "INTERNAL_SERVER_ERROR",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (f *Faults) Register(r chi.Router) {
	r.Post("/admin/inject-error", f.inject)
	r.Post("/admin/reset", func(w http.ResponseWriter, r *http.Request) {
		f.Reset()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": f.Config()})
	})
	r.Get("/admin/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": f.Config()})
	})
}

func (f *Faults) inject(w http.ResponseWriter, r *http.Request) {
	var req FaultConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid json"})
		return
	}
	switch req.Mode {
	case FaultNormal, FaultRateLimit, FaultServerError:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "mode must be normal, rate_limit or server_error"})
		return
	}
	f.Set(req)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": f.Config()})
}
