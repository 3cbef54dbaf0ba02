// Package transient holds short-lived UI state: the "recently added" marker
// and upload progress.
package transient

import (
	"sync"
	"time"
)

const DefaultTTL = 2 * time.Second

// Marker remembers the most recently created id for a fixed TTL. A new Mark
// restarts the clock, so an older timer never clears a newer id.
type Marker struct {
	ttl time.Duration

	mu     sync.Mutex
	id     string
	set    bool
	timer  *time.Timer
	gen    uint64
	closed bool
}

func NewMarker(ttl time.Duration) *Marker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Marker{ttl: ttl}
}

func (m *Marker) Mark(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.id, m.set = id, true
	m.timer = time.AfterFunc(m.ttl, func() { m.expire(gen) })
}

func (m *Marker) expire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// timer lama yang sudah terlanjur jalan tidak boleh menghapus id baru
	if gen != m.gen {
		return
	}
	m.id, m.set, m.timer = "", false, nil
}

func (m *Marker) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.set
}

// Close cancels the pending clear. The marker keeps its last value and
// ignores further marks.
func (m *Marker) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
