package transient

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"
)

type ProgressState struct {
	Uploading bool `json:"uploading"`
	Percent   int  `json:"percent"`
}

// Progress is a 0-100 counter that only moves forward while an upload runs.
type Progress struct {
	mu sync.Mutex
	st ProgressState
}

func (p *Progress) Begin() {
	p.mu.Lock()
	p.st = ProgressState{Uploading: true}
	p.mu.Unlock()
}

// Advance raises the percentage to pct. Lower values are ignored.
func (p *Progress) Advance(pct int) {
	pct = max(0, min(100, pct))
	p.mu.Lock()
	if p.st.Uploading && pct > p.st.Percent {
		p.st.Percent = pct
	}
	p.mu.Unlock()
}

func (p *Progress) Done() {
	p.mu.Lock()
	p.st = ProgressState{}
	p.mu.Unlock()
}

func (p *Progress) State() ProgressState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// Simulator fakes upload progress for flows with nothing real to measure.
type Simulator struct {
	Interval time.Duration
	MaxStep  int
	Settle   time.Duration
}

var DefaultSimulator = Simulator{Interval: 150 * time.Millisecond, MaxStep: 20, Settle: 500 * time.Millisecond}

// Run drives p from 0 to 100 in random steps, holds 100 for Settle and
// leaves p reset. A cancelled ctx resets p and returns ctx.Err().
func (s Simulator) Run(ctx context.Context, p *Progress) error {
	step := max(1, s.MaxStep)
	if s.Interval <= 0 {
		s.Interval = DefaultSimulator.Interval
	}
	p.Begin()
	defer p.Done()

	tick := time.NewTicker(s.Interval)
	defer tick.Stop()
	pct := 0
	for pct < 100 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			pct += 1 + rand.IntN(step)
			p.Advance(pct)
		}
	}
	p.Advance(100)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.Settle):
	}
	return nil
}

// Reader reports real read progress against a known total.
type Reader struct {
	R     io.Reader
	Total int64
	P     *Progress

	read int64
}

func NewReader(r io.Reader, total int64, p *Progress) *Reader {
	p.Begin()
	return &Reader{R: r, Total: total, P: p}
}

func (r *Reader) Read(b []byte) (int, error) {
	n, err := r.R.Read(b)
	r.read += int64(n)
	if r.Total > 0 {
		r.P.Advance(int(r.read * 100 / r.Total))
	}
	if err == io.EOF {
		r.P.Advance(100)
	}
	return n, err
}
