package transient

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrUploadBusy = errors.New("upload id already in progress")

// Tracker keeps one Progress per running upload so concurrent uploads
// never reset each other.
type Tracker struct {
	mu   sync.Mutex
	runs map[string]*Progress
}

func NewTracker() *Tracker {
	return &Tracker{runs: map[string]*Progress{}}
}

// Start registers id, or a fresh uuid when id is empty, and returns its
// Progress already begun. An id that is still running is rejected.
func (t *Tracker) Start(id string) (string, *Progress, error) {
	if id == "" {
		id = uuid.NewString()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.runs[id]; busy {
		return id, nil, ErrUploadBusy
	}
	p := &Progress{}
	p.Begin()
	t.runs[id] = p
	return id, p, nil
}

// Finish drops id; polling it afterwards reports not found.
func (t *Tracker) Finish(id string) {
	t.mu.Lock()
	p := t.runs[id]
	delete(t.runs, id)
	t.mu.Unlock()
	if p != nil {
		p.Done()
	}
}

func (t *Tracker) State(id string) (ProgressState, bool) {
	t.mu.Lock()
	p, ok := t.runs[id]
	t.mu.Unlock()
	if !ok {
		return ProgressState{}, false
	}
	return p.State(), true
}

// Active is the number of uploads currently running.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.runs)
}
