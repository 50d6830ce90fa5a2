package sync

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned when a sync is requested while one is in flight.
var ErrAlreadyRunning = errors.New("a sync is already running")

// CurrentMatch identifies the match in flight within a run.
type CurrentMatch struct {
	MatchId int64 `json:"matchId"`
	Index   int   `json:"index"`
}

// Progress counters of a run.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Status is the read only snapshot consumed by polling clients.
type Status struct {
	Running        bool          `json:"running"`
	Progress       Progress      `json:"progress"`
	CurrentMatch   *CurrentMatch `json:"currentMatch"`
	StartedAt      *time.Time    `json:"startedAt"`
	ElapsedSeconds float64       `json:"elapsedSeconds"`
	Error          string        `json:"error,omitempty"`
}

// Tracker owns the single in flight run state of the process.
// Single writer: the ingestor updates it synchronously as it advances, other
// components only read snapshots through the coordinator.
type Tracker struct {
	mu sync.Mutex

	running      bool
	current      int
	total        int
	currentMatch *CurrentMatch
	startedAt    time.Time
	lastError    string

	now func() time.Time
}

// NewTracker creates the tracker.
func NewTracker() *Tracker {
	return &Tracker{
		now: time.Now,
	}
}

// Begin transitions to the running state. Fails immediately when a run is
// already in flight, this is the single flight guard of the process.
func (t *Tracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrAlreadyRunning
	}

	t.running = true
	t.current = 0
	t.total = 0
	t.currentMatch = nil
	t.startedAt = t.now()
	t.lastError = ""

	return nil
}

// SetTotal publishes the size of the working set once the diff is known.
func (t *Tracker) SetTotal(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
}

// BeginItem publishes the match about to be processed.
func (t *Tracker) BeginItem(matchId int64, index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.currentMatch = &CurrentMatch{MatchId: matchId, Index: index}
}

// EndItem advances the progress counter after a match was processed,
// successfully or not.
func (t *Tracker) EndItem() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current++
}

// Finish clears the running flag regardless of the outcome and records the
// terminal error, if any. Always reached through the coordinator's deferred
// cleanup so a failed stage can't leave the state stuck.
func (t *Tracker) Finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.currentMatch = nil
	if err != nil {
		t.lastError = err.Error()
	}
}

// Snapshot returns the current status. Side effect free.
func (t *Tracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := Status{
		Running: t.running,
		Progress: Progress{
			Current: t.current,
			Total:   t.total,
		},
		Error: t.lastError,
	}

	if t.currentMatch != nil {
		current := *t.currentMatch
		status.CurrentMatch = &current
	}

	if !t.startedAt.IsZero() {
		startedAt := t.startedAt
		status.StartedAt = &startedAt
		status.ElapsedSeconds = t.now().Sub(t.startedAt).Seconds()
	}

	return status
}
