package sync

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerSingleFlight(t *testing.T) {
	tracker := NewTracker()

	assert.NoError(t, tracker.Begin())
	assert.ErrorIs(t, tracker.Begin(), ErrAlreadyRunning)

	tracker.Finish(nil)
	assert.NoError(t, tracker.Begin())
}

func TestTrackerProgress(t *testing.T) {
	tracker := NewTracker()
	assert.NoError(t, tracker.Begin())

	tracker.SetTotal(3)
	tracker.BeginItem(8000000001, 1)

	status := tracker.Snapshot()
	assert.True(t, status.Running)
	assert.Equal(t, 0, status.Progress.Current)
	assert.Equal(t, 3, status.Progress.Total)
	assert.Equal(t, int64(8000000001), status.CurrentMatch.MatchId)
	assert.Equal(t, 1, status.CurrentMatch.Index)

	tracker.EndItem()
	status = tracker.Snapshot()
	assert.Equal(t, 1, status.Progress.Current)
}

func TestTrackerFinishClearsState(t *testing.T) {
	tracker := NewTracker()
	assert.NoError(t, tracker.Begin())
	tracker.SetTotal(1)
	tracker.BeginItem(8000000001, 1)
	tracker.EndItem()

	tracker.Finish(nil)

	status := tracker.Snapshot()
	assert.False(t, status.Running)
	assert.Nil(t, status.CurrentMatch)
	assert.Empty(t, status.Error)
	// Progress of the finished run stays visible for polling clients.
	assert.Equal(t, 1, status.Progress.Current)
	assert.Equal(t, 1, status.Progress.Total)
}

func TestTrackerFinishRecordsError(t *testing.T) {
	tracker := NewTracker()
	assert.NoError(t, tracker.Begin())
	tracker.Finish(errors.New("discovery failed"))

	status := tracker.Snapshot()
	assert.False(t, status.Running)
	assert.Equal(t, "discovery failed", status.Error)

	// The error is cleared when the next run begins.
	assert.NoError(t, tracker.Begin())
	assert.Empty(t, tracker.Snapshot().Error)
	tracker.Finish(nil)
}

func TestTrackerElapsedSeconds(t *testing.T) {
	tracker := NewTracker()

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }

	assert.NoError(t, tracker.Begin())
	current = current.Add(90 * time.Second)

	status := tracker.Snapshot()
	assert.Equal(t, 90.0, status.ElapsedSeconds)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), *status.StartedAt)
}
