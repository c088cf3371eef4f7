package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitTrackAPI/internal/types/workout"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestMirrorDispatcherSaveAndDelete(t *testing.T) {
	dispatcher := NewMirrorDispatcher()
	defer dispatcher.Stop()

	mock := &MockMirrorProvider{}
	dispatcher.SetProvider(mock)

	doc := &workout.Document{
		SQLWorkoutID:    "wk-1",
		UserID:          "user-1",
		Name:            "Push Day",
		DurationMinutes: 45,
	}

	dispatcher.DispatchSave(doc)
	dispatcher.DispatchDelete("wk-2")

	waitFor(t, 2*time.Second, func() bool {
		return mock.SavedCount() == 1 && mock.DeletedCount() == 1
	})

	require.Len(t, mock.Saved, 1)
	assert.Equal(t, "wk-1", mock.Saved[0].SQLWorkoutID)
	assert.Equal(t, []string{"wk-2"}, mock.Deleted)
}

func TestMirrorDispatcherWithoutProvider(t *testing.T) {
	dispatcher := NewMirrorDispatcher()
	defer dispatcher.Stop()

	// Jobs queued before a provider is configured are dropped, not
	// retried and not fatal.
	dispatcher.DispatchSave(&workout.Document{SQLWorkoutID: "wk-3"})
	time.Sleep(50 * time.Millisecond)
}
