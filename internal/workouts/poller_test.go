package workouts

import (
	"context"
	"testing"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectNewWorkouts(t *testing.T) {
	testCases := []struct {
		name     string
		prev     int
		current  int
		expected int
	}{
		{name: "no baseline yet", prev: -1, current: 10, expected: 0},
		{name: "no change", prev: 5, current: 5, expected: 0},
		{name: "two new", prev: 5, current: 7, expected: 2},
		{name: "shrunk after deletes", prev: 5, current: 3, expected: 0},
		{name: "from zero", prev: 0, current: 1, expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectNewWorkouts(tc.prev, tc.current))
		})
	}
}

func TestAgent_Polling_NotifiesOnNewWorkouts(t *testing.T) {
	backend := newTestBackend()
	counts := []int{3, 3, 5}
	backend.countHook = func(call int) (int, error) {
		idx := call - 1
		if idx >= len(counts) {
			idx = len(counts) - 1
		}
		return counts[idx], nil
	}

	ag := NewAgent("u1", backend, metrics.NewTestManager())
	defer ag.Destroy()

	notified := make(chan int, 4)
	ag.SetOnNewWorkouts(func(newCount int) {
		notified <- newCount
	})

	ag.StartPolling(context.Background(), 10*time.Millisecond)

	select {
	case fresh := <-notified:
		assert.Equal(t, 2, fresh)
	case <-time.After(2 * time.Second):
		t.Fatal("poller never reported new workouts")
	}

	ag.StopPolling()

	snap := ag.Snapshot()
	assert.Equal(t, 5, snap.TotalCount)
	assert.Equal(t, 2, snap.NewSinceLastPoll)
}

func TestAgent_Polling_FirstTickIsBaselineOnly(t *testing.T) {
	backend := newTestBackend()
	backend.count = 10

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	notified := make(chan int, 1)
	ag.SetOnNewWorkouts(func(newCount int) {
		notified <- newCount
	})

	ag.StartPolling(context.Background(), 10*time.Millisecond)

	// wait for a few ticks, none of which may notify
	require.Eventually(t, func() bool {
		_, _, _, _, countCalls := backend.calls()
		return countCalls >= 3
	}, 2*time.Second, 5*time.Millisecond)

	ag.StopPolling()

	select {
	case fresh := <-notified:
		t.Fatalf("unexpected new-workout notification: %d", fresh)
	default:
	}
}

func TestAgent_StartPolling_Twice(t *testing.T) {
	backend := newTestBackend()
	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	ag.StartPolling(context.Background(), time.Hour)
	// second start is ignored while the first loop runs
	ag.StartPolling(context.Background(), time.Hour)
	ag.StopPolling()
}
