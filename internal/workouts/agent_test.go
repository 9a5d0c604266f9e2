package workouts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

// snapshotCollector records every published snapshot in order.
type snapshotCollector struct {
	mu        sync.Mutex
	snapshots []State
}

func (c *snapshotCollector) collect(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = append(c.snapshots, s)
}

func (c *snapshotCollector) all() []State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]State, len(c.snapshots))
	copy(out, c.snapshots)
	return out
}

func testWorkout(id string) api.Workout {
	return api.Workout{
		WorkoutID:   id,
		CompletedAt: time.Now().Add(-time.Hour),
		Duration:    45 * 60,
		Discipline:  "crossfit",
		Summary:     "workout " + id,
	}
}

func TestAgent_SetUserID_TriggersInitialLoads(t *testing.T) {
	backend := newTestBackend()
	backend.workouts = []api.Workout{testWorkout("w1"), testWorkout("w2")}
	backend.count = 2

	ag := NewAgent("", backend, metrics.NewTestManager())
	defer ag.Destroy()

	collector := &snapshotCollector{}
	unsubscribe := ag.Subscribe(collector.collect)
	defer unsubscribe()

	require.NoError(t, ag.SetUserID(context.Background(), "u1"))

	listCalls, _, _, _, countCalls := backend.calls()
	assert.Equal(t, 1, listCalls)
	assert.Equal(t, 1, countCalls)

	final := ag.Snapshot()
	assert.Len(t, final.RecentWorkouts, 2)
	assert.Equal(t, 2, final.TotalCount)
	assert.False(t, final.IsLoadingRecent)
	assert.False(t, final.IsLoadingCount)
	assert.NoError(t, final.Err)

	// both loading flags transitioned false -> true -> false
	var sawRecentLoading, sawCountLoading bool
	for _, s := range collector.all() {
		if s.IsLoadingRecent {
			sawRecentLoading = true
		}
		if s.IsLoadingCount {
			sawCountLoading = true
		}
	}
	assert.True(t, sawRecentLoading)
	assert.True(t, sawCountLoading)
}

func TestAgent_SetUserID_SameIDNoReload(t *testing.T) {
	backend := newTestBackend()
	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	require.NoError(t, ag.SetUserID(context.Background(), "u1"))
	listCalls, _, _, _, countCalls := backend.calls()
	assert.Zero(t, listCalls)
	assert.Zero(t, countCalls)
}

func TestAgent_LoadRecent_SetsLoadingFlagSynchronously(t *testing.T) {
	backend := newTestBackend()
	backend.workouts = []api.Workout{testWorkout("w1")}

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	collector := &snapshotCollector{}
	ag.Subscribe(collector.collect)

	require.NoError(t, ag.LoadRecent(context.Background(), 5))

	snapshots := collector.all()
	require.NotEmpty(t, snapshots)
	assert.True(t, snapshots[0].IsLoadingRecent, "first published snapshot must carry the loading flag")
	assert.NoError(t, snapshots[0].Err)
	last := snapshots[len(snapshots)-1]
	assert.False(t, last.IsLoadingRecent)
	assert.Len(t, last.RecentWorkouts, 1)
}

func TestAgent_LoadRecent_Failure(t *testing.T) {
	backend := newTestBackend()
	backend.listErr = errors.New("backend down")

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	err := ag.LoadRecent(context.Background(), 5)
	require.ErrorContains(t, err, "backend down")

	snap := ag.Snapshot()
	assert.False(t, snap.IsLoadingRecent, "loading flag settles on failure too")
	assert.ErrorContains(t, snap.Err, "backend down")
}

func TestAgent_LoadRecent_InvalidLimit(t *testing.T) {
	backend := newTestBackend()
	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	err := ag.LoadRecent(context.Background(), 101)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindValidation, apiErr.Kind)

	listCalls, _, _, _, _ := backend.calls()
	assert.Zero(t, listCalls, "validation failures must not reach the network")
}

func TestAgent_LoadRecent_NoUserID(t *testing.T) {
	backend := newTestBackend()
	ag := NewAgent("", backend, nil)
	defer ag.Destroy()

	require.NoError(t, ag.LoadRecent(context.Background(), 5))
	listCalls, _, _, _, _ := backend.calls()
	assert.Zero(t, listCalls)
}

func TestAgent_OverlappingLoads_LatestIssuedWins(t *testing.T) {
	backend := newTestBackend()
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	backend.listHook = func(call int, _ api.WorkoutListQuery) ([]api.Workout, error) {
		if call == 1 {
			close(firstStarted)
			<-releaseFirst
			return []api.Workout{testWorkout("stale")}, nil
		}
		return []api.Workout{testWorkout("fresh")}, nil
	}

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = ag.LoadRecent(context.Background(), 5)
	}()
	<-firstStarted

	// second load issued while the first response is still in flight
	require.NoError(t, ag.LoadRecent(context.Background(), 5))

	// now let the first (stale) response arrive late
	close(releaseFirst)
	wg.Wait()

	snap := ag.Snapshot()
	require.Len(t, snap.RecentWorkouts, 1)
	assert.Equal(t, "fresh", snap.RecentWorkouts[0].WorkoutID,
		"a stale response must never overwrite a later load's result")
}

func TestAgent_OverlappingLoads_DiscardedLoadLeavesFlagSettled(t *testing.T) {
	backend := newTestBackend()
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	backend.listHook = func(call int, _ api.WorkoutListQuery) ([]api.Workout, error) {
		if call == 1 {
			close(firstStarted)
			<-releaseFirst
			return []api.Workout{testWorkout("stale")}, nil
		}
		return []api.Workout{testWorkout("fresh")}, nil
	}

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	collector := &snapshotCollector{}
	ag.Subscribe(collector.collect)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = ag.LoadRecent(context.Background(), 5)
	}()
	<-firstStarted

	require.NoError(t, ag.LoadRecent(context.Background(), 5))
	settledAt := len(collector.all())

	close(releaseFirst)
	wg.Wait()

	// the discarded response must not publish anything, and in particular
	// must never re-raise the loading flag after the newer load settled it
	snap := ag.Snapshot()
	assert.False(t, snap.IsLoadingRecent)
	for _, s := range collector.all()[settledAt:] {
		assert.False(t, s.IsLoadingRecent,
			"no snapshot after the fresh load settles may carry the loading flag")
	}
}

func TestAgent_DeleteWorkout_FiltersLocallyWithoutRefetch(t *testing.T) {
	backend := newTestBackend()
	backend.workouts = []api.Workout{testWorkout("w1"), testWorkout("w2")}
	backend.count = 2

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	ctx := context.Background()
	require.NoError(t, ag.LoadRecent(ctx, 5))
	require.NoError(t, ag.LoadAll(ctx, api.WorkoutListQuery{Limit: api.Limit(50)}))
	require.NoError(t, ag.RefreshCount(ctx, api.WorkoutListQuery{}))

	listCallsBefore, _, _, _, _ := backend.calls()

	require.NoError(t, ag.DeleteWorkout(ctx, "w1"))

	snap := ag.Snapshot()
	for _, w := range snap.RecentWorkouts {
		assert.NotEqual(t, "w1", w.WorkoutID)
	}
	for _, w := range snap.AllWorkouts {
		assert.NotEqual(t, "w1", w.WorkoutID)
	}
	assert.Equal(t, 1, snap.TotalCount)
	assert.False(t, snap.IsDeleting)

	listCallsAfter, _, _, deleteCalls, _ := backend.calls()
	assert.Equal(t, listCallsBefore, listCallsAfter, "delete must not trigger a refetch")
	assert.Equal(t, 1, deleteCalls)
}

func TestAgent_DeleteWorkout_FailureSurfacesError(t *testing.T) {
	backend := newTestBackend()
	backend.workouts = []api.Workout{testWorkout("w1")}
	backend.deleteErr = errors.New("delete refused")

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	ctx := context.Background()
	require.NoError(t, ag.LoadRecent(ctx, 5))

	err := ag.DeleteWorkout(ctx, "w1")
	require.ErrorContains(t, err, "delete refused")

	snap := ag.Snapshot()
	assert.ErrorContains(t, snap.Err, "delete refused")
	assert.Len(t, snap.RecentWorkouts, 1, "failed delete keeps the item")
}

func TestAgent_UpdateWorkout_ReplacesHeldEntries(t *testing.T) {
	backend := newTestBackend()
	backend.workouts = []api.Workout{testWorkout("w1"), testWorkout("w2")}

	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	ctx := context.Background()
	require.NoError(t, ag.LoadRecent(ctx, 5))
	require.NoError(t, ag.LoadWorkout(ctx, "w1"))

	updated, err := ag.UpdateWorkout(ctx, "w1", api.WorkoutUpdate{
		ExtractionMetadata: &api.ExtractionMetadata{Confidence: api.Confidence(0.9)},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	snap := ag.Snapshot()
	require.NotNil(t, snap.Workout)
	require.NotNil(t, snap.Workout.ExtractionMetadata.Confidence)
	assert.InDelta(t, 0.9, *snap.Workout.ExtractionMetadata.Confidence, 1e-9)
	for _, w := range snap.RecentWorkouts {
		if w.WorkoutID == "w1" {
			require.NotNil(t, w.ExtractionMetadata.Confidence)
			assert.InDelta(t, 0.9, *w.ExtractionMetadata.Confidence, 1e-9)
		}
	}
}

func TestAgent_LoadWorkout_NotFound(t *testing.T) {
	backend := newTestBackend()
	ag := NewAgent("u1", backend, nil)
	defer ag.Destroy()

	err := ag.LoadWorkout(context.Background(), "nope")
	require.ErrorIs(t, err, api.ErrNotFound)

	snap := ag.Snapshot()
	assert.False(t, snap.IsLoadingWorkout)
	assert.ErrorIs(t, snap.Err, api.ErrNotFound)
}

func TestAgent_Destroy_ResetsStateAndSilencesSubscribers(t *testing.T) {
	backend := newTestBackend()
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	backend.listHook = func(call int, _ api.WorkoutListQuery) ([]api.Workout, error) {
		close(firstStarted)
		<-releaseFirst
		return []api.Workout{testWorkout("late")}, nil
	}

	ag := NewAgent("u1", backend, metrics.NewTestManager())

	collector := &snapshotCollector{}
	ag.Subscribe(collector.collect)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = ag.LoadRecent(context.Background(), 5)
	}()
	<-firstStarted

	ag.Destroy()
	publishedBefore := len(collector.all())

	// late network completion after destroy must be invisible
	close(releaseFirst)
	wg.Wait()

	assert.Equal(t, State{}, ag.Snapshot(), "destroyed agent resets to the construction shape")
	assert.Len(t, collector.all(), publishedBefore, "no snapshot may be published after destroy")

	// destroy is idempotent
	assert.NotPanics(t, ag.Destroy)
}

func TestAgent_OperationsAfterDestroyAreNoOps(t *testing.T) {
	backend := newTestBackend()
	backend.workouts = []api.Workout{testWorkout("w1")}

	ag := NewAgent("u1", backend, nil)
	ag.Destroy()

	require.NoError(t, ag.LoadRecent(context.Background(), 5))
	require.NoError(t, ag.DeleteWorkout(context.Background(), "w1"))

	listCalls, _, _, deleteCalls, _ := backend.calls()
	assert.Zero(t, listCalls)
	assert.Zero(t, deleteCalls)
	assert.Equal(t, State{}, ag.Snapshot())
}
