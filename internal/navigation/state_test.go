package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/prefs"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSetIdentity(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend()
	backend.coach = &api.Coach{CoachID: "coach-1", Name: "Marcus"}
	backend.counts["workouts"] = 42
	backend.counts["conversations"] = 5
	backend.counts["coaches"] = 2

	state := NewState(ctx, backend, newTestPrefs(), metrics.NewTestManager(), true)

	require.NoError(t, state.SetIdentity(ctx, "user-1", "coach-1"))

	snap := state.Snapshot()
	assert.Equal(t, "user-1", snap.UserID)
	assert.Equal(t, "coach-1", snap.CoachID)
	assert.True(t, snap.HasCoachContext())
	assert.Equal(t, "Marcus", snap.CoachName)
	assert.Equal(t, 42, snap.Counts.Workouts)
	assert.Equal(t, 5, snap.Counts.Conversations)
	assert.Equal(t, 2, snap.Counts.Coaches)
	assert.Zero(t, snap.Counts.Memories)
}

func TestStateSetIdentityWithoutCoach(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend()
	state := NewState(ctx, backend, newTestPrefs(), metrics.NewTestManager(), true)

	require.NoError(t, state.SetIdentity(ctx, "user-1", ""))

	assert.False(t, state.Snapshot().HasCoachContext())
	// no coach context, nothing to fetch
	assert.Zero(t, backend.coachCalls)
	assert.Zero(t, backend.countCalls)
}

func TestStateSetIdentityClearsPreviousCounts(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend()
	backend.coach = &api.Coach{CoachID: "coach-1", Name: "Marcus"}
	backend.counts["workouts"] = 42
	backend.counts["coaches"] = 2

	state := NewState(ctx, backend, newTestPrefs(), metrics.NewTestManager(), true)
	require.NoError(t, state.SetIdentity(ctx, "user-1", "coach-1"))
	require.Equal(t, 42, state.Snapshot().Counts.Workouts)

	// new identity without coach context: no refresh runs, but the old
	// user's badges must not linger
	require.NoError(t, state.SetIdentity(ctx, "user-2", ""))

	snap := state.Snapshot()
	assert.Equal(t, "user-2", snap.UserID)
	assert.Empty(t, snap.CoachName)
	assert.Equal(t, Counts{}, snap.Counts)
}

func TestStateBadgeRefreshDegradedOnFailure(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend()
	backend.coach = &api.Coach{CoachID: "coach-1", Name: "Marcus"}
	backend.counts["workouts"] = 42
	backend.counts["reports"] = 9
	backend.countErrs["memories"] = errors.New("memories service down")

	state := NewState(ctx, backend, newTestPrefs(), metrics.NewTestManager(), true)

	err := state.SetIdentity(ctx, "user-1", "coach-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memories service down")

	// one failing resource degrades its own badge only
	snap := state.Snapshot()
	assert.Equal(t, 42, snap.Counts.Workouts)
	assert.Equal(t, 9, snap.Counts.Reports)
	assert.Zero(t, snap.Counts.Memories)
	assert.Equal(t, "Marcus", snap.CoachName)
}

func TestStateSetIdentityCoachFetchFails(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend()
	backend.coachErr = errors.New("coach lookup failed")
	backend.counts["workouts"] = 3

	state := NewState(ctx, backend, newTestPrefs(), metrics.NewTestManager(), true)

	err := state.SetIdentity(ctx, "user-1", "coach-1")
	require.Error(t, err)

	snap := state.Snapshot()
	assert.Empty(t, snap.CoachName)
	assert.Equal(t, 3, snap.Counts.Workouts)
}

func TestStateRefreshBadgeCountsWithoutUser(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend()
	state := NewState(ctx, backend, newTestPrefs(), metrics.NewTestManager(), true)

	require.NoError(t, state.RefreshBadgeCounts(ctx))
	assert.Zero(t, backend.countCalls)
}

func TestStateToggleSidebarPersists(t *testing.T) {
	ctx := context.Background()
	prefStore := newTestPrefs()
	state := NewState(ctx, newTestBackend(), prefStore, metrics.NewTestManager(), true)

	assert.False(t, state.Snapshot().SidebarCollapsed)
	assert.True(t, state.ToggleSidebar(ctx))
	assert.True(t, prefStore.bools[prefs.KeySidebarCollapsed])

	assert.False(t, state.ToggleSidebar(ctx))
	assert.False(t, prefStore.bools[prefs.KeySidebarCollapsed])
}

func TestStateRestoresSidebarPreference(t *testing.T) {
	ctx := context.Background()
	prefStore := newTestPrefs()
	prefStore.bools[prefs.KeySidebarCollapsed] = true

	state := NewState(ctx, newTestBackend(), prefStore, metrics.NewTestManager(), true)
	assert.True(t, state.Snapshot().SidebarCollapsed)
}

func TestStateToggleSidebarSurvivesPersistError(t *testing.T) {
	ctx := context.Background()
	prefStore := newTestPrefs()
	prefStore.setErr = errors.New("disk full")

	state := NewState(ctx, newTestBackend(), prefStore, metrics.NewTestManager(), true)
	// in-memory state flips even when persistence fails
	assert.True(t, state.ToggleSidebar(ctx))
	assert.True(t, state.Snapshot().SidebarCollapsed)
}

func TestStateCommandPalette(t *testing.T) {
	ctx := context.Background()
	state := NewState(ctx, newTestBackend(), newTestPrefs(), metrics.NewTestManager(), true)

	state.OpenCommandPalette("log workout ")
	snap := state.Snapshot()
	assert.True(t, snap.CommandPaletteOpen)
	assert.Equal(t, "log workout ", snap.CommandPalettePrefill)

	// reopening replaces the prefill, there is only one palette
	state.OpenCommandPalette("start conversation ")
	assert.Equal(t, "start conversation ", state.Snapshot().CommandPalettePrefill)

	state.CloseCommandPalette()
	snap = state.Snapshot()
	assert.False(t, snap.CommandPaletteOpen)
	assert.Empty(t, snap.CommandPalettePrefill)
}

func TestStateSubscribers(t *testing.T) {
	ctx := context.Background()
	state := NewState(ctx, newTestBackend(), newTestPrefs(), metrics.NewTestManager(), true)

	var seen []Snapshot
	unsubscribe := state.Subscribe(func(s Snapshot) {
		seen = append(seen, s)
	})

	state.SetMoreMenuOpen(true)
	require.Len(t, seen, 1)
	assert.True(t, seen[0].MoreMenuOpen)

	unsubscribe()
	state.SetMoreMenuOpen(false)
	assert.Len(t, seen, 1)
}
