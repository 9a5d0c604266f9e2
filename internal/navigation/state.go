// Package navigation is the client's single source of truth for identity,
// coach-context flags, badge counts and cross-cutting UI toggles, plus the
// pure helpers the navigation surfaces render from.
package navigation

import (
	"context"
	"sync"

	"github.com/neonpanda/neonpanda-client/internal/agent"
	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/prefs"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Counts are the cached navigation badge values. A failed refresh leaves the
// affected count at zero; badges are an enhancement, never a critical path.
type Counts struct {
	Workouts      int
	Conversations int
	Memories      int
	Reports       int
	Programs      int
	Coaches       int
	Exercises     int
}

// Snapshot is the read-only view handed to consumers and to the pure
// resolution helpers.
type Snapshot struct {
	UserID          string
	CoachID         string
	IsAuthenticated bool
	CoachName       string

	Counts Counts

	SidebarCollapsed      bool
	MoreMenuOpen          bool
	CommandPaletteOpen    bool
	CommandPalettePrefill string
}

// HasCoachContext gates coach-scoped navigation and features.
func (s Snapshot) HasCoachContext() bool {
	return s.UserID != "" && s.CoachID != "" && s.IsAuthenticated
}

type backendAPI interface {
	GetCoach(ctx context.Context, userID, coachID string) (*api.Coach, error)
	WorkoutsCount(ctx context.Context, userID string, query api.WorkoutListQuery) (int, error)
	ConversationsCount(ctx context.Context, userID string) (int, error)
	MemoriesCount(ctx context.Context, userID string) (int, error)
	ReportsCount(ctx context.Context, userID string) (int, error)
	ProgramsCount(ctx context.Context, userID string) (int, error)
	CoachesCount(ctx context.Context, userID string) (int, error)
	ExercisesCount(ctx context.Context, userID string) (int, error)
}

type prefsStore interface {
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

// State is constructed once at the application root and passed to every
// consumer explicitly; there is no package-global instance. It is the only
// writer of its snapshot.
type State struct {
	mu      sync.Mutex
	backend backendAPI
	prefs   prefsStore
	metrics *metrics.Manager

	snap Snapshot
	hub  *agent.Hub[Snapshot]
}

func NewState(ctx context.Context, backend backendAPI, prefStore prefsStore, m *metrics.Manager, isAuthenticated bool) *State {
	s := &State{
		backend: backend,
		prefs:   prefStore,
		metrics: m,
		hub:     agent.NewHub[Snapshot](),
		snap: Snapshot{
			IsAuthenticated: isAuthenticated,
		},
	}

	if prefStore != nil {
		collapsed, err := prefStore.GetBool(ctx, prefs.KeySidebarCollapsed, false)
		if err != nil {
			log.Errorf("navigation: failed to read sidebar preference: %s", err)
		}
		s.snap.SidebarCollapsed = collapsed
	}

	return s
}

func (s *State) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *State) commit(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.snap)
	snapshot := s.snap
	s.mu.Unlock()

	s.hub.Publish(snapshot)
}

// SetIdentity records the user/coach identifiers (parsed from the current
// route) and, when full coach context is reached, refetches the coach record
// and the badge counts. The returned error aggregates whatever failed;
// partial results are committed regardless.
func (s *State) SetIdentity(ctx context.Context, userID, coachID string) error {
	s.commit(func(snap *Snapshot) {
		snap.UserID = userID
		snap.CoachID = coachID
		snap.CoachName = ""
		// the previous identity's badges must not linger on the new one
		snap.Counts = Counts{}
	})

	if !s.Snapshot().HasCoachContext() {
		return nil
	}

	var errs error
	coach, err := s.backend.GetCoach(ctx, userID, coachID)
	if err != nil {
		log.Errorf("navigation: failed to load coach record: %s", err)
		errs = multierr.Append(errs, err)
	} else {
		s.commit(func(snap *Snapshot) {
			snap.CoachName = coach.Name
		})
	}

	errs = multierr.Append(errs, s.RefreshBadgeCounts(ctx))
	return errs
}

// RefreshBadgeCounts fans out all count fetches in parallel. Each failure is
// caught independently and degrades that badge to zero so one failing
// resource never blocks the others.
func (s *State) RefreshBadgeCounts(ctx context.Context) error {
	userID := s.Snapshot().UserID
	if userID == "" {
		return nil
	}

	if s.metrics != nil {
		s.metrics.CounterBadgeRefreshes.Inc()
	}

	type countFetch struct {
		name  string
		fetch func(context.Context, string) (int, error)
		apply func(*Counts, int)
	}

	fetches := []countFetch{
		{
			name: "workouts",
			fetch: func(ctx context.Context, userID string) (int, error) {
				return s.backend.WorkoutsCount(ctx, userID, api.WorkoutListQuery{})
			},
			apply: func(c *Counts, n int) { c.Workouts = n },
		},
		{name: "conversations", fetch: s.backend.ConversationsCount, apply: func(c *Counts, n int) { c.Conversations = n }},
		{name: "memories", fetch: s.backend.MemoriesCount, apply: func(c *Counts, n int) { c.Memories = n }},
		{name: "reports", fetch: s.backend.ReportsCount, apply: func(c *Counts, n int) { c.Reports = n }},
		{name: "programs", fetch: s.backend.ProgramsCount, apply: func(c *Counts, n int) { c.Programs = n }},
		{name: "coaches", fetch: s.backend.CoachesCount, apply: func(c *Counts, n int) { c.Coaches = n }},
		{name: "exercises", fetch: s.backend.ExercisesCount, apply: func(c *Counts, n int) { c.Exercises = n }},
	}

	counts := make([]int, len(fetches))
	fetchErrs := make([]error, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func(i int, f countFetch) {
			defer wg.Done()
			counts[i], fetchErrs[i] = f.fetch(ctx, userID)
		}(i, f)
	}
	wg.Wait()

	var errs error
	s.commit(func(snap *Snapshot) {
		for i, f := range fetches {
			if fetchErrs[i] != nil {
				log.Errorf("navigation: %s count refresh failed, badge degraded to zero: %s", f.name, fetchErrs[i])
				errs = multierr.Append(errs, fetchErrs[i])
				f.apply(&snap.Counts, 0)
				continue
			}
			f.apply(&snap.Counts, counts[i])
		}
	})
	return errs
}

// ToggleSidebar flips the collapse preference and persists it durably.
func (s *State) ToggleSidebar(ctx context.Context) bool {
	var collapsed bool
	s.commit(func(snap *Snapshot) {
		snap.SidebarCollapsed = !snap.SidebarCollapsed
		collapsed = snap.SidebarCollapsed
	})

	if s.prefs != nil {
		if err := s.prefs.SetBool(ctx, prefs.KeySidebarCollapsed, collapsed); err != nil {
			log.Errorf("navigation: failed to persist sidebar preference: %s", err)
		}
	}
	return collapsed
}

func (s *State) SetMoreMenuOpen(open bool) {
	s.commit(func(snap *Snapshot) {
		snap.MoreMenuOpen = open
	})
}

// OpenCommandPalette opens the single global command input surface; when it
// is already open the prefill is replaced.
func (s *State) OpenCommandPalette(prefill string) {
	s.commit(func(snap *Snapshot) {
		snap.CommandPaletteOpen = true
		snap.CommandPalettePrefill = prefill
	})
}

func (s *State) CloseCommandPalette() {
	s.commit(func(snap *Snapshot) {
		snap.CommandPaletteOpen = false
		snap.CommandPalettePrefill = ""
	})
}
