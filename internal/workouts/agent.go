// Package workouts holds the workout entity agent: a stateful wrapper around
// the backend's workout resource that pushes state snapshots to subscribers,
// so consumers never talk to the API client directly.
package workouts

import (
	"context"
	"sync"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/agent"
	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	// DefaultRecentLimit is the recent-workouts window size loaded on
	// identity changes and compared by the poller.
	DefaultRecentLimit = 5
)

// State is the snapshot pushed to subscribers on every transition. Each
// operation owns its own loading flag so unrelated in-flight operations
// never appear to block each other.
type State struct {
	RecentWorkouts []api.Workout
	AllWorkouts    []api.Workout
	Workout        *api.Workout
	TotalCount     int

	// NewSinceLastPoll is set by the poller when the recent-window count
	// grew between two ticks.
	NewSinceLastPoll int

	IsLoadingRecent  bool
	IsLoadingAll     bool
	IsLoadingWorkout bool
	IsLoadingCount   bool
	IsUpdating       bool
	IsDeleting       bool

	Err             error
	LastRefreshedAt time.Time
}

type backendAPI interface {
	ListWorkouts(ctx context.Context, userID string, query api.WorkoutListQuery) ([]api.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID string) (*api.Workout, error)
	UpdateWorkout(ctx context.Context, userID, workoutID string, update api.WorkoutUpdate) (*api.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID string) error
	WorkoutsCount(ctx context.Context, userID string, query api.WorkoutListQuery) (int, error)
}

// Agent owns one mutable State and is its only writer. Construction never
// fails; the user id may be empty until SetUserID is called.
type Agent struct {
	mu      sync.Mutex
	userID  string
	backend backendAPI
	metrics *metrics.Manager

	state     State
	hub       *agent.Hub[State]
	destroyed bool

	recentSeq  agent.Sequencer
	allSeq     agent.Sequencer
	workoutSeq agent.Sequencer
	countSeq   agent.Sequencer

	pollCancel    context.CancelFunc
	pollWG        sync.WaitGroup
	lastPollCount int // -1 until the first poll tick settles
	onNewWorkouts func(newCount int)
}

func NewAgent(userID string, backend backendAPI, m *metrics.Manager) *Agent {
	if m != nil {
		m.GaugeActiveAgents.Inc()
	}
	return &Agent{
		userID:        userID,
		backend:       backend,
		metrics:       m,
		hub:           agent.NewHub[State](),
		lastPollCount: -1,
	}
}

// Subscribe registers a snapshot listener; the returned unsubscribe handle
// is idempotent.
func (a *Agent) Subscribe(fn func(State)) (unsubscribe func()) {
	return a.hub.Subscribe(fn)
}

func (a *Agent) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SetOnNewWorkouts registers the poller's new-workout callback, used for
// toast-style notifications separately from the snapshot stream.
func (a *Agent) SetOnNewWorkouts(fn func(newCount int)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onNewWorkouts = fn
}

// SetUserID supplies (or changes) the owning user and, when identity becomes
// known, kicks the initial loads: recent workouts and the total count.
func (a *Agent) SetUserID(ctx context.Context, userID string) error {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return nil
	}
	changed := a.userID != userID
	a.userID = userID
	a.mu.Unlock()

	if !changed || userID == "" {
		return nil
	}

	return multierr.Combine(
		a.LoadRecent(ctx, DefaultRecentLimit),
		a.RefreshCount(ctx, api.WorkoutListQuery{}),
	)
}

// commit mutates the state under lock and publishes the resulting snapshot.
// No-op once destroyed, so a late network completion is never observable.
func (a *Agent) commit(mutate func(*State)) {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	mutate(&a.state)
	snapshot := a.state
	a.mu.Unlock()

	a.hub.Publish(snapshot)
}

func (a *Agent) currentUserID() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID, !a.destroyed && a.userID != ""
}

func (a *Agent) LoadRecent(ctx context.Context, limit int) error {
	userID, ok := a.currentUserID()
	if !ok {
		log.Debugln("workout agent: load recent skipped, no user id")
		return nil
	}

	query := api.WorkoutListQuery{
		Limit:     api.Limit(limit),
		SortBy:    api.WorkoutSortCompletedAt,
		SortOrder: api.SortDesc,
	}
	if err := query.Validate(); err != nil {
		a.commit(func(s *State) {
			s.Err = err
		})
		return err
	}

	seq := a.recentSeq.Begin()
	a.commit(func(s *State) {
		// a newer load issued before this commit ran owns the flag
		if !a.recentSeq.Latest(seq) {
			return
		}
		s.IsLoadingRecent = true
		s.Err = nil
	})

	items, err := a.backend.ListWorkouts(ctx, userID, query)
	if !a.recentSeq.Latest(seq) {
		// a newer load owns the state now, drop this response
		log.Tracef("workout agent: discarding stale recent-workouts response (seq %d)", seq)
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingRecent = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingRecent = false
		s.RecentWorkouts = items
		s.NewSinceLastPoll = 0
		s.LastRefreshedAt = time.Now()
	})
	return nil
}

func (a *Agent) LoadAll(ctx context.Context, query api.WorkoutListQuery) error {
	userID, ok := a.currentUserID()
	if !ok {
		log.Debugln("workout agent: load all skipped, no user id")
		return nil
	}

	if err := query.Validate(); err != nil {
		a.commit(func(s *State) {
			s.Err = err
		})
		return err
	}

	seq := a.allSeq.Begin()
	a.commit(func(s *State) {
		if !a.allSeq.Latest(seq) {
			return
		}
		s.IsLoadingAll = true
		s.Err = nil
	})

	items, err := a.backend.ListWorkouts(ctx, userID, query)
	if !a.allSeq.Latest(seq) {
		log.Tracef("workout agent: discarding stale all-workouts response (seq %d)", seq)
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingAll = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingAll = false
		s.AllWorkouts = items
		s.LastRefreshedAt = time.Now()
	})
	return nil
}

func (a *Agent) LoadWorkout(ctx context.Context, workoutID string) error {
	userID, ok := a.currentUserID()
	if !ok {
		log.Debugln("workout agent: load workout skipped, no user id")
		return nil
	}

	seq := a.workoutSeq.Begin()
	a.commit(func(s *State) {
		if !a.workoutSeq.Latest(seq) {
			return
		}
		s.IsLoadingWorkout = true
		s.Err = nil
	})

	workout, err := a.backend.GetWorkout(ctx, userID, workoutID)
	if !a.workoutSeq.Latest(seq) {
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingWorkout = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingWorkout = false
		s.Workout = workout
	})
	return nil
}

func (a *Agent) RefreshCount(ctx context.Context, query api.WorkoutListQuery) error {
	userID, ok := a.currentUserID()
	if !ok {
		return nil
	}

	if err := query.Validate(); err != nil {
		a.commit(func(s *State) {
			s.Err = err
		})
		return err
	}

	seq := a.countSeq.Begin()
	a.commit(func(s *State) {
		if !a.countSeq.Latest(seq) {
			return
		}
		s.IsLoadingCount = true
		s.Err = nil
	})

	count, err := a.backend.WorkoutsCount(ctx, userID, query)
	if !a.countSeq.Latest(seq) {
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingCount = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingCount = false
		s.TotalCount = count
	})
	return nil
}

// UpdateWorkout sends the metadata update and, on success, replaces the
// matching entry in every held list.
func (a *Agent) UpdateWorkout(ctx context.Context, workoutID string, update api.WorkoutUpdate) (*api.Workout, error) {
	userID, ok := a.currentUserID()
	if !ok {
		return nil, nil
	}

	a.commit(func(s *State) {
		s.IsUpdating = true
		s.Err = nil
	})

	updated, err := a.backend.UpdateWorkout(ctx, userID, workoutID, update)
	if err != nil {
		a.commit(func(s *State) {
			s.IsUpdating = false
			s.Err = err
		})
		return nil, err
	}

	a.commit(func(s *State) {
		s.IsUpdating = false
		s.RecentWorkouts = replaceWorkout(s.RecentWorkouts, *updated)
		s.AllWorkouts = replaceWorkout(s.AllWorkouts, *updated)
		if s.Workout != nil && s.Workout.WorkoutID == updated.WorkoutID {
			s.Workout = updated
		}
	})
	return updated, nil
}

// DeleteWorkout removes the workout server-side and filters it out of both
// held lists locally; no refetch is issued.
func (a *Agent) DeleteWorkout(ctx context.Context, workoutID string) error {
	userID, ok := a.currentUserID()
	if !ok {
		return nil
	}

	a.commit(func(s *State) {
		s.IsDeleting = true
		s.Err = nil
	})

	if err := a.backend.DeleteWorkout(ctx, userID, workoutID); err != nil {
		a.commit(func(s *State) {
			s.IsDeleting = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsDeleting = false
		s.RecentWorkouts = filterWorkout(s.RecentWorkouts, workoutID)
		s.AllWorkouts = filterWorkout(s.AllWorkouts, workoutID)
		if s.Workout != nil && s.Workout.WorkoutID == workoutID {
			s.Workout = nil
		}
		if s.TotalCount > 0 {
			s.TotalCount--
		}
	})
	return nil
}

// Destroy stops polling, drops all subscribers and resets the state to the
// construction shape. Safe to call more than once; after it returns no
// subscriber is ever invoked again.
func (a *Agent) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	cancel := a.pollCancel
	a.pollCancel = nil
	a.userID = ""
	a.onNewWorkouts = nil
	a.state = State{}
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	a.pollWG.Wait()
	a.hub.Close()

	if a.metrics != nil {
		a.metrics.GaugeActiveAgents.Dec()
	}
}

func replaceWorkout(items []api.Workout, updated api.Workout) []api.Workout {
	for i := range items {
		if items[i].WorkoutID == updated.WorkoutID {
			out := make([]api.Workout, len(items))
			copy(out, items)
			out[i] = updated
			return out
		}
	}
	return items
}

func filterWorkout(items []api.Workout, workoutID string) []api.Workout {
	out := make([]api.Workout, 0, len(items))
	for _, w := range items {
		if w.WorkoutID != workoutID {
			out = append(out, w)
		}
	}
	return out
}
