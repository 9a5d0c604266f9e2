// Package traininggrounds composes the coach-scoped dashboard: the coach
// record plus the entity counts its tiles show.
package traininggrounds

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

type State struct {
	Coach *api.Coach

	WorkoutCount      int
	ConversationCount int
	ReportCount       int

	IsLoading bool

	Err             error
	LastRefreshedAt time.Time
}

type backendAPI interface {
	GetCoach(ctx context.Context, userID, coachID string) (*api.Coach, error)
	WorkoutsCount(ctx context.Context, userID string, query api.WorkoutListQuery) (int, error)
	ConversationsCount(ctx context.Context, userID string) (int, error)
	ReportsCount(ctx context.Context, userID string) (int, error)
}

type Agent struct {
	mu      sync.Mutex
	userID  string
	coachID string
	backend backendAPI
	metrics *metrics.Manager

	state     State
	hub       *agent.Hub[State]
	destroyed bool

	loadSeq agent.Sequencer
}

func NewAgent(userID, coachID string, backend backendAPI, m *metrics.Manager) *Agent {
	if m != nil {
		m.GaugeActiveAgents.Inc()
	}
	return &Agent{
		userID:  userID,
		coachID: coachID,
		backend: backend,
		metrics: m,
		hub:     agent.NewHub[State](),
	}
}

func (a *Agent) Subscribe(fn func(State)) (unsubscribe func()) {
	return a.hub.Subscribe(fn)
}

func (a *Agent) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

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

// LoadDashboard fans out the coach record fetch and the three counts in
// parallel. Failures are isolated: whatever succeeded is committed, and the
// aggregate error carries everything that did not.
func (a *Agent) LoadDashboard(ctx context.Context) error {
	a.mu.Lock()
	if a.destroyed || a.userID == "" || a.coachID == "" {
		a.mu.Unlock()
		log.Debugln("training grounds agent: load skipped, identity incomplete")
		return nil
	}
	userID, coachID := a.userID, a.coachID
	a.mu.Unlock()

	seq := a.loadSeq.Begin()
	a.commit(func(s *State) {
		// a newer load issued before this commit ran owns the flag
		if !a.loadSeq.Latest(seq) {
			return
		}
		s.IsLoading = true
		s.Err = nil
	})

	var (
		coach             *api.Coach
		workoutCount      int
		conversationCount int
		reportCount       int

		coachErr, workoutErr, convErr, reportErr error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		coach, coachErr = a.backend.GetCoach(ctx, userID, coachID)
	}()
	go func() {
		defer wg.Done()
		workoutCount, workoutErr = a.backend.WorkoutsCount(ctx, userID, api.WorkoutListQuery{CoachID: coachID})
	}()
	go func() {
		defer wg.Done()
		conversationCount, convErr = a.backend.ConversationsCount(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		reportCount, reportErr = a.backend.ReportsCount(ctx, userID)
	}()
	wg.Wait()

	if !a.loadSeq.Latest(seq) {
		return nil
	}

	combined := multierr.Combine(coachErr, workoutErr, convErr, reportErr)
	for _, err := range []error{coachErr, workoutErr, convErr, reportErr} {
		if err != nil {
			log.Errorf("training grounds agent: partial dashboard load: %s", err)
		}
	}

	a.commit(func(s *State) {
		s.IsLoading = false
		s.Err = combined
		if coachErr == nil {
			s.Coach = coach
		}
		if workoutErr == nil {
			s.WorkoutCount = workoutCount
		}
		if convErr == nil {
			s.ConversationCount = conversationCount
		}
		if reportErr == nil {
			s.ReportCount = reportCount
		}
		s.LastRefreshedAt = time.Now()
	})
	return combined
}

func (a *Agent) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	a.userID = ""
	a.coachID = ""
	a.state = State{}
	a.mu.Unlock()

	a.hub.Close()

	if a.metrics != nil {
		a.metrics.GaugeActiveAgents.Dec()
	}
}
