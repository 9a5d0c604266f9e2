// Package coaches holds the coach entity agent.
package coaches

import (
	"context"
	"sync"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/agent"
	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

type State struct {
	Coaches []api.Coach
	Coach   *api.Coach

	IsLoadingCoaches bool
	IsLoadingCoach   bool

	Err             error
	LastRefreshedAt time.Time
}

type backendAPI interface {
	ListCoaches(ctx context.Context, userID string) ([]api.Coach, error)
	GetCoach(ctx context.Context, userID, coachID string) (*api.Coach, error)
}

type Agent struct {
	mu      sync.Mutex
	userID  string
	backend backendAPI
	metrics *metrics.Manager

	state     State
	hub       *agent.Hub[State]
	destroyed bool

	listSeq  agent.Sequencer
	coachSeq agent.Sequencer
}

func NewAgent(userID string, backend backendAPI, m *metrics.Manager) *Agent {
	if m != nil {
		m.GaugeActiveAgents.Inc()
	}
	return &Agent{
		userID:  userID,
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
	return a.LoadCoaches(ctx)
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

func (a *Agent) currentUserID() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID, !a.destroyed && a.userID != ""
}

func (a *Agent) LoadCoaches(ctx context.Context) error {
	userID, ok := a.currentUserID()
	if !ok {
		log.Debugln("coach agent: load coaches skipped, no user id")
		return nil
	}

	seq := a.listSeq.Begin()
	a.commit(func(s *State) {
		// a newer load issued before this commit ran owns the flag
		if !a.listSeq.Latest(seq) {
			return
		}
		s.IsLoadingCoaches = true
		s.Err = nil
	})

	coaches, err := a.backend.ListCoaches(ctx, userID)
	if !a.listSeq.Latest(seq) {
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingCoaches = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingCoaches = false
		s.Coaches = coaches
		s.LastRefreshedAt = time.Now()
	})
	return nil
}

func (a *Agent) LoadCoach(ctx context.Context, coachID string) error {
	userID, ok := a.currentUserID()
	if !ok {
		log.Debugln("coach agent: load coach skipped, no user id")
		return nil
	}

	seq := a.coachSeq.Begin()
	a.commit(func(s *State) {
		if !a.coachSeq.Latest(seq) {
			return
		}
		s.IsLoadingCoach = true
		s.Err = nil
	})

	coach, err := a.backend.GetCoach(ctx, userID, coachID)
	if !a.coachSeq.Latest(seq) {
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingCoach = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingCoach = false
		s.Coach = coach
	})
	return nil
}

func (a *Agent) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	a.userID = ""
	a.state = State{}
	a.mu.Unlock()

	a.hub.Close()

	if a.metrics != nil {
		a.metrics.GaugeActiveAgents.Dec()
	}
}
