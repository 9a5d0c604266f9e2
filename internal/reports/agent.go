// Package reports holds the weekly-report entity agent. Reports are
// read-only from the client's perspective and keyed by ISO week id.
package reports

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/agent"
	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const DefaultRecentLimit = 8

type State struct {
	RecentReports []api.Report
	Report        *api.Report
	TotalCount    int

	IsLoadingRecent bool
	IsLoadingReport bool

	Err             error
	LastRefreshedAt time.Time
}

type backendAPI interface {
	ListReports(ctx context.Context, userID string, query api.ListQuery) ([]api.Report, error)
	GetWeeklyReport(ctx context.Context, userID, weekID string) (*api.Report, error)
	ReportsCount(ctx context.Context, userID string) (int, error)
}

type Agent struct {
	mu      sync.Mutex
	userID  string
	backend backendAPI
	metrics *metrics.Manager

	state     State
	hub       *agent.Hub[State]
	destroyed bool

	recentSeq agent.Sequencer
	reportSeq agent.Sequencer
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
		log.Debugln("report agent: load recent skipped, no user id")
		return nil
	}

	query := api.ListQuery{
		Limit:     api.Limit(limit),
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

	items, err := a.backend.ListReports(ctx, userID, query)
	if !a.recentSeq.Latest(seq) {
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
		s.RecentReports = items
		s.LastRefreshedAt = time.Now()
	})
	return nil
}

func (a *Agent) LoadWeek(ctx context.Context, weekID string) error {
	userID, ok := a.currentUserID()
	if !ok {
		log.Debugln("report agent: load week skipped, no user id")
		return nil
	}

	seq := a.reportSeq.Begin()
	a.commit(func(s *State) {
		if !a.reportSeq.Latest(seq) {
			return
		}
		s.IsLoadingReport = true
		s.Err = nil
	})

	report, err := a.backend.GetWeeklyReport(ctx, userID, weekID)
	if !a.reportSeq.Latest(seq) {
		return nil
	}
	if err != nil {
		a.commit(func(s *State) {
			s.IsLoadingReport = false
			s.Err = err
		})
		return err
	}

	a.commit(func(s *State) {
		s.IsLoadingReport = false
		s.Report = report
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

// PreviousWeekID and NextWeekID navigate report keys without touching the
// backend; invalid input yields an error rather than a guess.

func PreviousWeekID(weekID string) (string, error) {
	return shiftWeekID(weekID, -7*24*time.Hour)
}

func NextWeekID(weekID string) (string, error) {
	return shiftWeekID(weekID, 7*24*time.Hour)
}

func shiftWeekID(weekID string, delta time.Duration) (string, error) {
	if !api.ValidWeekID(weekID) {
		return "", fmt.Errorf("invalid week id: %q", weekID)
	}

	var year, week int
	if _, err := fmt.Sscanf(weekID, "%d-W%d", &year, &week); err != nil {
		return "", fmt.Errorf("parse week id %q: %w", weekID, err)
	}

	// Jan 4 is always inside ISO week 1 of its year
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
	weekStart := jan4.AddDate(0, 0, -(int(jan4.Weekday())+6)%7)
	target := weekStart.AddDate(0, 0, (week-1)*7).Add(delta)
	return api.ISOWeekID(target), nil
}
