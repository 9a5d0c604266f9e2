// Package conversations holds the coach-conversation entity agent.
package conversations

import (
	"context"
	"sync"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/agent"
	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const DefaultRecentLimit = 10

type State struct {
	RecentConversations []api.Conversation
	TotalCount          int

	IsLoadingRecent bool
	IsLoadingCount  bool
	IsCreating      bool

	Err             error
	LastRefreshedAt time.Time
}

type backendAPI interface {
	ListConversations(ctx context.Context, userID string, query api.ListQuery) ([]api.Conversation, error)
	CreateConversation(ctx context.Context, userID, coachID, title string) (*api.Conversation, error)
	ConversationsCount(ctx context.Context, userID string) (int, error)
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

	recentSeq agent.Sequencer
	countSeq  agent.Sequencer
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

// SetIdentity supplies the owning user and coach; when both become known the
// recent list and count are loaded.
func (a *Agent) SetIdentity(ctx context.Context, userID, coachID string) error {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return nil
	}
	changed := a.userID != userID || a.coachID != coachID
	a.userID = userID
	a.coachID = coachID
	a.mu.Unlock()

	if !changed || userID == "" || coachID == "" {
		return nil
	}

	if err := a.LoadRecent(ctx, DefaultRecentLimit); err != nil {
		return err
	}
	return a.RefreshCount(ctx)
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

func (a *Agent) identity() (userID, coachID string, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID, a.coachID, !a.destroyed && a.userID != "" && a.coachID != ""
}

func (a *Agent) LoadRecent(ctx context.Context, limit int) error {
	userID, coachID, ok := a.identity()
	if !ok {
		log.Debugln("conversation agent: load recent skipped, identity incomplete")
		return nil
	}

	query := api.ListQuery{
		CoachID:   coachID,
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

	items, err := a.backend.ListConversations(ctx, userID, query)
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
		s.RecentConversations = items
		s.LastRefreshedAt = time.Now()
	})
	return nil
}

// CreateConversation creates a conversation and inserts it at the head of
// the recent list on success.
func (a *Agent) CreateConversation(ctx context.Context, title string) (*api.Conversation, error) {
	userID, coachID, ok := a.identity()
	if !ok {
		return nil, nil
	}

	a.commit(func(s *State) {
		s.IsCreating = true
		s.Err = nil
	})

	created, err := a.backend.CreateConversation(ctx, userID, coachID, title)
	if err != nil {
		a.commit(func(s *State) {
			s.IsCreating = false
			s.Err = err
		})
		return nil, err
	}

	a.commit(func(s *State) {
		s.IsCreating = false
		s.RecentConversations = append([]api.Conversation{*created}, s.RecentConversations...)
		s.TotalCount++
	})
	return created, nil
}

func (a *Agent) RefreshCount(ctx context.Context) error {
	userID, _, ok := a.identity()
	if !ok {
		return nil
	}

	seq := a.countSeq.Begin()
	a.commit(func(s *State) {
		if !a.countSeq.Latest(seq) {
			return
		}
		s.IsLoadingCount = true
		s.Err = nil
	})

	count, err := a.backend.ConversationsCount(ctx, userID)
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
