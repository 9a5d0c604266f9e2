package coaches

import (
	"context"
	"sync"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// testBackend is a hand-written double for the backend API, used by the
// agent tests instead of a real HTTP client.
type testBackend struct {
	mu sync.Mutex

	coaches []api.Coach

	listErr error
	getErr  error

	listCalls int
	getCalls  int
}

func newTestBackend() *testBackend {
	return &testBackend{}
}

func (b *testBackend) ListCoaches(_ context.Context, _ string) ([]api.Coach, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.coaches, nil
}

func (b *testBackend) GetCoach(_ context.Context, _, coachID string) (*api.Coach, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.getCalls++
	if b.getErr != nil {
		return nil, b.getErr
	}
	for i := range b.coaches {
		if b.coaches[i].CoachID == coachID {
			c := b.coaches[i]
			return &c, nil
		}
	}
	return nil, api.ErrNotFound
}

func (b *testBackend) calls() (list, get int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls, b.getCalls
}
