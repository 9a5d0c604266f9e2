package reports

import (
	"context"
	"sync"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// testBackend is a hand-written double for the backend API, used by the
// agent tests instead of a real HTTP client.
type testBackend struct {
	mu sync.Mutex

	reports []api.Report
	count   int

	listErr  error
	getErr   error
	countErr error

	listCalls  int
	getCalls   int
	countCalls int
}

func newTestBackend() *testBackend {
	return &testBackend{}
}

func (b *testBackend) ListReports(_ context.Context, _ string, _ api.ListQuery) ([]api.Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.reports, nil
}

func (b *testBackend) GetWeeklyReport(_ context.Context, _, weekID string) (*api.Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.getCalls++
	if b.getErr != nil {
		return nil, b.getErr
	}
	for i := range b.reports {
		if b.reports[i].WeekID == weekID {
			r := b.reports[i]
			return &r, nil
		}
	}
	return nil, api.ErrNotFound
}

func (b *testBackend) ReportsCount(_ context.Context, _ string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.countCalls++
	if b.countErr != nil {
		return 0, b.countErr
	}
	return b.count, nil
}
