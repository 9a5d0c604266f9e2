package traininggrounds

import (
	"context"
	"sync"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// testBackend is a hand-written double for the backend API, used by the
// agent tests instead of a real HTTP client.
type testBackend struct {
	mu sync.Mutex

	coach             *api.Coach
	workoutCount      int
	conversationCount int
	reportCount       int

	coachErr   error
	workoutErr error
	convErr    error
	reportErr  error

	coachCalls   int
	workoutCalls int
	convCalls    int
	reportCalls  int

	lastWorkoutQuery api.WorkoutListQuery
}

func newTestBackend() *testBackend {
	return &testBackend{}
}

func (b *testBackend) GetCoach(_ context.Context, _, _ string) (*api.Coach, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.coachCalls++
	if b.coachErr != nil {
		return nil, b.coachErr
	}
	return b.coach, nil
}

func (b *testBackend) WorkoutsCount(_ context.Context, _ string, query api.WorkoutListQuery) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.workoutCalls++
	b.lastWorkoutQuery = query
	if b.workoutErr != nil {
		return 0, b.workoutErr
	}
	return b.workoutCount, nil
}

func (b *testBackend) ConversationsCount(_ context.Context, _ string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.convCalls++
	if b.convErr != nil {
		return 0, b.convErr
	}
	return b.conversationCount, nil
}

func (b *testBackend) ReportsCount(_ context.Context, _ string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reportCalls++
	if b.reportErr != nil {
		return 0, b.reportErr
	}
	return b.reportCount, nil
}
