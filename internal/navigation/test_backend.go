package navigation

import (
	"context"
	"sync"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// test doubles for the navigation state, kept out of _test.go so the
// interfaces and the doubles evolve together

type testBackend struct {
	mu sync.Mutex

	coach    *api.Coach
	coachErr error

	counts    map[string]int
	countErrs map[string]error

	coachCalls int
	countCalls int
}

func newTestBackend() *testBackend {
	return &testBackend{
		counts:    make(map[string]int),
		countErrs: make(map[string]error),
	}
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

func (b *testBackend) count(resource string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.countCalls++
	if err := b.countErrs[resource]; err != nil {
		return 0, err
	}
	return b.counts[resource], nil
}

func (b *testBackend) WorkoutsCount(_ context.Context, _ string, _ api.WorkoutListQuery) (int, error) {
	return b.count("workouts")
}

func (b *testBackend) ConversationsCount(_ context.Context, _ string) (int, error) {
	return b.count("conversations")
}

func (b *testBackend) MemoriesCount(_ context.Context, _ string) (int, error) {
	return b.count("memories")
}

func (b *testBackend) ReportsCount(_ context.Context, _ string) (int, error) {
	return b.count("reports")
}

func (b *testBackend) ProgramsCount(_ context.Context, _ string) (int, error) {
	return b.count("programs")
}

func (b *testBackend) CoachesCount(_ context.Context, _ string) (int, error) {
	return b.count("coaches")
}

func (b *testBackend) ExercisesCount(_ context.Context, _ string) (int, error) {
	return b.count("exercises")
}

type testPrefs struct {
	mu     sync.Mutex
	bools  map[string]bool
	getErr error
	setErr error
}

func newTestPrefs() *testPrefs {
	return &testPrefs{bools: make(map[string]bool)}
}

func (p *testPrefs) GetBool(_ context.Context, key string, defaultValue bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return defaultValue, p.getErr
	}
	if v, ok := p.bools[key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (p *testPrefs) SetBool(_ context.Context, key string, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.bools[key] = value
	return nil
}
