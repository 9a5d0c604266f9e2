package workouts

import (
	"context"
	"sync"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// testBackend is a hand-written double for the backend API, used by the
// agent tests instead of a real HTTP client.
type testBackend struct {
	mu sync.Mutex

	workouts []api.Workout
	count    int

	listErr   error
	getErr    error
	updateErr error
	deleteErr error
	countErr  error

	listCalls   int
	getCalls    int
	updateCalls int
	deleteCalls int
	countCalls  int

	// when set, listHook / countHook take over the corresponding call;
	// the int argument is the 1-based call index
	listHook  func(call int, query api.WorkoutListQuery) ([]api.Workout, error)
	countHook func(call int) (int, error)
}

func newTestBackend() *testBackend {
	return &testBackend{}
}

func (b *testBackend) ListWorkouts(_ context.Context, _ string, query api.WorkoutListQuery) ([]api.Workout, error) {
	b.mu.Lock()
	b.listCalls++
	call := b.listCalls
	hook := b.listHook
	items := b.workouts
	err := b.listErr
	b.mu.Unlock()

	if hook != nil {
		return hook(call, query)
	}
	return items, err
}

func (b *testBackend) GetWorkout(_ context.Context, _, workoutID string) (*api.Workout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.getCalls++
	if b.getErr != nil {
		return nil, b.getErr
	}
	for i := range b.workouts {
		if b.workouts[i].WorkoutID == workoutID {
			w := b.workouts[i]
			return &w, nil
		}
	}
	return nil, api.ErrNotFound
}

func (b *testBackend) UpdateWorkout(_ context.Context, _, workoutID string, update api.WorkoutUpdate) (*api.Workout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.updateCalls++
	if b.updateErr != nil {
		return nil, b.updateErr
	}
	for i := range b.workouts {
		if b.workouts[i].WorkoutID == workoutID {
			if update.WorkoutData != nil {
				b.workouts[i].WorkoutData = *update.WorkoutData
			}
			if update.ExtractionMetadata != nil {
				b.workouts[i].ExtractionMetadata = *update.ExtractionMetadata
			}
			w := b.workouts[i]
			return &w, nil
		}
	}
	return nil, api.ErrNotFound
}

func (b *testBackend) DeleteWorkout(_ context.Context, _, workoutID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.deleteCalls++
	if b.deleteErr != nil {
		return b.deleteErr
	}
	for i := range b.workouts {
		if b.workouts[i].WorkoutID == workoutID {
			b.workouts = append(b.workouts[:i:i], b.workouts[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (b *testBackend) WorkoutsCount(_ context.Context, _ string, _ api.WorkoutListQuery) (int, error) {
	b.mu.Lock()
	b.countCalls++
	call := b.countCalls
	hook := b.countHook
	count := b.count
	err := b.countErr
	b.mu.Unlock()

	if hook != nil {
		return hook(call)
	}
	return count, err
}

func (b *testBackend) calls() (list, get, update, del, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls, b.getCalls, b.updateCalls, b.deleteCalls, b.countCalls
}
