package workouts

import (
	"context"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/api"

	log "github.com/sirupsen/logrus"
)

// StartPolling begins the coarse freshness loop: every interval the recent
// window count is refetched and compared against the previous tick. Best
// effort only; a failed tick is logged and skipped.
func (a *Agent) StartPolling(ctx context.Context, interval time.Duration) {
	a.mu.Lock()
	if a.destroyed || a.pollCancel != nil {
		a.mu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	a.pollCancel = cancel
	a.mu.Unlock()

	a.pollWG.Add(1)
	go a.pollLoop(pollCtx, interval)
}

// StopPolling halts the loop without destroying the agent.
func (a *Agent) StopPolling() {
	a.mu.Lock()
	cancel := a.pollCancel
	a.pollCancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	a.pollWG.Wait()
}

func (a *Agent) pollLoop(ctx context.Context, interval time.Duration) {
	defer a.pollWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.pollOnce(ctx)
		}
	}
}

func (a *Agent) pollOnce(ctx context.Context) {
	if a.metrics != nil {
		a.metrics.CounterPollTicks.Inc()
	}

	userID, ok := a.currentUserID()
	if !ok {
		return
	}

	count, err := a.backend.WorkoutsCount(ctx, userID, api.WorkoutListQuery{})
	if err != nil {
		log.Errorf("workout agent: poll tick failed: %s", err)
		return
	}

	a.mu.Lock()
	prev := a.lastPollCount
	a.lastPollCount = count
	onNew := a.onNewWorkouts
	a.mu.Unlock()

	fresh := DetectNewWorkouts(prev, count)
	if fresh == 0 {
		return
	}

	log.Debugf("workout agent: detected %d new workout(s)", fresh)
	if a.metrics != nil {
		a.metrics.CounterNewWorkouts.Add(float64(fresh))
	}

	a.commit(func(s *State) {
		s.TotalCount = count
		s.NewSinceLastPoll = fresh
	})
	if onNew != nil {
		onNew(fresh)
	}
}

// DetectNewWorkouts compares two poll tick counts. A previous count below
// zero means "no baseline yet" and never reports new items; a shrinking
// count (deletions) reports zero.
func DetectNewWorkouts(prevCount, currentCount int) int {
	if prevCount < 0 {
		return 0
	}
	if currentCount <= prevCount {
		return 0
	}
	return currentCount - prevCount
}
