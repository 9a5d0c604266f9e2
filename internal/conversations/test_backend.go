package conversations

import (
	"context"
	"sync"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// testBackend is a hand-written double for the backend API, used by the
// agent tests instead of a real HTTP client.
type testBackend struct {
	mu sync.Mutex

	conversations []api.Conversation
	count         int

	listErr   error
	createErr error
	countErr  error

	listCalls   int
	createCalls int
	countCalls  int

	lastListQuery api.ListQuery
}

func newTestBackend() *testBackend {
	return &testBackend{}
}

func (b *testBackend) ListConversations(_ context.Context, _ string, query api.ListQuery) ([]api.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listCalls++
	b.lastListQuery = query
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.conversations, nil
}

func (b *testBackend) CreateConversation(_ context.Context, _, coachID, title string) (*api.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.createCalls++
	if b.createErr != nil {
		return nil, b.createErr
	}
	created := api.Conversation{
		ConversationID: "conv-created",
		Title:          title,
		CreatedAt:      time.Now(),
	}
	b.conversations = append([]api.Conversation{created}, b.conversations...)
	b.count++
	return &created, nil
}

func (b *testBackend) ConversationsCount(_ context.Context, _ string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.countCalls++
	if b.countErr != nil {
		return 0, b.countErr
	}
	return b.count, nil
}

func (b *testBackend) calls() (list, create, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls, b.createCalls, b.countCalls
}
