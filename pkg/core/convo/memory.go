package convo

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps continuations in process memory. Used by tests and by
// DB-less deployments.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*Continuation
	ttl  time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*Continuation),
		ttl:  DefaultTTL,
	}
}

func (s *MemoryStore) Put(ctx context.Context, c *Continuation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.data[c.ConversationID] = c
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, conversationID string) (*Continuation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[conversationID]
	if !ok {
		return nil, nil
	}
	delete(s.data, conversationID)
	if time.Since(c.CreatedAt) > s.ttl {
		return nil, nil
	}
	return c, nil
}

var _ Store = (*MemoryStore)(nil)
