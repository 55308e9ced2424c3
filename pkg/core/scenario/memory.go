package scenario

import (
	"context"
	"sync"
)

// MemoryStore keeps scenarios in process memory for tests and DB-less runs.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	data   map[int64]*Scenario
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, data: make(map[int64]*Scenario)}
}

func (s *MemoryStore) Create(ctx context.Context, topic string) (*Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := &Scenario{ID: s.nextID, Topic: topic}
	s.data[sc.ID] = sc
	s.nextID++
	return s.copyOf(sc), nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (*Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.copyOf(sc), nil
}

func (s *MemoryStore) AppendExchange(ctx context.Context, id int64, offer, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	sc.UserOffers = append(sc.UserOffers, offer)
	sc.BotResponses = append(sc.BotResponses, response)
	return nil
}

// copyOf returns a defensive copy so callers cannot mutate stored history.
func (s *MemoryStore) copyOf(sc *Scenario) *Scenario {
	cp := &Scenario{ID: sc.ID, Topic: sc.Topic}
	cp.UserOffers = append(cp.UserOffers, sc.UserOffers...)
	cp.BotResponses = append(cp.BotResponses, sc.BotResponses...)
	return cp
}

var _ Store = (*MemoryStore)(nil)
