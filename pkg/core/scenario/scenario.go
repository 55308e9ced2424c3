// Package scenario persists negotiation scenarios: a topic plus the ordered
// history of user offers and bot responses, parallel-indexed by turn.
package scenario

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a scenario id has no record.
var ErrNotFound = errors.New("scenario not found")

// Scenario is one negotiation context. UserOffers and BotResponses grow
// monotonically and stay parallel-indexed; exchange i pairs UserOffers[i]
// with BotResponses[i].
type Scenario struct {
	ID           int64    `json:"id"`
	Topic        string   `json:"topic"`
	UserOffers   []string `json:"user_offers"`
	BotResponses []string `json:"bot_responses"`
}

// Turns returns the number of completed exchanges.
func (s *Scenario) Turns() int {
	return len(s.UserOffers)
}

// Store persists scenarios. Exchanges are appended one at a time; the
// storage layer never rewrites the whole history.
type Store interface {
	// Create registers a new scenario for a topic and assigns its id.
	Create(ctx context.Context, topic string) (*Scenario, error)
	// Get loads a scenario with its full exchange history, ErrNotFound when
	// the id is unknown.
	Get(ctx context.Context, id int64) (*Scenario, error)
	// AppendExchange records one (user offer, bot response) pair at the next
	// turn index.
	AppendExchange(ctx context.Context, id int64, offer, response string) error
}
