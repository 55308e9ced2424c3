// Package convo persists per-conversation continuation records. A skill that
// presents a menu returns instead of blocking on the next message; the record
// it leaves behind tells the router which skill and stage to resume when the
// conversation's next message arrives.
package convo

import (
	"context"
	"time"
)

// Continuation is the stored "where were we" for one conversation. At most
// one continuation exists per conversation id; a new one replaces the old.
type Continuation struct {
	ConversationID string            `json:"conversation_id"`
	Skill          string            `json:"skill"`
	Stage          string            `json:"stage"`
	Context        map[string]string `json:"context"`
	CreatedAt      time.Time         `json:"created_at"`
}

// DefaultTTL bounds how long a pending continuation stays honored. A stale
// menu should not capture a message sent days later.
const DefaultTTL = 30 * time.Minute

// Store persists continuations keyed by conversation id.
type Store interface {
	// Put saves the continuation, replacing any existing one for the same
	// conversation.
	Put(ctx context.Context, c *Continuation) error
	// Take returns and removes the pending continuation for a conversation,
	// or (nil, nil) when none exists or it has expired.
	Take(ctx context.Context, conversationID string) (*Continuation, error)
}
