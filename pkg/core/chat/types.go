// Package chat defines the turn-level types shared by the router, the skill
// handlers and the HTTP surface: dialogue turns, outbound chunk emitters and
// the user-facing error taxonomy.
package chat

import "time"

// Role identifies the author of a dialogue turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DialogueTurn is one message in a conversation.
type DialogueTurn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Conversation is an ordered, append-only sequence of turns owned by one
// conversation id.
type Conversation struct {
	ID    string         `json:"id"`
	Turns []DialogueTurn `json:"turns"`
}

// Append records a new turn at the end of the conversation.
func (c *Conversation) Append(role Role, content string) {
	c.Turns = append(c.Turns, DialogueTurn{Role: role, Content: content, At: time.Now()})
}

// Chunk is one fragment of outbound assistant text, emitted in arrival order.
type Chunk struct {
	Text string `json:"text"`
}
