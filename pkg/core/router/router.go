// Package router validates incoming messages and dispatches them to skills:
// a pending continuation wins, then keyword matching in fixed order, then the
// fallback message.
package router

import (
	"context"
	"log"
	"strings"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/skills"
)

// DefaultMaxLen bounds message length before routing.
const DefaultMaxLen = 1500

// Validate trims the message and rejects empty or over-long input with a
// UserError before any routing happens.
func Validate(message string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", chat.NewUserError("Input cannot be empty.")
	}
	if len(trimmed) > maxLen {
		return "", chat.NewUserError("Input is too long. Please limit your message to %d characters.", maxLen)
	}
	return trimmed, nil
}

// Dispatcher routes one conversation message to the skill that should handle
// it and persists whatever continuation the skill leaves behind.
type Dispatcher struct {
	skills []skills.Skill
	byName map[string]skills.Skill
	convos convo.Store
	maxLen int
}

func NewDispatcher(all []skills.Skill, convos convo.Store) *Dispatcher {
	byName := make(map[string]skills.Skill, len(all))
	for _, s := range all {
		byName[s.Name()] = s
	}
	return &Dispatcher{skills: all, byName: byName, convos: convos, maxLen: DefaultMaxLen}
}

// Dispatch serves one message. All failure modes end with text on the
// emitter; the returned error is always nil for the caller's control flow
// today but kept for transports that want to distinguish.
func (d *Dispatcher) Dispatch(ctx context.Context, conversationID, message string, out chat.Emitter) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[router] panic serving conversation %s: %v", conversationID, r)
			out.Emit(chat.MsgUnexpected)
		}
	}()

	trimmed, err := Validate(message, d.maxLen)
	if err != nil {
		d.report(conversationID, out, err)
		return
	}

	next, err := d.route(ctx, conversationID, trimmed, out)
	if err != nil {
		d.report(conversationID, out, err)
		return
	}

	if next != nil {
		next.ConversationID = conversationID
		if err := d.convos.Put(ctx, next); err != nil {
			// The reply already streamed; the next turn just loses its
			// shortcut and re-routes by keyword.
			log.Printf("[router] persist continuation for %s failed: %v", conversationID, err)
		}
	}
}

func (d *Dispatcher) route(ctx context.Context, conversationID, message string, out chat.Emitter) (*convo.Continuation, error) {
	pending, err := d.convos.Take(ctx, conversationID)
	if err != nil {
		log.Printf("[router] continuation lookup for %s failed: %v", conversationID, err)
	}
	if pending != nil {
		if s, ok := d.byName[pending.Skill]; ok {
			return s.Resume(ctx, pending, message, out)
		}
		log.Printf("[router] continuation for %s names unknown skill %q, rerouting", conversationID, pending.Skill)
	}

	lower := strings.ToLower(message)
	for _, s := range d.skills {
		if strings.Contains(lower, s.Keyword()) {
			return s.Start(ctx, message, out)
		}
	}

	out.Emit(chat.MsgNotUnderstood)
	return nil, nil
}

// report renders an error as user-visible text: a UserError carries its own
// message, anything else gets the generic line with the detail logged.
func (d *Dispatcher) report(conversationID string, out chat.Emitter, err error) {
	if ue, ok := chat.AsUserError(err); ok {
		out.Emit(ue.Msg)
		return
	}
	log.Printf("[router] conversation %s: %v", conversationID, err)
	out.Emit(chat.MsgUnexpected)
}
