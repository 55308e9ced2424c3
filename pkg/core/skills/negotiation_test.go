package skills

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/llm"
)

func TestNegotiationFlowPersistsExchanges(t *testing.T) {
	mock := &llm.MockProvider{
		Rules: []llm.MockRule{
			{Contains: "Create a negotiation scenario", Reply: "Scenario outline."},
			{Contains: "Analyze this opening offer", Reply: "Offer analysis."},
			{Contains: "Continue this negotiation", Reply: "Counterparty reply."},
		},
	}
	deps := newTestDeps(mock)
	s := NewNegotiation(deps)
	ctx := context.Background()

	// Turn 1: scenario creation.
	buf := &chat.BufferEmitter{}
	c, err := s.Start(ctx, "negotiation buying a used car", buf)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c == nil || c.Stage != "await_offer" {
		t.Fatalf("expected await_offer, got %+v", c)
	}
	if !strings.Contains(buf.Joined(), "Starting negotiation scenario #") {
		t.Errorf("scenario id not surfaced in %q", buf.Joined())
	}
	if !strings.Contains(buf.Joined(), "What's your opening offer or position?") {
		t.Errorf("missing offer question in %q", buf.Joined())
	}

	// Turn 2: opening offer gets analyzed and recorded.
	buf = &chat.BufferEmitter{}
	c, err = s.Resume(ctx, c, "I offer $5000", buf)
	if err != nil {
		t.Fatalf("Resume(offer) failed: %v", err)
	}
	if c == nil || c.Stage != "await_action" {
		t.Fatalf("expected await_action, got %+v", c)
	}

	id, _ := strconv.ParseInt(c.Context["scenario_id"], 10, 64)
	sc, err := deps.Scenarios.Get(ctx, id)
	if err != nil {
		t.Fatalf("scenario lookup failed: %v", err)
	}
	if sc.Turns() != 1 || sc.UserOffers[0] != "I offer $5000" {
		t.Fatalf("exchange not recorded: %+v", sc)
	}

	// Turn 3+4: continue builds the prompt from stored history.
	c, _ = s.Resume(ctx, c, "1", &chat.BufferEmitter{})
	if c == nil || c.Stage != "await_counter" {
		t.Fatalf("expected await_counter, got %+v", c)
	}
	buf = &chat.BufferEmitter{}
	c, err = s.Resume(ctx, c, "Would you take $5500?", buf)
	if err != nil {
		t.Fatalf("Resume(counter) failed: %v", err)
	}
	if c == nil || c.Stage != "await_action" {
		t.Fatalf("expected menu to re-present, got %+v", c)
	}
	if n := mock.CallsMatching("I offer $5000"); n < 2 {
		// Once in the analysis prompt, once embedded in the history.
		t.Errorf("history not embedded in continuation prompt (%d matches)", n)
	}
	sc, _ = deps.Scenarios.Get(ctx, id)
	if sc.Turns() != 2 {
		t.Errorf("expected 2 recorded exchanges, got %d", sc.Turns())
	}
}

func TestNegotiationResumeByIDToken(t *testing.T) {
	mock := &llm.MockProvider{DefaultReply: "ok"}
	deps := newTestDeps(mock)
	s := NewNegotiation(deps)
	ctx := context.Background()

	created, err := deps.Scenarios.Create(ctx, "vendor contract renewal")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	buf := &chat.BufferEmitter{}
	c, err := s.Start(ctx, "negotiation #"+strconv.FormatInt(created.ID, 10), buf)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c.Context["scenario_id"] != strconv.FormatInt(created.ID, 10) {
		t.Errorf("did not resume scenario %d: %+v", created.ID, c)
	}

	// Unknown id is a user error, not a crash.
	_, err = s.Start(ctx, "negotiation #99999", &chat.BufferEmitter{})
	if _, ok := chat.AsUserError(err); !ok {
		t.Errorf("expected UserError for unknown scenario, got %v", err)
	}
}

func TestNegotiationEmptyScenario(t *testing.T) {
	s := NewNegotiation(newTestDeps(&llm.MockProvider{DefaultReply: "x"}))
	_, err := s.Start(context.Background(), "negotiation", &chat.BufferEmitter{})
	if _, ok := chat.AsUserError(err); !ok {
		t.Fatalf("expected UserError, got %v", err)
	}
}
