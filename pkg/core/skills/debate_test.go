package skills

import (
	"context"
	"strings"
	"testing"

	"argument_negotiation_bot/pkg/core/agent"
	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/llm"
	"argument_negotiation_bot/pkg/core/prompt"
	"argument_negotiation_bot/pkg/core/salarydata"
	"argument_negotiation_bot/pkg/core/scenario"
)

func newTestDeps(mock *llm.MockProvider) Deps {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "mock"})
	mgr.Register("mock", mock)
	return Deps{
		Agents:    mgr,
		Prompts:   prompt.NewSeeded(),
		Scenarios: scenario.NewMemoryStore(),
		Salary:    salarydata.NewClient(),
		BiasCache: NewBiasCache(),
	}
}

func TestDebateFullFlow(t *testing.T) {
	mock := &llm.MockProvider{
		Rules: []llm.MockRule{
			{Contains: "two opposing viewpoints", Reply: "Opening viewpoints."},
			{Contains: "strong arguments for", Reply: "Arguments for your side."},
			{Contains: "counterarguments against", Reply: "Counterpoints."},
		},
	}
	s := NewDebate(newTestDeps(mock))
	ctx := context.Background()

	// Turn 1: topic extraction and opening viewpoints.
	buf := &chat.BufferEmitter{}
	c, err := s.Start(ctx, "debate climate change", buf)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c == nil || c.Stage != "await_side" {
		t.Fatalf("expected await_side continuation, got %+v", c)
	}
	if c.Context["topic"] != "climate change" {
		t.Errorf("topic extraction: got %q", c.Context["topic"])
	}
	joined := buf.Joined()
	if !strings.Contains(joined, "Opening viewpoints.") {
		t.Errorf("missing opening viewpoints in %q", joined)
	}
	if !strings.Contains(joined, "Which side would you like to argue for?") {
		t.Errorf("missing side question in %q", joined)
	}
	// The model output must arrive before the side question.
	if strings.Index(joined, "Opening viewpoints.") > strings.Index(joined, "Which side") {
		t.Error("chunks out of order")
	}

	// Turn 2: side choice.
	buf = &chat.BufferEmitter{}
	c, err = s.Resume(ctx, c, "for", buf)
	if err != nil {
		t.Fatalf("Resume(side) failed: %v", err)
	}
	if c == nil || c.Stage != "await_action" {
		t.Fatalf("expected await_action continuation, got %+v", c)
	}
	if !strings.Contains(buf.Joined(), "Arguments for your side.") {
		t.Errorf("missing arguments in %q", buf.Joined())
	}
	if !strings.Contains(buf.Joined(), "1. Continue the debate?") {
		t.Errorf("missing menu in %q", buf.Joined())
	}

	// Turn 3: "continue" must not trigger a counterargument call.
	buf = &chat.BufferEmitter{}
	c, err = s.Resume(ctx, c, "1", buf)
	if err != nil {
		t.Fatalf("Resume(action) failed: %v", err)
	}
	if !strings.Contains(buf.Joined(), "Okay, let's continue. What's your next point?") {
		t.Errorf("missing continue invite in %q", buf.Joined())
	}
	if n := mock.CallsMatching("counterarguments against"); n != 0 {
		t.Errorf("counterargument call made %d times, want 0", n)
	}
}

func TestDebateCounterarguments(t *testing.T) {
	mock := &llm.MockProvider{
		Rules: []llm.MockRule{
			{Contains: "two opposing viewpoints", Reply: "Opening."},
			{Contains: "strong arguments for", Reply: "Args."},
			{Contains: "counterarguments against", Reply: "Counterpoints."},
		},
	}
	s := NewDebate(newTestDeps(mock))
	ctx := context.Background()

	c, _ := s.Start(ctx, "debate remote work", &chat.BufferEmitter{})
	c, _ = s.Resume(ctx, c, "against", &chat.BufferEmitter{})

	buf := &chat.BufferEmitter{}
	c, err := s.Resume(ctx, c, "2", buf)
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if c != nil {
		t.Errorf("expected no continuation after counterarguments, got %+v", c)
	}
	if !strings.Contains(buf.Joined(), "Counterpoints.") {
		t.Errorf("missing counterarguments in %q", buf.Joined())
	}
	if n := mock.CallsMatching("counterarguments against the against side"); n != 1 {
		t.Errorf("counterargument calls = %d, want 1", n)
	}
}

func TestDebateEmptyTopic(t *testing.T) {
	s := NewDebate(newTestDeps(&llm.MockProvider{DefaultReply: "x"}))
	_, err := s.Start(context.Background(), "debate", &chat.BufferEmitter{})
	if _, ok := chat.AsUserError(err); !ok {
		t.Fatalf("expected UserError for empty topic, got %v", err)
	}
}

func TestDebateModelFailureEmitsApology(t *testing.T) {
	mock := &llm.MockProvider{Err: context.DeadlineExceeded}
	s := NewDebate(newTestDeps(mock))

	buf := &chat.BufferEmitter{}
	c, err := s.Start(context.Background(), "debate anything", buf)
	if err != nil {
		t.Fatalf("upstream failure must not escape the handler: %v", err)
	}
	if c != nil {
		t.Errorf("expected no continuation after failure, got %+v", c)
	}
	if !strings.Contains(buf.Joined(), chat.MsgUpstreamError) {
		t.Errorf("missing apology in %q", buf.Joined())
	}
}
