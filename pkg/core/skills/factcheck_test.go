package skills

import (
	"context"
	"strings"
	"testing"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/llm"
)

func TestFactCheckEmbedsResearchInVerdict(t *testing.T) {
	mock := &llm.MockProvider{
		Rules: []llm.MockRule{
			{Contains: "Research the following statement", Reply: "RESEARCH-FINDINGS"},
			{Contains: "Fact-check the following statement", Reply: "Verdict: mostly true."},
		},
	}
	s := NewFactCheck(newTestDeps(mock))
	ctx := context.Background()

	buf := &chat.BufferEmitter{}
	c, err := s.Start(ctx, "fact-check the moon landing happened", buf)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c == nil || c.Stage != "await_action" {
		t.Fatalf("expected await_action, got %+v", c)
	}

	joined := buf.Joined()
	if !strings.HasPrefix(joined, "Fact-checking the statement...") {
		t.Errorf("missing announcement prefix in %q", joined)
	}
	if !strings.Contains(joined, "RESEARCH-FINDINGS") || !strings.Contains(joined, "Verdict: mostly true.") {
		t.Errorf("missing research or verdict in %q", joined)
	}

	// The verdict prompt must carry the accumulated research output.
	if n := mock.CallsMatching("RESEARCH-FINDINGS"); n != 1 {
		t.Errorf("research not embedded in verdict prompt (%d matches)", n)
	}
}

func TestFactCheckSources(t *testing.T) {
	mock := &llm.MockProvider{
		Rules: []llm.MockRule{
			{Contains: "Research the following statement", Reply: "research"},
			{Contains: "Fact-check the following statement", Reply: "verdict"},
			{Contains: "Suggest additional credible sources", Reply: "Source list."},
		},
	}
	s := NewFactCheck(newTestDeps(mock))
	ctx := context.Background()

	c, _ := s.Start(ctx, "fact-check coffee causes cancer", &chat.BufferEmitter{})
	buf := &chat.BufferEmitter{}
	c, err := s.Resume(ctx, c, "1", buf)
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if c != nil {
		t.Errorf("expected terminal turn, got %+v", c)
	}
	if !strings.Contains(buf.Joined(), "Okay, here are some additional sources to consider.") {
		t.Errorf("missing sources lead-in in %q", buf.Joined())
	}
	if !strings.Contains(buf.Joined(), "Source list.") {
		t.Errorf("missing sources in %q", buf.Joined())
	}
}

func TestFactCheckAnotherStatementRestarts(t *testing.T) {
	mock := &llm.MockProvider{DefaultReply: "ok"}
	s := NewFactCheck(newTestDeps(mock))
	ctx := context.Background()

	c, _ := s.Start(ctx, "fact-check the earth is round", &chat.BufferEmitter{})
	c, _ = s.Resume(ctx, c, "2", &chat.BufferEmitter{})
	if c == nil || c.Stage != "await_statement" {
		t.Fatalf("expected await_statement, got %+v", c)
	}

	buf := &chat.BufferEmitter{}
	c, err := s.Resume(ctx, c, "the earth is flat", buf)
	if err != nil {
		t.Fatalf("Resume(new statement) failed: %v", err)
	}
	if c == nil || c.Stage != "await_action" {
		t.Fatalf("new statement should run the full flow, got %+v", c)
	}
	if !strings.Contains(buf.Joined(), "Fact-checking the statement...") {
		t.Errorf("missing announcement in %q", buf.Joined())
	}
}

func TestFactCheckEmptyStatement(t *testing.T) {
	s := NewFactCheck(newTestDeps(&llm.MockProvider{DefaultReply: "x"}))
	_, err := s.Start(context.Background(), "fact-check", &chat.BufferEmitter{})
	if _, ok := chat.AsUserError(err); !ok {
		t.Fatalf("expected UserError, got %v", err)
	}
}
