// Package skills implements the six user-facing capabilities: debate
// generation, negotiation simulation, fact-checking, cognitive-bias
// detection, contract-clause analysis and salary-negotiation advice. All six
// share one shape: extract a subject, render prompts, stream model output,
// present a menu, and leave a continuation record for the next turn.
package skills

import (
	"context"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"argument_negotiation_bot/pkg/core/agent"
	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/prompt"
	"argument_negotiation_bot/pkg/core/salarydata"
	"argument_negotiation_bot/pkg/core/scenario"
)

// systemPrompt frames every model call made by the skill handlers.
const systemPrompt = "You are the Argument and Negotiation Master Bot, an expert in structured argumentation, negotiation and analysis. Answer in plain markdown."

// Skill is one user-facing capability. Start serves a fresh keyword-routed
// message; Resume serves the follow-up captured by a pending continuation.
// Both return the continuation to persist for the conversation's next
// message, or nil when the exchange is finished.
type Skill interface {
	Name() string
	Keyword() string
	Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error)
	Resume(ctx context.Context, cont *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error)
}

// Deps carries the shared collaborators injected into every skill.
type Deps struct {
	Agents    *agent.Manager
	Prompts   *prompt.Registry
	Scenarios scenario.Store
	Salary    *salarydata.Client
	BiasCache *lru.Cache[string, []string]
}

// NewBiasCache builds the bounded memo table for detected biases.
func NewBiasCache() *lru.Cache[string, []string] {
	c, err := lru.New[string, []string](256)
	if err != nil {
		// Size is a positive constant; New cannot fail.
		panic(err)
	}
	return c
}

// All returns the six skills in their fixed routing order.
func All(deps Deps) []Skill {
	return []Skill{
		NewDebate(deps),
		NewNegotiation(deps),
		NewFactCheck(deps),
		NewBiasDetection(deps),
		NewContractAnalysis(deps),
		NewSalaryNegotiation(deps),
	}
}

// base provides the call plumbing shared by all six handlers.
type base struct {
	deps    Deps
	name    string
	keyword string
}

func (b *base) Name() string    { return b.name }
func (b *base) Keyword() string { return b.keyword }

// extractSubject removes the triggering keyword (first occurrence,
// case-insensitive) and trims the rest.
func (b *base) extractSubject(input string) string {
	lower := strings.ToLower(input)
	idx := strings.Index(lower, b.keyword)
	if idx < 0 {
		return strings.TrimSpace(input)
	}
	return strings.TrimSpace(input[:idx] + input[idx+len(b.keyword):])
}

// stream renders a prompt and forwards every model chunk to out.
func (b *base) stream(ctx context.Context, promptID string, vars map[string]interface{}, out chat.Emitter) error {
	text, err := b.deps.Prompts.Render(promptID, vars)
	if err != nil {
		return err
	}
	provider := b.deps.Agents.GetProvider(b.name)
	return provider.StreamResponse(ctx, text, systemPrompt, b.deps.Agents.Options(b.name), func(chunk string) error {
		out.Emit(chunk)
		return nil
	})
}

// collect renders a prompt and returns the full model response.
func (b *base) collect(ctx context.Context, promptID string, vars map[string]interface{}) (string, error) {
	text, err := b.deps.Prompts.Render(promptID, vars)
	if err != nil {
		return "", err
	}
	provider := b.deps.Agents.GetProvider(b.name)
	return provider.GenerateResponse(ctx, text, systemPrompt, b.deps.Agents.Options(b.name))
}

// streamCollect streams chunks to out while also accumulating the full text
// for use in a later prompt.
func (b *base) streamCollect(ctx context.Context, promptID string, vars map[string]interface{}, out chat.Emitter) (string, error) {
	text, err := b.deps.Prompts.Render(promptID, vars)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	provider := b.deps.Agents.GetProvider(b.name)
	err = provider.StreamResponse(ctx, text, systemPrompt, b.deps.Agents.Options(b.name), func(chunk string) error {
		sb.WriteString(chunk)
		out.Emit(chunk)
		return nil
	})
	return sb.String(), err
}

// fail logs the upstream detail and emits the fixed apology. Chunks already
// streamed stay visible; the turn ends with no continuation.
func (b *base) fail(out chat.Emitter, stage string, err error) {
	log.Printf("[%s] %s failed: %v", b.name, stage, err)
	out.Emit("\n\n" + chat.MsgUpstreamError)
}

// cont builds a continuation record owned by this skill.
func (b *base) cont(stage string, kv map[string]string) *convo.Continuation {
	return &convo.Continuation{Skill: b.name, Stage: stage, Context: kv}
}

// chose matches a follow-up reply against an option number or keywords using
// the same lowercased-substring policy as the router.
func chose(input, number string, words ...string) bool {
	lower := strings.ToLower(input)
	if strings.Contains(lower, number) {
		return true
	}
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// menu formats the fixed numbered follow-up options.
func menu(options ...string) string {
	var sb strings.Builder
	sb.WriteString("\n\nWould you like to:\n")
	for i, opt := range options {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, opt))
	}
	sb.WriteString(fmt.Sprintf("%d. Do something else?", len(options)+1))
	return sb.String()
}
