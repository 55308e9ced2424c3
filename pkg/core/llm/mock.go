package llm

import (
	"context"
	"strings"
	"sync"
)

// MockProvider returns scripted responses for testing. A response is chosen
// by the first rule whose substring appears in the prompt; unmatched prompts
// get DefaultReply. Streamed replies are delivered in two chunks so callers
// exercise real chunk ordering.
type MockProvider struct {
	Rules        []MockRule
	DefaultReply string
	Err          error // returned from every call when set

	mu      sync.Mutex
	prompts []string
}

type MockRule struct {
	Contains string
	Reply    string
	Err      error
}

func (p *MockProvider) record(prompt string) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()
}

// Prompts returns every prompt seen, in call order.
func (p *MockProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.prompts))
	copy(out, p.prompts)
	return out
}

// Calls counts completed calls.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

// CallsMatching counts calls whose prompt contains substr.
func (p *MockProvider) CallsMatching(substr string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, prompt := range p.prompts {
		if strings.Contains(prompt, substr) {
			n++
		}
	}
	return n
}

func (p *MockProvider) resolve(prompt string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	for _, rule := range p.Rules {
		if strings.Contains(prompt, rule.Contains) {
			return rule.Reply, rule.Err
		}
	}
	return p.DefaultReply, nil
}

func (p *MockProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	p.record(prompt)
	return p.resolve(prompt)
}

func (p *MockProvider) StreamResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}, fn StreamFunc) error {
	p.record(prompt)
	reply, err := p.resolve(prompt)
	if err != nil {
		return err
	}
	half := len(reply) / 2
	for _, chunk := range []string{reply[:half], reply[half:]} {
		if chunk == "" {
			continue
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

var _ Provider = (*MockProvider)(nil)
