package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"text/template"
)

// ErrNoSuchSkill is returned when a prompt id has no registered template.
var ErrNoSuchSkill = errors.New("no such skill prompt")

// MissingArgumentError reports a required placeholder with no supplied value.
type MissingArgumentError struct {
	PromptID string
	Variable string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %q for prompt %s", e.Variable, e.PromptID)
}

// Registry holds the immutable set of prompt templates.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]*PromptTemplate
	parsed  map[string]*template.Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		prompts: make(map[string]*PromptTemplate),
		parsed:  make(map[string]*template.Template),
	}
}

// Register adds a prompt template. Bad template syntax is a programming
// error surfaced at registration, not at render time.
func (r *Registry) Register(pt *PromptTemplate) error {
	if pt.ID == "" {
		return fmt.Errorf("prompt ID cannot be empty")
	}
	tmpl, err := template.New(pt.ID).Option("missingkey=zero").Parse(pt.Template)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", pt.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.prompts[pt.ID]; exists {
		return fmt.Errorf("prompt %s already registered", pt.ID)
	}
	r.prompts[pt.ID] = pt
	r.parsed[pt.ID] = tmpl
	return nil
}

// GetPrompt retrieves a prompt by id.
func (r *Registry) GetPrompt(id string) (*PromptTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.prompts[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchSkill, id)
}

// Render substitutes the supplied values into the template for id. Every
// required variable must be present; extra values are ignored.
func (r *Registry) Render(id string, vars map[string]interface{}) (string, error) {
	pt, err := r.GetPrompt(id)
	if err != nil {
		return "", err
	}

	for _, v := range pt.Variables {
		if !v.Required {
			continue
		}
		if _, ok := vars[v.Name]; !ok {
			return "", &MissingArgumentError{PromptID: id, Variable: v.Name}
		}
	}

	r.mu.RLock()
	tmpl := r.parsed[id]
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", id, err)
	}
	return buf.String(), nil
}

// ListPrompts returns all registered prompt ids.
func (r *Registry) ListPrompts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.prompts))
	for id := range r.prompts {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of registered prompts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prompts)
}
