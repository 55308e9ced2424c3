// Package agent selects which LLM provider and model serves each skill.
package agent

import (
	"fmt"
	"sync"

	"argument_negotiation_bot/pkg/core/llm"
)

// Config mirrors config/models.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Skills         map[string]SkillConfig `yaml:"skills"`
}

// SkillConfig optionally overrides the provider or model for one skill.
type SkillConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Manager resolves skill names to configured providers.
type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "gemini"
	}
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// GetProvider returns the provider serving a skill, honoring per-skill
// overrides before the global active provider.
func (m *Manager) GetProvider(skill string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sc, ok := m.config.Skills[skill]; ok && sc.Provider != "" {
		if p, ok := m.providers[sc.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// Options returns the per-call option map for a skill (currently the model
// override, when configured).
func (m *Manager) Options(skill string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	opts := map[string]interface{}{}
	if sc, ok := m.config.Skills[skill]; ok && sc.Model != "" {
		opts["model"] = sc.Model
	}
	return opts
}

// SetGlobalProvider switches the active provider for all skills without an
// explicit override.
func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// GetActiveProvider returns the currently active global provider name.
func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists the registered provider names.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}

// Register installs (or replaces) a provider under a name. Used by tests to
// inject mocks.
func (m *Manager) Register(name string, p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = p
}
