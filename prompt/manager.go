// Package prompt stores named prompt templates and fills their placeholders.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnbalancedBrace is returned by Format for a lone "{" or "}".
var ErrUnbalancedBrace = errors.New("unbalanced brace in template")

// MissingPlaceholderError reports a placeholder with no supplied value.
type MissingPlaceholderError struct {
	Key         string
	Placeholder string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %q: missing value for placeholder {%s}", e.Key, e.Placeholder)
}

// Manager is a key -> template store. It is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	templates map[string]string
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{templates: make(map[string]string)}
}

// Load reads a YAML mapping of key -> template from path.
func Load(path string) (*Manager, error) {
	//nolint:gosec // G304: prompt file path is user-configured
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file %s: %w", path, err)
	}

	templates := make(map[string]string)
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}
	if templates == nil {
		templates = make(map[string]string)
	}
	return &Manager{templates: templates}, nil
}

// Get returns the template stored under key, or "" if there is none.
func (m *Manager) Get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.templates[key]
}

// Add stores template under key, replacing any previous value.
func (m *Manager) Add(key, template string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[key] = template
}

// Keys returns the stored keys in sorted order.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.templates))
	for k := range m.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format fills the {name} placeholders of the template stored under key.
// "{{" and "}}" produce literal braces. Values are rendered with fmt.Sprint.
func (m *Manager) Format(key string, values map[string]any) (string, error) {
	m.mu.RLock()
	template, ok := m.templates[key]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}
	return render(key, template, values)
}

// Save writes every template to path as a YAML mapping.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.templates)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal prompts: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create prompts directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write prompts file %s: %w", path, err)
	}
	return nil
}

func render(key, template string, values map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(template[i+1:], "{}")
			if end < 0 || template[i+1+end] != '}' {
				return "", fmt.Errorf("template %q at offset %d: %w", key, i, ErrUnbalancedBrace)
			}
			name := template[i+1 : i+1+end]
			value, ok := values[name]
			if !ok {
				return "", &MissingPlaceholderError{Key: key, Placeholder: name}
			}
			fmt.Fprint(&b, value)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("template %q at offset %d: %w", key, i, ErrUnbalancedBrace)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
