// Package format coerces raw model output into a target representation.
//
// Formatting is best effort: parse failures fall back to a wrapped value
// instead of an error, and the heuristics do not validate the result.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Tag selects a formatting behavior.
type Tag string

const (
	Text     Tag = "text"
	JSON     Tag = "json"
	Markdown Tag = "markdown"
	YAML     Tag = "yaml"
	Mermaid  Tag = "mermaid"
)

// Tags lists every supported tag.
var Tags = []Tag{Text, JSON, Markdown, YAML, Mermaid}

// ErrUnsupportedFormat is matched by errors.Is for every UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported format type")

// UnsupportedFormatError reports a tag outside Tags.
type UnsupportedFormatError struct {
	Tag string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format type: %s", e.Tag)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseTag matches s case-insensitively against the supported tags.
func ParseTag(s string) (Tag, error) {
	tag := Tag(strings.ToLower(s))
	for _, t := range Tags {
		if t == tag {
			return t, nil
		}
	}
	return "", &UnsupportedFormatError{Tag: s}
}

// Formatter applies the heuristics of one Tag. The active tag can be changed
// with SetFormat.
type Formatter struct {
	tag    Tag
	logger zerolog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used to report parse fallbacks.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Formatter) {
		f.logger = logger.With().Str("component", "formatter").Logger()
	}
}

// New creates a Formatter for tag.
func New(tag string, opts ...Option) (*Formatter, error) {
	t, err := ParseTag(tag)
	if err != nil {
		return nil, err
	}
	f := &Formatter{tag: t, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Tag returns the active tag.
func (f *Formatter) Tag() Tag {
	return f.tag
}

// SetFormat changes the active tag. On error the previous tag stays active.
func (f *Formatter) SetFormat(tag string) error {
	t, err := ParseTag(tag)
	if err != nil {
		return err
	}
	f.tag = t
	return nil
}

// Format shapes raw according to the active tag. The result is a string for
// text, markdown and mermaid; json and yaml yield the parsed value (usually a
// map or slice) or a single-key fallback map when raw does not parse.
func (f *Formatter) Format(raw string) any {
	switch f.tag {
	case JSON:
		return f.formatJSON(raw)
	case YAML:
		return f.formatYAML(raw)
	case Markdown:
		return FormatMarkdown(raw)
	case Mermaid:
		return FormatMermaid(raw)
	default:
		return strings.TrimSpace(raw)
	}
}

func (f *Formatter) formatJSON(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		f.logger.Debug().Err(err).Msg("Response is not JSON, wrapping as text")
		return map[string]any{"text": strings.TrimSpace(raw)}
	}
	return v
}

func (f *Formatter) formatYAML(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		f.logger.Debug().Err(err).Msg("Response is not YAML, wrapping as content")
		return map[string]any{"content": strings.TrimSpace(raw)}
	}
	return stringKeys(v)
}

// stringKeys rewrites the map[any]any values yaml.v3 produces for non-string
// keys into map[string]any, recursing through nested maps and slices.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// Render turns a Format result into text: strings are returned as is and
// structured values are encoded as indented JSON.
func Render(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.MarshalIndent(stringKeys(v), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render formatted value: %w", err)
	}
	return string(data), nil
}
