package content

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Step names understood by every Processor.
const (
	StepClean              = "clean"
	StepLowercase          = "lowercase"
	StepRemoveSpecialChars = "remove_special_chars"
	StepTokenize           = "tokenize"
	StepSummarize          = "summarize"
)

// StepFunc is a named string transformation.
type StepFunc func(string) string

// Output is the result of running a pipeline. Tokens is nil unless a
// tokenize step ran; it then holds the tokens produced by the last one.
type Output struct {
	Text   string
	Tokens []string
}

type step struct {
	name     string
	fn       StepFunc
	tokenize bool
}

// Processor resolves step names to functions. The built-in steps are always
// present; Register adds custom ones.
type Processor struct {
	mu     sync.RWMutex
	steps  map[string]step
	logger zerolog.Logger
}

// NewProcessor creates a Processor with the built-in steps registered.
func NewProcessor(logger zerolog.Logger) *Processor {
	p := &Processor{
		steps:  make(map[string]step),
		logger: logger.With().Str("component", "contentProcessor").Logger(),
	}
	p.steps[StepClean] = step{name: StepClean, fn: Clean}
	p.steps[StepLowercase] = step{name: StepLowercase, fn: Lowercase}
	p.steps[StepRemoveSpecialChars] = step{name: StepRemoveSpecialChars, fn: RemoveSpecialChars}
	p.steps[StepSummarize] = step{name: StepSummarize, fn: func(s string) string {
		return Summarize(s, DefaultSummaryLength)
	}}
	p.steps[StepTokenize] = step{name: StepTokenize, tokenize: true}
	return p
}

// Register adds or replaces a named step.
func (p *Processor) Register(name string, fn StepFunc) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("step name is required")
	}
	if fn == nil {
		return fmt.Errorf("step %q: function is required", name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps[name] = step{name: name, fn: fn}
	return nil
}

// Steps returns the registered step names.
func (p *Processor) Steps() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := lo.Keys(p.steps)
	sort.Strings(names)
	return names
}

// Compile resolves names into a Pipeline. Unknown names are skipped and
// reported by Pipeline.Skipped; they are not an error.
func (p *Processor) Compile(names ...string) *Pipeline {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pl := &Pipeline{}
	for _, name := range names {
		s, ok := p.steps[name]
		if !ok {
			pl.skipped = append(pl.skipped, name)
			continue
		}
		pl.steps = append(pl.steps, s)
	}
	if len(pl.skipped) > 0 {
		p.logger.Debug().Strs("skipped", pl.skipped).Msg("Ignoring unknown pipeline steps")
	}
	return pl
}

// Process compiles names and runs the result over input.
func (p *Processor) Process(input string, names ...string) Output {
	return p.Compile(names...).Run(input)
}

// Pipeline is an ordered, pre-resolved list of steps.
type Pipeline struct {
	steps   []step
	skipped []string
}

// Names returns the resolved step names in order.
func (pl *Pipeline) Names() []string {
	return lo.Map(pl.steps, func(s step, _ int) string { return s.name })
}

// Skipped returns the names that did not resolve to a step.
func (pl *Pipeline) Skipped() []string {
	return pl.skipped
}

// Run threads input through every step. A tokenize step records the tokens
// and passes them on joined by single spaces.
func (pl *Pipeline) Run(input string) Output {
	out := Output{Text: input}
	for _, s := range pl.steps {
		if s.tokenize {
			out.Tokens = Tokenize(out.Text)
			out.Text = strings.Join(out.Tokens, " ")
			continue
		}
		out.Text = s.fn(out.Text)
	}
	return out
}
