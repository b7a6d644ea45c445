package content

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessThreadsSteps(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	text := "This is a TEST document with multiple     spaces and special @#$ characters.\n    It spans multiple lines   with irregular spacing."

	out := p.Process(text, StepClean, StepRemoveSpecialChars, StepLowercase)
	assert.Equal(t, "this is a test document with multiple spaces and special  characters it spans multiple lines with irregular spacing", out.Text)
	assert.Nil(t, out.Tokens)
}

func TestProcessTokenize(t *testing.T) {
	p := NewProcessor(zerolog.Nop())

	out := p.Process("  This is a test   text with   extra spaces  ", StepClean, StepTokenize)
	assert.Equal(t, []string{"This", "is", "a", "test", "text", "with", "extra", "spaces"}, out.Tokens)
	assert.Equal(t, "This is a test text with extra spaces", out.Text)

	// Steps after tokenize keep working on the joined tokens.
	out = p.Process("Hello   World", StepTokenize, StepLowercase)
	assert.Equal(t, "hello world", out.Text)
	assert.Equal(t, []string{"Hello", "World"}, out.Tokens)
}

func TestProcessSkipsUnknownSteps(t *testing.T) {
	p := NewProcessor(zerolog.Nop())

	pl := p.Compile("clean", "translate", "lowercase", "__init__")
	assert.Equal(t, []string{"clean", "lowercase"}, pl.Names())
	assert.Equal(t, []string{"translate", "__init__"}, pl.Skipped())
	assert.Equal(t, "a b", pl.Run("  A   B ").Text)
}

func TestProcessEmptyPipeline(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	assert.Equal(t, "  untouched  ", p.Process("  untouched  ").Text)
}

func TestSummarizeStepUsesDefaultLength(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	long := strings.Repeat("word ", DefaultSummaryLength+5)

	out := p.Process(long, StepSummarize)
	assert.True(t, strings.HasSuffix(out.Text, TruncationMarker))
	assert.Len(t, strings.Fields(strings.TrimSuffix(out.Text, TruncationMarker)), DefaultSummaryLength)
}

func TestRegisterCustomStep(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	require.NoError(t, p.Register("shout", strings.ToUpper))

	assert.Contains(t, p.Steps(), "shout")
	assert.Equal(t, "HELLO", p.Process(" hello ", StepClean, "shout").Text)

	assert.Error(t, p.Register("", strings.ToUpper))
	assert.Error(t, p.Register("nil", nil))
}

func TestCompiledPipelineIgnoresLaterRegistrations(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	pl := p.Compile("later")
	require.NoError(t, p.Register("later", strings.ToUpper))

	assert.Equal(t, "abc", pl.Run("abc").Text)
	assert.Equal(t, []string{"later"}, pl.Skipped())
}
