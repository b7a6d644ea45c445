package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paren ordered item",
			in:   "1) first item",
			want: "1. first item",
		},
		{
			name: "bare ordered item",
			in:   "2 second item",
			want: "2. second item",
		},
		{
			name: "already numbered",
			in:   "1. first\n2. second",
			want: "1. first\n2. second",
		},
		{
			name: "star bullets",
			in:   "* one\n  * two",
			want: "- one\n- two",
		},
		{
			name: "dash bullets untouched",
			in:   "- one\n- two",
			want: "- one\n- two",
		},
		{
			name: "prose untouched",
			in:   "Just a sentence.\n\nAnother one.",
			want: "Just a sentence.\n\nAnother one.",
		},
		{
			name: "bare definition is fenced",
			in:   "def add(a, b):\n    return a + b",
			want: "```python\ndef add(a, b):\n    return a + b\n```",
		},
		{
			name: "indented class is fenced",
			in:   "Here:\n  class Point:\n    pass",
			want: "```python\nHere:\n  class Point:\n    pass\n```",
		},
		{
			name: "existing fence is kept",
			in:   "```\ndef f():\n    pass\n```",
			want: "```\ndef f():\n    pass\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMarkdown(tt.in))
		})
	}
}

func TestFormatterMarkdownTag(t *testing.T) {
	f, err := New("markdown")
	assert.NoError(t, err)
	assert.Equal(t, "1. first item", f.Format("1) first item"))
}
