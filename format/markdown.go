package format

import (
	"regexp"
	"strings"
)

var (
	definitionHeader = regexp.MustCompile(`(?m)^\s*(?:def|class)\s+\w+`)
	orderedItem      = regexp.MustCompile(`^\s*(\d+)[.)]?\s+`)
	unorderedItem    = regexp.MustCompile(`^\s*[-*]\s+`)
)

// FormatMarkdown fences bare code and normalizes list markers.
//
// Text without a ``` fence that has a def/class header on some line is
// wrapped in a python code block. Then, line by line, ordered items not
// already starting with "1." become "N. text" and "*" bullets become "- text".
func FormatMarkdown(raw string) string {
	if !strings.Contains(raw, "```") && definitionHeader.MatchString(raw) {
		raw = "```python\n" + raw + "\n```"
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case orderedItem.MatchString(line) && !strings.HasPrefix(trimmed, "1."):
			lines[i] = orderedItem.ReplaceAllString(line, "$1. ")
		case unorderedItem.MatchString(line) && !strings.HasPrefix(trimmed, "-"):
			lines[i] = unorderedItem.ReplaceAllString(line, "- ")
		}
	}
	return strings.Join(lines, "\n")
}
