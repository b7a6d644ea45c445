package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// mermaidIndicators mark text that is already a diagram definition.
// Matching is by substring, so "pie" also matches inside longer words.
var mermaidIndicators = []string{
	"graph ",
	"sequenceDiagram",
	"classDiagram",
	"erDiagram",
	"gantt",
	"pie",
	"flowchart",
	"stateDiagram",
}

var mermaidBlock = regexp.MustCompile("(?s)```mermaid\n(.*?)\n```")

// FormatMermaid returns raw as a fenced mermaid block.
//
// An existing mermaid block is extracted and re-fenced, dropping the prose
// around it. Text containing a diagram keyword is fenced verbatim. Anything
// else becomes a top-down flowchart with one node per non-blank line, chained
// in order. Blank input is returned unchanged.
func FormatMermaid(raw string) string {
	if strings.Contains(raw, "```mermaid") {
		if m := mermaidBlock.FindStringSubmatch(raw); m != nil {
			return fence(strings.TrimSpace(m[1]))
		}
	}

	for _, indicator := range mermaidIndicators {
		if strings.Contains(raw, indicator) {
			return fence(strings.TrimSpace(raw))
		}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	diagram := []string{"graph TD"}
	node := 0
	for _, line := range strings.Split(trimmed, "\n") {
		label := strings.TrimSpace(nodeLabel(line))
		if label == "" {
			continue
		}
		diagram = append(diagram, fmt.Sprintf("    A%d[%s]", node, label))
		if node > 0 {
			diagram = append(diagram, fmt.Sprintf("    A%d --> A%d", node-1, node))
		}
		node++
	}
	return fence(strings.Join(diagram, "\n"))
}

// nodeLabel keeps letters, digits, whitespace and hyphens.
func nodeLabel(line string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			return r
		}
		return -1
	}, line)
}

func fence(body string) string {
	return "```mermaid\n" + body + "\n```"
}
