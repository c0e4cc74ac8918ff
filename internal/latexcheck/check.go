// Package latexcheck runs cheap sanity checks over LaTeX source before
// conversion. Findings are advisory warnings, never errors: the converter is
// the authority on what actually parses.
package latexcheck

import (
	"fmt"
	"regexp"
	"strings"
)

var commandPattern = regexp.MustCompile(`\\([a-zA-Z]+)`)

// knownCommands are common commands excluded from the unknown-command
// heuristic.
var knownCommands = map[string]bool{
	"textbf": true, "textit": true, "emph": true,
	"section": true, "subsection": true, "chapter": true,
	"title": true, "author": true, "date": true, "today": true,
	"maketitle": true, "ref": true, "label": true,
	"begin": true, "end": true, "documentclass": true, "usepackage": true,
}

// maxReportedCommands caps the unknown-command list in a single warning.
const maxReportedCommands = 5

// Check returns a list of potential issues in the content.
func Check(content string) []string {
	var warnings []string

	open := strings.Count(content, "{")
	closed := strings.Count(content, "}")
	if open != closed {
		warnings = append(warnings, fmt.Sprintf("unmatched braces: %d open, %d close", open, closed))
	}

	if unknown := unknownCommands(content); len(unknown) > 0 {
		warnings = append(warnings, "potentially undefined commands: "+strings.Join(unknown, ", "))
	}

	if !strings.Contains(content, `\documentclass`) && !strings.Contains(content, `\begin{document}`) {
		warnings = append(warnings, `missing document structure (\documentclass or \begin{document})`)
	}

	return warnings
}

// unknownCommands collects up to maxReportedCommands command names outside
// the known set, deduplicated in order of first appearance.
func unknownCommands(content string) []string {
	seen := map[string]bool{}
	var unknown []string
	for _, m := range commandPattern.FindAllStringSubmatch(content, -1) {
		cmd := m[1]
		if len(cmd) <= 2 || knownCommands[cmd] || seen[cmd] {
			continue
		}
		seen[cmd] = true
		unknown = append(unknown, cmd)
		if len(unknown) == maxReportedCommands {
			break
		}
	}
	return unknown
}
