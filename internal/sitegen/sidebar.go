package sitegen

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// maxSidebarLevel limits sidebar entries to chapter/section depth. Deeper
// headings belong to the in-page TOC, not the navigation sidebar.
const maxSidebarLevel = 2

// SidebarEntry is one navigation item derived from a document heading.
type SidebarEntry struct {
	Text  string `yaml:"text"`
	Level int    `yaml:"-"`
}

// ExtractSidebar collects chapter/section headings from the intermediate
// markdown by walking its AST. Heading text is cleaned of characters that
// break YAML generation.
func ExtractSidebar(markdown []byte) []SidebarEntry {
	parser := goldmark.New().Parser()
	root := parser.Parse(text.NewReader(markdown))

	var entries []SidebarEntry
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level > maxSidebarLevel {
			return ast.WalkContinue, nil
		}
		title := cleanTitle(string(heading.Text(markdown)))
		if title != "" {
			entries = append(entries, SidebarEntry{Text: title, Level: heading.Level})
		}
		return ast.WalkSkipChildren, nil
	})
	return entries
}

// cleanTitle strips characters that would corrupt the generated site
// configuration.
func cleanTitle(s string) string {
	replacer := strings.NewReplacer("$", "", "\\", "", "^", "", "_", "")
	return strings.TrimSpace(replacer.Replace(s))
}
