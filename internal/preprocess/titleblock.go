package preprocess

import (
	"regexp"
	"strings"
)

var metaCommandPattern = regexp.MustCompile(`\\(title|author|date)\{`)

// extractMeta returns the argument of the first \title, \author, and \date
// command in the raw content. Arguments may contain nested braces.
func extractMeta(content string) (title, author, date string) {
	seen := map[string]bool{}
	for _, loc := range metaCommandPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		if seen[name] {
			continue
		}
		open := loc[1] - 1
		close := MatchBraced(content, open)
		if close < 0 {
			continue
		}
		seen[name] = true
		arg := content[open+1 : close]
		switch name {
		case "title":
			title = arg
		case "author":
			author = arg
		case "date":
			date = arg
		}
	}
	return title, author, date
}

// buildTitleBlock synthesizes a centered title block from the extracted
// metadata. Returns "" when no field is present.
func buildTitleBlock(title, author, date string) string {
	var parts []string
	if title != "" {
		parts = append(parts, "{\\LARGE "+title+"}")
	}
	if author != "" {
		parts = append(parts, author)
	}
	if date != "" {
		parts = append(parts, date)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\\begin{center}\n" + strings.Join(parts, "\\\\[0.5em]\n") + "\n\\end{center}"
}

// InsertTitleBlock extracts \title, \author, and \date from the document and
// substitutes a centered title block for the first \maketitle. When no
// \maketitle exists the block is inserted after the first \begin{document},
// or prepended when the document has no body marker. Exactly one
// substitution or insertion is made; a document with none of the three
// metadata commands is returned unchanged.
func InsertTitleBlock(content string) string {
	block := buildTitleBlock(extractMeta(content))
	if block == "" {
		return content
	}

	if idx := strings.Index(content, `\maketitle`); idx != -1 {
		return content[:idx] + block + content[idx+len(`\maketitle`):]
	}

	const beginDoc = `\begin{document}`
	if idx := strings.Index(content, beginDoc); idx != -1 {
		pos := idx + len(beginDoc)
		return content[:pos] + "\n" + block + content[pos:]
	}

	return block + "\n" + content
}
