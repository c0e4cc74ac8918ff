// Package preprocess rewrites LaTeX constructs that the downstream converter
// handles poorly into forms it handles well. All transforms are deterministic
// text rewrites: document-level passes first (title block, framebox
// flattening), then line-level passes that respect trailing comments.
package preprocess

import "strings"

// Rewrite applies the full preprocessing sequence to a document. Order
// matters: the title block and framebox passes see raw content, then each
// line is split into code and comment so the theorem and label rewrites
// never touch commented-out markup.
func Rewrite(content string) string {
	content = InsertTitleBlock(content)
	content = FlattenFrameboxes(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		code, comment := SplitComment(line)
		code = RewriteTheoremLine(code)
		code = RewriteLabels(code)
		lines[i] = code + comment
	}
	return strings.Join(lines, "\n")
}
