package preprocess

import "regexp"

var (
	labelPattern = regexp.MustCompile(`\\label\{[^}]+\}`)
	refPattern   = regexp.MustCompile(`\\ref\{([^}]+)\}`)
)

// RewriteLabels deletes \label commands and converts \ref commands to italic
// text containing the literal reference name. No symbol table is built, so
// the substitution is lossy but content-preserving. Applying it twice is
// equivalent to applying it once.
func RewriteLabels(code string) string {
	code = labelPattern.ReplaceAllString(code, "")
	code = refPattern.ReplaceAllString(code, `\textit{$1}`)
	return code
}
