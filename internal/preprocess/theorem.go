package preprocess

import (
	"regexp"
	"strings"
)

// EnvRule maps a theorem-like environment keyword to its display label.
type EnvRule struct {
	Name  string
	Label string
}

// TheoremEnvs is the fixed ordered table of recognized theorem-like
// environments. Built once at process start; the rewriter and the HTML
// post-processor share it by reference.
var TheoremEnvs = []EnvRule{
	{"definition", "Definition"},
	{"theorem", "Theorem"},
	{"lemma", "Lemma"},
	{"corollary", "Corollary"},
	{"proposition", "Proposition"},
	{"remark", "Remark"},
	{"example", "Example"},
	{"exercise", "Exercise"},
	{"proof", "Proof"},
}

// envPatterns holds the precompiled begin/end patterns for one environment.
type envPatterns struct {
	begin *regexp.Regexp // captures the optional bracketed title
	end   *regexp.Regexp
	label string
}

var theoremPatterns = buildTheoremPatterns()

func buildTheoremPatterns() []envPatterns {
	ps := make([]envPatterns, 0, len(TheoremEnvs))
	for _, env := range TheoremEnvs {
		ps = append(ps, envPatterns{
			begin: regexp.MustCompile(`\\begin\{` + env.Name + `\}(?:\[([^\]]+)\])?`),
			end:   regexp.MustCompile(`\\end\{` + env.Name + `\}`),
			label: env.Label,
		})
	}
	return ps
}

// Multi-column wrappers conflict with quote-block semantics in the target
// renderer, so they are stripped rather than wrapped.
var (
	multicolsBegin = regexp.MustCompile(`\\begin\{multicols\}\{[0-9]+\}`)
	multicolsEnd   = regexp.MustCompile(`\\end\{multicols\}`)
)

// RewriteTheoremLine rewrites theorem-like environment markers on a single
// comment-stripped line into quote-block markers with a bold display label.
// Each environment is matched by an independent non-overlapping pass, so a
// begin and end of different environments on the same line are both handled.
func RewriteTheoremLine(code string) string {
	for _, p := range theoremPatterns {
		code = p.begin.ReplaceAllStringFunc(code, func(m string) string {
			sub := p.begin.FindStringSubmatch(m)
			suffix := ""
			if sub[1] != "" {
				suffix = " (" + sub[1] + ")"
			}
			return "\\begin{quote}\n\\textbf{" + p.label + suffix + ":} "
		})
		code = p.end.ReplaceAllString(code, "\n\\end{quote}\n")
	}
	code = multicolsBegin.ReplaceAllString(code, "")
	code = multicolsEnd.ReplaceAllString(code, "")
	return code
}

// DisplayLabels returns the bold labels ("Definition:", ...) in table order.
func DisplayLabels() []string {
	labels := make([]string, 0, len(TheoremEnvs))
	for _, env := range TheoremEnvs {
		labels = append(labels, env.Label+":")
	}
	return labels
}

// EnvNameForLabel returns the environment keyword for a display label
// ("Theorem:" -> "theorem").
func EnvNameForLabel(label string) string {
	return strings.ToLower(strings.TrimSuffix(label, ":"))
}
