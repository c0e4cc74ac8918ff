// Package htmlpost rewrites converter-produced HTML for accessibility and
// theorem theming. All rewrites are idempotent textual substitutions keyed on
// literal markup patterns, so re-running the post-processor on its own
// output is a no-op.
package htmlpost

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/texkit/go-tex2web/internal/preprocess"
)

// cssMarker identifies an already-injected stylesheet so repeated passes
// never duplicate it.
const cssMarker = "/* tex2web accessibility styles */"

type blockquoteRule struct {
	pattern *regexp.Regexp
	replace string
}

var blockquoteRules = buildBlockquoteRules()

func buildBlockquoteRules() []blockquoteRule {
	rules := make([]blockquoteRule, 0, len(preprocess.TheoremEnvs))
	for _, label := range preprocess.DisplayLabels() {
		env := preprocess.EnvNameForLabel(label)
		rules = append(rules, blockquoteRule{
			pattern: regexp.MustCompile(`<blockquote>(\s*<p>\s*<strong>` + regexp.QuoteMeta(label) + `</strong>)`),
			replace: `<blockquote class="theorem-block" data-theorem="` + env + `">$1`,
		})
	}
	return rules
}

// Enhance applies theorem tagging, stylesheet injection, and a root language
// attribute to HTML content. Order per label matters: the enclosing
// blockquote is tagged first (it matches the untouched <p>), then the
// paragraph, then the bold label itself. Each substitution destroys its own
// match target, which is what makes the pass idempotent.
func Enhance(content string) string {
	for i, label := range preprocess.DisplayLabels() {
		env := preprocess.EnvNameForLabel(label)

		content = blockquoteRules[i].pattern.ReplaceAllString(content, blockquoteRules[i].replace)

		content = strings.ReplaceAll(content,
			"<p><strong>"+label+"</strong>",
			`<p data-theorem="`+env+`"><strong>`+label+"</strong>")

		content = strings.ReplaceAll(content,
			"<strong>"+label+"</strong>",
			`<strong class="theorem-label">`+label+"</strong>")
	}

	content = injectStylesheet(content)
	content = ensureLang(content)
	return content
}

// EnhanceFile rewrites the HTML file at path in place.
func EnhanceFile(path string) error {
	content, err := os.ReadFile(path) // #nosec G304 -- path produced by the pipeline
	if err != nil {
		return fmt.Errorf("reading HTML: %w", err)
	}
	enhanced := Enhance(string(content))
	if enhanced == string(content) {
		return nil
	}
	if err := os.WriteFile(path, []byte(enhanced), 0o644); err != nil { // #nosec G306 -- published HTML
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}

// injectStylesheet inserts the accessibility stylesheet immediately before
// </head>, synthesizing a head section when none exists. Skipped when the
// marker shows a previous injection.
func injectStylesheet(content string) string {
	if strings.Contains(content, cssMarker) {
		return content
	}
	styleBlock := "<style>\n" + cssMarker + "\n" + accessibilityCSS + "</style>\n"

	lowerHTML := strings.ToLower(content)
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return content[:idx] + styleBlock + content[idx:]
	}
	return "<head>" + styleBlock + "</head>" + content
}

// ensureLang adds lang="en" to the root html element unless any lang
// attribute is already present.
func ensureLang(content string) string {
	if strings.Contains(content, "lang=") {
		return content
	}
	lowerHTML := strings.ToLower(content)
	idx := strings.Index(lowerHTML, "<html")
	if idx == -1 {
		return content
	}
	pos := idx + len("<html")
	return content[:pos] + ` lang="en"` + content[pos:]
}

// accessibilityCSS is the fixed stylesheet injected into every generated
// document: base typography and table/link rules plus the per-environment
// theorem palette.
const accessibilityCSS = `body { font-family: 'Times New Roman', serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; }
h1, h2, h3, h4, h5, h6 { margin-top: 1.5em; margin-bottom: 0.5em; }
p { margin-bottom: 1em; }
img { max-width: 100%; height: auto; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; font-weight: bold; }
a { color: #0066cc; text-decoration: underline; }
a:hover, a:focus { background-color: #f0f8ff; }
.math { font-family: 'Times New Roman', serif; }
@media (prefers-reduced-motion: reduce) { * { animation-duration: 0.01ms !important; } }

.theorem-label,
strong.theorem-label {
    color: #007acc !important;
    font-size: 1.1em !important;
    font-weight: bold !important;
}

p[data-theorem],
.theorem-block {
    margin: 1.5em 0;
    padding: 1em;
    border-left: 4px solid #007acc;
    background-color: #f8f9fa;
    border-radius: 4px;
}

.theorem-block > p:first-child { margin-top: 0; }
.theorem-block > p:last-child { margin-bottom: 0; }

p[data-theorem="definition"],
.theorem-block[data-theorem="definition"] {
    border-left-color: #dc3545;
    background-color: #fff8f8;
}

p[data-theorem="theorem"],
p[data-theorem="lemma"],
p[data-theorem="corollary"],
p[data-theorem="proposition"],
.theorem-block[data-theorem="theorem"],
.theorem-block[data-theorem="lemma"],
.theorem-block[data-theorem="corollary"],
.theorem-block[data-theorem="proposition"] {
    border-left-color: #28a745;
    background-color: #f8fff8;
}

p[data-theorem="example"],
p[data-theorem="exercise"],
.theorem-block[data-theorem="example"],
.theorem-block[data-theorem="exercise"] {
    border-left-color: #ffc107;
    background-color: #fffdf0;
}

p[data-theorem="proof"],
.theorem-block[data-theorem="proof"] {
    border-left-color: #6c757d;
    background-color: #f1f3f4;
}
`
