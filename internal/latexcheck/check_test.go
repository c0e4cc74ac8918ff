package latexcheck_test

import (
	"strings"
	"testing"

	"github.com/texkit/go-tex2web/internal/latexcheck"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		wantContains []string
		wantCount    int
	}{
		{
			name:      "clean document",
			content:   `\documentclass{article}\begin{document}\section{A}\end{document}`,
			wantCount: 0,
		},
		{
			name:         "unmatched braces",
			content:      `\documentclass{article}\begin{document}{{\end{document}`,
			wantContains: []string{"unmatched braces"},
			wantCount:    1,
		},
		{
			name:         "unknown command",
			content:      `\documentclass{article}\begin{document}\frobnicate{x}\end{document}`,
			wantContains: []string{"potentially undefined commands", "frobnicate"},
			wantCount:    1,
		},
		{
			name:         "missing structure",
			content:      "just some text",
			wantContains: []string{"missing document structure"},
			wantCount:    1,
		},
		{
			name:    "short commands ignored",
			content: `\documentclass{article}\begin{document}a \\ b \in c\end{document}`,
			// \\ and \in are too short for the unknown-command heuristic.
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			warnings := latexcheck.Check(tt.content)
			if len(warnings) != tt.wantCount {
				t.Errorf("got %d warnings %v, want %d", len(warnings), warnings, tt.wantCount)
			}
			joined := strings.Join(warnings, "\n")
			for _, part := range tt.wantContains {
				if !strings.Contains(joined, part) {
					t.Errorf("warnings %v missing %q", warnings, part)
				}
			}
		})
	}
}

func TestCheck_UnknownCommandCap(t *testing.T) {
	t.Parallel()

	content := `\documentclass{article}\begin{document}` +
		`\cmdone \cmdtwo \cmdthree \cmdfour \cmdfive \cmdsix \cmdseven` +
		`\end{document}`

	warnings := latexcheck.Check(content)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if strings.Contains(warnings[0], "cmdsix") {
		t.Errorf("warning exceeds five-command cap: %s", warnings[0])
	}
	if !strings.Contains(warnings[0], "cmdfive") {
		t.Errorf("warning missing fifth command: %s", warnings[0])
	}
}

func TestCheck_DeduplicatesCommands(t *testing.T) {
	t.Parallel()

	content := `\documentclass{article}\begin{document}\mystery \mystery \mystery\end{document}`

	warnings := latexcheck.Check(content)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if n := strings.Count(warnings[0], "mystery"); n != 1 {
		t.Errorf("command listed %d times, want 1: %s", n, warnings[0])
	}
}
