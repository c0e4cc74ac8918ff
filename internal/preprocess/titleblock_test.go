package preprocess_test

import (
	"strings"
	"testing"

	"github.com/texkit/go-tex2web/internal/preprocess"
)

func TestInsertTitleBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantParts   []string
		wantAbsent  []string
		wantChanged bool
	}{
		{
			name: "maketitle replaced",
			content: `\title{Set Theory}
\author{G. Cantor}
\date{1874}
\begin{document}
\maketitle
body`,
			wantParts: []string{
				"\\begin{center}",
				"{\\LARGE Set Theory}\\\\[0.5em]",
				"G. Cantor\\\\[0.5em]",
				"1874",
				"\\end{center}",
			},
			wantAbsent:  []string{`\maketitle`},
			wantChanged: true,
		},
		{
			name: "no maketitle inserts after begin document",
			content: `\title{Notes}
\begin{document}
body`,
			wantParts:   []string{"\\begin{document}\n\\begin{center}\n{\\LARGE Notes}\n\\end{center}"},
			wantChanged: true,
		},
		{
			name: "title with nested braces",
			content: `\title{The \textbf{Big} Result}
\begin{document}
\maketitle`,
			wantParts:   []string{`{\LARGE The \textbf{Big} Result}`},
			wantChanged: true,
		},
		{
			name: "missing author omitted",
			content: `\title{Alone}
\date{2020}
\begin{document}
\maketitle`,
			wantParts:   []string{"{\\LARGE Alone}\\\\[0.5em]\n2020"},
			wantAbsent:  []string{"\\\\[0.5em]\n\\\\[0.5em]"},
			wantChanged: true,
		},
		{
			name:        "no metadata unchanged",
			content:     "\\begin{document}\nbody\n\\end{document}",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := preprocess.InsertTitleBlock(tt.content)
			if tt.wantChanged == (got == tt.content) {
				t.Errorf("changed = %v, want %v", got != tt.content, tt.wantChanged)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("output missing %q:\n%s", part, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("output should not contain %q:\n%s", absent, got)
				}
			}
		})
	}
}

func TestInsertTitleBlock_SingleSubstitution(t *testing.T) {
	t.Parallel()

	content := `\title{T}
\begin{document}
\maketitle
middle
\maketitle`

	got := preprocess.InsertTitleBlock(content)
	if n := strings.Count(got, `\begin{center}`); n != 1 {
		t.Errorf("title block inserted %d times, want 1", n)
	}
	if n := strings.Count(got, `\maketitle`); n != 1 {
		t.Errorf("%d \\maketitle left, want the second one kept", n)
	}
}
