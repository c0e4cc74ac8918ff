package htmlpost_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/texkit/go-tex2web/internal/htmlpost"
)

func TestEnhance_TheoremTagging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantParts []string
	}{
		{
			name:    "blockquote wrapped theorem",
			content: `<html><head></head><body><blockquote><p><strong>Theorem:</strong> content</p></blockquote></body></html>`,
			wantParts: []string{
				`<blockquote class="theorem-block" data-theorem="theorem">`,
				`<p data-theorem="theorem">`,
				`<strong class="theorem-label">Theorem:</strong>`,
			},
		},
		{
			name:    "bare paragraph definition",
			content: `<html><head></head><body><p><strong>Definition:</strong> a set is</p></body></html>`,
			wantParts: []string{
				`<p data-theorem="definition">`,
				`<strong class="theorem-label">Definition:</strong>`,
			},
		},
		{
			name:    "inline strong label only",
			content: `<html><head></head><body><li><strong>Proof:</strong> trivial</li></body></html>`,
			wantParts: []string{
				`<strong class="theorem-label">Proof:</strong>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := htmlpost.Enhance(tt.content)
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("output missing %q:\n%s", part, got)
				}
			}
		})
	}
}

func TestEnhance_Idempotent(t *testing.T) {
	t.Parallel()

	content := `<html><head></head><body><blockquote><p><strong>Lemma:</strong> x</p></blockquote></body></html>`

	once := htmlpost.Enhance(content)
	twice := htmlpost.Enhance(once)
	if once != twice {
		t.Errorf("second pass changed output:\n--- once ---\n%s\n--- twice ---\n%s", once, twice)
	}
	if n := strings.Count(twice, "tex2web accessibility styles"); n != 1 {
		t.Errorf("stylesheet injected %d times, want 1", n)
	}
	if n := strings.Count(twice, `class="theorem-label"`); n != 1 {
		t.Errorf("label tagged %d times, want 1", n)
	}
}

func TestEnhance_StylesheetInjection(t *testing.T) {
	t.Parallel()

	t.Run("before closing head", func(t *testing.T) {
		t.Parallel()
		got := htmlpost.Enhance(`<html><head><title>t</title></head><body></body></html>`)
		styleIdx := strings.Index(got, "<style>")
		headIdx := strings.Index(got, "</head>")
		if styleIdx == -1 || headIdx == -1 || styleIdx > headIdx {
			t.Errorf("stylesheet not injected before </head>:\n%s", got)
		}
	})

	t.Run("synthesizes head when absent", func(t *testing.T) {
		t.Parallel()
		got := htmlpost.Enhance(`<p>fragment</p>`)
		if !strings.Contains(got, "<head><style>") {
			t.Errorf("no head synthesized:\n%s", got)
		}
	})

	t.Run("theorem palette present", func(t *testing.T) {
		t.Parallel()
		got := htmlpost.Enhance(`<html><head></head><body></body></html>`)
		for _, part := range []string{
			`data-theorem="definition"`,
			`data-theorem="proof"`,
			"border-left-color: #28a745",
		} {
			if !strings.Contains(got, part) {
				t.Errorf("stylesheet missing %q", part)
			}
		}
	})
}

func TestEnhance_LangAttribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "lang added",
			content: `<html><head></head><body></body></html>`,
			want:    `<html lang="en">`,
		},
		{
			name:    "existing lang kept",
			content: `<html lang="fr"><head></head><body></body></html>`,
			want:    `<html lang="fr">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := htmlpost.Enhance(tt.content)
			if !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, got)
			}
			if tt.name == "existing lang kept" && strings.Contains(got, `lang="en"`) {
				t.Errorf("lang overwritten:\n%s", got)
			}
		})
	}
}

func TestEnhanceFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	content := `<html><head></head><body><p><strong>Example:</strong> one</p></body></html>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := htmlpost.EnhanceFile(path); err != nil {
		t.Fatalf("EnhanceFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(got), `data-theorem="example"`) {
		t.Errorf("file not enhanced:\n%s", got)
	}
}

func TestEnhanceFile_Missing(t *testing.T) {
	t.Parallel()

	if err := htmlpost.EnhanceFile(filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Fatal("EnhanceFile() expected error for missing file")
	}
}
