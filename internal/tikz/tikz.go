// Package tikz rasterizes tikzpicture blocks offline. The downstream
// converter cannot interpret TikZ, so each block is compiled in isolation
// with a TeX compiler, rasterized to PNG, and replaced in the source with a
// centered image reference.
package tikz

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/texkit/go-tex2web/internal/fileutil"
	"github.com/texkit/go-tex2web/internal/texcmd"
)

// Default tool names; overridable for tests and exotic installs.
const (
	DefaultTexTool    = "pdflatex"
	DefaultRasterTool = "pdftoppm"
)

// Renderer compiles tikzpicture blocks to raster images.
type Renderer struct {
	Runner     texcmd.Runner
	TexTool    string
	RasterTool string
}

// NewRenderer creates a Renderer using the real subprocess runner.
func NewRenderer() *Renderer {
	return &Renderer{
		Runner:     &texcmd.ExecRunner{},
		TexTool:    DefaultTexTool,
		RasterTool: DefaultRasterTool,
	}
}

// Result holds the rewritten document and the produced image artifacts.
// Callers must copy Images alongside the final HTML.
type Result struct {
	Text     string
	Images   []string
	Warnings []string
}

// Available returns an error naming the missing external tools, or nil when
// both the TeX compiler and the PDF rasterizer are on PATH.
func (r *Renderer) Available() error {
	var missing []string
	if !texcmd.LookPath(r.TexTool) {
		missing = append(missing, r.TexTool)
	}
	if !texcmd.LookPath(r.RasterTool) {
		missing = append(missing, r.RasterTool)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tools: %s", strings.Join(missing, ", "))
	}
	return nil
}

var (
	tikzBegin        = regexp.MustCompile(`\\begin\{tikzpicture\}`)
	tikzEnd          = regexp.MustCompile(`\\end\{tikzpicture\}`)
	graphicxPattern  = regexp.MustCompile(`\\usepackage(?:\[[^\]]*\])?\{graphicx\}`)
	documentClassEnd = regexp.MustCompile(`\\documentclass(?:\[[^\]]*\])?\{[^}]*\}`)
)

// block is one tikzpicture span within the document.
type block struct {
	start, end int // byte offsets, end exclusive
}

// HasBlocks reports whether the content contains at least one tikzpicture
// block.
func HasBlocks(content string) bool {
	return tikzBegin.MatchString(content)
}

// extractBlocks finds every tikzpicture block in source order, balancing
// nested begin/end pairs of the same environment by depth counting.
func extractBlocks(content string) []block {
	begins := tikzBegin.FindAllStringIndex(content, -1)
	ends := tikzEnd.FindAllStringIndex(content, -1)

	var blocks []block
	depth := 0
	var start int
	bi, ei := 0, 0
	for bi < len(begins) || ei < len(ends) {
		if ei >= len(ends) {
			break // unterminated block, ignore the rest
		}
		if bi < len(begins) && begins[bi][0] < ends[ei][0] {
			if depth == 0 {
				start = begins[bi][0]
			}
			depth++
			bi++
			continue
		}
		if depth > 0 {
			depth--
			if depth == 0 {
				blocks = append(blocks, block{start: start, end: ends[ei][1]})
			}
		}
		ei++
	}
	return blocks
}

// EnsureGraphicx makes sure the graphicx package is loaded so the spliced
// \includegraphics references compile. Inserted after \documentclass, or at
// the very top when the document has none.
func EnsureGraphicx(content string) string {
	if graphicxPattern.MatchString(content) {
		return content
	}
	const usepackage = "\\usepackage{graphicx}"
	if loc := documentClassEnd.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n" + usepackage + content[loc[1]:]
	}
	return usepackage + "\n" + content
}

// standaloneDoc wraps a tikzpicture block in a minimal compilable document.
func standaloneDoc(blockText string) string {
	return "\\documentclass[tikz,border=2pt]{standalone}\n" +
		"\\begin{document}\n" +
		blockText + "\n" +
		"\\end{document}\n"
}

// Render extracts every tikzpicture block, compiles each to a PNG in the
// output directory, and splices a centered image reference in place of the
// block. Image files are named <prefix>-tikz-<n>.png with a 1-based index in
// source order. A block that fails to compile or rasterize is left untouched
// and reported as a warning; a single bad diagram never aborts the document.
func (r *Renderer) Render(ctx context.Context, content, outputDir, prefix string) (*Result, error) {
	blocks := extractBlocks(content)
	if len(blocks) == 0 {
		return &Result{Text: content}, nil
	}

	content = EnsureGraphicx(content)
	// Offsets shift after EnsureGraphicx; re-extract against the final text.
	blocks = extractBlocks(content)

	tmpDir, err := os.MkdirTemp("", "tex2web-tikz-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp build directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	res := &Result{}
	var out strings.Builder
	last := 0
	for i, b := range blocks {
		imageName := fmt.Sprintf("%s-tikz-%d.png", prefix, i+1)
		imagePath, err := r.renderBlock(ctx, content[b.start:b.end], tmpDir, outputDir, imageName, i+1)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("tikzpicture %d: %v", i+1, err))
			out.WriteString(content[last:b.end])
			last = b.end
			continue
		}

		out.WriteString(content[last:b.start])
		out.WriteString("\\begin{center}\n\\includegraphics[width=0.8\\textwidth]{" + imageName + "}\n\\end{center}")
		last = b.end
		res.Images = append(res.Images, imagePath)
	}
	out.WriteString(content[last:])

	res.Text = out.String()
	return res, nil
}

// renderBlock compiles one block in its own subdirectory of the pass's temp
// directory and copies the resulting PNG into outputDir.
func (r *Renderer) renderBlock(ctx context.Context, blockText, tmpDir, outputDir, imageName string, index int) (string, error) {
	workDir := filepath.Join(tmpDir, fmt.Sprintf("fig%d", index))
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return "", fmt.Errorf("creating build directory: %w", err)
	}

	texPath := filepath.Join(workDir, "fig.tex")
	if err := os.WriteFile(texPath, []byte(standaloneDoc(blockText)), 0o600); err != nil {
		return "", fmt.Errorf("writing figure source: %w", err)
	}

	if _, stderr, err := r.Runner.Run(ctx, workDir, r.TexTool,
		"-interaction=nonstopmode", "-halt-on-error", "fig.tex"); err != nil {
		return "", fmt.Errorf("compiling: %s: %w", strings.TrimSpace(stderr), err)
	}

	if _, stderr, err := r.Runner.Run(ctx, workDir, r.RasterTool,
		"-png", "-r", "150", "-singlefile", "fig.pdf", "fig"); err != nil {
		return "", fmt.Errorf("rasterizing: %s: %w", strings.TrimSpace(stderr), err)
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	imagePath := filepath.Join(outputDir, imageName)
	if err := fileutil.CopyFile(filepath.Join(workDir, "fig.png"), imagePath); err != nil {
		return "", fmt.Errorf("copying image: %w", err)
	}
	return imagePath, nil
}
