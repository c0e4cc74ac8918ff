// Package pandoc invokes the pandoc CLI to do the actual markup
// interpretation. Only flag plumbing lives here; LaTeX is never parsed.
package pandoc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/texkit/go-tex2web/internal/texcmd"
)

// ErrConvert marks a pandoc failure; the wrapped message carries the
// captured stdout/stderr text.
var ErrConvert = errors.New("pandoc conversion failed")

// Source and target formats used by the pipeline.
const (
	FromLaTeX       = "latex"
	FromLaTeXRawTeX = "latex+raw_tex"
	ToHTML5         = "html5"
	ToSlidy         = "slidy"
	ToMarkdown      = "markdown"
)

// Options selects pandoc's source/target formats and output shape.
type Options struct {
	From       string
	To         string
	Standalone bool // self-contained document with header/footer
	MathJax    bool // render math via MathJax
}

// Converter runs pandoc as a subprocess.
type Converter struct {
	Runner texcmd.Runner
	Tool   string
}

// New creates a Converter using the real subprocess runner.
func New() *Converter {
	return &Converter{Runner: &texcmd.ExecRunner{}, Tool: "pandoc"}
}

// Available reports whether pandoc is on PATH.
func (c *Converter) Available() bool {
	return texcmd.LookPath(c.Tool)
}

// Convert runs pandoc on inputPath, writing to outputPath. Working directory
// is dir (relevant for relative image references); pass "" for the current
// directory. A non-zero exit is a hard failure carrying pandoc's output.
func (c *Converter) Convert(ctx context.Context, dir, inputPath, outputPath string, opts Options) error {
	args := []string{
		inputPath,
		"--from=" + opts.From,
		"--to=" + opts.To,
	}
	if opts.Standalone {
		args = append(args, "--standalone")
	}
	if opts.MathJax {
		args = append(args, "--mathjax")
	}
	args = append(args, "--output="+outputPath)

	stdout, stderr, err := c.Runner.Run(ctx, dir, c.Tool, args...)
	if err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = strings.TrimSpace(stdout)
		}
		return fmt.Errorf("%w: %s: %v", ErrConvert, detail, err)
	}
	return nil
}
