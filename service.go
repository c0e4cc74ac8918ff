package tex2web

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/texkit/go-tex2web/internal/fileutil"
	"github.com/texkit/go-tex2web/internal/htmlpost"
	"github.com/texkit/go-tex2web/internal/latexcheck"
	"github.com/texkit/go-tex2web/internal/pandoc"
	"github.com/texkit/go-tex2web/internal/preprocess"
	"github.com/texkit/go-tex2web/internal/sitegen"
	"github.com/texkit/go-tex2web/internal/tikz"
)

// Service orchestrates the LaTeX-to-HTML pipeline.
type Service struct {
	pandoc *pandoc.Converter
	tikz   *tikz.Renderer
	site   *sitegen.Builder
}

// New creates a Service with default collaborators. Use options to customize
// site generation (e.g. WithSiteTitle).
func New(opts ...Option) *Service {
	conv := pandoc.New()
	s := &Service{
		pandoc: conv,
		tikz:   tikz.NewRenderer(),
		site:   sitegen.New(conv),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertFile converts one LaTeX source file to HTML at outputPath.
//
// Presentation-class sources are flattened to section-delimited content and
// rendered as a slidy slideshow. Sources with structural markers (\include,
// \input, \chapter, \section) are built as a multi-page site; when the site
// build fails for any reason the conversion degrades to a single page rather
// than surfacing an error. Everything else converts directly to a standalone
// HTML page. Diagram images are copied next to the output; the returned
// Result lists them along with accumulated warnings.
func (s *Service) ConvertFile(ctx context.Context, inputPath, outputPath string, opts ConvertOptions) (*Result, error) {
	raw, err := os.ReadFile(inputPath) // #nosec G304 -- caller-provided input
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, inputPath)
	}

	res := &Result{OutputPath: outputPath, Format: FormatDocument}
	res.Warnings = append(res.Warnings, latexcheck.Check(content)...)

	if preprocess.IsBeamer(content) {
		// Presentations are always a single slideshow page; frames are
		// flattened after include resolution, inside convertSingle.
		res.Format = FormatSlideshow
		return res, s.convertSingle(ctx, content, inputPath, outputPath, opts, res)
	}

	if preprocess.HasStructure(content) {
		nwarn, nimg := len(res.Warnings), len(res.Images)
		err := s.buildSite(ctx, content, inputPath, outputPath, opts, res)
		if err == nil {
			res.Format = FormatSite
			res.OutputPath = filepath.Dir(outputPath)
			return res, nil
		}
		// The fallback re-runs the include/diagram stage, so drop
		// whatever the failed site attempt already recorded.
		res.Warnings = res.Warnings[:nwarn]
		res.Images = res.Images[:nimg]
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("site build failed (%v), falling back to single-file conversion", err))
	}

	return res, s.convertSingle(ctx, content, inputPath, outputPath, opts, res)
}

// buildSite runs the multi-page path: includes, diagrams, rewrites, then the
// site generator. Generated pages are post-processed in place.
func (s *Service) buildSite(ctx context.Context, content, inputPath, outputPath string, opts ConvertOptions, res *Result) error {
	workDir := filepath.Dir(inputPath)
	outputDir := filepath.Dir(outputPath)

	processed, warnings, err := s.preprocess(ctx, content, inputPath, outputDir, opts)
	if err != nil {
		return err
	}
	res.Warnings = append(res.Warnings, warnings...)

	rewritten := preprocess.Rewrite(processed.Text)

	if err := s.site.Build(ctx, rewritten, workDir, outputDir); err != nil {
		return fmt.Errorf("%w: %v", ErrSiteBuild, err)
	}
	res.Images = append(res.Images, processed.Images...)

	// Every generated page gets the accessibility pass.
	return filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		return htmlpost.EnhanceFile(path)
	})
}

// convertSingle runs the single-page path: includes, diagrams, rewrites,
// pandoc, accessibility pass.
func (s *Service) convertSingle(ctx context.Context, content, inputPath, outputPath string, opts ConvertOptions, res *Result) error {
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	processed, warnings, err := s.preprocess(ctx, content, inputPath, outputDir, opts)
	if err != nil {
		return err
	}
	res.Warnings = append(res.Warnings, warnings...)
	res.Images = append(res.Images, processed.Images...)

	text := processed.Text
	if res.Format == FormatSlideshow {
		// Flattening after include resolution so frames inside included
		// files become the headings slidy splits on.
		text = preprocess.FlattenFrames(text)
	}
	rewritten := preprocess.Rewrite(text)

	tmpPath, cleanup, err := fileutil.WriteTempFile(rewritten, "tex")
	if err != nil {
		return err
	}
	defer cleanup()

	to := pandoc.ToHTML5
	if res.Format == FormatSlideshow {
		to = pandoc.ToSlidy
	}
	// The working directory is the output dir so relative image
	// references resolve during conversion.
	err = s.pandoc.Convert(ctx, outputDir, tmpPath, outputPath, pandoc.Options{
		From:       pandoc.FromLaTeX,
		To:         to,
		Standalone: true,
		MathJax:    true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConvertFailed, err)
	}

	if res.Format == FormatSlideshow {
		return nil // the slideshow variant keeps its own styling
	}
	return htmlpost.EnhanceFile(outputPath)
}

// preprocessed bundles the include/diagram stage output.
type preprocessed struct {
	Text   string
	Images []string
}

// preprocess resolves includes and renders diagrams, honoring the missing
// toolchain policy in opts.
func (s *Service) preprocess(ctx context.Context, content, inputPath, outputDir string, opts ConvertOptions) (*preprocessed, []string, error) {
	var warnings []string

	resolved, incWarnings := preprocess.ResolveIncludes(content, filepath.Dir(inputPath))
	warnings = append(warnings, incWarnings...)

	if !tikz.HasBlocks(resolved) {
		return &preprocessed{Text: resolved}, warnings, nil
	}

	if err := s.tikz.Available(); err != nil {
		if opts.RequireDiagramTools {
			return nil, nil, fmt.Errorf("%w: %v", ErrMissingTools, err)
		}
		warnings = append(warnings, fmt.Sprintf("skipping diagram rendering: %v", err))
		return &preprocessed{Text: resolved}, warnings, nil
	}

	prefix := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	rendered, err := s.tikz.Render(ctx, resolved, outputDir, prefix)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, rendered.Warnings...)
	return &preprocessed{Text: rendered.Text, Images: rendered.Images}, warnings, nil
}
