// Package sitegen renders a multi-page site from a structurally segmented
// document: the processed LaTeX is converted to markdown, a site
// configuration with sidebar navigation is generated, and quarto produces
// the final page tree.
package sitegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/texkit/go-tex2web/internal/fileutil"
	"github.com/texkit/go-tex2web/internal/pandoc"
	"github.com/texkit/go-tex2web/internal/texcmd"
	"github.com/texkit/go-tex2web/internal/yamlutil"
)

// Sentinel errors for site builds.
var (
	ErrQuartoMissing = errors.New("quarto not found")
	ErrQuartoRender  = errors.New("quarto render failed")
	ErrNoSiteOutput  = errors.New("site generator produced no _site directory")
)

// Defaults for the generated site configuration.
const (
	DefaultTitle = "LaTeX Document"
	DefaultTheme = "cosmo"
)

// Builder turns processed LaTeX into a static site in a working directory.
type Builder struct {
	Runner texcmd.Runner
	Tool   string
	Pandoc *pandoc.Converter

	Title string
	Theme string
}

// New creates a Builder with the real subprocess runner and defaults.
func New(conv *pandoc.Converter) *Builder {
	return &Builder{
		Runner: &texcmd.ExecRunner{},
		Tool:   "quarto",
		Pandoc: conv,
		Title:  DefaultTitle,
		Theme:  DefaultTheme,
	}
}

// siteConfig mirrors the generated _quarto.yml.
type siteConfig struct {
	Project projectConfig `yaml:"project"`
	Website websiteConfig `yaml:"website"`
	Format  formatConfig  `yaml:"format"`
}

type projectConfig struct {
	Type string `yaml:"type"`
}

type websiteConfig struct {
	Title   string        `yaml:"title"`
	Search  searchConfig  `yaml:"search"`
	Sidebar sidebarConfig `yaml:"sidebar"`
}

type searchConfig struct {
	Location string `yaml:"location"`
	Type     string `yaml:"type"`
}

type sidebarConfig struct {
	Style    string `yaml:"style"`
	Search   bool   `yaml:"search"`
	Contents []any  `yaml:"contents"`
}

type formatConfig struct {
	HTML htmlFormatConfig `yaml:"html"`
}

type htmlFormatConfig struct {
	Theme          string `yaml:"theme"`
	TOC            bool   `yaml:"toc"`
	TOCLocation    string `yaml:"toc-location"`
	NumberSections bool   `yaml:"number-sections"`
	NumberDepth    int    `yaml:"number-depth"`
}

// buildConfig assembles the site configuration with sidebar entries derived
// from the document headings. With no headings the sidebar falls back to the
// index page itself.
func (b *Builder) buildConfig(entries []SidebarEntry) *siteConfig {
	contents := make([]any, 0, len(entries))
	for _, e := range entries {
		contents = append(contents, SidebarEntry{Text: e.Text})
	}
	if len(contents) == 0 {
		contents = append(contents, "index.qmd")
	}

	return &siteConfig{
		Project: projectConfig{Type: "website"},
		Website: websiteConfig{
			Title:   b.Title,
			Search:  searchConfig{Location: "sidebar", Type: "textbox"},
			Sidebar: sidebarConfig{Style: "floating", Search: true, Contents: contents},
		},
		Format: formatConfig{
			HTML: htmlFormatConfig{
				Theme:          b.Theme,
				TOC:            true,
				TOCLocation:    "right",
				NumberSections: true,
				NumberDepth:    3,
			},
		},
	}
}

// Build converts the processed LaTeX to markdown, writes the site
// configuration and index page into workDir, runs quarto, and copies the
// generated _site tree into outputDir. Any failure is returned to the caller
// for the single-file fallback; nothing here is retried.
func (b *Builder) Build(ctx context.Context, processed, workDir, outputDir string) error {
	if !texcmd.LookPath(b.Tool) {
		return ErrQuartoMissing
	}

	// LaTeX -> markdown through pandoc. raw_tex keeps constructs pandoc
	// cannot model from silently disappearing.
	texPath := filepath.Join(workDir, "temp_full.tex")
	mdPath := filepath.Join(workDir, "temp_content.md")
	if err := os.WriteFile(texPath, []byte(processed), 0o600); err != nil {
		return fmt.Errorf("writing intermediate LaTeX: %w", err)
	}
	defer os.Remove(texPath)
	defer os.Remove(mdPath)

	err := b.Pandoc.Convert(ctx, workDir, "temp_full.tex", "temp_content.md", pandoc.Options{
		From: pandoc.FromLaTeXRawTeX,
		To:   pandoc.ToMarkdown,
	})
	if err != nil {
		return err
	}

	markdown, err := os.ReadFile(mdPath) // #nosec G304 -- pipeline-owned path
	if err != nil {
		return fmt.Errorf("reading intermediate markdown: %w", err)
	}

	configData, err := yamlutil.Marshal(b.buildConfig(ExtractSidebar(markdown)))
	if err != nil {
		return fmt.Errorf("generating site config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(workDir, "_quarto.yml"), configData, 0o600); err != nil {
		return fmt.Errorf("writing site config: %w", err)
	}

	index := "---\ntitle: \"Document\"\n---\n\n" + string(markdown)
	if err := os.WriteFile(filepath.Join(workDir, "index.qmd"), []byte(index), 0o600); err != nil {
		return fmt.Errorf("writing index page: %w", err)
	}

	if stdout, stderr, err := b.Runner.Run(ctx, workDir, b.Tool, "render"); err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = strings.TrimSpace(stdout)
		}
		return fmt.Errorf("%w: %s: %v", ErrQuartoRender, detail, err)
	}

	siteDir := filepath.Join(workDir, "_site")
	if !fileutil.DirExists(siteDir) {
		return ErrNoSiteOutput
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := fileutil.CopyTree(siteDir, outputDir); err != nil {
		return fmt.Errorf("collecting site output: %w", err)
	}
	return nil
}
