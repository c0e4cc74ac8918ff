// Package tex2web converts LaTeX documents into styled, accessible HTML.
//
// The package rewrites LaTeX constructs that pandoc handles poorly (theorem
// environments, title blocks, beamer frames, file includes, TikZ diagrams)
// into forms it handles well, invokes pandoc for the actual markup
// interpretation, and post-processes the resulting HTML for accessibility.
// Multi-file documents are rendered as a multi-page site through quarto,
// falling back to a single page when the site build fails.
//
// Basic usage:
//
//	svc := tex2web.New()
//	res, err := svc.ConvertFile(ctx, "notes.tex", "out/notes.html")
//
// External tools (pandoc, quarto, pdflatex, pdftoppm) are subprocess
// collaborators; each is invoked exactly once per use, with captured output
// on failure.
package tex2web
