package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidExtension rejects explicit inputs that are not LaTeX sources.
var ErrInvalidExtension = errors.New("file must have .tex or .latex extension")

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all LaTeX files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateLatexExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	sources, err := findLatexSources(inputPath)
	if err != nil {
		return nil, err
	}

	files := make([]FileToConvert, 0, len(sources))
	for _, src := range sources {
		files = append(files, FileToConvert{
			InputPath:  src,
			OutputPath: resolveOutputPath(src, outputDir, inputPath),
		})
	}
	return files, nil
}

// findLatexSources walks root collecting .tex and .latex files. A file named
// main.tex (any case) anywhere in the tree is treated as the project entry
// point and returned alone; multi-file projects are wired together through
// \include and \input from there, so converting the siblings too would
// produce fragments.
func findLatexSources(root string) ([]string, error) {
	var sources []string
	var mainPath string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		name := d.Name()
		if d.IsDir() {
			// Skip dotdirs and archive junk like __MACOSX.
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__")) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !isLatexExtension(path) {
			return nil
		}
		if mainPath == "" && strings.EqualFold(name, "main.tex") {
			mainPath = path
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mainPath != "" {
		return []string{mainPath}, nil
	}
	return sources, nil
}

// resolveOutputPath determines the HTML output path for a LaTeX file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// isLatexExtension reports whether the path has a LaTeX source extension.
func isLatexExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tex", ".latex":
		return true
	}
	return false
}

// validateLatexExtension checks that the file has a .tex or .latex extension.
func validateLatexExtension(path string) error {
	if !isLatexExtension(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
