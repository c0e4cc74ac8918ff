package main

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tex2web "github.com/texkit/go-tex2web"
)

// ErrBadArchive flags zip files that cannot be read or are malicious.
var ErrBadArchive = errors.New("cannot read zip archive")

// maxArchiveEntrySize caps decompressed entry size to bound zip bombs.
const maxArchiveEntrySize = 64 << 20

// convertArchive extracts a zip archive to a temp directory and converts
// every LaTeX source it contains. Output lands in a directory named after
// the archive, under outputDir when given.
func convertArchive(ctx context.Context, svc *tex2web.Service, zipPath, outputDir string, workers int) ([]ConversionResult, error) {
	tmpDir, err := os.MkdirTemp("", "tex2web-zip-*")
	if err != nil {
		return nil, fmt.Errorf("creating extraction directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := extractZip(zipPath, tmpDir); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	if outputDir == "" {
		outputDir = base
	} else if !strings.HasSuffix(outputDir, ".html") {
		outputDir = filepath.Join(outputDir, base)
	}

	sources, err := findLatexSources(tmpDir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: %s", tex2web.ErrNoSourcesFound, zipPath)
	}

	files := make([]FileToConvert, 0, len(sources))
	for _, src := range sources {
		files = append(files, FileToConvert{
			InputPath:  src,
			OutputPath: resolveOutputPath(src, outputDir, tmpDir),
		})
	}

	// Archive contents are untrusted; a diagram that cannot be rendered
	// becomes a warning instead of failing the whole batch.
	return convertBatch(ctx, svc, files, tex2web.ConvertOptions{}, workers), nil
}

// extractZip unpacks an archive into destDir, refusing entries that would
// escape it.
func extractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes one archive entry under destDir.
func extractEntry(entry *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: entry escapes archive root: %s", ErrBadArchive, entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o750)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadArchive, entry.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304 -- path validated above
	if err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(rc, maxArchiveEntrySize+1))
	if err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}
	if n > maxArchiveEntrySize {
		return fmt.Errorf("%w: entry too large: %s", ErrBadArchive, entry.Name)
	}
	return nil
}
