package main

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	tex2web "github.com/texkit/go-tex2web"
	"github.com/texkit/go-tex2web/internal/config"
	"github.com/texkit/go-tex2web/internal/fileutil"
)

// server handles LaTeX uploads and serves converted output for download.
type server struct {
	svc        *tex2web.Service
	uploadsDir string
	outputDir  string
	maxUpload  int64
	quiet      bool
}

// runServe starts the upload web server and blocks until ctx is canceled.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
	cfg, _, err := loadConfigWithEnv(flags.common.config)
	if err != nil {
		return err
	}
	if flags.site.title != "" {
		cfg.Site.Title = flags.site.title
	}
	if flags.site.theme != "" {
		cfg.Site.Theme = flags.site.theme
	}
	addr := cfg.Server.Addr
	if flags.addr != "" {
		addr = flags.addr
	}

	srv, err := newServer(flags.dir, cfg, flags.common.quiet)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(flags.common.verbose),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Listening on %s\n", addr)
	}
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServer prepares the uploads and output directories under baseDir.
func newServer(baseDir string, cfg *config.Config, quiet bool) (*server, error) {
	uploadsDir := filepath.Join(baseDir, "uploads")
	outputDir := filepath.Join(baseDir, "output")
	for _, dir := range []string{uploadsDir, outputDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	return &server{
		svc: tex2web.New(
			tex2web.WithSiteTitle(cfg.Site.Title),
			tex2web.WithSiteTheme(cfg.Site.Theme),
		),
		uploadsDir: uploadsDir,
		outputDir:  outputDir,
		maxUpload:  cfg.Server.MaxUploadSize,
		quiet:      quiet,
	}, nil
}

// routes builds the HTTP handler.
func (s *server) routes(verbose bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	if verbose {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Get("/download/{name}", s.handleDownload)
	return r
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTemplate.Execute(w, nil)
}

// handleUpload accepts a .tex, .latex, or .zip upload and converts it.
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.renderError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	name := fileutil.SanitizeFilename(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".tex" && ext != ".latex" && ext != ".zip" {
		s.renderError(w, http.StatusBadRequest, "only .tex, .latex, and .zip files are accepted")
		return
	}

	uploadPath := filepath.Join(s.uploadsDir, name)
	if err := saveUpload(file, uploadPath); err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	destDir := filepath.Join(s.outputDir, base)
	// Stale output from a previous upload of the same name is replaced.
	_ = os.RemoveAll(destDir)

	var results []ConversionResult
	if ext == ".zip" {
		results, err = convertArchive(r.Context(), s.svc, uploadPath, s.outputDir, 1)
	} else {
		outputPath := filepath.Join(destDir, base+".html")
		results = []ConversionResult{
			convertOne(r.Context(), s.svc, FileToConvert{InputPath: uploadPath, OutputPath: outputPath}, tex2web.ConvertOptions{}),
		}
	}
	if err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var succeeded int
	var warnings []string
	for _, res := range results {
		if res.Err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", filepath.Base(res.InputPath), res.Err))
			continue
		}
		succeeded++
		warnings = append(warnings, res.Warnings...)
	}
	if succeeded == 0 {
		s.renderError(w, http.StatusUnprocessableEntity, strings.Join(warnings, "; "))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = resultTemplate.Execute(w, resultPage{
		Name:      base,
		Converted: succeeded,
		Warnings:  warnings,
	})
}

// handleDownload streams the named conversion output as a zip archive.
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := fileutil.SanitizeFilename(chi.URLParam(r, "name"))
	dir := filepath.Join(s.outputDir, name)
	if name == "" || !fileutil.DirExists(dir) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
	if err := zipDirectory(w, dir); err != nil && !s.quiet {
		fmt.Fprintf(os.Stderr, "download %s: %v\n", name, err)
	}
}

// saveUpload copies the uploaded stream to disk.
func saveUpload(src io.Reader, dest string) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304 -- sanitized name
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, src)
	return err
}

// zipDirectory writes the directory tree rooted at dir into w.
func zipDirectory(w io.Writer, dir string) error {
	zw := zip.NewWriter(w)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		entry, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		in, err := os.Open(path) // #nosec G304 -- walking our own output tree
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(entry, in)
		return err
	})
	if err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// resultPage feeds the post-upload template.
type resultPage struct {
	Name      string
	Converted int
	Warnings  []string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tex2web</title>
</head>
<body>
<h1>LaTeX to HTML</h1>
<p>Upload a LaTeX file or a zipped project. Beamer sources become slideshows;
documents with chapters or sections become multi-page sites.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".tex,.latex,.zip" required>
<button type="submit">Convert</button>
</form>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tex2web</title>
</head>
<body>
<h1>Conversion complete</h1>
<p>{{.Converted}} file(s) converted.</p>
{{if .Warnings}}<ul>{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>{{end}}
<p><a href="/download/{{.Name}}">Download {{.Name}}.zip</a></p>
<p><a href="/">Convert another file</a></p>
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tex2web</title>
</head>
<body>
<h1>Conversion failed</h1>
<p>{{.}}</p>
<p><a href="/">Back</a></p>
</body>
</html>
`))

func (s *server) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = errorTemplate.Execute(w, msg)
}
