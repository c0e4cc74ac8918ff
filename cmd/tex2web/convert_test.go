package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/texkit/go-tex2web/internal/config"
)

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{name: "one", workers: 1},
		{name: "max", workers: MaxWorkers},
		{name: "zero", workers: 0, wantErr: true},
		{name: "negative", workers: -1, wantErr: true},
		{name: "too many", workers: MaxWorkers + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorkers(%d) = %v, wantErr %v", tt.workers, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
		})
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}

	got, err := resolveInputPath([]string{"doc.tex"}, cfg)
	if err != nil || got != "doc.tex" {
		t.Errorf("resolveInputPath() = %q, %v", got, err)
	}

	cfg.Input.DefaultDir = "./lectures"
	got, err = resolveInputPath(nil, cfg)
	if err != nil || got != "./lectures" {
		t.Errorf("resolveInputPath() = %q, %v, want config default", got, err)
	}
}

func TestMergeConvertFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Site.Title = "From Config"

	flags := &convertFlags{site: siteFlags{title: "From Flag"}}
	mergeConvertFlags(flags, cfg)
	if cfg.Site.Title != "From Flag" {
		t.Errorf("title = %q, CLI flag should win", cfg.Site.Title)
	}

	flags = &convertFlags{}
	cfg.Site.Theme = "darkly"
	mergeConvertFlags(flags, cfg)
	if cfg.Site.Theme != "darkly" {
		t.Errorf("theme = %q, empty flag should not clear config", cfg.Site.Theme)
	}
}

func TestReportResults(t *testing.T) {
	t.Parallel()

	ok := ConversionResult{InputPath: "a.tex", OutputPath: "a.html", Format: "document"}
	bad := ConversionResult{InputPath: "b.tex", Err: errors.New("boom")}

	tests := []struct {
		name    string
		results []ConversionResult
		wantErr bool
	}{
		{name: "all succeed", results: []ConversionResult{ok, ok}},
		{name: "partial success is success", results: []ConversionResult{ok, bad}},
		{name: "all fail", results: []ConversionResult{bad, bad}, wantErr: true},
		{name: "single failure", results: []ConversionResult{bad}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			err := reportResults(tt.results, false, false, env)
			if (err != nil) != tt.wantErr {
				t.Errorf("reportResults() = %v, wantErr %v", err, tt.wantErr)
			}

			for _, r := range tt.results {
				if r.Err != nil && !strings.Contains(stderr.String(), "FAILED "+r.InputPath) {
					t.Errorf("stderr missing failure for %s:\n%s", r.InputPath, stderr.String())
				}
				if r.Err == nil && !strings.Contains(stdout.String(), "Created "+r.OutputPath) {
					t.Errorf("stdout missing success for %s:\n%s", r.InputPath, stdout.String())
				}
			}
		})
	}
}

func TestReportResults_SingleFailureKeepsSentinel(t *testing.T) {
	t.Parallel()

	wrapped := errors.New("boom")
	env, _, _ := testEnv()
	err := reportResults([]ConversionResult{{InputPath: "a.tex", Err: wrapped}}, true, false, env)
	if !errors.Is(err, wrapped) {
		t.Errorf("single-file error not passed through: %v", err)
	}
}

func TestReportResults_Warnings(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{{
		InputPath:  "a.tex",
		OutputPath: "a.html",
		Warnings:   []string{"could not find include file: ghost.tex"},
	}}

	env, _, stderr := testEnv()
	if err := reportResults(results, false, false, env); err != nil {
		t.Fatalf("reportResults() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "WARNING a.tex: could not find include") {
		t.Errorf("stderr missing warning:\n%s", stderr.String())
	}

	// Quiet mode suppresses warnings.
	env, _, stderr = testEnv()
	if err := reportResults(results, true, false, env); err != nil {
		t.Fatalf("reportResults() error = %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet mode wrote warnings:\n%s", stderr.String())
	}
}

func TestReportResults_Summary(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.tex", OutputPath: "a.html"},
		{InputPath: "b.tex", Err: errors.New("boom")},
	}

	env, stdout, _ := testEnv()
	_ = reportResults(results, false, false, env)
	if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
		t.Errorf("stdout missing summary:\n%s", stdout.String())
	}
}

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{
		"-o", "out", "-w", "4", "--site-title", "Notes", "input.tex",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if flags.output != "out" {
		t.Errorf("output = %q", flags.output)
	}
	if flags.workers != 4 {
		t.Errorf("workers = %d", flags.workers)
	}
	if flags.site.title != "Notes" {
		t.Errorf("site title = %q", flags.site.title)
	}
	if len(positional) != 1 || positional[0] != "input.tex" {
		t.Errorf("positional = %v", positional)
	}
}
