package main

import (
	"io"
	"os"
	"time"

	"github.com/texkit/go-tex2web/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns production dependencies.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// envConfig holds configuration from TEX2WEB_* environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TEX2WEB_CONFIG: config file path
	InputDir   string        // TEX2WEB_INPUT_DIR: default input directory
	OutputDir  string        // TEX2WEB_OUTPUT_DIR: default output directory
	SiteTitle  string        // TEX2WEB_SITE_TITLE: generated site title
	SiteTheme  string        // TEX2WEB_SITE_THEME: generated site theme
	Addr       string        // TEX2WEB_ADDR: upload server listen address
	Timeout    time.Duration // TEX2WEB_TIMEOUT: external tool deadline
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TEX2WEB_CONFIG"),
		InputDir:   os.Getenv("TEX2WEB_INPUT_DIR"),
		OutputDir:  os.Getenv("TEX2WEB_OUTPUT_DIR"),
		SiteTitle:  os.Getenv("TEX2WEB_SITE_TITLE"),
		SiteTheme:  os.Getenv("TEX2WEB_SITE_THEME"),
		Addr:       os.Getenv("TEX2WEB_ADDR"),
	}
	if timeout := os.Getenv("TEX2WEB_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// applyEnvConfig applies environment variable values to config. Only sets
// values the config file left empty, preserving the precedence
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.SiteTitle != "" && cfg.Site.Title == "" {
		cfg.Site.Title = env.SiteTitle
	}
	if env.SiteTheme != "" && cfg.Site.Theme == "" {
		cfg.Site.Theme = env.SiteTheme
	}
	if env.Addr != "" && cfg.Server.Addr == config.DefaultServerAddr {
		cfg.Server.Addr = env.Addr
	}
}
