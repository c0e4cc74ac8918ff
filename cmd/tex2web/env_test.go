package main

import (
	"testing"
	"time"

	"github.com/texkit/go-tex2web/internal/config"
)

// NOTE: these tests mutate process environment variables and cannot run in
// parallel with each other.

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("TEX2WEB_CONFIG", "/etc/tex2web.yaml")
	t.Setenv("TEX2WEB_OUTPUT_DIR", "/srv/html")
	t.Setenv("TEX2WEB_SITE_TITLE", "Env Title")
	t.Setenv("TEX2WEB_TIMEOUT", "90s")

	cfg := loadEnvConfig()
	if cfg.ConfigPath != "/etc/tex2web.yaml" {
		t.Errorf("config path = %q", cfg.ConfigPath)
	}
	if cfg.OutputDir != "/srv/html" {
		t.Errorf("output dir = %q", cfg.OutputDir)
	}
	if cfg.SiteTitle != "Env Title" {
		t.Errorf("site title = %q", cfg.SiteTitle)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", cfg.Timeout)
	}
}

func TestLoadEnvConfig_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("TEX2WEB_TIMEOUT", "not-a-duration")

	cfg := loadEnvConfig()
	if cfg.Timeout != 0 {
		t.Errorf("timeout = %v, want 0 for invalid input", cfg.Timeout)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		OutputDir: "/srv/html",
		SiteTitle: "Env Title",
		Addr:      ":9000",
	}

	// Empty config fields take environment values.
	cfg := config.DefaultConfig()
	applyEnvConfig(env, cfg)
	if cfg.Output.DefaultDir != "/srv/html" {
		t.Errorf("output dir = %q", cfg.Output.DefaultDir)
	}
	if cfg.Site.Title != "Env Title" {
		t.Errorf("site title = %q", cfg.Site.Title)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	// Config file values beat environment values.
	cfg = config.DefaultConfig()
	cfg.Output.DefaultDir = "/from/config"
	cfg.Site.Title = "Config Title"
	cfg.Server.Addr = ":7000"
	applyEnvConfig(env, cfg)
	if cfg.Output.DefaultDir != "/from/config" {
		t.Errorf("env overrode config output dir: %q", cfg.Output.DefaultDir)
	}
	if cfg.Site.Title != "Config Title" {
		t.Errorf("env overrode config title: %q", cfg.Site.Title)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("env overrode config addr: %q", cfg.Server.Addr)
	}
}
