// Package config loads tex2web configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/texkit/go-tex2web/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits; generous, but bounded for server deployments.
const (
	MaxTitleLength = 200
	MaxThemeLength = 50
	MaxDirLength   = 1024
	MaxAddrLength  = 256
)

// Config holds all configuration for document conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Site   SiteConfig   `yaml:"site"`
	Server ServerConfig `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // default output directory (empty = alongside source)
}

// SiteConfig defines multi-page site generation options.
type SiteConfig struct {
	Title string `yaml:"title"` // website title (default: "LaTeX Document")
	Theme string `yaml:"theme"` // site theme (default: "cosmo")
}

// ServerConfig defines the upload server options.
type ServerConfig struct {
	Addr          string `yaml:"addr"`          // listen address (default: ":8000")
	MaxUploadSize int64  `yaml:"maxUploadSize"` // bytes (default: 16 MiB)
}

// Defaults for the upload server.
const (
	DefaultServerAddr    = ":8000"
	DefaultMaxUploadSize = 16 << 20
)

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          DefaultServerAddr,
			MaxUploadSize: DefaultMaxUploadSize,
		},
	}
}

// LoadConfig reads and validates a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field lengths to bound abuse in server deployments.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxDirLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxDirLength},
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.theme", c.Site.Theme, MaxThemeLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, chk := range checks {
		if len(chk.value) > chk.max {
			return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, chk.name, len(chk.value), chk.max)
		}
	}
	return nil
}
