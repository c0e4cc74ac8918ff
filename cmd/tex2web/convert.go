package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tex2web "github.com/texkit/go-tex2web"
	"github.com/texkit/go-tex2web/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// MaxWorkers bounds the batch worker count. Conversions shell out to
// pandoc and a TeX toolchain, so more workers than this just thrashes.
const MaxWorkers = 32

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Format     string
	Warnings   []string
	Err        error
	Duration   time.Duration
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := loadConfigWithEnv(flags.common.config)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)

	// Resolve timeout: CLI flag wins over TEX2WEB_TIMEOUT.
	timeout := envCfg.Timeout
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		timeout = d
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	svc := tex2web.New(
		tex2web.WithSiteTitle(cfg.Site.Title),
		tex2web.WithSiteTheme(cfg.Site.Theme),
	)

	if strings.EqualFold(filepath.Ext(inputPath), ".zip") {
		results, err := convertArchive(ctx, svc, inputPath, outputDir, flags.workers)
		if err != nil {
			return err
		}
		return reportResults(results, flags.common.quiet, flags.common.verbose, env)
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %s", tex2web.ErrNoSourcesFound, inputPath)
	}

	// A single explicit file fails hard on missing diagram tools; batches
	// degrade to warnings so one broken toolchain does not sink the rest.
	opts := tex2web.ConvertOptions{RequireDiagramTools: len(files) == 1}
	results := convertBatch(ctx, svc, files, opts, flags.workers)
	return reportResults(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfigWithEnv loads configuration from the given path, the
// TEX2WEB_CONFIG path, or defaults, then applies environment overrides.
func loadConfigWithEnv(configPath string) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig()
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// mergeConvertFlags merges CLI flags into config. CLI values override config values.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.site.title != "" {
		cfg.Site.Title = flags.site.title
	}
	if flags.site.theme != "" {
		cfg.Site.Theme = flags.site.theme
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// convertBatch processes files concurrently with a bounded worker set.
func convertBatch(ctx context.Context, svc *tex2web.Service, files []FileToConvert, opts tex2web.ConvertOptions, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertOne(ctx, svc, files[idx], opts)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertOne processes a single file and returns the result.
func convertOne(ctx context.Context, svc *tex2web.Service, f FileToConvert, opts tex2web.ConvertOptions) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	res, err := svc.ConvertFile(ctx, f.InputPath, f.OutputPath, opts)
	result.Err = err
	result.Duration = time.Since(start)
	if res != nil {
		result.OutputPath = res.OutputPath
		result.Format = res.Format
		result.Warnings = res.Warnings
	}
	return result
}

// reportResults prints per-file outcomes and returns an error only when
// every conversion failed. A batch with at least one success succeeds.
func reportResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	var succeeded, failed int

	for _, r := range results {
		if !quiet {
			for _, w := range r.Warnings {
				fmt.Fprintf(env.Stderr, "WARNING %s: %s\n", r.InputPath, w)
			}
		}

		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s [%s] (%v)\n",
				r.InputPath, r.OutputPath, r.Format, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	if failed > 0 && succeeded == 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("all %d conversions failed", failed)
	}
	return nil
}
