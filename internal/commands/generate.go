package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/okra-platform/kubetypes/internal/codegen"
	"github.com/okra-platform/kubetypes/internal/config"
	"github.com/okra-platform/kubetypes/internal/diagnostic"
	"github.com/okra-platform/kubetypes/internal/fetch"
	"github.com/okra-platform/kubetypes/internal/output"
	"github.com/okra-platform/kubetypes/internal/schema"
)

// ConfigLoader finds the project configuration
type ConfigLoader interface {
	LoadConfig() (*config.Config, string, error)
}

// SchemaFetcher downloads the schema document for a version
type SchemaFetcher interface {
	Fetch(ctx context.Context, version string) ([]byte, error)
}

// FetcherFactory builds a SchemaFetcher for a URL template
type FetcherFactory func(urlTemplate string, logger zerolog.Logger, options ...fetch.Option) SchemaFetcher

// Default implementations
type defaultConfigLoader struct{}

func (l *defaultConfigLoader) LoadConfig() (*config.Config, string, error) {
	return config.LoadConfig()
}

func defaultFetcherFactory(urlTemplate string, logger zerolog.Logger, options ...fetch.Option) SchemaFetcher {
	return fetch.NewFetcher(urlTemplate, logger, options...)
}

// GenerateDependencies for the generate command
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	NewFetcher   FetcherFactory
	Registry     *codegen.Registry
	FileSystem   afs.Service
}

// GenerateResult describes a finished run
type GenerateResult struct {
	Version     string
	BaseURL     string
	Files       []string
	Diagnostics diagnostic.Diagnostics
}

// GenerateCommand encapsulates the generate logic with injected dependencies
type GenerateCommand struct {
	flags  *Flags
	deps   GenerateDependencies
	logger zerolog.Logger
}

// NewGenerateCommand creates a new generate command with default dependencies
func NewGenerateCommand(flags *Flags, logger zerolog.Logger) *GenerateCommand {
	if flags == nil {
		flags = &Flags{}
	}
	return &GenerateCommand{
		flags: flags,
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			NewFetcher:   defaultFetcherFactory,
			Registry:     codegen.DefaultRegistry,
			FileSystem:   afs.New(),
		},
		logger: logger.With().Str("component", "generate").Logger(),
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

// Execute loads the schema, generates every module and writes them under OUTPUT/VERSION.
// Nothing is written when generation fails.
func (gc *GenerateCommand) Execute(ctx context.Context) (*GenerateResult, error) {
	cfg, err := gc.resolveConfig()
	if err != nil {
		return nil, err
	}

	version, err := fetch.NormalizeVersion(cfg.Version)
	if err != nil {
		return nil, err
	}

	data, err := gc.loadSchema(ctx, cfg, version)
	if err != nil {
		return nil, err
	}

	api, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	generator, err := gc.deps.Registry.Get(cfg.Language, gc.logger)
	if err != nil {
		return nil, err
	}

	var diags diagnostic.Diagnostics
	project, err := generator.Generate(api, &diags)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s types: %w", generator.Language(), err)
	}
	gc.logDiagnostics(diags)

	baseURL := url.Join(cfg.Output, version)
	files, err := output.NewWriter(gc.deps.FileSystem, gc.logger).Write(ctx, baseURL, project.Files())
	if err != nil {
		return nil, err
	}

	gc.logger.Info().
		Str("version", version).
		Str("output", baseURL).
		Int("definitions", len(api.Definitions)).
		Int("files", len(files)).
		Int("warnings", len(diags.Warnings)).
		Msg("generated types")

	return &GenerateResult{
		Version:     version,
		BaseURL:     baseURL,
		Files:       files,
		Diagnostics: diags,
	}, nil
}

// resolveConfig loads kubetypes.json, falling back to defaults, and applies flag overrides.
// Relative paths from the file are taken relative to its directory; relative paths from
// flags are taken relative to the working directory.
func (gc *GenerateCommand) resolveConfig() (*config.Config, error) {
	cfg, projectRoot, err := gc.deps.ConfigLoader.LoadConfig()
	switch {
	case errors.Is(err, config.ErrNotFound):
		gc.logger.Debug().Msg("no " + config.FileName + " found, using defaults")
		cfg, projectRoot = config.Default(), ""
	case err != nil:
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	cfg.Output = resolvePath(projectRoot, cfg.Output)
	if cfg.Schema.File != "" {
		cfg.Schema.File = resolvePath(projectRoot, cfg.Schema.File)
	}

	f := gc.flags
	if f.Version != "" {
		cfg.Version = f.Version
	}
	if f.Output != "" {
		cfg.Output = resolvePath("", f.Output)
	}
	if f.SchemaFile != "" {
		cfg.Schema.File = resolvePath("", f.SchemaFile)
	}
	if f.SchemaURL != "" {
		cfg.Schema.URL = f.SchemaURL
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.Retries > 0 {
		cfg.Fetch.Retries = f.Retries
	}

	return cfg, nil
}

func (gc *GenerateCommand) loadSchema(ctx context.Context, cfg *config.Config, version string) ([]byte, error) {
	if cfg.Schema.File != "" {
		gc.logger.Info().Str("path", cfg.Schema.File).Msg("reading schema file")
		return fetch.FetchFile(cfg.Schema.File)
	}

	timeout, err := cfg.Fetch.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	fetcher := gc.deps.NewFetcher(cfg.Schema.URL, gc.logger,
		fetch.WithRetries(cfg.Fetch.Retries),
		fetch.WithTimeout(timeout),
	)
	return fetcher.Fetch(ctx, version)
}

func (gc *GenerateCommand) logDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		gc.logger.Warn().Str("code", d.Code).Str("definition", d.Definition).Str("path", d.Path).Msg(d.Message)
	}
	for _, d := range diags.Infos {
		gc.logger.Debug().Str("code", d.Code).Str("definition", d.Definition).Str("path", d.Path).Msg(d.Message)
	}
}

// resolvePath makes a local path absolute against base (or the working directory).
// URLs with a scheme are returned unchanged.
func resolvePath(base, path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	if !filepath.IsAbs(path) {
		if base == "" {
			if wd, err := os.Getwd(); err == nil {
				base = wd
			}
		}
		path = filepath.Join(base, path)
	}
	return filepath.Clean(path)
}
