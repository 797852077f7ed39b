package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/okra-platform/kubetypes/internal/codegen"
	"github.com/okra-platform/kubetypes/internal/config"
	"github.com/okra-platform/kubetypes/internal/diagnostic"
	"github.com/okra-platform/kubetypes/internal/fetch"
)

// Test plan:
// 1. Schema file from config, files written under OUTPUT/VERSION
// 2. Schema fetched by URL with flag overrides
// 3. Missing config falls back to defaults and still requires a version
// 4. Config, language, fetch and generation errors abort before anything is written

func TestGenerateCommand_Execute_SchemaFile(t *testing.T) {
	// Test: a local schema is generated and written under the normalized version
	ctx := context.Background()
	fs := afs.New()
	outputURL := "mem://localhost/kubetypes/generate/file"

	cfg := &config.Config{
		Version: "1.15",
		Output:  outputURL,
		Schema:  config.SchemaConfig{File: writeSchema(t, namespaceSchema)},
	}

	result, err := newTestGenerate(t, &Flags{}, cfg, fs).Execute(ctx)
	require.NoError(t, err)

	base := outputURL + "/v1.15"
	assert.Equal(t, "v1.15", result.Version)
	assert.Equal(t, base, result.BaseURL)
	assert.Equal(t, []string{base + "/core/v1.ts", base + "/meta/v1.ts"}, result.Files)
	assert.Equal(t, 0, result.Diagnostics.Len())

	data, err := fs.DownloadWithURL(ctx, base+"/core/v1.ts")
	require.NoError(t, err)
	assert.Equal(t, namespaceModule, string(data))
}

func TestGenerateCommand_Execute_Fetch(t *testing.T) {
	// Test: flags override config and the schema is fetched from the flag URL
	ctx := context.Background()
	fs := afs.New()
	outputURL := "mem://localhost/kubetypes/generate/fetch"

	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, "v1.16").Return([]byte(namespaceSchema), nil)

	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(config.Default(), "/project", nil)

	var gotTemplate string
	var gotOptions int
	cmd := NewGenerateCommand(&Flags{
		Version:   "1.16",
		Output:    outputURL,
		SchemaURL: "https://mirror.example.com/{version}/swagger.json",
		Language:  "ts",
		Retries:   5,
	}, zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		NewFetcher: func(urlTemplate string, logger zerolog.Logger, options ...fetch.Option) SchemaFetcher {
			gotTemplate = urlTemplate
			gotOptions = len(options)
			return fetcher
		},
		Registry:   codegen.DefaultRegistry,
		FileSystem: fs,
	})

	result, err := cmd.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.com/{version}/swagger.json", gotTemplate)
	assert.Equal(t, 2, gotOptions)
	assert.Equal(t, []string{
		outputURL + "/v1.16/core/v1.ts",
		outputURL + "/v1.16/meta/v1.ts",
	}, result.Files)

	fetcher.AssertExpectations(t)
	loader.AssertExpectations(t)
}

func TestGenerateCommand_Execute_NoConfig(t *testing.T) {
	// Test: without kubetypes.json the defaults apply and a version is still required
	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(nil, "", config.ErrNotFound)

	cmd := NewGenerateCommand(&Flags{}, zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		Registry:     codegen.DefaultRegistry,
		FileSystem:   afs.New(),
	})

	_, err := cmd.Execute(context.Background())
	assert.ErrorIs(t, err, fetch.ErrEmptyVersion)
}

func TestGenerateCommand_Execute_Errors(t *testing.T) {
	tests := []struct {
		name        string
		flags       *Flags
		schema      string
		errContains string
	}{
		{
			name:        "unsupported language",
			flags:       &Flags{Language: "cobol"},
			schema:      namespaceSchema,
			errContains: "unsupported language: cobol",
		},
		{
			name:        "invalid schema",
			flags:       &Flags{},
			schema:      `{"definitions": [`,
			errContains: "failed to parse schema",
		},
		{
			name:  "dangling reference",
			flags: &Flags{},
			schema: `{"swagger": "2.0", "info": {"title": "Kubernetes", "version": "v1.15.0"}, "paths": {}, "definitions": {
  "io.k8s.api.core.v1.Pod": {"type": "object", "properties": {
    "spec": {"$ref": "#/definitions/io.k8s.api.core.v1.PodSpec"}
  }}
}}`,
			errContains: "failed to resolve reference: io.k8s.api.core.v1.PodSpec in Kubernetes/v1.15.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			fs := afs.New()
			outputURL := "mem://localhost/kubetypes/generate/errors/" + tt.name

			cfg := &config.Config{
				Version: "v1.15.0",
				Output:  outputURL,
				Schema:  config.SchemaConfig{File: writeSchema(t, tt.schema)},
			}

			_, err := newTestGenerate(t, tt.flags, cfg, fs).Execute(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)

			exists, _ := fs.Exists(ctx, outputURL)
			assert.False(t, exists, "nothing should be written")
		})
	}
}

func TestGenerateCommand_Execute_ConfigLoadError(t *testing.T) {
	// Test: a broken kubetypes.json is reported
	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(nil, "", errors.New("failed to parse config file"))

	cmd := NewGenerateCommand(&Flags{Version: "1.15"}, zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		Registry:     codegen.DefaultRegistry,
		FileSystem:   afs.New(),
	})

	_, err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load project config")
	loader.AssertExpectations(t)
}

func TestGenerateCommand_Execute_FetchError(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, "v1.15").Return(nil, fetch.ErrUnexpectedStatus)

	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(config.WithDefaults(&config.Config{
		Version: "1.15",
		Output:  "mem://localhost/kubetypes/generate/fetch-error",
	}), "/project", nil)

	cmd := NewGenerateCommand(&Flags{}, zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		NewFetcher: func(string, zerolog.Logger, ...fetch.Option) SchemaFetcher {
			return fetcher
		},
		Registry:   codegen.DefaultRegistry,
		FileSystem: afs.New(),
	})

	_, err := cmd.Execute(context.Background())
	assert.ErrorIs(t, err, fetch.ErrUnexpectedStatus)
}

func TestGenerateCommand_Execute_Diagnostics(t *testing.T) {
	// Test: non-fatal findings are returned with the result
	schema := `{"swagger": "2.0", "info": {"title": "Kubernetes", "version": "v1.15.0"}, "paths": {}, "definitions": {
  "io.k8s.api.core.v1.Empty": {"type": "object"},
  "io.k8s.apimachinery.pkg.util.intstr.IntOrString": {"type": "string"},
  "io.k8s.kube-aggregator.pkg.apis.apiregistration.v1.APIService": {"type": "object"}
}}`

	cfg := &config.Config{
		Version: "1.15",
		Output:  "mem://localhost/kubetypes/generate/diagnostics",
		Schema:  config.SchemaConfig{File: writeSchema(t, schema)},
	}

	result, err := newTestGenerate(t, &Flags{}, cfg, afs.New()).Execute(context.Background())
	require.NoError(t, err)

	codes := make(map[string]int)
	for _, d := range result.Diagnostics.All() {
		codes[d.Code]++
	}
	assert.Equal(t, map[string]int{
		diagnostic.CodeMissingProperties:  1,
		diagnostic.CodeReplacedDefinition: 1,
		diagnostic.CodeExcludedDefinition: 1,
	}, codes)
	assert.Len(t, result.Files, 1)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/project/types", resolvePath("/project", "./types"))
	assert.Equal(t, "/abs/types", resolvePath("/project", "/abs/types/"))
	assert.Equal(t, "s3://bucket/types", resolvePath("/project", "s3://bucket/types"))
}
