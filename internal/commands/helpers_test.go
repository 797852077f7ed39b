package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/okra-platform/kubetypes/internal/codegen"
	"github.com/okra-platform/kubetypes/internal/config"
	"github.com/okra-platform/kubetypes/internal/fetch"
)

const namespaceSchema = `{
  "swagger": "2.0",
  "info": {"title": "Kubernetes", "version": "v1.15.0"},
  "paths": {},
  "definitions": {
    "io.k8s.api.core.v1.Namespace": {
      "description": "Namespace provides a scope for Names.",
      "type": "object",
      "properties": {
        "apiVersion": {"type": "string"},
        "kind": {"type": "string"},
        "metadata": {"$ref": "#/definitions/io.k8s.apimachinery.pkg.apis.meta.v1.ObjectMeta"}
      },
      "x-kubernetes-group-version-kind": [{"group": "", "kind": "Namespace", "version": "v1"}]
    },
    "io.k8s.apimachinery.pkg.apis.meta.v1.ObjectMeta": {
      "description": "ObjectMeta is metadata that all persisted resources must have.",
      "type": "object",
      "properties": {
        "name": {"type": "string"}
      }
    }
  }
}`

const namespaceModule = `import {ObjectMeta} from "../meta/v1.ts"

/**
 * Namespace provides a scope for Names.
 */
export interface Namespace {
  apiVersion?: "v1"
  kind?: "Namespace"
  metadata?: ObjectMeta
}
`

// Mock implementations
type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig() (*config.Config, string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*config.Config), args.String(1), args.Error(2)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, version string) ([]byte, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockSignalNotifier struct {
	mock.Mock
}

func (m *mockSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	m.Called(c, sig)
}

func (m *mockSignalNotifier) Stop(c chan<- os.Signal) {
	m.Called(c)
}

// writeSchema stores the document in a temp dir and returns its path
func writeSchema(t *testing.T, document string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0644))
	return path
}

// newTestGenerate returns a generate command whose config comes from cfg and whose
// fetcher factory fails the test when used
func newTestGenerate(t *testing.T, flags *Flags, cfg *config.Config, fs afs.Service) *GenerateCommand {
	t.Helper()
	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(config.WithDefaults(cfg), "/project", nil)

	return NewGenerateCommand(flags, zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		NewFetcher: func(string, zerolog.Logger, ...fetch.Option) SchemaFetcher {
			t.Fatal("unexpected fetch")
			return nil
		},
		Registry:   codegen.DefaultRegistry,
		FileSystem: fs,
	})
}
