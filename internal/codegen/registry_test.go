package codegen

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/kubetypes/internal/codegen/tsast"
	"github.com/okra-platform/kubetypes/internal/diagnostic"
	"github.com/okra-platform/kubetypes/internal/schema"
)

// mockGenerator is a test generator
type mockGenerator struct {
	lang string
}

func (m *mockGenerator) Generate(api *schema.API, diags *diagnostic.Diagnostics) (*tsast.Project, error) {
	return tsast.NewProject(), nil
}

func (m *mockGenerator) Language() string {
	return m.lang
}

func (m *mockGenerator) FileExtension() string {
	return ".mock"
}

func TestRegistry_NewRegistry(t *testing.T) {
	// Test: New registry is empty by default
	r := NewRegistry()
	assert.NotNil(t, r)

	_, err := r.Get("unknown", zerolog.Nop())
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	// Test: Register custom generator
	r := NewRegistry()

	r.Register("mock", func(logger zerolog.Logger) Generator {
		return &mockGenerator{lang: "mock"}
	})

	gen, err := r.Get("mock", zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, gen)
	assert.Equal(t, "mock", gen.Language())
}

func TestRegistry_UnsupportedLanguage(t *testing.T) {
	// Test: Error for unsupported language
	r := NewRegistry()

	gen, err := r.Get("unknown", zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, gen)
	assert.Contains(t, err.Error(), "unsupported language: unknown")
}

func TestRegistry_Languages(t *testing.T) {
	// Test: List of supported languages
	r := NewRegistry()
	assert.Empty(t, r.Languages())

	for _, lang := range []string{"typescript", "python", "go"} {
		lang := lang
		r.Register(lang, func(logger zerolog.Logger) Generator {
			return &mockGenerator{lang: lang}
		})
	}

	assert.Equal(t, []string{"go", "python", "typescript"}, r.Languages())
}

func TestDefaultRegistry(t *testing.T) {
	// Test: typescript and its ts alias are registered out of the box
	for _, lang := range []string{"typescript", "ts"} {
		gen, err := DefaultRegistry.Get(lang, zerolog.Nop())
		require.NoError(t, err, lang)
		assert.Equal(t, "typescript", gen.Language())
		assert.Equal(t, ".ts", gen.FileExtension())
	}
}
