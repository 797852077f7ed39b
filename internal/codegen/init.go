package codegen

import (
	"github.com/rs/zerolog"

	"github.com/okra-platform/kubetypes/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	newTypeScript := func(logger zerolog.Logger) Generator {
		return typescript.NewGenerator().WithLogger(logger)
	}

	DefaultRegistry.Register("typescript", newTypeScript)
	// ts is an alias for typescript
	DefaultRegistry.Register("ts", newTypeScript)
}
