package codegen

import (
	"github.com/okra-platform/kubetypes/internal/codegen/tsast"
	"github.com/okra-platform/kubetypes/internal/diagnostic"
	"github.com/okra-platform/kubetypes/internal/schema"
)

// Generator is the interface that all language-specific code generators must implement
type Generator interface {
	// Generate builds the output files for api. Non-fatal findings are added to diags.
	Generate(api *schema.API, diags *diagnostic.Diagnostics) (*tsast.Project, error)

	// Language returns the name of the target language (e.g., "typescript")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".ts")
	FileExtension() string
}
