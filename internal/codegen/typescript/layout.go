package typescript

import (
	"strings"
)

// ModuleExtension is appended to every generated module path
const ModuleExtension = ".ts"

// namespacePrefixes are tried in order; the first match is stripped
var namespacePrefixes = []string{
	"io.k8s.api.",
	"io.k8s.apimachinery.pkg.apis.",
	"io.k8s.apimachinery.pkg.",
	"io.k8s.apiextensions-apiserver.pkg.apis.",
}

// Location is where a definition is declared in the generated output
type Location struct {
	// Path is the module path, e.g. "core/v1.ts"
	Path string
	// Name is the exported type name, e.g. "Pod"
	Name string
}

// SimplifyName strips the known namespace prefix from a qualified definition name.
// It reports false when no prefix matches.
func SimplifyName(name string) (string, bool) {
	for _, prefix := range namespacePrefixes {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix), true
		}
	}
	return "", false
}

// NameToLocation maps a qualified definition name to its module and type name,
// e.g. "io.k8s.api.core.v1.Pod" to {core/v1.ts Pod}. It reports false for names that
// cannot be placed: unknown namespaces, and names with no module segment.
func NameToLocation(name string) (Location, bool) {
	simplified, ok := SimplifyName(name)
	if !ok {
		return Location{}, false
	}

	parts := strings.Split(simplified, ".")
	if len(parts) < 2 {
		return Location{}, false
	}
	for _, part := range parts {
		if part == "" {
			return Location{}, false
		}
	}

	return Location{
		Path: strings.Join(parts[:len(parts)-1], "/") + ModuleExtension,
		Name: parts[len(parts)-1],
	}, true
}
