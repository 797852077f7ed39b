package schema

import (
	"fmt"
	"strings"
)

const definitionsPrefix = "#/definitions/"

// Resolve looks up the definition a reference points at. It fails when the reference is
// not a local definitions pointer or when the target is missing.
func Resolve(api *API, ref Reference) (string, *Definition, error) {
	if !strings.HasPrefix(ref.Ref, definitionsPrefix) {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidRef, ref.Ref)
	}

	name := strings.TrimPrefix(ref.Ref, definitionsPrefix)
	def, ok := api.Definitions[name]
	if !ok || def == nil {
		return "", nil, fmt.Errorf("%w: %s in %s/%s", ErrUnresolvedRef, name, api.Info.Title, api.Info.Version)
	}

	return name, def, nil
}

// RefTo builds a reference to the named definition
func RefTo(name string) Reference {
	return Reference{Ref: definitionsPrefix + name}
}
