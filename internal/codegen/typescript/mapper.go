package typescript

import (
	"fmt"

	"github.com/okra-platform/kubetypes/internal/codegen/tsast"
	"github.com/okra-platform/kubetypes/internal/schema"
)

// valueType maps a schema value to a type expression. References to types declared in
// another module are recorded as imports of file.
func (s *state) valueType(file *tsast.File, value schema.Value) (string, error) {
	switch v := value.(type) {
	case schema.Reference:
		name, _, err := schema.Resolve(s.api, v)
		if err != nil {
			return "", err
		}

		loc, ok := NameToLocation(name)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrExcludedReference, v.Ref)
		}
		if t, ok := replacedType(loc.Name); ok {
			return t, nil
		}

		file.Import(loc.Path, loc.Name)
		return loc.Name, nil

	case schema.Scalar:
		return scalarType(v.Type)

	case schema.Map:
		t, err := s.valueType(file, v.Values)
		if err != nil {
			return "", err
		}
		return "{[name: string]: " + t + "}", nil

	case schema.Array:
		t, err := s.valueType(file, v.Items)
		if err != nil {
			return "", err
		}
		return "Array<" + t + ">", nil

	default:
		return "", fmt.Errorf("%w: value of type %T", ErrUnreachable, value)
	}
}

func scalarType(t schema.ScalarType) (string, error) {
	switch t {
	case schema.ScalarString, schema.ScalarNumber, schema.ScalarBoolean:
		return string(t), nil
	case schema.ScalarInteger:
		return "number", nil
	default:
		return "", fmt.Errorf("%w: scalar type %q", ErrUnreachable, t)
	}
}
