package typescript

import "errors"

var (
	// ErrExcludedReference is returned when a property refers to a definition that has no
	// place in the output layout
	ErrExcludedReference = errors.New("value references excluded type")

	// ErrUnknownType is returned for a non-object definition with no usable type
	ErrUnknownType = errors.New("unknown type")

	// ErrUnreachable signals a value shape the type mapper does not handle
	ErrUnreachable = errors.New(`"unreachable" code was reached`)
)
