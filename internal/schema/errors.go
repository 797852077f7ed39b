package schema

import "errors"

var (
	// Reference errors
	ErrInvalidRef    = errors.New("invalid or unsupported $ref")
	ErrUnresolvedRef = errors.New("failed to resolve reference")

	// Decoding errors
	ErrUnsupportedValue = errors.New("unsupported value shape")
)
