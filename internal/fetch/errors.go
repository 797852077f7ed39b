package fetch

import "errors"

var (
	// ErrEmptyVersion is returned when no Kubernetes version was given
	ErrEmptyVersion = errors.New("kubernetes version is required")

	// ErrUnexpectedStatus is returned when the schema server answers with anything but 200
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
