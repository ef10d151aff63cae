package pipeline

import "errors"

var (
	// ErrValidation is the kind wrapped by validators when an instance does
	// not meet validation criteria. Callers test it with errors.Is after
	// escalating a yielded outcome.
	ErrValidation = errors.New("validation failed")

	// ErrExtraction is the kind wrapped by extractors when the publishing
	// action for one instance fails.
	ErrExtraction = errors.New("extraction failed")
)
