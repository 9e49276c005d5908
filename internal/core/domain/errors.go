package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration Errors.

	// ErrInvalidConfig indicates a missing or invalid configuration value,
	// such as a zero rate limit.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoModelConfig indicates no model configuration is registered for a content type.
	ErrNoModelConfig = errors.New("no model configuration")

	// ErrBackendMismatch indicates a backend does not provide the capability set
	// required for the content type it was registered under.
	ErrBackendMismatch = errors.New("backend does not support content type")

	// Unsupported Kind Errors.

	// ErrUnsupportedContentType indicates a content type outside the closed enumeration.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrUnsupportedAction indicates a workflow action type outside the closed set.
	ErrUnsupportedAction = errors.New("unsupported action type")

	// ErrUnsupportedOperator indicates a condition operator outside the closed set.
	ErrUnsupportedOperator = errors.New("unsupported condition operator")

	// Lookup Errors.

	// ErrNoWorkflow indicates no workflow is registered for a category.
	ErrNoWorkflow = errors.New("no workflow for category")
)
