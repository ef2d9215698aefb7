package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates an analysis setting is outside its permitted range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotRunning indicates the coordinator has not been started.
	ErrNotRunning = errors.New("coordinator not running")

	// ErrAnalysisFailed indicates every requested analyzer failed for a batch.
	// Prior results are left in place when this is returned.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrAnalyzerPanic indicates an analyzer panicked and was recovered.
	ErrAnalyzerPanic = errors.New("analyzer panic")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Remote suggestions fall back to local heuristics without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnsupportedType indicates no normaliser handles a MIME type.
	ErrUnsupportedType = errors.New("unsupported type")
)
