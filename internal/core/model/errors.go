package model

import "errors"

var (
	// ErrInputValidation marks malformed pipeline input. Fatal, never retried.
	ErrInputValidation = errors.New("input validation failed")

	// ErrReasoningService marks a failed or timed-out reasoner call.
	ErrReasoningService = errors.New("reasoning service failed")

	// ErrMalformedResponse marks reasoner output that could not be parsed
	// even after the single repair re-prompt.
	ErrMalformedResponse = errors.New("malformed reasoner response")

	// ErrGroundingViolation marks a candidate referencing ids absent from
	// the graph.
	ErrGroundingViolation = errors.New("grounding violation")

	// ErrGenerationFailed marks a run whose card stayed structurally
	// incomplete after the retry budget and the final fix pass.
	ErrGenerationFailed = errors.New("hypothesis generation failed")

	// ErrCanonicalization marks a card that could not be serialized under
	// the fixed schema. Indicates an upstream contract violation.
	ErrCanonicalization = errors.New("canonicalization failed")
)

// StageError names the pipeline stage that failed so callers never have to
// treat a partial result as success.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
