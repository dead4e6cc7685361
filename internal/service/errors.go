package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means Generate was called with no ingredients. The
	// caller is expected to validate the two-ingredient minimum before
	// reaching the service; this guard only catches the empty case.
	ErrEmptyInput = errors.New("no ingredients provided")

	// ErrInvalidStars means a rating outside 1..5 was submitted.
	ErrInvalidStars = errors.New("rating must be between 1 and 5 stars")

	// ErrUnknownRecipe means the recipe id was never generated in this
	// session, so there is no snapshot to rate or look up.
	ErrUnknownRecipe = errors.New("unknown recipe id")

	// ErrNoGeneration means the session has not produced any recipes yet.
	ErrNoGeneration = errors.New("no recipes generated yet")
)

// DecodeError reports that the model kept replying but none of its replies
// parsed as the expected recipe collection. It carries the last raw text and
// the rendered prompt so callers can show a diagnostic view.
type DecodeError struct {
	RawText  string
	Prompt   string
	Attempts int
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("model response failed to decode after %d attempts: %v", e.Attempts, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError reports that the round trip to the model itself failed on
// the final attempt, after backoff retries were exhausted. The conversation
// remains usable for the next call.
type TransportError struct {
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model call failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
