package ocr

import (
	"errors"
	"fmt"
)

// Common OCR engine errors
var (
	// ErrNotImplemented is returned by engines whose backing integration
	// is not wired up in this build or deployment.
	ErrNotImplemented = errors.New("OCR engine not implemented")

	// ErrUnavailable is returned when an engine exists but cannot run
	// right now (missing binary, unreachable service, disabled by
	// configuration). The pipeline skips the engine and continues.
	ErrUnavailable = errors.New("OCR engine unavailable")

	// ErrMissingCredentials is returned when a cloud engine has no usable
	// credentials in the environment.
	ErrMissingCredentials = errors.New("missing cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS")

	// ErrRecognitionFailed is returned when the backing OCR call fails.
	ErrRecognitionFailed = errors.New("OCR recognition failed")
)

// EngineError wraps engine failures with the engine name and operation.
type EngineError struct {
	// Engine is the engine's Name().
	Engine string

	// Op is the operation that failed (e.g., "Recognize", "NewClient").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s: %s failed: %s: %v", e.Engine, e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s: %s failed: %v", e.Engine, e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *EngineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapEngineError wraps an error as an EngineError if it isn't one yet.
func WrapEngineError(engine, op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var engErr *EngineError
	if errors.As(err, &engErr) {
		return err
	}

	return &EngineError{Engine: engine, Op: op, Err: err, Details: details}
}
