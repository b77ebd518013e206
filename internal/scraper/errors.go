package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout      = errors.New("timed out waiting for markup")
	ErrMissingField = errors.New("container is missing a field")
	ErrNavigation   = errors.New("navigation failed")
	ErrNotFound     = errors.New("element not found")
)

// ExtractionError reports which page and selector an extraction failed on.
// Kind is one of ErrTimeout, ErrMissingField or ErrNavigation.
type ExtractionError struct {
	Kind     error
	URL      string
	Selector string
	Err      error
}

func (e *ExtractionError) Error() string {
	msg := e.Kind.Error()
	if e.Selector != "" {
		msg += fmt.Sprintf(" (selector %q)", e.Selector)
	}
	if e.URL != "" {
		msg += " on " + e.URL
	}
	if e.Err != nil && !errors.Is(e.Err, e.Kind) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind so callers can test with errors.Is.
func (e *ExtractionError) Is(target error) bool {
	return target == e.Kind
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
