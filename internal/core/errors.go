package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNotFound            = errors.New("content not found")
)

// LoadError reports that the content document for Lang could not be
// fetched or parsed. Status is the HTTP status when the response was not
// successful, zero otherwise.
type LoadError struct {
	Lang   string
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load language %q: unexpected status %d", e.Lang, e.Status)
	}
	return fmt.Sprintf("load language %q: %v", e.Lang, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
