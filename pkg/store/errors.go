package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrCorrupt       = errors.New("corrupt document")
	ErrIO            = errors.New("i/o error")
)

// CorruptError reports a document on disk that could not be decoded.
type CorruptError struct {
	Path string
	Raw  string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt document %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Err}
}
