package jsonfile

import (
	"errors"
	"fmt"
)

// ErrPersistence is the sentinel matched by every PersistenceError.
var ErrPersistence = errors.New("persistence failed")

// PersistenceError reports a failed read or write of the data file.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O or encoding error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes every PersistenceError match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
