package reconciler

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for ids that do not exist or belong to another owner.
var ErrNotFound = errors.New("trip not found")

// PersistenceError wraps a failure of the underlying store. Nothing was written
// when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s trip: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
