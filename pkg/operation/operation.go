// Package operation turns machining tasks into ordered G-code commands.
package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetsRequired is returned when no target shapes are given.
	ErrTargetsRequired = errors.New("targets must be defined")
	// ErrDepthRequired is returned when no depth is given.
	ErrDepthRequired = errors.New("depth must be defined")
	// ErrNoTargets is returned when the targets yield nothing to machine.
	ErrNoTargets = errors.New("targets do not contain anything to do")
	// ErrUnsupportedShape is returned for shape kinds the operation cannot use.
	ErrUnsupportedShape = errors.New("shape not supported")
)

// OperationError is a configuration error raised while constructing an
// operation. No commands exist when it is returned.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}
