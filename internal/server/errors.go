package server

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a request path does not name a regular file under the root.
var ErrNotFound = errors.New("not found")

// ErrOutsideRoot is returned when a cleaned request path escapes the root directory.
// It matches ErrNotFound with errors.Is, since clients see both as 404.
var ErrOutsideRoot = fmt.Errorf("%w: path escapes root", ErrNotFound)

// BindError reports that the listening socket could not be created.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
