package confnode

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing is returned when a required key is absent or null.
	ErrMissing = errors.New("missing value")
	// ErrType is returned when a value has the wrong shape or scalar type.
	ErrType = errors.New("wrong type")
)

// PathError reports where in the document a read failed.
type PathError struct {
	// Path is the dotted location, e.g. "items[1].id".
	Path string
	// Want is the expected type.
	Want string
	// Got is the actual type for ErrType.
	Got string
	Err error
}

func (e *PathError) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}

	if e.Got != "" {
		return fmt.Sprintf("confnode: %s: %v: want %s, got %s", path, e.Err, e.Want, e.Got)
	}

	return fmt.Sprintf("confnode: %s: %v: want %s", path, e.Err, e.Want)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
