package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedArity is returned for faces that are neither triangles
	// nor quads.
	ErrUnsupportedArity = errors.New("unsupported face arity")

	// ErrIndexOutOfRange is returned when a face references a vertex that
	// does not exist.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrMalformed is returned for records that cannot be parsed.
	ErrMalformed = errors.New("malformed record")

	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
)

// ParseError locates a failure inside a mesh file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FaceError reports an invalid face. Index is the offending 1-based vertex
// index and is only meaningful with ErrIndexOutOfRange.
type FaceError struct {
	Face  int
	Index int
	Err   error
}

func (e *FaceError) Error() string {
	if errors.Is(e.Err, ErrIndexOutOfRange) {
		return fmt.Sprintf("face %d: %v: %d", e.Face, e.Err, e.Index)
	}
	return fmt.Sprintf("face %d: %v", e.Face, e.Err)
}

func (e *FaceError) Unwrap() error {
	return e.Err
}
