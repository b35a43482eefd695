package balance

import (
	"fmt"
)

// FileAccessError is returned when the input file is missing or unreadable.
type FileAccessError struct {
	Path       string
	Underlying error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Underlying)
}

func (e *FileAccessError) Unwrap() error {
	return e.Underlying
}

// DecodeError is returned when the input is not valid UTF-8 text.
type DecodeError struct {
	Pos Position
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 encoding at byte offset %d", e.Pos, e.Pos.Offset)
}

// GetPosition returns the location of the first invalid byte.
func (e *DecodeError) GetPosition() Position {
	return e.Pos
}
