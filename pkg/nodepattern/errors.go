package nodepattern

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is the sentinel matched by every parse failure.
var ErrInvalidPattern = errors.New("invalid node pattern")

// SyntaxError describes where and why a pattern failed to parse.
type SyntaxError struct {
	// Offset is the byte offset in the pattern text.
	Offset  int
	Message string
	Pattern string
}

func newSyntaxError(pattern string, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
		Pattern: pattern,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrInvalidPattern, e.Offset, e.Message)
}

// Unwrap returns ErrInvalidPattern.
func (e *SyntaxError) Unwrap() error {
	return ErrInvalidPattern
}
