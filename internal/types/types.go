package types

import (
	"errors"
	"fmt"
)

// ErrMalformed is reported for any pattern that cannot be compiled:
// unbalanced or nested brackets, a dangling escape, an unresolvable
// ellipsis or a value character with no matching notation.
var ErrMalformed = errors.New("malformed pattern")

// FormatError describes where and why a pattern failed to compile.
type FormatError struct {
	Pattern string
	Pos     int // rune offset into Pattern, -1 when unknown
	Reason  string
}

func NewFormatError(pattern string, pos int, reason string) *FormatError {
	return &FormatError{Pattern: pattern, Pos: pos, Reason: reason}
}

func (e *FormatError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s %q: %s", ErrMalformed, e.Pattern, e.Reason)
	}
	return fmt.Sprintf("%s %q at %d: %s", ErrMalformed, e.Pattern, e.Pos, e.Reason)
}

// Is makes errors.Is(err, ErrMalformed) hold for every *FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrMalformed
}
