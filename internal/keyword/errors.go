package keyword

import (
	"errors"
	"fmt"
)

// ErrEmpty means no usable keyword is left after sentinel stripping.
// Matching is disabled rather than failing.
var ErrEmpty = errors.New("no keywords configured")

// InvalidPatternError reports an entry whose pattern does not compile.
// The whole compilation fails because alternation order is significant.
type InvalidPatternError struct {
	Entry Entry
	Index int
	Err   error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid keyword pattern %q (entry %d): %v", e.Entry.Pattern, e.Index, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }
