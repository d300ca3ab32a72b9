package pattern

import "errors"

var errEmptyPattern = errors.New("empty pattern")
