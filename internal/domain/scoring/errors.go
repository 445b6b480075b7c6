package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidOption = errors.New("invalid answer option; must be A, B, C or D")
)
