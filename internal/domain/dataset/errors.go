package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrDatasetLoad      = errors.New("dataset load failed")
	ErrDatasetInvalid   = errors.New("dataset invalid")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSearchTerm       = errors.New("search term must be at least 2 characters")
)
