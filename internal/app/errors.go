package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrNotConfigured = errors.New("service missing store or dataset")
)
