package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidLimit    = errors.New("invalid leaderboard limit")
	ErrCorruptSnapshot = errors.New("session snapshot corrupt")
	ErrSnapshotRead    = errors.New("session snapshot unreadable")
	ErrSnapshotWrite   = errors.New("session snapshot write failed")
)
