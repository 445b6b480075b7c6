// Package repository owns the in-memory session store and its persisted
// snapshot.
package repository

import (
	"context"

	"github.com/niguel07/quizforge/internal/domain/model"
)

// Store provides read/write access to per-user scoring sessions.
//
// Mutating operations (SubmitAnswer, Delete) are serialized against each
// other; reads never observe a partially applied mutation. Each mutation
// synchronously rewrites the snapshot file, so the on-disk copy lags the
// in-memory state by at most the write in flight.
type Store interface {
	// Load restores the in-memory state from the persisted snapshot.
	// A missing snapshot yields an empty store; a corrupt one returns an
	// error wrapping ErrCorruptSnapshot.
	Load(ctx context.Context) error

	// SubmitAnswer records one answer for username, creating the session
	// on first submission. The updated session is returned even when the
	// snapshot write fails; in that case the error wraps ErrSnapshotWrite
	// and the in-memory state is kept.
	SubmitAnswer(ctx context.Context, username string, questionID int, correct bool) (model.Session, error)

	// Get returns the session for username.
	// Returns ErrSessionNotFound if the user never submitted an answer.
	Get(ctx context.Context, username string) (model.Session, error)

	// Usernames returns all usernames with a session, sorted.
	Usernames(ctx context.Context) []string

	// Delete removes the session for username and persists the removal.
	// Returns ErrSessionNotFound if no session exists.
	Delete(ctx context.Context, username string) error

	// TopN returns the top-n leaderboard entries ordered by score desc,
	// accuracy desc, username asc, plus the total number of sessions.
	// n < 1 yields ErrInvalidLimit.
	TopN(ctx context.Context, n int) ([]model.LeaderboardEntry, int, error)

	// Count returns the number of sessions tracked by the store.
	Count(ctx context.Context) int

	// Flush rewrites the snapshot from the current in-memory state.
	Flush(ctx context.Context) error
}
