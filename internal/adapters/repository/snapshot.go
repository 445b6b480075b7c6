package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/niguel07/quizforge/internal/domain/model"
)

// The snapshot is a JSON array of sessions with their full answer
// history, sorted by username so rewrites of unchanged state are
// byte-identical.

const (
	snapshotDirPerm  = 0o755
	snapshotFilePerm = 0o644
)

// loadSnapshot reads the snapshot file into a username-keyed map.
// A missing file is not an error and yields an empty map. A file that
// exists but cannot be read wraps ErrSnapshotRead; one that reads but
// does not deserialize wraps ErrCorruptSnapshot.
func loadSnapshot(path string) (map[string]model.Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]model.Session), nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSnapshotRead, path, err)
	}

	var sessions []model.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, path, err)
	}

	out := make(map[string]model.Session, len(sessions))
	for _, s := range sessions {
		if _, dup := out[s.Username]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate username %q", ErrCorruptSnapshot, path, s.Username)
		}
		out[s.Username] = s
	}
	return out, nil
}

// writeSnapshot replaces the snapshot file with the given sessions.
// The write goes to a temp file first and is moved into place with a
// rename, so a crash mid-write never corrupts the previous snapshot.
func writeSnapshot(path string, sessions map[string]model.Session) error {
	ordered := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Username < ordered[j].Username })

	raw, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, snapshotDirPerm); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, snapshotFilePerm); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
