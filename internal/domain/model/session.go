// Package model contains domain models passed between layers.
package model

import "time"

// AnswerRecord is one entry of a session's answer history.
type AnswerRecord struct {
	QuestionID int       `json:"question_id"`
	Correct    bool      `json:"correct"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is the persistent scoring record for one username.
// Score and TotalAttempts are the authoritative counters; Accuracy is
// recomputed from them on every mutation and stored only for serialization.
type Session struct {
	Username      string         `json:"username"`
	Answers       []AnswerRecord `json:"answers"`
	Score         int            `json:"score"`
	Accuracy      float64        `json:"accuracy"`
	TotalAttempts int            `json:"total_attempts"`
	CreatedAt     time.Time      `json:"created_at"`
	LastUpdated   time.Time      `json:"last_updated"`
}

// Clone returns a deep copy of the session so callers can hold it
// without observing later mutations.
func (s Session) Clone() Session {
	out := s
	if s.Answers != nil {
		out.Answers = make([]AnswerRecord, len(s.Answers))
		copy(out.Answers, s.Answers)
	}
	return out
}

// LeaderboardEntry is a derived, read-only projection of a session
// for ranking display.
type LeaderboardEntry struct {
	Username      string  `json:"username"`
	Score         int     `json:"score"`
	Accuracy      float64 `json:"accuracy"`
	TotalAttempts int     `json:"total_attempts"`
}

// Entry projects the session into its leaderboard shape.
func (s Session) Entry() LeaderboardEntry {
	return LeaderboardEntry{
		Username:      s.Username,
		Score:         s.Score,
		Accuracy:      s.Accuracy,
		TotalAttempts: s.TotalAttempts,
	}
}
