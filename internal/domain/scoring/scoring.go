// Package scoring contains the pure session transition applied on every
// answer submission, and grading of a selected option against a question.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/niguel07/quizforge/internal/domain/model"
)

const accuracyScale = 100

// Apply records one answer on a session and returns the updated session.
// A zero-valued session is initialized with CreatedAt set to now. The
// input session is not mutated.
func Apply(s model.Session, questionID int, correct bool, now time.Time) model.Session {
	out := s.Clone()
	if out.TotalAttempts == 0 && out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}

	out.Answers = append(out.Answers, model.AnswerRecord{
		QuestionID: questionID,
		Correct:    correct,
		Timestamp:  now,
	})
	out.TotalAttempts++
	if correct {
		out.Score++
	}
	out.Accuracy = Accuracy(out.Score, out.TotalAttempts)
	out.LastUpdated = now

	return out
}

// Accuracy computes the percentage of correct answers rounded to two
// decimal places. Zero attempts yields zero.
func Accuracy(score, totalAttempts int) float64 {
	if totalAttempts <= 0 {
		return 0
	}
	pct := float64(score) / float64(totalAttempts) * accuracyScale
	return math.Round(pct*100) / 100
}

// Trim caps the answer history at the most recent limit records. A limit
// of zero or less keeps the history unbounded. Counters are untouched, so
// trimming trades the history/attempts equality for bounded memory.
func Trim(s model.Session, limit int) model.Session {
	if limit <= 0 || len(s.Answers) <= limit {
		return s
	}
	out := s
	trimmed := make([]model.AnswerRecord, limit)
	copy(trimmed, s.Answers[len(s.Answers)-limit:])
	out.Answers = trimmed
	return out
}

// Grade checks a selected option against the question's stored answer.
// The selection is normalized (whitespace trimmed, upper-cased) and must
// be one of A, B, C or D.
func Grade(q model.Question, selected string) (bool, error) {
	sel := strings.ToUpper(strings.TrimSpace(selected))
	switch sel {
	case "A", "B", "C", "D":
	default:
		return false, ErrInvalidOption
	}
	return sel == strings.ToUpper(strings.TrimSpace(q.Answer)), nil
}
