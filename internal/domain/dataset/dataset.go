// Package dataset loads the immutable question dataset and exposes
// read-only queries over it. The dataset is validated once at startup and
// never mutated afterwards, so queries are safe for concurrent use.
package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/niguel07/quizforge/internal/domain/model"
)

// Dataset is the loaded question collection.
type Dataset struct {
	questions []model.Question
	byID      map[int]int // question id -> index into questions
	rng       *rand.Rand
}

// Load reads and validates the question dataset from a JSON file.
func Load(path string, opts ...Option) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetLoad, path, err)
	}

	var questions []model.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetInvalid, path, err)
	}

	d := &Dataset{
		questions: questions,
		byID:      make(map[int]int, len(questions)),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // sampling, not crypto
	}
	for _, opt := range opts {
		opt(d)
	}

	for i, q := range questions {
		if _, dup := d.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %d", ErrDatasetInvalid, q.ID)
		}
		switch strings.ToUpper(strings.TrimSpace(q.Answer)) {
		case "A", "B", "C", "D":
		default:
			return nil, fmt.Errorf("%w: question %d has answer %q", ErrDatasetInvalid, q.ID, q.Answer)
		}
		d.byID[q.ID] = i
	}

	return d, nil
}

// Len returns the number of questions in the dataset.
func (d *Dataset) Len() int {
	return len(d.questions)
}

// Exists reports whether a question with the given id is in the dataset.
func (d *Dataset) Exists(id int) bool {
	_, ok := d.byID[id]
	return ok
}

// ByID returns the question with the given id.
func (d *Dataset) ByID(id int) (model.Question, error) {
	i, ok := d.byID[id]
	if !ok {
		return model.Question{}, fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
	}
	return d.questions[i], nil
}

// CorrectOption returns the correct option (A-D) of the given question.
func (d *Dataset) CorrectOption(id int) (string, error) {
	q, err := d.ByID(id)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(q.Answer)), nil
}

// Random returns up to count questions sampled without replacement.
func (d *Dataset) Random(count int) []model.Question {
	if count <= 0 || len(d.questions) == 0 {
		return nil
	}
	if count > len(d.questions) {
		count = len(d.questions)
	}
	idx := d.rng.Perm(len(d.questions))[:count]
	out := make([]model.Question, 0, count)
	for _, i := range idx {
		out = append(out, d.questions[i])
	}
	return out
}

// ByCategory returns up to limit questions in the named category.
// The match is case-insensitive.
func (d *Dataset) ByCategory(category string, limit int) []model.Question {
	return d.filter(limit, func(q model.Question) bool {
		return strings.EqualFold(q.Category, category)
	})
}

// ByDifficulty returns up to limit questions at the given difficulty.
// The match is case-insensitive.
func (d *Dataset) ByDifficulty(level string, limit int) []model.Question {
	return d.filter(limit, func(q model.Question) bool {
		return strings.EqualFold(q.Difficulty, level)
	})
}

// minSearchTermLen is the shortest accepted search term.
const minSearchTermLen = 2

// Search returns up to limit questions whose text contains term,
// optionally narrowed by category and difficulty. Matching is
// case-insensitive.
func (d *Dataset) Search(term, category, difficulty string, limit int) ([]model.Question, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if len(needle) < minSearchTermLen {
		return nil, ErrSearchTerm
	}
	return d.filter(limit, func(q model.Question) bool {
		if !strings.Contains(strings.ToLower(q.Question), needle) {
			return false
		}
		if category != "" && !strings.EqualFold(q.Category, category) {
			return false
		}
		if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
			return false
		}
		return true
	}), nil
}

// Categories returns the sorted unique category names.
func (d *Dataset) Categories() []string {
	return d.uniqueSorted(func(q model.Question) string { return q.Category })
}

// Difficulties returns the sorted unique difficulty levels.
func (d *Dataset) Difficulties() []string {
	return d.uniqueSorted(func(q model.Question) string { return q.Difficulty })
}

// Topics returns the sorted unique source topics.
func (d *Dataset) Topics() []string {
	return d.uniqueSorted(func(q model.Question) string { return q.SourceTopic })
}

func (d *Dataset) filter(limit int, keep func(model.Question) bool) []model.Question {
	var out []model.Question
	for _, q := range d.questions {
		if !keep(q) {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (d *Dataset) uniqueSorted(key func(model.Question) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range d.questions {
		k := key(q)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
