package dataset

import (
	"math"
	"sort"
)

// QualityStats summarizes the quality_score field across the dataset.
type QualityStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// Stats is the aggregate view of the dataset served by the analytics
// endpoint.
type Stats struct {
	TotalQuestions         int            `json:"total_questions"`
	CategoryDistribution   map[string]int `json:"category_distribution"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution"`
	Topics                 []string       `json:"topics"`
	QualityStats           QualityStats   `json:"quality_stats"`
	UniqueCategories       int            `json:"unique_categories"`
	UniqueDifficulties     int            `json:"unique_difficulties"`
}

// Stats computes the dataset summary.
func (d *Dataset) Stats() Stats {
	s := Stats{
		TotalQuestions:         len(d.questions),
		CategoryDistribution:   make(map[string]int),
		DifficultyDistribution: make(map[string]int),
		Topics:                 d.Topics(),
	}

	for _, q := range d.questions {
		if q.Category != "" {
			s.CategoryDistribution[q.Category]++
		}
		if q.Difficulty != "" {
			s.DifficultyDistribution[q.Difficulty]++
		}
	}
	s.UniqueCategories = len(s.CategoryDistribution)
	s.UniqueDifficulties = len(s.DifficultyDistribution)

	if len(d.questions) > 0 {
		minScore := d.questions[0].QualityScore
		maxScore := minScore
		sum := 0.0
		for _, q := range d.questions {
			if q.QualityScore < minScore {
				minScore = q.QualityScore
			}
			if q.QualityScore > maxScore {
				maxScore = q.QualityScore
			}
			sum += q.QualityScore
		}
		s.QualityStats = QualityStats{
			Min:     minScore,
			Max:     maxScore,
			Average: sum / float64(len(d.questions)),
		}
	}

	return s
}

// CategoryStat is the per-category breakdown with its share of the
// whole dataset and the difficulty mix inside the category.
type CategoryStat struct {
	Category            string         `json:"category"`
	Count               int            `json:"count"`
	Percentage          float64        `json:"percentage"`
	DifficultyBreakdown map[string]int `json:"difficulty_breakdown"`
}

// CategoryStats returns per-category statistics ordered by question
// count, largest first, with equally sized categories ordered by name.
func (d *Dataset) CategoryStats() []CategoryStat {
	if len(d.questions) == 0 {
		return nil
	}

	byCategory := make(map[string]*CategoryStat)
	for _, q := range d.questions {
		if q.Category == "" {
			continue
		}
		stat, ok := byCategory[q.Category]
		if !ok {
			stat = &CategoryStat{
				Category:            q.Category,
				DifficultyBreakdown: make(map[string]int),
			}
			byCategory[q.Category] = stat
		}
		stat.Count++
		level := q.Difficulty
		if level == "" {
			level = "Unknown"
		}
		stat.DifficultyBreakdown[level]++
	}

	out := make([]CategoryStat, 0, len(byCategory))
	total := float64(len(d.questions))
	for _, stat := range byCategory {
		stat.Percentage = round2(float64(stat.Count) / total * 100)
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DifficultyStat is the per-level breakdown with its share of the
// whole dataset.
type DifficultyStat struct {
	Level      string  `json:"level"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// difficultyRank orders the standard levels; anything else sorts last.
func difficultyRank(level string) int {
	switch level {
	case "Easy":
		return 1
	case "Medium":
		return 2
	case "Hard":
		return 3
	default:
		return 4
	}
}

// DifficultyStats returns per-level statistics in Easy, Medium, Hard
// order, with non-standard levels after them.
func (d *Dataset) DifficultyStats() []DifficultyStat {
	if len(d.questions) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, q := range d.questions {
		if q.Difficulty != "" {
			counts[q.Difficulty]++
		}
	}

	out := make([]DifficultyStat, 0, len(counts))
	total := float64(len(d.questions))
	for level, count := range counts {
		out = append(out, DifficultyStat{
			Level:      level,
			Count:      count,
			Percentage: round2(float64(count) / total * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := difficultyRank(out[i].Level), difficultyRank(out[j].Level)
		if ri != rj {
			return ri < rj
		}
		return out[i].Level < out[j].Level
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
