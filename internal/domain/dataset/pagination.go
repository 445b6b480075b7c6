package dataset

import "github.com/niguel07/quizforge/internal/domain/model"

// PageInfo describes the position of a page within the full collection.
type PageInfo struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Page returns one page of the question collection in load order.
// Pages are 1-indexed; an out-of-range page is clamped into the valid
// range rather than rejected.
func (d *Dataset) Page(page, limit int) ([]model.Question, PageInfo) {
	totalItems := len(d.questions)
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	info := PageInfo{
		Page:        page,
		Limit:       limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}

	start := (page - 1) * limit
	if start >= totalItems || limit <= 0 {
		return nil, info
	}
	end := start + limit
	if end > totalItems {
		end = totalItems
	}

	out := make([]model.Question, end-start)
	copy(out, d.questions[start:end])
	return out, info
}
