package model

// Options holds the four answer choices of a question.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question is one record of the immutable quiz dataset.
type Question struct {
	ID           int     `json:"id"`
	Question     string  `json:"question"`
	Options      Options `json:"options"`
	Answer       string  `json:"answer"`
	Category     string  `json:"category"`
	Difficulty   string  `json:"difficulty"`
	Explanation  string  `json:"explanation"`
	QualityScore float64 `json:"quality_score"`
	SourceTopic  string  `json:"source_topic"`
}
