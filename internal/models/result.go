package models

import "time"

// Category classifies known issues and detections.
type Category string

const (
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
	CategoryQuality     Category = "quality"
)

// Categories returns all categories in presentation order.
func Categories() []Category {
	return []Category{CategorySecurity, CategoryPerformance, CategoryQuality}
}

// Valid reports whether the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategorySecurity, CategoryPerformance, CategoryQuality:
		return true
	}
	return false
}

// Severity grades a known issue.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// KnownIssue is one ground-truth defect planted in the benchmark fixture.
type KnownIssue struct {
	Line        int      `json:"line"`
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// CategoryScore is a model's detection result for one category.
type CategoryScore struct {
	Category Category `json:"category"`
	Detected int      `json:"detected"`
	Score    float64  `json:"score"`
}

// ModelResult is the complete scoring outcome for one model on one PR.
// Categories holds one entry per category in presentation order.
type ModelResult struct {
	Model         string          `json:"model"`
	TotalComments int             `json:"total_comments"`
	Categories    []CategoryScore `json:"categories"`
	TotalDetected int             `json:"total_detected"`
	DetectionRate float64         `json:"detection_rate"`
}

// CategoryScore returns the result's entry for cat, or a zero entry when
// the category was never scored.
func (r *ModelResult) CategoryScore(cat Category) CategoryScore {
	for _, cs := range r.Categories {
		if cs.Category == cat {
			return cs
		}
	}
	return CategoryScore{Category: cat}
}

// Summary names the best performer overall and per category.
type Summary struct {
	BestOverall     string `json:"best_overall"`
	BestSecurity    string `json:"best_security"`
	BestPerformance string `json:"best_performance"`
	BestQuality     string `json:"best_quality"`
}

// RunReport is everything one benchmark run produces, handed to the
// renderers as a unit.
type RunReport struct {
	RunID       string
	PRNumber    int
	Repository  string
	GeneratedAt time.Time
	Version     string
	Variant     string
	Breakdown   map[Category]int
	TotalIssues int
	Results     []ModelResult
	Summary     Summary
	Warnings    []string
}

// Rating buckets a percentage score for display.
type Rating string

const (
	RatingExcellent Rating = "EXCELLENT"
	RatingGood      Rating = "GOOD"
	RatingPoor      Rating = "NEEDS IMPROVEMENT"
)

// RatingFor buckets a 0-100 score.
func RatingFor(score float64) Rating {
	switch {
	case score >= 70:
		return RatingExcellent
	case score >= 40:
		return RatingGood
	default:
		return RatingPoor
	}
}
