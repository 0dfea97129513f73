// Package score turns fetched review comments into per-model benchmark
// results by keyword-matching comment bodies against the issue catalog's
// categories.
package score

import (
	"fmt"
	"strings"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/models"
)

// Variant selects how keyword matches accumulate into detection counts.
type Variant string

const (
	// VariantWeighted counts each distinct matching keyword, capped per
	// comment and category. This is the canonical variant.
	VariantWeighted Variant = "weighted"
	// VariantPresence counts at most one detection per comment and category.
	VariantPresence Variant = "presence"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantWeighted, VariantPresence:
		return true
	}
	return false
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(s))
	if !v.Valid() {
		return "", fmt.Errorf("unknown scoring variant %q (use: weighted, presence)", s)
	}
	return v, nil
}

// Scorer evaluates model review sessions against a catalog. Scoring is pure:
// the same comments and catalog always produce the same results.
type Scorer struct {
	catalog  *catalog.Catalog
	resolver Resolver
	variant  Variant
}

// NewScorer builds a scorer over cat using resolver for identity and
// variant for accumulation.
func NewScorer(cat *catalog.Catalog, resolver Resolver, variant Variant) *Scorer {
	return &Scorer{catalog: cat, resolver: resolver, variant: variant}
}

// Sessions groups comments by resolved model identity, preserving
// first-appearance order. Comments from unresolved authors are dropped.
func (s *Scorer) Sessions(comments []models.Comment) []models.ModelSession {
	index := make(map[string]int)
	var sessions []models.ModelSession
	for _, c := range comments {
		model, ok := s.resolver.Resolve(c.Author)
		if !ok {
			continue
		}
		i, seen := index[model]
		if !seen {
			i = len(sessions)
			index[model] = i
			sessions = append(sessions, models.ModelSession{Model: model})
		}
		sessions[i].Comments = append(sessions[i].Comments, c)
	}
	return sessions
}

// ScoreSession computes one model's result against the catalog.
func (s *Scorer) ScoreSession(session models.ModelSession) models.ModelResult {
	raw := make(map[models.Category]int)
	for _, c := range session.Comments {
		body := strings.ToLower(c.Body)
		for _, cat := range models.Categories() {
			n := countMatches(body, categoryKeywords[cat])
			if n == 0 {
				continue
			}
			if s.variant == VariantPresence {
				raw[cat]++
				continue
			}
			if limit := categoryCaps[cat]; n > limit {
				n = limit
			}
			raw[cat] += n
		}
	}

	result := models.ModelResult{
		Model:         session.Model,
		TotalComments: len(session.Comments),
	}
	for _, cat := range models.Categories() {
		detected := raw[cat]
		result.TotalDetected += detected
		result.Categories = append(result.Categories, models.CategoryScore{
			Category: cat,
			Detected: detected,
			Score:    percentage(detected, s.catalog.Count(cat)),
		})
	}
	result.DetectionRate = percentage(result.TotalDetected, s.catalog.Total())
	return result
}

// ScoreAll groups and scores comments, returning results in session order.
func (s *Scorer) ScoreAll(comments []models.Comment) []models.ModelResult {
	sessions := s.Sessions(comments)
	results := make([]models.ModelResult, 0, len(sessions))
	for _, session := range sessions {
		results = append(results, s.ScoreSession(session))
	}
	return results
}

// percentage converts detected/total into a percentage clamped to [0, 100].
// An empty category scores zero.
func percentage(detected, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(detected) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Summarize picks the best performer overall and per category. Ties keep
// the earlier result, since models arrive in fetch order.
func Summarize(results []models.ModelResult) models.Summary {
	var sum models.Summary
	bestOverall := -1.0
	best := map[models.Category]float64{
		models.CategorySecurity:    -1,
		models.CategoryPerformance: -1,
		models.CategoryQuality:     -1,
	}
	for _, r := range results {
		if r.DetectionRate > bestOverall {
			bestOverall = r.DetectionRate
			sum.BestOverall = r.Model
		}
		for _, cs := range r.Categories {
			if cs.Score > best[cs.Category] {
				best[cs.Category] = cs.Score
				switch cs.Category {
				case models.CategorySecurity:
					sum.BestSecurity = r.Model
				case models.CategoryPerformance:
					sum.BestPerformance = r.Model
				case models.CategoryQuality:
					sum.BestQuality = r.Model
				}
			}
		}
	}
	return sum
}
