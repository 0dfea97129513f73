// Package survey aggregates reviewer comments across many pull requests
// into per-model statistics: comment volume, focus, and coverage of the
// security pattern table.
package survey

import (
	"strings"

	"github.com/reviewbench/reviewbench/internal/models"
)

// PR is one pull request's review activity. Model is the reviewer model
// responsible for the PR, resolved from its title by the caller; PRs with
// an unidentified model are skipped by Collect.
type PR struct {
	Number   int
	Title    string
	Model    string
	Comments []models.Comment
}

// ModelStats summarizes one model's review activity across PRs.
type ModelStats struct {
	Model            string  `json:"model"`
	PRs              int     `json:"prs"`
	TotalComments    int     `json:"total_comments"`
	SecurityComments int     `json:"security_comments"`
	QualityComments  int     `json:"quality_comments"`
	DetailedComments int     `json:"detailed_comments"`
	AvgCommentLength float64 `json:"avg_comment_length"`
	SecurityMentions int     `json:"security_mentions"`
	PatternsHit      int     `json:"patterns_hit"`
	DetectionRate    float64 `json:"detection_rate"`
}

// Coverage counts, per security pattern, how many of the comments mention
// it, plus the total number of mentions across all patterns.
func Coverage(comments []models.Comment) (map[string]int, int) {
	hits := make(map[string]int, len(securityPatterns))
	mentions := 0
	for _, p := range securityPatterns {
		hits[p.Name] = 0
	}
	for _, c := range comments {
		body := strings.ToLower(c.Body)
		for _, p := range securityPatterns {
			if matchesAny(body, p.Keywords) {
				hits[p.Name]++
				mentions++
			}
		}
	}
	return hits, mentions
}

// Collect aggregates per-model statistics in first-appearance order.
func Collect(prs []PR) []ModelStats {
	index := make(map[string]int)
	var order []string
	grouped := make(map[string][]models.Comment)
	prCount := make(map[string]int)

	for _, pr := range prs {
		if pr.Model == "" {
			continue
		}
		if _, seen := index[pr.Model]; !seen {
			index[pr.Model] = len(order)
			order = append(order, pr.Model)
		}
		prCount[pr.Model]++
		grouped[pr.Model] = append(grouped[pr.Model], pr.Comments...)
	}

	out := make([]ModelStats, 0, len(order))
	for _, model := range order {
		comments := grouped[model]
		stats := ModelStats{
			Model:         model,
			PRs:           prCount[model],
			TotalComments: len(comments),
		}

		totalLen := 0
		for _, c := range comments {
			body := strings.ToLower(c.Body)
			totalLen += len(c.Body)
			if matchesAny(body, securityFocus) {
				stats.SecurityComments++
			}
			if matchesAny(body, qualityFocus) {
				stats.QualityComments++
			}
			if len(c.Body) > detailedThreshold {
				stats.DetailedComments++
			}
		}
		if len(comments) > 0 {
			stats.AvgCommentLength = float64(totalLen) / float64(len(comments))
		}

		hits, mentions := Coverage(comments)
		stats.SecurityMentions = mentions
		for _, n := range hits {
			if n > 0 {
				stats.PatternsHit++
			}
		}
		stats.DetectionRate = float64(stats.PatternsHit) / float64(len(securityPatterns)) * 100

		out = append(out, stats)
	}
	return out
}
