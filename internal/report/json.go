package report

import (
	"encoding/json"
	"time"

	"github.com/reviewbench/reviewbench/internal/models"
)

// JSONRenderer writes the raw results document for downstream tooling.
type JSONRenderer struct{}

func (r *JSONRenderer) Filename() string { return "results.json" }

type jsonMetadata struct {
	RunID            string `json:"run_id"`
	PRNumber         int    `json:"pr_number"`
	Repository       string `json:"repository,omitempty"`
	GeneratedAt      string `json:"generated_at"`
	Version          string `json:"version,omitempty"`
	ScoringVariant   string `json:"scoring_variant"`
	TotalKnownIssues int    `json:"total_known_issues"`
}

type jsonDocument struct {
	Metadata  jsonMetadata             `json:"metadata"`
	Breakdown map[models.Category]int  `json:"known_issues_breakdown"`
	Results   []models.ModelResult     `json:"results"`
	Summary   models.Summary           `json:"summary"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

func (r *JSONRenderer) Render(rep *models.RunReport) ([]byte, error) {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			RunID:            rep.RunID,
			PRNumber:         rep.PRNumber,
			Repository:       rep.Repository,
			GeneratedAt:      rep.GeneratedAt.Format(time.RFC3339),
			Version:          rep.Version,
			ScoringVariant:   rep.Variant,
			TotalKnownIssues: rep.TotalIssues,
		},
		Breakdown: rep.Breakdown,
		Results:   rep.Results,
		Summary:   rep.Summary,
		Warnings:  rep.Warnings,
	}
	if doc.Results == nil {
		doc.Results = []models.ModelResult{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
