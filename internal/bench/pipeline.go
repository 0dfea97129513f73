// Package bench runs the benchmark end to end: fetch a PR's reviews,
// score them against the issue catalog, and publish report files.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/fetch"
	"github.com/reviewbench/reviewbench/internal/models"
	"github.com/reviewbench/reviewbench/internal/report"
	"github.com/reviewbench/reviewbench/internal/score"
)

// CommentSource supplies the review comments for a PR. Sources degrade
// instead of failing: problems are reported as warnings on the result.
type CommentSource interface {
	Fetch(ctx context.Context, number int) *fetch.Result
}

// Pipeline wires one benchmark run. Only writing the output directory is
// fatal; fetch problems and chart failures degrade to warnings so a run
// always produces a report.
type Pipeline struct {
	Source    CommentSource
	Scorer    *score.Scorer
	Catalog   *catalog.Catalog
	Renderers []report.Renderer

	// Chart renders the comparison PNG. Nil skips chart output; render
	// failures become warnings.
	Chart report.Renderer

	Repository string
	Version    string
	Variant    score.Variant
}

// RunResult is what a finished run hands back to the CLI.
type RunResult struct {
	Report *models.RunReport
	// Files lists every file written, in write order.
	Files []string
}

// Run benchmarks one PR and writes the report files into outDir.
func (p *Pipeline) Run(ctx context.Context, number int, outDir string) (*RunResult, error) {
	fetched := p.Source.Fetch(ctx, number)
	results := p.Scorer.ScoreAll(fetched.Comments)

	rep := &models.RunReport{
		RunID:       newRunID(),
		PRNumber:    number,
		Repository:  p.Repository,
		GeneratedAt: time.Now(),
		Version:     p.Version,
		Variant:     string(p.Variant),
		Breakdown:   p.Catalog.Breakdown(),
		TotalIssues: p.Catalog.Total(),
		Results:     results,
		Summary:     score.Summarize(results),
		Warnings:    fetched.Warnings,
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	run := &RunResult{Report: rep}
	for _, r := range p.Renderers {
		path, err := p.write(r, rep, outDir)
		if err != nil {
			return nil, err
		}
		run.Files = append(run.Files, path)
	}

	if p.Chart != nil {
		path, err := p.write(p.Chart, rep, outDir)
		if err != nil {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("chart: %v", err))
		} else {
			run.Files = append(run.Files, path)
		}
	}

	return run, nil
}

func (p *Pipeline) write(r report.Renderer, rep *models.RunReport, outDir string) (string, error) {
	data, err := r.Render(rep)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", r.Filename(), err)
	}
	path := filepath.Join(outDir, r.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", r.Filename(), err)
	}
	return path, nil
}

// newRunID generates a new ULID string.
func newRunID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}
