// Package report renders benchmark run reports into the files a run
// publishes: a text summary, an HTML page, raw JSON, and a comparison
// chart. Renderers produce bytes; writing them out is the caller's job.
package report

import (
	"fmt"
	"strings"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/models"
)

// Format selects which report files a run produces.
type Format string

const (
	FormatAll  Format = "all"
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatAll, FormatText, FormatHTML, FormatJSON:
		return true
	}
	return false
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !f.Valid() {
		return "", fmt.Errorf("unknown report format %q (use: all, text, html, json)", s)
	}
	return f, nil
}

// Renderer produces one output file for a run report.
type Renderer interface {
	// Filename is the file the rendered bytes should be written to,
	// relative to the run's output directory.
	Filename() string
	Render(rep *models.RunReport) ([]byte, error)
}

// Options tune rendering.
type Options struct {
	// EmbedChart controls whether the HTML report includes the
	// interactive comparison chart (loaded from a CDN). With it off the
	// page still renders fully from static markup.
	EmbedChart bool
}

// RenderersFor returns the renderers for format. The catalog backs the
// known-issue listings in the text report.
func RenderersFor(format Format, cat *catalog.Catalog, opts Options) []Renderer {
	switch format {
	case FormatText:
		return []Renderer{NewTextRenderer(cat)}
	case FormatHTML:
		return []Renderer{NewHTMLRenderer(opts)}
	case FormatJSON:
		return []Renderer{&JSONRenderer{}}
	default:
		return []Renderer{
			NewTextRenderer(cat),
			NewHTMLRenderer(opts),
			&JSONRenderer{},
		}
	}
}

// shortName compresses a reviewer login for fixed-width display.
func shortName(model string) string {
	s := strings.ReplaceAll(model, "github-actions", "AI")
	s = strings.ReplaceAll(s, "[bot]", "")
	if len(s) > 24 {
		s = s[:24]
	}
	return s
}
