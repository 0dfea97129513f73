package score

import (
	"strings"

	"github.com/reviewbench/reviewbench/internal/models"
)

// categoryKeywords are the detection dictionaries. A comment "detects" a
// category when its body contains one of these terms, case-insensitively.
// Plain substring containment, nothing fancier.
var categoryKeywords = map[models.Category][]string{
	models.CategorySecurity: {
		"sql injection", "xss", "hardcoded", "secret", "api key",
		"command injection", "crypto", "authentication", "vulnerability",
	},
	models.CategoryPerformance: {
		"race condition", "memory leak", "performance",
		"inefficient", "blocking", "async",
	},
	models.CategoryQuality: {
		"type", "error handling", "validation", "null check",
	},
}

// categoryCaps bound how much a single comment can contribute to a category
// under weighted scoring.
var categoryCaps = map[models.Category]int{
	models.CategorySecurity:    3,
	models.CategoryPerformance: 2,
	models.CategoryQuality:     2,
}

// Keywords returns the detection dictionary for cat.
func Keywords(cat models.Category) []string {
	return append([]string(nil), categoryKeywords[cat]...)
}

// countMatches counts the distinct keywords present in body. body must
// already be lowercased.
func countMatches(body string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(body, kw) {
			n++
		}
	}
	return n
}
