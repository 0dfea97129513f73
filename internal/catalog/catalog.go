// Package catalog holds the ground-truth defect table for the benchmark
// fixture. The fixture source is seeded with known issues at fixed lines;
// reviewer models are scored by how much of this table their comments cover.
package catalog

import "github.com/reviewbench/reviewbench/internal/models"

// Catalog is an immutable set of known issues grouped by category.
type Catalog struct {
	issues map[models.Category][]models.KnownIssue
}

// New builds a catalog from a category mapping. The mapping is copied so
// later mutation of the input cannot change the catalog.
func New(issues map[models.Category][]models.KnownIssue) *Catalog {
	copied := make(map[models.Category][]models.KnownIssue, len(issues))
	for cat, list := range issues {
		copied[cat] = append([]models.KnownIssue(nil), list...)
	}
	return &Catalog{issues: copied}
}

// Issues returns a copy of the known issues for cat.
func (c *Catalog) Issues(cat models.Category) []models.KnownIssue {
	return append([]models.KnownIssue(nil), c.issues[cat]...)
}

// Count returns the number of known issues in cat.
func (c *Catalog) Count(cat models.Category) int {
	return len(c.issues[cat])
}

// Total returns the number of known issues across all categories.
func (c *Catalog) Total() int {
	total := 0
	for _, list := range c.issues {
		total += len(list)
	}
	return total
}

// Breakdown returns the per-category issue counts.
func (c *Catalog) Breakdown() map[models.Category]int {
	out := make(map[models.Category]int, len(c.issues))
	for _, cat := range models.Categories() {
		out[cat] = len(c.issues[cat])
	}
	return out
}

// Default returns the catalog of defects planted in the benchmark fixture.
func Default() *Catalog {
	return New(map[models.Category][]models.KnownIssue{
		models.CategorySecurity: {
			{Line: 8, Type: "hardcoded_secret", Severity: models.SeverityHigh, Description: "Hardcoded API key"},
			{Line: 15, Type: "sql_injection", Severity: models.SeverityCritical, Description: "SQL injection in getUserData"},
			{Line: 19, Type: "sql_injection", Severity: models.SeverityCritical, Description: "SQL injection in filters"},
			{Line: 30, Type: "xss", Severity: models.SeverityHigh, Description: "XSS in user profile generation"},
			{Line: 33, Type: "xss", Severity: models.SeverityHigh, Description: "XSS in script tag"},
			{Line: 65, Type: "command_injection", Severity: models.SeverityCritical, Description: "Command injection in exec"},
			{Line: 75, Type: "hardcoded_secret", Severity: models.SeverityHigh, Description: "Hardcoded database password"},
			{Line: 85, Type: "crypto_weakness", Severity: models.SeverityMedium, Description: "Weak cryptographic implementation"},
			{Line: 95, Type: "auth_bypass", Severity: models.SeverityCritical, Description: "Authentication bypass vulnerability"},
			{Line: 105, Type: "info_disclosure", Severity: models.SeverityMedium, Description: "Information disclosure in error messages"},
			{Line: 115, Type: "hardcoded_secret", Severity: models.SeverityHigh, Description: "Hardcoded JWT secret"},
			{Line: 125, Type: "command_injection", Severity: models.SeverityCritical, Description: "Command injection in file operations"},
			{Line: 135, Type: "crypto_weakness", Severity: models.SeverityMedium, Description: "Insecure random number generation"},
			{Line: 145, Type: "info_disclosure", Severity: models.SeverityMedium, Description: "Sensitive data exposure"},
			{Line: 155, Type: "auth_bypass", Severity: models.SeverityHigh, Description: "Missing authentication check"},
		},
		models.CategoryPerformance: {
			{Line: 38, Type: "race_condition", Severity: models.SeverityHigh, Description: "Race condition in balance update"},
			{Line: 45, Type: "memory_leak", Severity: models.SeverityMedium, Description: "Memory leak in monitoring"},
			{Line: 55, Type: "inefficient_algorithm", Severity: models.SeverityMedium, Description: "O(n²) complexity in search"},
			{Line: 165, Type: "memory_leak", Severity: models.SeverityMedium, Description: "Unclosed resources"},
			{Line: 175, Type: "blocking_operation", Severity: models.SeverityMedium, Description: "Synchronous heavy computation"},
		},
		models.CategoryQuality: {
			{Line: 12, Type: "no_input_validation", Severity: models.SeverityMedium, Description: "Missing input validation"},
			{Line: 22, Type: "no_error_handling", Severity: models.SeverityMedium, Description: "Missing error handling"},
			{Line: 68, Type: "type_safety", Severity: models.SeverityLow, Description: "Any type usage"},
			{Line: 78, Type: "type_safety", Severity: models.SeverityLow, Description: "Missing type annotations"},
			{Line: 88, Type: "type_safety", Severity: models.SeverityLow, Description: "Unsafe type casting"},
			{Line: 98, Type: "type_safety", Severity: models.SeverityLow, Description: "Missing null checks"},
			{Line: 108, Type: "no_error_handling", Severity: models.SeverityMedium, Description: "Unhandled promise rejection"},
		},
	})
}
