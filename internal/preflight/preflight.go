// Package preflight validates a local clone before a matrix run starts
// pushing test branches from it.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reviewbench/reviewbench/internal/git"
)

// Check represents a single precondition check.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Checker evaluates matrix run preconditions.
type Checker struct {
	git git.Client
}

// NewChecker returns a Checker using g for repository checks.
func NewChecker(g git.Client) *Checker {
	return &Checker{git: g}
}

// Run evaluates every precondition for provisioning test branches from the
// clone at path. fixturePath and workflowDir are relative to the repo root.
func (c *Checker) Run(path, fixturePath, workflowDir string) []Check {
	var checks []Check

	checks = append(checks, c.checkRepo(path))
	checks = append(checks, c.checkClean(path))
	checks = append(checks, c.checkRemote(path))
	checks = append(checks, checkFile(path, fixturePath, "Benchmark fixture"))
	checks = append(checks, checkDir(path, workflowDir, "Workflow directory"))

	return checks
}

// AllPassed reports whether every check passed.
func AllPassed(checks []Check) bool {
	for _, ch := range checks {
		if !ch.Passed {
			return false
		}
	}
	return true
}

func (c *Checker) checkRepo(path string) Check {
	root, err := c.git.RepoRoot(path)
	if err != nil {
		return Check{Name: "Git repository", Passed: false, Detail: err.Error()}
	}
	return Check{Name: "Git repository", Passed: true, Detail: root}
}

func (c *Checker) checkClean(path string) Check {
	dirty, err := c.git.IsDirty(path)
	if err != nil {
		return Check{Name: "Clean working tree", Passed: false, Detail: err.Error()}
	}
	if dirty {
		return Check{Name: "Clean working tree", Passed: false, Detail: "uncommitted changes present"}
	}
	return Check{Name: "Clean working tree", Passed: true, Detail: "no uncommitted changes"}
}

func (c *Checker) checkRemote(path string) Check {
	url, err := c.git.RemoteURL(path)
	if err != nil || url == "" {
		return Check{Name: "Push remote", Passed: false, Detail: "no origin remote configured"}
	}
	return Check{Name: "Push remote", Passed: true, Detail: url}
}

func checkFile(base, name, label string) Check {
	info, err := os.Stat(filepath.Join(base, name))
	if err == nil && !info.IsDir() {
		return Check{Name: label, Passed: true, Detail: name + " found"}
	}
	return Check{Name: label, Passed: false, Detail: name + " missing"}
}

func checkDir(base, name, label string) Check {
	info, err := os.Stat(filepath.Join(base, name))
	if err == nil && info.IsDir() {
		return Check{Name: label, Passed: true, Detail: name + string(os.PathSeparator) + " found"}
	}
	return Check{Name: label, Passed: false, Detail: fmt.Sprintf("%s%c missing", name, os.PathSeparator)}
}
