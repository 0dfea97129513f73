package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reviewbench/reviewbench/internal/git"
	"github.com/reviewbench/reviewbench/internal/models"
)

// Status is the outcome of provisioning one model's test branch.
type Status string

const (
	StatusPushed Status = "pushed"
	StatusError  Status = "error"
)

// Provisioning records what happened for one model in a matrix run.
type Provisioning struct {
	Model     string              `json:"model"`
	Branch    string              `json:"branch,omitempty"`
	Workflow  string              `json:"workflow,omitempty"`
	Status    Status              `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Config    *models.ModelConfig `json:"config,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// Runner provisions per-model test branches in a local clone. Each model
// gets its own branch, a fixture marker commit to give the reviewer a diff,
// and a dedicated workflow, all pushed to origin.
type Runner struct {
	Git         git.Client
	RepoPath    string
	BaseBranch  string
	FixturePath string // relative to the repo root
	WorkflowDir string // relative to the repo root

	// Now stamps branches and markers, replaceable in tests.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Provision pushes one model's test branch. Failures are recorded on the
// returned Provisioning rather than raised, so a matrix run covers every
// model it can.
func (r *Runner) Provision(cfg models.ModelConfig) Provisioning {
	started := r.now()
	prov := Provisioning{
		Model:     cfg.Name,
		Status:    StatusPushed,
		Timestamp: started,
		Config:    &cfg,
	}

	fail := func(err error) Provisioning {
		prov.Status = StatusError
		prov.Error = err.Error()
		return prov
	}

	if err := r.Git.Checkout(r.RepoPath, r.BaseBranch); err != nil {
		return fail(err)
	}

	branch := BranchName(cfg.Name, started)
	if err := r.Git.CreateBranch(r.RepoPath, branch); err != nil {
		return fail(err)
	}
	prov.Branch = branch

	if err := AppendMarker(filepath.Join(r.RepoPath, r.FixturePath), cfg.Name, started); err != nil {
		return fail(err)
	}
	if err := r.Git.Add(r.RepoPath, r.FixturePath); err != nil {
		return fail(err)
	}
	if err := r.Git.Commit(r.RepoPath, fmt.Sprintf("test: %s benchmark run", cfg.Name)); err != nil {
		return fail(err)
	}

	content, err := Generate(cfg)
	if err != nil {
		return fail(err)
	}
	wfRel := filepath.Join(r.WorkflowDir, Filename(cfg.Name))
	wfAbs := filepath.Join(r.RepoPath, wfRel)
	if err := os.MkdirAll(filepath.Dir(wfAbs), 0o755); err != nil {
		return fail(fmt.Errorf("creating workflow directory: %w", err))
	}
	if err := os.WriteFile(wfAbs, content, 0o644); err != nil {
		return fail(fmt.Errorf("writing workflow: %w", err))
	}
	prov.Workflow = wfRel

	if err := r.Git.Add(r.RepoPath, wfRel); err != nil {
		return fail(err)
	}
	if err := r.Git.Commit(r.RepoPath, fmt.Sprintf("add: workflow for %s test", cfg.Name)); err != nil {
		return fail(err)
	}
	if err := r.Git.Push(r.RepoPath, branch); err != nil {
		return fail(err)
	}

	return prov
}

// ProvisionAll runs Provision for each model in order and returns to the
// base branch when done.
func (r *Runner) ProvisionAll(cfgs []models.ModelConfig) []Provisioning {
	out := make([]Provisioning, 0, len(cfgs))
	for _, cfg := range cfgs {
		out = append(out, r.Provision(cfg))
	}
	// Leave the clone on the base branch regardless of outcomes.
	_ = r.Git.Checkout(r.RepoPath, r.BaseBranch)
	return out
}
