// Package git shells out to the git CLI for the repository operations the
// matrix runner performs: branching, committing fixture markers, and
// pushing test branches.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client defines the interface for git operations on local clones.
// All methods take a path parameter since runs target arbitrary repos.
type Client interface {
	RepoRoot(path string) (string, error)
	CurrentBranch(path string) (string, error)
	IsDirty(path string) (bool, error)
	RemoteURL(path string) (string, error)
	CreateBranch(path, name string) error
	Checkout(path, ref string) error
	Pull(path string) error
	Add(path string, files ...string) error
	Commit(path, message string) error
	Push(path, branch string) error
}

// RealClient implements Client using real git commands.
type RealClient struct{}

// NewClient returns a new RealClient.
func NewClient() *RealClient {
	return &RealClient{}
}

func gitCmd(path string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", path}, args...)
	out, err := exec.Command("git", fullArgs...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *RealClient) RepoRoot(path string) (string, error) {
	return gitCmd(path, "rev-parse", "--show-toplevel")
}

func (c *RealClient) CurrentBranch(path string) (string, error) {
	return gitCmd(path, "rev-parse", "--abbrev-ref", "HEAD")
}

func (c *RealClient) IsDirty(path string) (bool, error) {
	out, err := gitCmd(path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (c *RealClient) RemoteURL(path string) (string, error) {
	out, err := gitCmd(path, "remote", "get-url", "origin")
	if err != nil {
		return "", nil // no remote is not an error
	}
	return out, nil
}

func (c *RealClient) CreateBranch(path, name string) error {
	_, err := gitCmd(path, "checkout", "-b", name)
	return err
}

func (c *RealClient) Checkout(path, ref string) error {
	_, err := gitCmd(path, "checkout", ref)
	return err
}

func (c *RealClient) Pull(path string) error {
	_, err := gitCmd(path, "pull", "--ff-only")
	return err
}

func (c *RealClient) Add(path string, files ...string) error {
	_, err := gitCmd(path, append([]string{"add"}, files...)...)
	return err
}

func (c *RealClient) Commit(path, message string) error {
	_, err := gitCmd(path, "commit", "-m", message)
	return err
}

func (c *RealClient) Push(path, branch string) error {
	_, err := gitCmd(path, "push", "-u", "origin", branch)
	return err
}

// ExtractOwnerRepo parses a GitHub remote URL and returns owner/repo.
func ExtractOwnerRepo(remoteURL string) (owner, repo string, err error) {
	// Handle SSH: git@github.com:owner/repo.git
	if strings.HasPrefix(remoteURL, "git@") {
		parts := strings.SplitN(remoteURL, ":", 2)
		if len(parts) != 2 {
			return "", "", fmt.Errorf("cannot parse SSH remote: %s", remoteURL)
		}
		path := strings.TrimSuffix(parts[1], ".git")
		segments := strings.SplitN(path, "/", 2)
		if len(segments) != 2 {
			return "", "", fmt.Errorf("cannot parse owner/repo from: %s", remoteURL)
		}
		return segments[0], segments[1], nil
	}

	// Handle HTTPS: https://github.com/owner/repo.git
	trimmed := strings.TrimSuffix(remoteURL, ".git")
	trimmed = strings.TrimPrefix(trimmed, "https://github.com/")
	trimmed = strings.TrimPrefix(trimmed, "http://github.com/")
	segments := strings.SplitN(trimmed, "/", 2)
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from: %s", remoteURL)
	}
	return segments[0], segments[1], nil
}
