// Package github wraps the GitHub REST API for one repository. It is a thin
// layer: methods return API types and errors, and callers decide how to
// degrade when the API is unreachable.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

// Client accesses one GitHub repository.
type Client struct {
	Owner string
	Repo  string

	gh *github.Client
}

// NewClient builds a client for an "owner/name" repository reference.
// A non-empty token authenticates the transport. httpClient overrides the
// underlying transport, used by tests.
func NewClient(repo, token string, httpClient *http.Client) (*Client, error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return nil, err
	}

	if httpClient == nil && token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	return &Client{Owner: owner, Repo: name, gh: github.NewClient(httpClient)}, nil
}

// ParseRepo splits an "owner/name" reference.
func ParseRepo(repo string) (string, string, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q (want owner/name)", repo)
	}
	return parts[0], parts[1], nil
}

// PullRequest fetches the PR metadata.
func (c *Client) PullRequest(ctx context.Context, number int) (*github.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.Owner, c.Repo, number)
	if err != nil {
		return nil, fmt.Errorf("get pull request #%d: %w", number, err)
	}
	return pr, nil
}

// ReviewComments lists every line-anchored review comment on the PR,
// walking all pages.
func (c *Client) ReviewComments(ctx context.Context, number int) ([]*github.PullRequestComment, error) {
	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.PullRequestComment
	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, c.Owner, c.Repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list review comments: %w", err)
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// Reviews lists every submitted review on the PR, walking all pages.
func (c *Client) Reviews(ctx context.Context, number int) ([]*github.PullRequestReview, error) {
	opts := &github.ListOptions{PerPage: 100}
	var all []*github.PullRequestReview
	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, c.Owner, c.Repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		all = append(all, reviews...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// IssueComments lists the PR's conversation comments, walking all pages.
func (c *Client) IssueComments(ctx context.Context, number int) ([]*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.IssueComment
	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.Owner, c.Repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list issue comments: %w", err)
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// WorkflowRuns lists recent workflow runs for a branch, newest first.
func (c *Client) WorkflowRuns(ctx context.Context, branch string) ([]*github.WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		Branch:      branch,
		ListOptions: github.ListOptions{PerPage: 50},
	}
	runs, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, c.Owner, c.Repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list workflow runs for %s: %w", branch, err)
	}
	return runs.WorkflowRuns, nil
}
