// Package fetch retrieves and normalizes the review artifacts posted on a
// pull request. Fetching degrades instead of failing: a missing credential
// or an API error produces warnings and an empty (or partial) comment set,
// and the benchmark run carries on with what it got.
package fetch

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v58/github"

	"github.com/reviewbench/reviewbench/internal/models"
)

// Lister is the subset of the GitHub client the fetcher needs.
type Lister interface {
	ReviewComments(ctx context.Context, number int) ([]*gh.PullRequestComment, error)
	Reviews(ctx context.Context, number int) ([]*gh.PullRequestReview, error)
	IssueComments(ctx context.Context, number int) ([]*gh.IssueComment, error)
}

// Result carries the normalized comments for one PR plus any warnings
// recorded while fetching. Warnings mean parts of the data are missing;
// they never abort a run.
type Result struct {
	Comments []models.Comment
	Warnings []string
}

// Fetcher pulls review data for pull requests. A nil client degrades every
// fetch to an empty result (no credential configured).
type Fetcher struct {
	client Lister
}

// New returns a Fetcher over client. client may be nil.
func New(client Lister) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch pulls the line-anchored review comments and the general reviews for
// the PR. Comments keep API order within each resource type; general reviews
// with an empty body are discarded.
func (f *Fetcher) Fetch(ctx context.Context, number int) *Result {
	res := &Result{}
	if f.client == nil {
		res.Warnings = append(res.Warnings, "no GitHub credential configured; skipping fetch")
		return res
	}

	comments, err := f.client.ReviewComments(ctx, number)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("review comments unavailable: %v", err))
	}
	for _, c := range comments {
		res.Comments = append(res.Comments, models.Comment{
			Author:    c.GetUser().GetLogin(),
			Body:      c.GetBody(),
			Path:      c.GetPath(),
			Line:      c.GetLine(),
			CreatedAt: c.GetCreatedAt().Time,
			Kind:      models.CommentKindInline,
		})
	}

	reviews, err := f.client.Reviews(ctx, number)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("reviews unavailable: %v", err))
	}
	for _, r := range reviews {
		if r.GetBody() == "" {
			continue
		}
		res.Comments = append(res.Comments, models.Comment{
			Author:    r.GetUser().GetLogin(),
			Body:      r.GetBody(),
			CreatedAt: r.GetSubmittedAt().Time,
			Kind:      models.CommentKindGeneral,
		})
	}

	return res
}

// FetchAll additionally pulls the PR's conversation comments, which the
// survey collector counts but the benchmark scorer ignores.
func (f *Fetcher) FetchAll(ctx context.Context, number int) *Result {
	res := f.Fetch(ctx, number)
	if f.client == nil {
		return res
	}

	comments, err := f.client.IssueComments(ctx, number)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("issue comments unavailable: %v", err))
	}
	for _, c := range comments {
		if c.GetBody() == "" {
			continue
		}
		res.Comments = append(res.Comments, models.Comment{
			Author:    c.GetUser().GetLogin(),
			Body:      c.GetBody(),
			CreatedAt: c.GetCreatedAt().Time,
			Kind:      models.CommentKindGeneral,
		})
	}

	return res
}
