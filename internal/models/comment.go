package models

import "time"

// CommentKind distinguishes line-anchored review comments from general
// review bodies.
type CommentKind string

const (
	CommentKindInline  CommentKind = "inline"
	CommentKindGeneral CommentKind = "general"
)

// Comment is a single review artifact posted on a pull request, normalized
// from the GitHub API representations.
type Comment struct {
	Author    string
	Body      string
	Path      string // file path for inline comments, empty otherwise
	Line      int    // 0 when not anchored to a line
	CreatedAt time.Time
	Kind      CommentKind
}

// ModelSession groups the comments attributed to one model on one pull
// request, in the order they were fetched.
type ModelSession struct {
	Model    string
	Comments []Comment
}
