// Package platform provides the version-control host abstraction. The
// runner only needs a handful of operations: fetch a pull request's diff and
// metadata, read a repository file, and post the review comment back.
package platform

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested resource does not exist on the host.
var ErrNotFound = errors.New("resource not found")

// Platform is the abstraction over version-control hosts.
type Platform interface {
	// Name returns the platform name (e.g. "github").
	Name() string

	// GetDiff retrieves the unified diff for a pull request.
	GetDiff(ctx context.Context, prID int) (string, error)

	// GetPRInfo retrieves pull request metadata.
	GetPRInfo(ctx context.Context, prID int) (*PRInfo, error)

	// GetFile retrieves a file's content at a ref. Returns ErrNotFound
	// when the file does not exist.
	GetFile(ctx context.Context, path, ref string) (string, error)

	// PostComment posts a comment on a pull request.
	PostComment(ctx context.Context, opts CommentOptions) error
}

// CommentOptions contains options for posting a comment.
type CommentOptions struct {
	PRID int
	Body string
}

// PRInfo contains pull request metadata.
type PRInfo struct {
	Number     int
	Title      string
	Body       string
	Author     string
	BaseBranch string
	HeadBranch string
	HeadSHA    string
	Labels     []string
}
