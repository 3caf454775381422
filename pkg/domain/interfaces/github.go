package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
)

// GitHubClient defines operations for interacting with the GitHub API
type GitHubClient interface {
	// Repository fetches repository metadata (default branch, visibility)
	Repository(ctx context.Context, owner, repo string) (*github.Repository, error)

	// Identity returns the login the configured credentials act as
	Identity(ctx context.Context) (string, error)
}
