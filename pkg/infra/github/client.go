package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/interfaces"
)

type client struct {
	githubClient   *github.Client
	installationID int64
	isApp          bool
}

// NewClient creates a GitHub client authenticated by a personal access
// token. An empty token yields an unauthenticated client, which is
// sufficient for public source repositories.
func NewClient(token string) interfaces.GitHubClient {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &client{githubClient: gh}
}

// NewAppClient creates a GitHub client with App installation
// authentication
func NewAppClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	return &client{
		githubClient:   github.NewClient(&http.Client{Transport: itr}),
		installationID: installationID,
		isApp:          true,
	}, nil
}

// Repository fetches repository metadata
func (c *client) Repository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	r, _, err := c.githubClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}
	return r, nil
}

// Identity returns the login the credentials act as. Installation tokens
// cannot call the /user endpoint, so App clients report their
// installation instead.
func (c *client) Identity(ctx context.Context) (string, error) {
	if c.isApp {
		return fmt.Sprintf("app installation %d", c.installationID), nil
	}

	user, _, err := c.githubClient.Users.Get(ctx, "")
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve authenticated user")
	}
	return user.GetLogin(), nil
}
