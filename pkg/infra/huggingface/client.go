// Package huggingface is a minimal client for the Hugging Face hub REST
// API. Git transfer happens through the engine; this client only answers
// "does the token work" and "what does the hub think the repo head is".
package huggingface

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

const defaultBaseURL = "https://huggingface.co"

// Client calls the Hugging Face hub API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the hub endpoint
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a hub API client. The token may be empty for read access
// to public repositories.
func New(token string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WhoAmI resolves the identity behind the access token
func (c *Client) WhoAmI(ctx context.Context) (*model.HubIdentity, error) {
	var resp whoAmIResponse
	if err := c.getJSON(ctx, "/api/whoami-v2", &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve hub identity")
	}

	return &model.HubIdentity{
		Name: resp.Name,
		Type: resp.Type,
	}, nil
}

// RepoInfo fetches repository metadata from the hub
func (c *Client) RepoInfo(ctx context.Context, repo model.HubRepo) (*model.HubRepoInfo, error) {
	var resp repoResponse
	if err := c.getJSON(ctx, repo.APIPath(), &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get hub repository",
			goerr.V("repo", repo.Slug),
			goerr.V("kind", repo.Kind),
		)
	}

	return &model.HubRepoInfo{
		ID:        resp.ID,
		SHA:       types.CommitSHA(resp.SHA),
		Private:   resp.Private,
		FileCount: len(resp.Siblings),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "hub request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return goerr.New("hub rejected the access token", goerr.V("path", path))
	case http.StatusNotFound:
		return goerr.New("hub repository not found", goerr.V("path", path))
	default:
		return goerr.New("unexpected hub response",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode hub response", goerr.V("path", path))
	}
	return nil
}
