package gitrepo

import (
	"io"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
)

// Option configures an Engine
type Option func(*Engine)

// WithGitHubToken sets the token used against the source remote. GitHub
// accepts a token as basic-auth password with any non-empty username.
func WithGitHubToken(token string) Option {
	return func(e *Engine) {
		if token == "" {
			return
		}
		e.sourceAuth = &githttp.BasicAuth{
			Username: "x-access-token",
			Password: token,
		}
	}
}

// WithHubToken sets the access token used against the Hugging Face
// remote. The hub ignores the username when a token is supplied.
func WithHubToken(token string) Option {
	return func(e *Engine) {
		if token == "" {
			return
		}
		e.targetAuth = &githttp.BasicAuth{
			Username: "hf",
			Password: token,
		}
	}
}

// WithProgress writes textual transfer progress to w
func WithProgress(w io.Writer) Option {
	return func(e *Engine) {
		e.progress = w
	}
}

// WithRemoteURLs overrides how clone URLs are derived from a mirror
// definition, for providers reachable under a different endpoint than
// the public github.com and huggingface.co hosts.
func WithRemoteURLs(source, target func(m *model.Mirror) string) Option {
	return func(e *Engine) {
		e.sourceURL = source
		e.targetURL = target
	}
}
