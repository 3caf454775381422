package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

// DefaultBranch is used when a mirror does not name a branch explicitly
const DefaultBranch = types.BranchName("main")

var repoSlugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*/[A-Za-z0-9][A-Za-z0-9._-]*$`)

// GitHubRepo identifies a repository on github.com by "owner/name"
type GitHubRepo struct {
	Slug string `toml:"repo"`
}

// Owner returns the owner part of the slug
func (r GitHubRepo) Owner() string {
	owner, _, _ := strings.Cut(r.Slug, "/")
	return owner
}

// Name returns the repository name part of the slug
func (r GitHubRepo) Name() string {
	_, name, _ := strings.Cut(r.Slug, "/")
	return name
}

// CloneURL returns the https clone URL of the repository
func (r GitHubRepo) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s.git", r.Slug)
}

// Validate checks the slug format
func (r GitHubRepo) Validate() error {
	if !repoSlugPattern.MatchString(r.Slug) {
		return goerr.New("invalid GitHub repository slug, expected owner/name", goerr.V("slug", r.Slug))
	}
	return nil
}

// HubRepo identifies a repository on the Hugging Face hub
type HubRepo struct {
	Slug string         `toml:"repo"`
	Kind types.RepoKind `toml:"kind"`
}

// CloneURL returns the https clone URL on huggingface.co. Model
// repositories live at the hub root, spaces and datasets under a
// kind-specific prefix.
func (r HubRepo) CloneURL() string {
	switch r.Kind {
	case types.RepoKindSpace:
		return fmt.Sprintf("https://huggingface.co/spaces/%s", r.Slug)
	case types.RepoKindDataset:
		return fmt.Sprintf("https://huggingface.co/datasets/%s", r.Slug)
	default:
		return fmt.Sprintf("https://huggingface.co/%s", r.Slug)
	}
}

// APIPath returns the hub API path for the repository
func (r HubRepo) APIPath() string {
	switch r.Kind {
	case types.RepoKindSpace:
		return "/api/spaces/" + r.Slug
	case types.RepoKindDataset:
		return "/api/datasets/" + r.Slug
	default:
		return "/api/models/" + r.Slug
	}
}

// Validate checks the slug format and repository kind
func (r HubRepo) Validate() error {
	if !repoSlugPattern.MatchString(r.Slug) {
		return goerr.New("invalid Hugging Face repository slug, expected owner/name", goerr.V("slug", r.Slug))
	}
	if !r.Kind.IsValid() {
		return goerr.New("invalid Hugging Face repository kind", goerr.V("kind", r.Kind))
	}
	return nil
}

// Mirror binds one GitHub repository branch to one Hugging Face
// repository. The branch carries the same name on both sides.
type Mirror struct {
	Name   string           `toml:"name"`
	Source GitHubRepo       `toml:"github"`
	Target HubRepo          `toml:"huggingface"`
	Branch types.BranchName `toml:"branch"`
	Force  bool             `toml:"force"`
}

// Validate checks the mirror definition and applies the branch default
func (m *Mirror) Validate() error {
	if m.Name == "" {
		return goerr.New("mirror name must not be empty")
	}
	if err := m.Source.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mirror source", goerr.V("mirror", m.Name))
	}
	if err := m.Target.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mirror target", goerr.V("mirror", m.Name))
	}
	if m.Branch == "" {
		m.Branch = DefaultBranch
	}
	return nil
}

// Matches reports whether a push to the given repository slug and ref
// concerns this mirror.
func (m *Mirror) Matches(repoSlug, ref string) bool {
	return repoSlug == m.Source.Slug && ref == m.Branch.Ref()
}
