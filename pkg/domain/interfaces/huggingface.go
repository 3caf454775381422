package interfaces

import (
	"context"

	"github.com/spacesync-dev/spacesync/pkg/domain/model"
)

// HubClient defines operations against the Hugging Face hub API
type HubClient interface {
	// WhoAmI resolves the identity behind the configured access token
	WhoAmI(ctx context.Context) (*model.HubIdentity, error)

	// RepoInfo fetches repository metadata from the hub
	RepoInfo(ctx context.Context, repo model.HubRepo) (*model.HubRepoInfo, error)
}
