package interfaces

import (
	"context"

	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

// MirrorEngine defines git-level operations on a mirror pair
type MirrorEngine interface {
	// Sync fetches the branch from the source remote and pushes it to
	// the target remote. A non-fast-forward rejection surfaces as
	// model.ErrHistoryDiverged unless the mirror enables force.
	Sync(ctx context.Context, mirror *model.Mirror, trigger types.Trigger) (*model.SyncReport, error)

	// Heads resolves the branch head on both remotes without touching
	// the local cache. A missing branch yields an empty hash.
	Heads(ctx context.Context, mirror *model.Mirror) (source, target types.CommitSHA, err error)
}
