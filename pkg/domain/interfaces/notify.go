package interfaces

import (
	"context"

	"github.com/spacesync-dev/spacesync/pkg/domain/model"
)

// Notifier delivers sync outcomes to an external channel
type Notifier interface {
	// NotifySyncResult reports a completed mirror run
	NotifySyncResult(ctx context.Context, report *model.SyncReport) error

	// NotifySyncFailure reports a failed mirror run
	NotifySyncFailure(ctx context.Context, mirror string, err error) error
}
