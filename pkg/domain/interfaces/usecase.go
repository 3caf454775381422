package interfaces

import (
	"context"

	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// SyncUseCase defines operations for running mirrors
type SyncUseCase interface {
	// SyncMirror runs a single mirror by name
	SyncMirror(ctx context.Context, name string, trigger types.Trigger) (*model.SyncReport, error)

	// SyncAll runs every configured mirror, continuing past per-mirror
	// failures. The returned reports cover the mirrors that completed.
	SyncAll(ctx context.Context, trigger types.Trigger) ([]*model.SyncReport, error)
}

// VerifyUseCase defines operations for comparing remote heads
type VerifyUseCase interface {
	// VerifyMirror compares the branch heads of a single mirror
	VerifyMirror(ctx context.Context, name string) (*model.VerifyReport, error)

	// VerifyAll compares the branch heads of every configured mirror
	VerifyAll(ctx context.Context) ([]*model.VerifyReport, error)
}
