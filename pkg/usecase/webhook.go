package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/spacesync-dev/spacesync/pkg/domain/interfaces"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
	"github.com/spacesync-dev/spacesync/pkg/utils/async"
)

type webhookUseCase struct {
	syncUC  interfaces.SyncUseCase
	mirrors []*model.Mirror
}

// NewWebhook creates a new instance of WebhookUseCase. Push events
// matching a configured mirror trigger an asynchronous mirror run.
func NewWebhook(syncUC interfaces.SyncUseCase, mirrors []*model.Mirror) interfaces.WebhookUseCase {
	return &webhookUseCase{
		syncUC:  syncUC,
		mirrors: mirrors,
	}
}

// ProcessEvent processes a webhook event
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("received webhook event",
		"id", event.ID,
		"type", event.Type,
		"repository", event.Repository,
		"ref", event.Ref,
		"sender", event.Sender,
	)

	if !event.IsSupportedEvent() {
		logger.Debug("ignoring unsupported event",
			"type", event.Type,
			"deleted", event.Deleted,
		)
		return nil
	}

	matched := 0
	for _, mirror := range uc.mirrors {
		if !mirror.Matches(event.Repository, event.Ref) {
			continue
		}
		matched++

		name := mirror.Name
		async.Dispatch(ctx, func(ctx context.Context) error {
			_, err := uc.syncUC.SyncMirror(ctx, name, types.TriggerWebhook)
			return err
		})
	}

	if matched == 0 {
		logger.Debug("push does not match any mirror",
			"repository", event.Repository,
			"ref", event.Ref,
		)
	}

	return nil
}
