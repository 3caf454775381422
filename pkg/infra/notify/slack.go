package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/spacesync-dev/spacesync/pkg/domain/interfaces"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
)

// SlackNotifier posts sync outcomes to a Slack incoming webhook. With an
// empty URL every call is a no-op, so callers never need to branch on
// whether notifications are configured.
type SlackNotifier struct {
	webhookURL string
}

var _ interfaces.Notifier = (*SlackNotifier)(nil)

// NewSlack creates a SlackNotifier
func NewSlack(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

// NotifySyncResult reports a completed mirror run. Up-to-date runs are
// not posted to keep scheduled syncs quiet.
func (n *SlackNotifier) NotifySyncResult(ctx context.Context, report *model.SyncReport) error {
	if n.webhookURL == "" || report.UpToDate {
		return nil
	}

	text := fmt.Sprintf(":arrows_counterclockwise: mirror *%s* pushed `%s` (%s → %s, %s, trigger: %s)",
		report.Mirror,
		report.Branch,
		report.BeforeHead.Short(),
		report.AfterHead.Short(),
		report.Duration.Round(time.Millisecond),
		report.Trigger,
	)
	return n.post(ctx, text)
}

// NotifySyncFailure reports a failed mirror run
func (n *SlackNotifier) NotifySyncFailure(ctx context.Context, mirror string, syncErr error) error {
	if n.webhookURL == "" {
		return nil
	}

	text := fmt.Sprintf(":rotating_light: mirror *%s* failed: %v", mirror, syncErr)
	return n.post(ctx, text)
}

func (n *SlackNotifier) post(ctx context.Context, text string) error {
	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack notification")
	}
	return nil
}
