package model

import (
	"time"

	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush    WebhookEventType = "push"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Repository string           // Repository full name (owner/name)
	Ref        string           // Pushed ref (refs/heads/...)
	HeadSHA    types.CommitSHA  // Head commit after the push
	Deleted    bool             // Whether the ref was deleted
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// IsSupportedEvent checks if the event is supported. Only branch pushes
// trigger mirror runs; ref deletions are intentionally ignored so a
// deleted source branch never tears down the hub copy.
func (e *WebhookEvent) IsSupportedEvent() bool {
	return e.Type == EventTypePush && !e.Deleted
}
