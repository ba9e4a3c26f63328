package ports

import (
	"context"
	"time"
)

// Account lifecycle event types published to the internal webhook.
const (
	EventAccountDeleted = "account.deleted"
)

// AccountEvent is a lifecycle notification for downstream services.
type AccountEvent struct {
	Type       string
	AccountID  string
	Username   string
	OccurredAt time.Time
}

// EventSink delivers a single account event. Implementations must be safe
// for concurrent use: the dispatcher fans events out across workers.
type EventSink interface {
	Deliver(ctx context.Context, event AccountEvent) error
}

// EventPublisher enqueues events for asynchronous delivery. Publishing never
// blocks an admin mutation on downstream availability.
type EventPublisher interface {
	Publish(event AccountEvent)
}
