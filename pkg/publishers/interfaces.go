package publishers

import "context"

// Publisher sends events to a downstream sink (SQS, SNS, Pub/Sub, HTTP).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// sender delivers one encoded event to a queue or topic.
type sender interface {
	Send(ctx context.Context, evt Event) error
}
