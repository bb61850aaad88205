package shared

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus defines the interface for publishing and subscribing to domain
// events. Implementations live in app/eventbus.
type EventBus interface {
	// Publish publishes a message to a topic.
	Publish(topic string, msg *message.Message) error

	// Subscribe returns a channel of messages for a topic. The subscription
	// is closed when ctx is cancelled.
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)

	// Close shuts down the underlying transport.
	Close() error
}
