package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"

	"github.com/leetrboo/leetrboo-api/app/shared"
)

// eventBus implements the shared.EventBus interface on top of a watermill
// publisher/subscriber pair.
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	natsConn   *nc.Conn
	logger     *slog.Logger
}

// NewEventBus returns an EventBus backed by NATS when natsURL is set, or an
// in-process gochannel pub/sub otherwise. The gochannel bus is the default
// for a single-process deployment; NATS lets several replicas share the feed.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (shared.EventBus, error) {
	if natsURL == "" {
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		)
		return &eventBus{publisher: pubSub, subscriber: pubSub, logger: logger}, nil
	}
	return newNATSEventBus(natsURL, logger)
}

func newNATSEventBus(natsURL string, logger *slog.Logger) (shared.EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaller := &wnats.NATSMarshaler{}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		publisher.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		natsConn:   natsConn,
		logger:     logger,
	}, nil
}

func (b *eventBus) Publish(topic string, msg *message.Message) error {
	if err := b.publisher.Publish(topic, msg); err != nil {
		b.logger.Error("Failed to publish event",
			slog.String("topic", topic),
			slog.Any("error", err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (b *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return messages, nil
}

func (b *eventBus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("failed to close publisher: %w", err)
	}
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("failed to close subscriber: %w", err)
	}
	if b.natsConn != nil {
		b.natsConn.Close()
	}
	return nil
}
