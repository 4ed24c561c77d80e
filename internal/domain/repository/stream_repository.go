package repository

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

// StreamRepository defines the event-stream boundary used to hand due alerts
// to the notification side.
type StreamRepository interface {
	// Publish appends a JSON-encoded payload to a stream.
	Publish(ctx context.Context, stream string, payload any) error

	// CreateConsumerGroup creates the consumer group for a stream, tolerant
	// of the group already existing.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages via a consumer group until ctx is done.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
