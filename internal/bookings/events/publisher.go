package events

import (
	"context"
	"fmt"

	"staybook/pkg/kafka"
	"staybook/pkg/model"
)

const (
	schemaVersion = "1"
	source        = "staybook-api"
)

// Publisher announces stored bookings to other services.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking, correlationID string) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messagePublisher
}

func NewKafkaPublisher(producer *kafka.Producer) Publisher {
	return &kafkaPublisher{producer: producer}
}

// BookingCreated keys the event by listing so events of one listing keep
// their order.
func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking, correlationID string) error {
	msg, err := kafka.NewMessage().
		WithKey(booking.ListingID).
		WithValue(model.NewBookingCreatedEvent(booking)).
		WithEventType(model.EventBookingCreated).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithCorrelationID(correlationID).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build booking event: %w", err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when events are disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(context.Context, *model.Booking, string) error {
	return nil
}
