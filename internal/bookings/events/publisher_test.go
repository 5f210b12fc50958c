package events

import (
	"context"
	"errors"
	"testing"

	"staybook/pkg/kafka"
	"staybook/pkg/model"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	return m.publishFunc(ctx, msg)
}

func TestKafkaPublisher_BookingCreated(t *testing.T) {
	var got kafka.Message
	p := &kafkaPublisher{producer: &mockProducer{
		publishFunc: func(ctx context.Context, msg kafka.Message) error {
			got = msg
			return nil
		},
	}}

	booking := &model.Booking{
		ID:        "b1",
		ListingID: "l1",
		StartDate: model.NewDate(2024, 6, 1),
		EndDate:   model.NewDate(2024, 6, 5),
		UserEmail: "guest@example.com",
	}

	if err := p.BookingCreated(context.Background(), booking, "req-1"); err != nil {
		t.Fatalf("BookingCreated() error = %v", err)
	}

	if got.Key != "l1" {
		t.Errorf("key = %q, want listing id", got.Key)
	}
	if got.GetEventType() != model.EventBookingCreated || got.GetCorrelationID() != "req-1" {
		t.Errorf("headers = %v", got.Headers)
	}

	var event model.BookingCreatedEvent
	if err := got.DecodeValue(&event); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if event.BookingID != "b1" || event.StartDate != "2024-06-01" || event.EndDate != "2024-06-05" {
		t.Errorf("event = %+v", event)
	}
}

func TestKafkaPublisher_WrapsPublishError(t *testing.T) {
	publishErr := errors.New("broker down")
	p := &kafkaPublisher{producer: &mockProducer{
		publishFunc: func(ctx context.Context, msg kafka.Message) error { return publishErr },
	}}

	err := p.BookingCreated(context.Background(), &model.Booking{ID: "b1", ListingID: "l1"}, "")
	if !errors.Is(err, publishErr) {
		t.Errorf("error = %v, want wrapped %v", err, publishErr)
	}
}
