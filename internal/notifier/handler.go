package notifier

import (
	"context"
	"fmt"

	"staybook/pkg/kafka"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

// Sink delivers a booking confirmation to the guest.
type Sink interface {
	Confirm(ctx context.Context, event model.BookingCreatedEvent) error
}

type logSink struct {
	log *logger.Logger
}

// NewLogSink writes confirmations to the service log.
func NewLogSink(log *logger.Logger) Sink {
	return &logSink{log: log}
}

func (s *logSink) Confirm(_ context.Context, event model.BookingCreatedEvent) error {
	s.log.Info("Booking confirmed",
		"booking_id", event.BookingID,
		"listing_id", event.ListingID,
		"start_date", event.StartDate,
		"end_date", event.EndDate,
		"user_email", event.UserEmail,
	)
	return nil
}

type Handler struct {
	sink Sink
	log  *logger.Logger
}

func NewHandler(sink Sink, log *logger.Logger) *Handler {
	return &Handler{sink: sink, log: log}
}

// Handle is a kafka.MessageHandler for booking.created events. Payloads that
// can never be handled return permanent errors so they go to the DLQ.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	if t := msg.GetEventType(); t != "" && t != model.EventBookingCreated {
		h.log.Debug("Ignoring event", "event_type", t, "event_id", msg.GetEventID())
		return nil
	}

	var event model.BookingCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("invalid booking.created payload", err)
	}
	if event.BookingID == "" || event.ListingID == "" {
		return kafka.NewPermanentError(
			fmt.Sprintf("booking.created event %s is missing ids", msg.GetEventID()), nil)
	}

	if err := h.sink.Confirm(ctx, event); err != nil {
		return kafka.NewTransientError("failed to send booking confirmation", err)
	}
	return nil
}
