package model

import "time"

const EventBookingCreated = "booking.created"

// BookingCreatedEvent is published after a booking has been stored.
type BookingCreatedEvent struct {
	BookingID string    `json:"booking_id"`
	ListingID string    `json:"listing_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBookingCreatedEvent(b *Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID: b.ID,
		ListingID: b.ListingID,
		StartDate: b.StartDate.String(),
		EndDate:   b.EndDate.String(),
		UserEmail: b.UserEmail,
		CreatedAt: b.CreatedAt,
	}
}
