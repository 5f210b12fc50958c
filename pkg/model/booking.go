package model

import (
	"time"
)

// UnknownRequester is stored when a booking arrives without a requester identity.
const UnknownRequester = "unknown"

type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	ListingID string    `json:"listing_id" bson:"listing"`
	StartDate Date      `json:"start_date" bson:"startDate"`
	EndDate   Date      `json:"end_date" bson:"endDate"`
	UserEmail string    `json:"user_email" bson:"userEmail"`
	CreatedAt time.Time `json:"created_at" bson:"created"`
}

func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// BookingRequest is a candidate booking as submitted by a client.
type BookingRequest struct {
	ListingID string `json:"listing_id" validate:"required,mongodb"`
	StartDate Date   `json:"start_date" validate:"required"`
	EndDate   Date   `json:"end_date" validate:"required"`
	UserEmail string `json:"user_email,omitempty" validate:"omitempty,max=254"`
}

func (r *BookingRequest) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}
