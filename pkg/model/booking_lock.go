package model

import "time"

// BookingLock is an advisory lock held while a submission for one listing
// runs its overlap check and write.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ListingID string    `bson:"listing" json:"listing_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
