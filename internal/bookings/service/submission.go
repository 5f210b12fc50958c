package service

import (
	"time"

	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
)

// State is a step of the booking submission workflow.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateWriting    State = "writing"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

const (
	MsgDatesTaken   = "This listing is already booked for the selected dates."
	MsgSaveFailed   = "There was an error saving your booking. Please try again."
	MsgSaveTimedOut = "Saving your booking took too long. Please try again."
	MsgListingBusy  = "This listing is currently being booked by another request. Please try again."
	MsgSucceeded    = "Booking Successful"
)

// Submission is the outcome of one Submit call. Rejected and Failed carry
// Err; Succeeded carries Booking and a DismissAt after which the success
// notice reverts to Idle.
type Submission struct {
	State       State
	Booking     *model.Booking
	Err         *apperrors.AppError
	CompletedAt time.Time
	DismissAt   time.Time
	History     []State
}

func newSubmission() *Submission {
	return &Submission{
		State:   StateIdle,
		History: []State{StateIdle},
	}
}

func (s *Submission) transition(to State) {
	s.State = to
	s.History = append(s.History, to)
}

func (s *Submission) reject(err *apperrors.AppError, now time.Time) *Submission {
	s.Err = err
	s.CompletedAt = now
	s.transition(StateRejected)
	return s
}

func (s *Submission) fail(err *apperrors.AppError, now time.Time) *Submission {
	s.Err = err
	s.CompletedAt = now
	s.transition(StateFailed)
	return s
}

func (s *Submission) succeed(b *model.Booking, now time.Time, dismissAfter time.Duration) *Submission {
	s.Booking = b
	s.CompletedAt = now
	s.DismissAt = now.Add(dismissAfter)
	s.transition(StateSucceeded)
	return s
}

// StateAt reports the state as seen at now. A success notice is dismissed
// once DismissAt has passed; no other state changes over time.
func (s *Submission) StateAt(now time.Time) State {
	if s.State == StateSucceeded && !now.Before(s.DismissAt) {
		return StateIdle
	}
	return s.State
}

// Message is the user-facing text for the outcome.
func (s *Submission) Message() string {
	switch {
	case s.Err != nil:
		return s.Err.Message
	case s.State == StateSucceeded:
		return MsgSucceeded
	default:
		return ""
	}
}
