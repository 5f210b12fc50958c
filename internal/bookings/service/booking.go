package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/internal/bookings/events"
	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/middleware"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const lockPrefix = "booking_lock_"

type BookingService interface {
	Submit(ctx context.Context, req *model.BookingRequest, headerEmail string) *Submission
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByListing(ctx context.Context, listingID string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

type Option func(*bookingService)

// WithClock replaces time.Now, which decides "today" and completion times.
func WithClock(now func() time.Time) Option {
	return func(s *bookingService) { s.now = now }
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	s := &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the request, checks the listing for overlapping bookings
// and stores the booking when the dates are free. The check and the write
// are separate calls; concurrent submissions for one listing are only
// serialized when the booking lock is enabled.
func (s *bookingService) Submit(ctx context.Context, req *model.BookingRequest, headerEmail string) *Submission {
	sub := newSubmission()
	sub.transition(StateValidating)

	req.ListingID = sanitizer.NormalizeID(req.ListingID)
	log := s.cfg.Log.With(
		"request_id", middleware.RequestIDFromContext(ctx),
		"listing_id", req.ListingID,
	)

	// The resolved requester is validated like a body value, whichever
	// source it came from.
	req.UserEmail = sanitizer.Requester("", req.UserEmail, headerEmail)

	if err := s.validator.Validate(req, model.DateOf(s.now().UTC())); err != nil {
		log.Warn("Booking validation failed", "error", err)
		return sub.reject(validationError(err), s.now())
	}

	booking := &model.Booking{
		ListingID: req.ListingID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		UserEmail: req.UserEmail,
	}
	if booking.UserEmail == "" {
		booking.UserEmail = model.UnknownRequester
	}

	if s.cfg.BookingLockEnabled && s.lockRepo != nil {
		release, appErr := s.acquireListingLock(ctx, booking.ListingID)
		if appErr != nil {
			log.Warn("Could not acquire booking lock", "error", appErr)
			return sub.fail(appErr, s.now())
		}
		defer release()
	}

	existing, err := s.repo.FindOverlapping(ctx, booking.ListingID, booking.Range())
	if err != nil {
		log.Error("Failed to check existing bookings", "error", err)
		return sub.fail(saveFailure(err), s.now())
	}

	if conflicts := overlapping(existing, booking.Range()); len(conflicts) > 0 {
		log.Info("Booking rejected, dates already taken",
			"start_date", booking.StartDate,
			"end_date", booking.EndDate,
			"conflicts", len(conflicts),
		)
		return sub.reject(
			apperrors.Wrap(bookingserrors.ErrDatesTaken, apperrors.CodeConflict, MsgDatesTaken, http.StatusConflict).
				WithDetails(map[string]any{"conflicting_bookings": len(conflicts)}),
			s.now(),
		)
	}

	sub.transition(StateWriting)
	if err := s.repo.Create(ctx, booking); err != nil {
		log.Error("Failed to save booking", "error", err)
		return sub.fail(saveFailure(err), s.now())
	}

	log.Info("Booking created successfully",
		"id", booking.ID,
		"start_date", booking.StartDate,
		"end_date", booking.EndDate,
		"user_email", booking.UserEmail,
	)

	if err := s.publisher.BookingCreated(ctx, booking, middleware.RequestIDFromContext(ctx)); err != nil {
		log.Warn("Failed to publish booking event", "id", booking.ID, "error", err)
	}

	return sub.succeed(booking, s.now(), s.cfg.SuccessDismissAfter)
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.FromStorage("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) ListByListing(ctx context.Context, listingID string) ([]*model.Booking, error) {
	listingID = sanitizer.NormalizeID(listingID)
	if !primitive.IsValidObjectID(listingID) {
		return nil, apperrors.InvalidInput(bookingserrors.ErrInvalidListingID.Error())
	}

	bookings, err := s.repo.FindByListing(ctx, listingID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "listing_id", listingID, "error", err)
		return nil, apperrors.FromStorage("Failed to retrieve bookings", err)
	}

	s.cfg.Log.Debug("Listed bookings", "listing_id", listingID, "count", len(bookings))
	return bookings, nil
}

// --- Helpers ---

func validationError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.Validation(verrs[0].Message, verrs.Fields())
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

// saveFailure classifies a data store error for the guest without exposing
// driver text.
func saveFailure(err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(MsgSaveTimedOut, err)
	}
	return apperrors.Unavailable(MsgSaveFailed, err)
}

// overlapping keeps the stored bookings that share a day with r.
func overlapping(existing []*model.Booking, r model.DateRange) []*model.Booking {
	var conflicts []*model.Booking
	for _, b := range existing {
		if b.Range().Overlaps(r) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// acquireListingLock takes the advisory lock for listingID. A lock left
// behind by a crashed holder is cleared once it has expired.
func (s *bookingService) acquireListingLock(ctx context.Context, listingID string) (func(), *apperrors.AppError) {
	now := s.now()
	lock := &model.BookingLock{
		ID:        lockPrefix + listingID,
		ListingID: listingID,
		ExpiresAt: now.Add(s.cfg.BookingLockTTL),
	}

	err := s.lockRepo.Create(ctx, lock)
	if errors.Is(err, bookingserrors.ErrLockHeld) {
		cleared, clearErr := s.lockRepo.DeleteExpired(ctx, lock.ID, now)
		if clearErr != nil {
			s.cfg.Log.Warn("Failed to clear expired booking lock", "lock_id", lock.ID, "error", clearErr)
		}
		if cleared {
			err = s.lockRepo.Create(ctx, lock)
		}
	}
	if err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return nil, apperrors.Wrap(err, apperrors.CodeConflict, MsgListingBusy, http.StatusConflict)
		}
		return nil, saveFailure(err)
	}

	release := func() {
		if err := s.lockRepo.Delete(context.WithoutCancel(ctx), lock.ID); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lock.ID, "error", err)
		}
	}
	return release, nil
}
