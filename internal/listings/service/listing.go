package service

import (
	"context"
	"errors"

	"staybook/internal/listings/cache"
	listingserrors "staybook/internal/listings/errors"
	"staybook/internal/listings/repository"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
)

const MsgListingsUnavailable = "Listings are currently unavailable. Please try again later."

type ListingService interface {
	FetchListings(ctx context.Context) ([]*model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
}

type listingService struct {
	repo  repository.ListingRepository
	cache cache.ListingCache
	cfg   *config.Config
}

// NewListingService builds the listing service. listingCache may be nil.
func NewListingService(repo repository.ListingRepository, listingCache cache.ListingCache, cfg *config.Config) ListingService {
	return &listingService{
		repo:  repo,
		cache: listingCache,
		cfg:   cfg,
	}
}

// FetchListings never returns a nil slice. When the data store cannot be
// read it returns an empty slice together with an unavailable error, so
// callers can show "no listings" and a notice.
func (s *listingService) FetchListings(ctx context.Context) ([]*model.Listing, error) {
	if s.cache != nil {
		listings, hit, err := s.cache.GetAll(ctx)
		if err != nil {
			s.cfg.Log.Warn("Listing cache read failed, querying store", "error", err)
		}
		if hit {
			s.cfg.Log.Debug("Listings served from cache", "count", len(listings))
			return listings, nil
		}
	}

	listings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch listings", "error", err)
		return []*model.Listing{}, apperrors.Unavailable(MsgListingsUnavailable, err)
	}
	if listings == nil {
		listings = []*model.Listing{}
	}

	if s.cache != nil {
		if err := s.cache.SetAll(ctx, listings); err != nil {
			s.cfg.Log.Warn("Listing cache write failed", "error", err)
		}
	}

	s.cfg.Log.Debug("Listings fetched", "count", len(listings))
	return listings, nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", id)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		s.cfg.Log.Error("Failed to retrieve listing", "id", id, "error", err)
		return nil, apperrors.FromStorage("Failed to retrieve listing", err)
	}

	return listing, nil
}
