package service

import (
	"context"
	"errors"
	"testing"

	listingserrors "staybook/internal/listings/errors"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

type mockListingRepository struct {
	findAllFunc  func(ctx context.Context) ([]*model.Listing, error)
	findByIDFunc func(ctx context.Context, id string) (*model.Listing, error)
}

func (m *mockListingRepository) FindAll(ctx context.Context) ([]*model.Listing, error) {
	return m.findAllFunc(ctx)
}

func (m *mockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	return m.findByIDFunc(ctx, id)
}

type mockListingCache struct {
	listings []*model.Listing
	hit      bool
	getErr   error
	setErr   error
	sets     int
}

func (m *mockListingCache) GetAll(ctx context.Context) ([]*model.Listing, bool, error) {
	return m.listings, m.hit, m.getErr
}

func (m *mockListingCache) SetAll(ctx context.Context, listings []*model.Listing) error {
	m.sets++
	m.listings = listings
	return m.setErr
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.Discard()}
}

func TestFetchListings(t *testing.T) {
	stored := []*model.Listing{{ID: "a", City: "Berlin"}, {ID: "b", City: "Bonn"}}

	tests := []struct {
		name      string
		repoErr   error
		repoData  []*model.Listing
		wantCount int
		wantErr   bool
	}{
		{"listings returned in store order", nil, stored, 2, false},
		{"empty collection", nil, nil, 0, false},
		{"store unreachable", errors.New("connection refused"), nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockListingRepository{
				findAllFunc: func(ctx context.Context) ([]*model.Listing, error) {
					return tt.repoData, tt.repoErr
				},
			}
			svc := NewListingService(repo, nil, testConfig())

			listings, err := svc.FetchListings(context.Background())

			if listings == nil {
				t.Fatal("FetchListings must never return a nil slice")
			}
			if len(listings) != tt.wantCount {
				t.Errorf("len = %d, want %d", len(listings), tt.wantCount)
			}
			if tt.wantErr {
				appErr := apperrors.AsAppError(err)
				if appErr == nil || appErr.Code != apperrors.CodeUnavailable || appErr.Message != MsgListingsUnavailable {
					t.Errorf("error = %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if tt.repoData != nil && listings[0].ID != "a" {
				t.Errorf("order changed: first = %s", listings[0].ID)
			}
		})
	}
}

func TestFetchListings_Cache(t *testing.T) {
	t.Run("hit skips the store", func(t *testing.T) {
		c := &mockListingCache{hit: true, listings: []*model.Listing{{ID: "cached"}}}
		repo := &mockListingRepository{
			findAllFunc: func(ctx context.Context) ([]*model.Listing, error) {
				t.Fatal("store must not be queried on a cache hit")
				return nil, nil
			},
		}
		listings, err := NewListingService(repo, c, testConfig()).FetchListings(context.Background())
		if err != nil || len(listings) != 1 || listings[0].ID != "cached" {
			t.Fatalf("FetchListings() = %v, %v", listings, err)
		}
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		c := &mockListingCache{}
		repo := &mockListingRepository{
			findAllFunc: func(ctx context.Context) ([]*model.Listing, error) {
				return []*model.Listing{{ID: "a"}}, nil
			},
		}
		if _, err := NewListingService(repo, c, testConfig()).FetchListings(context.Background()); err != nil {
			t.Fatal(err)
		}
		if c.sets != 1 {
			t.Errorf("cache sets = %d, want 1", c.sets)
		}
	})

	t.Run("cache errors are bypassed", func(t *testing.T) {
		c := &mockListingCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
		repo := &mockListingRepository{
			findAllFunc: func(ctx context.Context) ([]*model.Listing, error) {
				return []*model.Listing{{ID: "a"}}, nil
			},
		}
		listings, err := NewListingService(repo, c, testConfig()).FetchListings(context.Background())
		if err != nil || len(listings) != 1 {
			t.Fatalf("FetchListings() = %v, %v", listings, err)
		}
	})

	t.Run("store failure is not cached", func(t *testing.T) {
		c := &mockListingCache{}
		repo := &mockListingRepository{
			findAllFunc: func(ctx context.Context) ([]*model.Listing, error) {
				return nil, errors.New("timeout")
			},
		}
		_, _ = NewListingService(repo, c, testConfig()).FetchListings(context.Background())
		if c.sets != 0 {
			t.Error("an empty fallback must not be written to the cache")
		}
	})
}

func TestGetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		repoErr  error
		wantCode string
	}{
		{"found", "665f1c2ab4c8e5a1d2f3a4b5", nil, ""},
		{"empty id", "  ", nil, apperrors.CodeInvalidInput},
		{"not found", "665f1c2ab4c8e5a1d2f3a4b5", listingserrors.ErrNotFound, apperrors.CodeNotFound},
		{"invalid id", "nope", listingserrors.ErrInvalidID, apperrors.CodeInvalidInput},
		{"store down", "665f1c2ab4c8e5a1d2f3a4b5", errors.New("reset"), apperrors.CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockListingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &model.Listing{ID: id}, nil
				},
			}
			listing, err := NewListingService(repo, nil, testConfig()).GetByID(context.Background(), tt.id)
			if tt.wantCode == "" {
				if err != nil || listing.ID != tt.id {
					t.Fatalf("GetByID() = %v, %v", listing, err)
				}
				return
			}
			if appErr := apperrors.AsAppError(err); appErr == nil || appErr.Code != tt.wantCode {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
