package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staybook/internal/listings/service"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockListingService struct {
	fetchFunc   func(ctx context.Context) ([]*model.Listing, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Listing, error)
}

func (m *mockListingService) FetchListings(ctx context.Context) ([]*model.Listing, error) {
	return m.fetchFunc(ctx)
}

func (m *mockListingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	return m.getByIDFunc(ctx, id)
}

func serve(svc service.ListingService, path string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewListingHandler(svc, logger.Discard()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetAll(t *testing.T) {
	tests := []struct {
		name     string
		listings []*model.Listing
		err      error
		wantBody string
	}{
		{
			name:     "listings",
			listings: []*model.Listing{{ID: "a", City: "Berlin"}},
			wantBody: `"city":"Berlin"`,
		},
		{
			name:     "empty",
			listings: []*model.Listing{},
			wantBody: `{"data":[]}`,
		},
		{
			name:     "store down degrades to empty list",
			listings: []*model.Listing{},
			err:      apperrors.Unavailable(service.MsgListingsUnavailable, errors.New("refused")),
			wantBody: `{"data":[],"error":"` + service.MsgListingsUnavailable + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockListingService{
				fetchFunc: func(ctx context.Context) ([]*model.Listing, error) {
					return tt.listings, tt.err
				},
			}
			rec := serve(svc, "/api/v1/listings")

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	svc := &mockListingService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			if id == "missing" {
				return nil, apperrors.NotFoundWithID("Listing", id)
			}
			return &model.Listing{ID: id}, nil
		},
	}

	if rec := serve(svc, "/api/v1/listings/id/abc"); rec.Code != http.StatusOK {
		t.Errorf("found status = %d", rec.Code)
	}
	if rec := serve(svc, "/api/v1/listings/id/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", rec.Code)
	}
}
