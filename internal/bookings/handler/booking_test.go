package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staybook/internal/bookings/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	submitFunc        func(ctx context.Context, req *model.BookingRequest, headerEmail string) *service.Submission
	getByIDFunc       func(ctx context.Context, id string) (*model.Booking, error)
	listByListingFunc func(ctx context.Context, listingID string) ([]*model.Booking, error)
}

func (m *mockBookingService) Submit(ctx context.Context, req *model.BookingRequest, headerEmail string) *service.Submission {
	return m.submitFunc(ctx, req, headerEmail)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBookingService) ListByListing(ctx context.Context, listingID string) ([]*model.Booking, error) {
	return m.listByListingFunc(ctx, listingID)
}

func newRouter(svc service.BookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate(t *testing.T) {
	completed := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		sub        *service.Submission
		wantStatus int
		wantState  service.State
		wantMsg    string
	}{
		{
			name: "succeeded",
			sub: &service.Submission{
				State:       service.StateSucceeded,
				Booking:     &model.Booking{ID: "b1", ListingID: "l1"},
				CompletedAt: completed,
				DismissAt:   completed.Add(5 * time.Second),
			},
			wantStatus: http.StatusCreated,
			wantState:  service.StateSucceeded,
			wantMsg:    service.MsgSucceeded,
		},
		{
			name: "rejected overlap",
			sub: &service.Submission{
				State: service.StateRejected,
				Err:   apperrors.Conflict(service.MsgDatesTaken),
			},
			wantStatus: http.StatusConflict,
			wantState:  service.StateRejected,
			wantMsg:    service.MsgDatesTaken,
		},
		{
			name: "rejected validation",
			sub: &service.Submission{
				State: service.StateRejected,
				Err:   apperrors.Validation("End date must be after start date", map[string]any{"end_date": "End date must be after start date"}),
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantState:  service.StateRejected,
			wantMsg:    "End date must be after start date",
		},
		{
			name: "failed",
			sub: &service.Submission{
				State: service.StateFailed,
				Err:   apperrors.Unavailable(service.MsgSaveFailed, nil),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  service.StateFailed,
			wantMsg:    service.MsgSaveFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			var gotReq *model.BookingRequest
			svc := &mockBookingService{
				submitFunc: func(ctx context.Context, req *model.BookingRequest, headerEmail string) *service.Submission {
					gotReq, gotHeader = req, headerEmail
					return tt.sub
				},
			}

			body := `{"listing_id":"665f1c2ab4c8e5a1d2f3a4b5","start_date":"2024-06-01","end_date":"2024-06-05"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
			req.Header.Set(httputil.HeaderUserEmail, "guest@example.com")
			rec := httptest.NewRecorder()

			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if gotHeader != "guest@example.com" {
				t.Errorf("header email = %q", gotHeader)
			}
			if !gotReq.StartDate.Equal(model.NewDate(2024, 6, 1)) || !gotReq.EndDate.Equal(model.NewDate(2024, 6, 5)) {
				t.Errorf("decoded request = %+v", gotReq)
			}

			var resp SubmissionResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.State != tt.wantState || resp.Message != tt.wantMsg {
				t.Errorf("response = %+v", resp)
			}
			if tt.wantState == service.StateSucceeded {
				if resp.Data == nil || resp.Data.ID != "b1" {
					t.Errorf("data = %+v", resp.Data)
				}
				if resp.DismissAt == nil || !resp.DismissAt.Equal(completed.Add(5*time.Second)) {
					t.Errorf("dismiss_at = %v", resp.DismissAt)
				}
			} else if resp.Error != tt.wantMsg || resp.Code == "" {
				t.Errorf("error fields = %q %q", resp.Error, resp.Code)
			}
		})
	}
}

func TestCreate_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"listing_id":`},
		{"bad date", `{"listing_id":"665f1c2ab4c8e5a1d2f3a4b5","start_date":"06/01/2024","end_date":"2024-06-05"}`},
		{"impossible date", `{"listing_id":"665f1c2ab4c8e5a1d2f3a4b5","start_date":"2024-02-30","end_date":"2024-06-05"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				submitFunc: func(ctx context.Context, req *model.BookingRequest, headerEmail string) *service.Submission {
					t.Fatal("Submit must not be called for an undecodable body")
					return nil
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreate_BodyTooLarge(t *testing.T) {
	svc := &mockBookingService{}
	router := newRouter(svc)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		router.ServeHTTP(w, r)
	})

	body := `{"listing_id":"665f1c2ab4c8e5a1d2f3a4b5","start_date":"2024-06-01","end_date":"2024-06-05"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestGetByID(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"not found", apperrors.NotFoundWithID("Booking", "x"), http.StatusNotFound},
		{"invalid", apperrors.InvalidInput("Invalid booking ID format"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &model.Booking{ID: id}, nil
				},
			}
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/id/abc", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestListByListing(t *testing.T) {
	var gotID string
	svc := &mockBookingService{
		listByListingFunc: func(ctx context.Context, listingID string) ([]*model.Booking, error) {
			gotID = listingID
			return []*model.Booking{}, nil
		},
	}
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings/id/665f1c2ab4c8e5a1d2f3a4b5/bookings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotID != "665f1c2ab4c8e5a1d2f3a4b5" {
		t.Errorf("listing id = %q", gotID)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"data":[]}` {
		t.Errorf("body = %s", got)
	}
}
