package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"staybook/internal/bookings/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// SubmissionResponse is the body of POST /api/v1/bookings for every outcome.
type SubmissionResponse struct {
	State     service.State  `json:"state"`
	Data      *model.Booking `json:"data,omitempty"`
	Message   string         `json:"message,omitempty"`
	DismissAt *time.Time     `json:"dismiss_at,omitempty"`
	Error     string         `json:"error,omitempty"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	sub := h.service.Submit(r.Context(), &req, r.Header.Get(httputil.HeaderUserEmail))

	if err := httputil.WriteJSON(w, submissionStatus(sub), newSubmissionResponse(sub)); err != nil {
		h.log.Error("failed to write submission response", "handler", "Create", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListByListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListByListing(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByListing", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, httputil.ListResponse{Data: bookings}); err != nil {
		h.log.Error("failed to write list response", "handler", "ListByListing", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.GET("/api/v1/listings/id/:id/bookings", h.ListByListing)
}

func (h *BookingHandler) writeDecodeError(w http.ResponseWriter, err error) {
	appErr := apperrors.InvalidInput("Invalid request body")

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		appErr = apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, model.ErrInvalidDate):
		appErr = apperrors.InvalidInput("Dates must use the yyyy-MM-dd format")
	}

	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
	}
}

func submissionStatus(sub *service.Submission) int {
	if sub.State == service.StateSucceeded {
		return http.StatusCreated
	}
	if sub.Err != nil {
		return sub.Err.StatusCode()
	}
	return http.StatusInternalServerError
}

func newSubmissionResponse(sub *service.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		State:   sub.State,
		Data:    sub.Booking,
		Message: sub.Message(),
	}
	if !sub.DismissAt.IsZero() {
		dismissAt := sub.DismissAt
		resp.DismissAt = &dismissAt
	}
	if sub.Err != nil {
		resp.Error = sub.Err.Message
		resp.Code = sub.Err.Code
		resp.Details = sub.Err.Details
	}
	return resp
}
