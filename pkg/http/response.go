package http

import (
	"encoding/json"
	"net/http"

	apperrors "staybook/pkg/errors"
)

const HeaderUserEmail = "X-User-Email"

type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

// ListResponse always carries data, even when empty, and may carry a
// user-facing error next to it.
type ListResponse struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		if !apperrors.IsAppError(err) {
			return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
				Code:  apperrors.CodeInternal,
			})
		}
		appErr = apperrors.AsAppError(err)
	}

	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteList(w http.ResponseWriter, data any, userErr string) error {
	return WriteJSON(w, http.StatusOK, ListResponse{Data: data, Error: userErr})
}
