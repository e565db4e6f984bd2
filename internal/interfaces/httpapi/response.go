package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const internalErrorMessage = "internal server error"

type errorBody struct {
	Code    int                 `json:"code"`
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeError renders err. An empty message falls back to the error text for
// client errors and to an opaque message for server errors.
func writeError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if message == "" {
		message = err.Error()
		if mapped.HTTPStatus >= http.StatusInternalServerError {
			message = internalErrorMessage
		}
	}

	body := errorBody{
		Code:    mapped.HTTPStatus,
		Status:  mapped.Status,
		Message: message,
	}
	if mapped.HTTPStatus == http.StatusBadRequest {
		if fields, ok := validation.FromError(err); ok {
			body.Errors = fields
		}
	}
	writeJSON(ctx, w, mapped.HTTPStatus, body)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{
		Code:    http.StatusInternalServerError,
		Status:  "INTERNAL",
		Message: internalErrorMessage,
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Status: "PERMISSION_DENIED"}
	case errors.Is(err, usecase.ErrRateLimited):
		return mappedError{HTTPStatus: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Status: "INTERNAL"}
	}
}
