package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/calendar-editor/internal/application"
	"github.com/example/calendar-editor/internal/contrast"
)

var (
	errBadRequestBody  = errors.New("request body is not valid JSON")
	errInvalidEventID  = errors.New("event id is required")
	errInvalidCalendar = errors.New("request body is not a valid iCalendar file")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).WarnContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	logger := r.loggerFor(ctx)
	switch {
	case errors.Is(err, application.ErrNotFound):
		logger.InfoContext(ctx, "resource not found", "error_kind", application.ErrorKind(err))
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{
			ErrorCode: "NOT_FOUND",
			Message:   statusMessage(http.StatusNotFound),
		})
	case errors.Is(err, contrast.ErrInvalidColorFormat):
		logger.InfoContext(ctx, "invalid color", "error", err)
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "INVALID_COLOR",
			Message:   err.Error(),
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			logger.InfoContext(ctx, "validation failed", "fields", len(vErr.FieldErrors))
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				ErrorCode: "VALIDATION_FAILED",
				Message:   statusMessage(http.StatusUnprocessableEntity),
				Errors:    vErr.FieldErrors,
			})
			return
		}

		logger.ErrorContext(ctx, "unexpected service error", "error_kind", application.ErrorKind(err), "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: statusMessage(http.StatusInternalServerError)})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The request is malformed."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusUnprocessableEntity:
		return "The request contains invalid fields."
	default:
		return "An internal server error occurred."
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
