package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/calendar-editor/internal/application"
)

type contrastService interface {
	Recommend(ctx context.Context, params application.ContrastParams) (application.ContrastReport, error)
}

type ContrastHandler struct {
	service   contrastService
	responder responder
}

func NewContrastHandler(service contrastService, logger *slog.Logger) *ContrastHandler {
	return &ContrastHandler{service: service, responder: newResponder(logger)}
}

func (h *ContrastHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	params := application.ContrastParams{
		Background: query.Get("bg"),
		Prefer:     query.Get("prefer"),
	}
	if raw := strings.TrimSpace(query.Get("min_contrast")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.responder.handleServiceError(r.Context(), w, application.NewValidationError("min_contrast", "min_contrast must be a number"))
			return
		}
		params.MinContrast = &value
	}

	report, err := h.service.Recommend(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, contrastResponse{
		Background:        report.Background,
		Color:             report.Color,
		ContrastWithBlack: report.ContrastWithBlack,
		ContrastWithWhite: report.ContrastWithWhite,
		MeetsContrast:     report.MeetsContrast,
	})
}

type contrastResponse struct {
	Background        string  `json:"background"`
	Color             string  `json:"color"`
	ContrastWithBlack float64 `json:"contrast_with_black"`
	ContrastWithWhite float64 `json:"contrast_with_white"`
	MeetsContrast     *bool   `json:"meets_contrast,omitempty"`
}
