package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/calendar-editor/internal/application"
	"github.com/example/calendar-editor/internal/ics"
)

const maxCalendarBytes = 1 << 20

type calendarStore interface {
	ics.EventWriter
	Events() []application.CalendarEvent
}

type calendarCodec interface {
	Export(ctx context.Context, events []application.CalendarEvent, now time.Time) string
	ImportInto(ctx context.Context, store ics.EventWriter, r io.Reader) (int, error)
}

type CalendarHandler struct {
	store     calendarStore
	codec     calendarCodec
	now       func() time.Time
	responder responder
	logger    *slog.Logger
}

// NewCalendarHandler wires the iCalendar endpoints. A nil now uses time.Now.
func NewCalendarHandler(store calendarStore, codec calendarCodec, now func() time.Time, logger *slog.Logger) *CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{store: store, codec: codec, now: now, responder: newResponder(logger), logger: logger}
}

func (h *CalendarHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil || h.codec == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload := h.codec.Export(r.Context(), h.store.Events(), h.now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, payload); err != nil {
		handlerLogger(r.Context(), h.logger, "CalendarHandler", "Export").ErrorContext(r.Context(), "failed to write calendar", "error", err)
	}
}

func (h *CalendarHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil || h.codec == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxCalendarBytes)
	n, err := h.codec.ImportInto(r.Context(), h.store, body)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "CalendarHandler", "Import").InfoContext(r.Context(), "calendar rejected", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCalendar)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, importResponse{Imported: n})
}

type importResponse struct {
	Imported int `json:"imported"`
}
