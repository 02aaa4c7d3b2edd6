package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/calendar-editor/internal/application"
)

type selectionStore interface {
	SelectEvent(ctx context.Context, id string)
	ClearSelection(ctx context.Context)
	SelectDate(ctx context.Context, value string)
	ClearSelectedDate(ctx context.Context)
	SelectedEventID() (string, bool)
	SelectedEvent() (application.CalendarEvent, bool)
	SelectedDate() (string, bool)
}

type SelectionHandler struct {
	store     selectionStore
	responder responder
}

func NewSelectionHandler(store selectionStore, logger *slog.Logger) *SelectionHandler {
	return &SelectionHandler{store: store, responder: newResponder(logger)}
}

func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(r.Context(), w)
}

func (h *SelectionHandler) SelectEvent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req selectEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if req.ID == nil {
		h.store.ClearSelection(r.Context())
	} else {
		h.store.SelectEvent(r.Context(), *req.ID)
	}
	h.render(r.Context(), w)
}

func (h *SelectionHandler) ClearEvent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.store.ClearSelection(r.Context())
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *SelectionHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req selectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if req.Date == nil {
		h.store.ClearSelectedDate(r.Context())
	} else {
		h.store.SelectDate(r.Context(), *req.Date)
	}
	h.render(r.Context(), w)
}

func (h *SelectionHandler) ClearDate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.store.ClearSelectedDate(r.Context())
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *SelectionHandler) render(ctx context.Context, w http.ResponseWriter) {
	var resp selectionResponse
	if id, ok := h.store.SelectedEventID(); ok {
		resp.EventID = &id
	}
	if event, ok := h.store.SelectedEvent(); ok {
		dto := toEventDTO(event)
		resp.Event = &dto
	}
	if date, ok := h.store.SelectedDate(); ok {
		resp.Date = &date
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, resp)
}

// A null or absent id clears the selection.
type selectEventRequest struct {
	ID *string `json:"id"`
}

type selectDateRequest struct {
	Date *string `json:"date"`
}

// selectionResponse reports null for unset values. Event is null when the
// selected id no longer resolves.
type selectionResponse struct {
	EventID *string   `json:"event_id"`
	Date    *string   `json:"date"`
	Event   *eventDTO `json:"event"`
}
