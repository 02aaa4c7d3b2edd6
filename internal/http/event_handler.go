package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/calendar-editor/internal/application"
)

type eventStore interface {
	Events() []application.CalendarEvent
	Add(ctx context.Context, input application.EventInput) application.CalendarEvent
	Update(ctx context.Context, patch application.EventPatch) (application.CalendarEvent, error)
	Delete(ctx context.Context, id string) bool
}

type EventHandler struct {
	store     eventStore
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(store eventStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: store, responder: newResponder(logger), logger: logger}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{
		Events: toEventDTOs(h.store.Events()),
	})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	event := h.store.Add(r.Context(), req.toInput())
	handlerLogger(r.Context(), h.logger, "EventHandler", "Create", "event_id", event.ID).Debug("event created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEventDTO(event))
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	var req eventPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	event, err := h.store.Update(r.Context(), req.toPatch(eventID))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventDTO(event))
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	if !h.store.Delete(r.Context(), eventID) {
		handlerLogger(r.Context(), h.logger, "EventHandler", "Delete", "event_id", eventID).Debug("delete of unknown event ignored")
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type eventRequest struct {
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	AllDay          bool   `json:"all_day"`
	BackgroundColor string `json:"background_color"`
	BorderColor     string `json:"border_color"`
}

func (r eventRequest) toInput() application.EventInput {
	return application.EventInput{
		Title:           r.Title,
		Start:           strings.TrimSpace(r.Start),
		End:             strings.TrimSpace(r.End),
		AllDay:          r.AllDay,
		BackgroundColor: strings.TrimSpace(r.BackgroundColor),
		BorderColor:     strings.TrimSpace(r.BorderColor),
	}
}

// eventPatchRequest distinguishes absent fields (nil) from fields set to the
// zero value.
type eventPatchRequest struct {
	Title           *string `json:"title"`
	Start           *string `json:"start"`
	End             *string `json:"end"`
	AllDay          *bool   `json:"all_day"`
	BackgroundColor *string `json:"background_color"`
	BorderColor     *string `json:"border_color"`
}

func (r eventPatchRequest) toPatch(id string) application.EventPatch {
	return application.EventPatch{
		ID:              id,
		Title:           r.Title,
		Start:           trimmed(r.Start),
		End:             trimmed(r.End),
		AllDay:          r.AllDay,
		BackgroundColor: trimmed(r.BackgroundColor),
		BorderColor:     trimmed(r.BorderColor),
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end,omitempty"`
	AllDay          bool   `json:"all_day"`
	BackgroundColor string `json:"background_color,omitempty"`
	BorderColor     string `json:"border_color,omitempty"`
	TextColor       string `json:"text_color"`
}

func toEventDTO(event application.CalendarEvent) eventDTO {
	return eventDTO{
		ID:              event.ID,
		Title:           event.Title,
		Start:           event.Start,
		End:             event.End,
		AllDay:          event.AllDay,
		BackgroundColor: event.BackgroundColor,
		BorderColor:     event.BorderColor,
		TextColor:       event.TextColor,
	}
}

func toEventDTOs(events []application.CalendarEvent) []eventDTO {
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}
