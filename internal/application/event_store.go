package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/calendar-editor/internal/contrast"
	"github.com/example/calendar-editor/internal/datetime"
)

const (
	// DefaultAccentColor is the background assumed for events without their
	// own background or border color.
	DefaultAccentColor = "#3788d8"
	// FallbackTextColor is used when the effective background cannot be parsed.
	FallbackTextColor = contrast.Black

	maxIDAttempts = 8
)

// EventStore is the authoritative in-memory collection of calendar events
// together with the selected event and selected date.
//
// Every mutator runs under the store lock, so each one is atomic with respect
// to both the collection and the selection state. Subscribers are notified
// after the lock is released.
type EventStore struct {
	mu              sync.RWMutex
	events          []CalendarEvent
	selectedEventID string
	hasSelection    bool
	selectedDate    string
	hasDate         bool

	idGenerator     func() string
	logger          *slog.Logger
	accentColor     string
	fallbackColor   string
	strictUpdates   bool
	contrastOptions contrast.Options
	location        *time.Location

	subMu       sync.Mutex
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(Change)
}

// EventStoreOption customises an EventStore.
type EventStoreOption func(*EventStore)

// WithDefaultAccentColor overrides DefaultAccentColor.
func WithDefaultAccentColor(color string) EventStoreOption {
	return func(s *EventStore) {
		if color != "" {
			s.accentColor = color
		}
	}
}

// WithFallbackTextColor overrides FallbackTextColor.
func WithFallbackTextColor(color string) EventStoreOption {
	return func(s *EventStore) {
		if color != "" {
			s.fallbackColor = color
		}
	}
}

// WithStrictUpdates makes Update return ErrNotFound for unknown ids instead of
// inserting the patch as a new event.
func WithStrictUpdates(strict bool) EventStoreOption {
	return func(s *EventStore) {
		s.strictUpdates = strict
	}
}

// WithContrastOptions sets the options passed to the contrast engine.
func WithContrastOptions(opts contrast.Options) EventStoreOption {
	return func(s *EventStore) {
		s.contrastOptions = opts
	}
}

// WithLocation sets the zone used to interpret and format event times.
func WithLocation(loc *time.Location) EventStoreOption {
	return func(s *EventStore) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewEventStore wires an empty store. A nil idGenerator falls back to random
// UUIDs.
func NewEventStore(idGenerator func() string, opts ...EventStoreOption) *EventStore {
	return NewEventStoreWithLogger(idGenerator, nil, opts...)
}

// NewEventStoreWithLogger wires an empty store that logs through logger.
func NewEventStoreWithLogger(idGenerator func() string, logger *slog.Logger, opts ...EventStoreOption) *EventStore {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	s := &EventStore{
		idGenerator:   idGenerator,
		logger:        defaultLogger(logger),
		accentColor:   DefaultAccentColor,
		fallbackColor: FallbackTextColor,
		location:      time.Local,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add normalises the input, derives its text color and appends it under a
// freshly generated id.
func (s *EventStore) Add(ctx context.Context, input EventInput) CalendarEvent {
	logger := serviceLogger(ctx, s.logger, "EventStore", "Add")

	event := CalendarEvent{
		Title:           input.Title,
		Start:           input.Start,
		End:             datetime.EnsureEndAfterStartIn(input.Start, input.End, s.location),
		AllDay:          input.AllDay,
		BackgroundColor: input.BackgroundColor,
		BorderColor:     input.BorderColor,
	}
	event.TextColor = s.deriveTextColor(logger, event)

	s.mu.Lock()
	event.ID = s.nextIDLocked()
	s.events = append(s.events, event)
	s.mu.Unlock()

	logger.Info("event added", "event_id", event.ID)
	s.notify(Change{Kind: ChangeAdded, EventID: event.ID})
	return event
}

// Update merges patch over the event with the same id.
//
// Unknown ids are inserted as new events carrying the patch id, unless the
// store was built WithStrictUpdates, in which case ErrNotFound is returned.
// The text color is recomputed when the patch sets a background or border
// color, or when the stored event has none.
func (s *EventStore) Update(ctx context.Context, patch EventPatch) (CalendarEvent, error) {
	logger := serviceLogger(ctx, s.logger, "EventStore", "Update", "event_id", patch.ID)

	s.mu.Lock()
	idx := s.indexLocked(patch.ID)
	if idx < 0 {
		if s.strictUpdates {
			s.mu.Unlock()
			logger.Warn("update rejected", "error_kind", ErrorKind(ErrNotFound))
			return CalendarEvent{}, ErrNotFound
		}
		event := patch.apply(CalendarEvent{ID: patch.ID})
		event.End = datetime.EnsureEndAfterStartIn(event.Start, event.End, s.location)
		event.TextColor = s.deriveTextColor(logger, event)
		s.events = append(s.events, event)
		s.mu.Unlock()

		logger.Info("event inserted by update")
		s.notify(Change{Kind: ChangeAdded, EventID: event.ID})
		return event, nil
	}

	merged := patch.apply(s.events[idx])
	merged.End = datetime.EnsureEndAfterStartIn(merged.Start, merged.End, s.location)
	if patch.changesColor() || merged.TextColor == "" {
		merged.TextColor = s.deriveTextColor(logger, merged)
	}
	s.events[idx] = merged
	s.mu.Unlock()

	logger.Info("event updated")
	s.notify(Change{Kind: ChangeUpdated, EventID: merged.ID})
	return merged, nil
}

// Delete removes the event with the given id and reports whether one existed.
// Deleting the selected event clears the selection.
func (s *EventStore) Delete(ctx context.Context, id string) bool {
	logger := serviceLogger(ctx, s.logger, "EventStore", "Delete", "event_id", id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		logger.Debug("delete ignored, event not found")
		return false
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	clearedSelection := s.hasSelection && s.selectedEventID == id
	if clearedSelection {
		s.selectedEventID = ""
		s.hasSelection = false
	}
	s.mu.Unlock()

	logger.Info("event deleted", "cleared_selection", clearedSelection)
	s.notify(Change{Kind: ChangeDeleted, EventID: id})
	if clearedSelection {
		s.notify(Change{Kind: ChangeSelection})
	}
	return true
}

// SelectEvent marks id as the selected event. The id is not validated.
func (s *EventStore) SelectEvent(ctx context.Context, id string) {
	s.mu.Lock()
	s.selectedEventID = id
	s.hasSelection = true
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "EventStore", "SelectEvent", "event_id", id).Debug("event selected")
	s.notify(Change{Kind: ChangeSelection, EventID: id})
}

// ClearSelection unsets the selected event.
func (s *EventStore) ClearSelection(ctx context.Context) {
	s.mu.Lock()
	s.selectedEventID = ""
	s.hasSelection = false
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "EventStore", "ClearSelection").Debug("selection cleared")
	s.notify(Change{Kind: ChangeSelection})
}

// SelectDate stores value as the selected date without validation.
func (s *EventStore) SelectDate(ctx context.Context, value string) {
	s.mu.Lock()
	s.selectedDate = value
	s.hasDate = true
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "EventStore", "SelectDate", "date", value).Debug("date selected")
	s.notify(Change{Kind: ChangeDateSelection})
}

// ClearSelectedDate unsets the selected date.
func (s *EventStore) ClearSelectedDate(ctx context.Context) {
	s.mu.Lock()
	s.selectedDate = ""
	s.hasDate = false
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "EventStore", "ClearSelectedDate").Debug("selected date cleared")
	s.notify(Change{Kind: ChangeDateSelection})
}

// Events returns a copy of the collection in insertion order.
func (s *EventStore) Events() []CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Event looks up a single event by id.
func (s *EventStore) Event(id string) (CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.events[idx], true
	}
	return CalendarEvent{}, false
}

// SelectedEventID returns the selected id, which may no longer exist.
func (s *EventStore) SelectedEventID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedEventID, s.hasSelection
}

// SelectedEvent returns the event matching the selected id, if any.
func (s *EventStore) SelectedEvent() (CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSelection {
		return CalendarEvent{}, false
	}
	if idx := s.indexLocked(s.selectedEventID); idx >= 0 {
		return s.events[idx], true
	}
	return CalendarEvent{}, false
}

// SelectedDate returns the selected date value, if any.
func (s *EventStore) SelectedDate() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate, s.hasDate
}

// Subscribe registers fn to be called after every committed mutation. The
// returned function removes the subscription.
func (s *EventStore) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *EventStore) notify(change Change) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(change)
	}
}

// effectiveBackground returns the color used for contrast computation.
func (s *EventStore) effectiveBackground(event CalendarEvent) string {
	if event.BackgroundColor != "" {
		return event.BackgroundColor
	}
	if event.BorderColor != "" {
		return event.BorderColor
	}
	return s.accentColor
}

func (s *EventStore) deriveTextColor(logger *slog.Logger, event CalendarEvent) string {
	bg := s.effectiveBackground(event)
	opts := s.contrastOptions
	if opts.Logger == nil {
		opts.Logger = logger
	}
	color, err := contrast.PickForegroundColor(bg, opts)
	if err != nil {
		logger.Warn("falling back to default text color",
			"background", bg,
			"fallback", s.fallbackColor,
			"error_kind", ErrorKind(err),
			"error", err,
		)
		return s.fallbackColor
	}
	return color
}

func (s *EventStore) indexLocked(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *EventStore) nextIDLocked() string {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.idGenerator()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
	for {
		id := uuid.NewString()
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}
