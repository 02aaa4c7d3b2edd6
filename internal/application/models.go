package application

// CalendarEvent is a single entry held by the EventStore.
//
// Start and End carry the UI's string forms: a bare YYYY-MM-DD date or a local
// date-time. An empty End means the event has no explicit end.
type CalendarEvent struct {
	ID              string
	Title           string
	Start           string
	End             string
	AllDay          bool
	BackgroundColor string
	BorderColor     string
	TextColor       string
}

// EventInput captures caller provided fields for a new event.
type EventInput struct {
	Title           string
	Start           string
	End             string
	AllDay          bool
	BackgroundColor string
	BorderColor     string
}

// EventPatch identifies an event and lists the fields to overwrite. Nil
// fields are left untouched; a pointer to an empty string clears the field.
type EventPatch struct {
	ID              string
	Title           *string
	Start           *string
	End             *string
	AllDay          *bool
	BackgroundColor *string
	BorderColor     *string
}

// apply overwrites the fields set on the patch and returns the merged event.
func (p EventPatch) apply(event CalendarEvent) CalendarEvent {
	if p.Title != nil {
		event.Title = *p.Title
	}
	if p.Start != nil {
		event.Start = *p.Start
	}
	if p.End != nil {
		event.End = *p.End
	}
	if p.AllDay != nil {
		event.AllDay = *p.AllDay
	}
	if p.BackgroundColor != nil {
		event.BackgroundColor = *p.BackgroundColor
	}
	if p.BorderColor != nil {
		event.BorderColor = *p.BorderColor
	}
	return event
}

// changesColor reports whether the patch sets a background or border color.
func (p EventPatch) changesColor() bool {
	return p.BackgroundColor != nil || p.BorderColor != nil
}

// ChangeKind names the mutation reported to subscribers.
type ChangeKind string

const (
	// ChangeAdded is emitted after Add or an upserting Update.
	ChangeAdded ChangeKind = "added"
	// ChangeUpdated is emitted after an Update merged into an existing event.
	ChangeUpdated ChangeKind = "updated"
	// ChangeDeleted is emitted after Delete removed an event.
	ChangeDeleted ChangeKind = "deleted"
	// ChangeSelection is emitted when the selected event id changes.
	ChangeSelection ChangeKind = "selection"
	// ChangeDateSelection is emitted when the selected date changes.
	ChangeDateSelection ChangeKind = "date_selection"
)

// Change describes a committed store mutation.
type Change struct {
	Kind    ChangeKind
	EventID string
}

// ContrastParams captures a foreground color request.
type ContrastParams struct {
	Background  string
	Prefer      string
	MinContrast *float64
}

// ContrastReport is the outcome of a foreground color request. MeetsContrast
// is only set when a minimum ratio was requested.
type ContrastReport struct {
	Background        string
	Color             string
	ContrastWithBlack float64
	ContrastWithWhite float64
	MeetsContrast     *bool
}
