package testfixtures

import "github.com/example/calendar-editor/internal/application"

// EventInputOption configures a generated event input.
type EventInputOption func(*application.EventInput)

// NewEventInput returns a one hour timed event starting at ReferenceTime.
func NewEventInput(opts ...EventInputOption) application.EventInput {
	input := application.EventInput{
		Title: "Planning",
		Start: "2025-09-19T08:00",
		End:   "2025-09-19T09:00",
	}
	for _, opt := range opts {
		opt(&input)
	}
	return input
}

// WithTitle sets the event title.
func WithTitle(title string) EventInputOption {
	return func(in *application.EventInput) { in.Title = title }
}

// WithRange sets start and end.
func WithRange(start, end string) EventInputOption {
	return func(in *application.EventInput) {
		in.Start = start
		in.End = end
	}
}

// WithBackground sets the background color.
func WithBackground(color string) EventInputOption {
	return func(in *application.EventInput) { in.BackgroundColor = color }
}

// AllDay marks the event as all-day.
func AllDay() EventInputOption {
	return func(in *application.EventInput) { in.AllDay = true }
}

// SampleEvents mirrors the editor's initial sample calendar.
func SampleEvents() []application.EventInput {
	return []application.EventInput{
		{Title: "event 1", Start: "2025-09-01"},
		{Title: "event 2", Start: "2025-09-05", End: "2025-09-07"},
		{Title: "event 3", Start: "2025-09-09T12:30:00"},
	}
}
