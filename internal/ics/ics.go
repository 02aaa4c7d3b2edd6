// Package ics exchanges the in-memory event collection with iCalendar files.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/example/calendar-editor/internal/application"
	"github.com/example/calendar-editor/internal/datetime"
	"github.com/example/calendar-editor/internal/logging"
)

// ProductID identifies exported calendars.
const ProductID = "-//calendar-editor//EN"

const icsDateLayout = "20060102"

// EventWriter is the subset of the event store used by ImportInto.
type EventWriter interface {
	Add(ctx context.Context, input application.EventInput) application.CalendarEvent
	Update(ctx context.Context, patch application.EventPatch) (application.CalendarEvent, error)
}

// Imported is a VEVENT converted to store input. UID is empty when the
// component carried none.
type Imported struct {
	UID   string
	Event application.EventInput
}

// Codec converts between store events and iCalendar payloads.
type Codec struct {
	loc    *time.Location
	logger *slog.Logger
}

// NewCodec returns a codec that reads and writes times in loc.
func NewCodec(loc *time.Location, logger *slog.Logger) *Codec {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{loc: loc, logger: logger}
}

func (c *Codec) loggerFor(ctx context.Context, operation string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = c.logger
	}
	return logger.With("component", "ics", "operation", operation)
}

// Export renders events as a VCALENDAR. Events whose start cannot be parsed
// are skipped.
func (c *Codec) Export(ctx context.Context, events []application.CalendarEvent, now time.Time) string {
	logger := c.loggerFor(ctx, "Export")

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	exported := 0
	for _, ev := range events {
		start, ok := datetime.Parse(ev.Start, c.loc)
		if !ok {
			logger.Warn("skipping event with unparsable start", "event_id", ev.ID, "start", ev.Start)
			continue
		}

		vevent := cal.AddEvent(ev.ID)
		vevent.SetDtStampTime(now)
		vevent.SetSummary(ev.Title)

		end, hasEnd := datetime.Parse(ev.End, c.loc)
		if ev.AllDay || datetime.IsDateOnly(ev.Start) {
			day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.loc)
			endDay := day.AddDate(0, 0, 1)
			if hasEnd && datetime.IsDateOnly(ev.End) && end.After(day) {
				endDay = end
			}
			vevent.SetAllDayStartAt(day)
			vevent.SetAllDayEndAt(endDay)
		} else {
			if !hasEnd || !end.After(start) {
				end = start.Add(datetime.DefaultDuration)
			}
			vevent.SetStartAt(start)
			vevent.SetEndAt(end)
		}

		if ev.BackgroundColor != "" {
			vevent.SetProperty(ical.ComponentPropertyColor, ev.BackgroundColor)
		}
		exported++
	}

	logger.Info("calendar exported", "event_count", exported)
	return cal.Serialize()
}

// Import parses an iCalendar payload. VEVENTs without DTSTART are skipped.
func (c *Codec) Import(ctx context.Context, r io.Reader) ([]Imported, error) {
	logger := c.loggerFor(ctx, "Import")

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse calendar: %w", err)
	}

	out := make([]Imported, 0)
	for _, ve := range cal.Events() {
		item, err := c.convert(ve)
		if err != nil {
			logger.Warn("skipping vevent", "error", err)
			continue
		}
		out = append(out, item)
	}

	logger.Info("calendar parsed", "event_count", len(out))
	return out, nil
}

// ImportInto parses r and writes every event into store. Events carrying a
// UID go through Update so a re-imported export replaces its events in place;
// the rest are added with fresh ids.
func (c *Codec) ImportInto(ctx context.Context, store EventWriter, r io.Reader) (int, error) {
	items, err := c.Import(ctx, r)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if item.UID == "" {
			store.Add(ctx, item.Event)
			continue
		}
		if _, err := store.Update(ctx, item.Patch()); err != nil {
			if !errors.Is(err, application.ErrNotFound) {
				return 0, err
			}
			store.Add(ctx, item.Event)
		}
	}
	return len(items), nil
}

// Patch converts the imported event into a full overwrite of the event with
// the same UID.
func (i Imported) Patch() application.EventPatch {
	ev := i.Event
	return application.EventPatch{
		ID:              i.UID,
		Title:           &ev.Title,
		Start:           &ev.Start,
		End:             &ev.End,
		AllDay:          &ev.AllDay,
		BackgroundColor: &ev.BackgroundColor,
		BorderColor:     &ev.BorderColor,
	}
}

func (c *Codec) convert(ve *ical.VEvent) (Imported, error) {
	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil || strings.TrimSpace(startProp.Value) == "" {
		return Imported{}, errors.New("missing DTSTART")
	}

	var item Imported
	if uid := ve.GetProperty(ical.ComponentPropertyUniqueId); uid != nil {
		item.UID = strings.TrimSpace(uid.Value)
	}
	if summary := ve.GetProperty(ical.ComponentPropertySummary); summary != nil {
		item.Event.Title = summary.Value
	}
	if color := ve.GetProperty(ical.ComponentPropertyColor); color != nil {
		item.Event.BackgroundColor = strings.TrimSpace(color.Value)
	}

	item.Event.AllDay = isDateValue(startProp)
	if item.Event.AllDay {
		start, err := time.ParseInLocation(icsDateLayout, strings.TrimSpace(startProp.Value), c.loc)
		if err != nil {
			return Imported{}, fmt.Errorf("parse DTSTART %q: %w", startProp.Value, err)
		}
		item.Event.Start = start.Format(datetime.DateLayout)
		if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
			if end, err := time.ParseInLocation(icsDateLayout, strings.TrimSpace(endProp.Value), c.loc); err == nil {
				item.Event.End = end.Format(datetime.DateLayout)
			}
		}
		return item, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return Imported{}, fmt.Errorf("parse DTSTART %q: %w", startProp.Value, err)
	}
	item.Event.Start = datetime.FormatLocal(start.In(c.loc))
	if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
		if end, err := ve.GetEndAt(); err == nil {
			item.Event.End = datetime.FormatLocal(end.In(c.loc))
		}
	}
	return item, nil
}

func isDateValue(prop *ical.IANAProperty) bool {
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}
