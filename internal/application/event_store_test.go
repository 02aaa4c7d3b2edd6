package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/example/calendar-editor/internal/contrast"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestStore(opts ...EventStoreOption) *EventStore {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]EventStoreOption{WithLocation(time.UTC)}, opts...)
	return NewEventStoreWithLogger(sequentialIDs("event"), logger, opts...)
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func TestEventStore_Add_DerivesTextColorAndID(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	first := store.Add(ctx, EventInput{Title: "x", Start: "2025-09-01", BackgroundColor: "#000000"})
	if first.TextColor != contrast.White {
		t.Fatalf("expected white text on black, got %q", first.TextColor)
	}
	if first.ID == "" {
		t.Fatalf("expected generated id")
	}

	second := store.Add(ctx, EventInput{Title: "y", Start: "2025-09-02", BackgroundColor: "#ffffff"})
	if second.TextColor != contrast.Black {
		t.Fatalf("expected black text on white, got %q", second.TextColor)
	}
	if second.ID == first.ID {
		t.Fatalf("expected distinct ids, got %q twice", first.ID)
	}

	events := store.Events()
	if len(events) != 2 || events[0].ID != first.ID || events[1].ID != second.ID {
		t.Fatalf("expected insertion order, got %+v", events)
	}
}

func TestEventStore_Add_DefaultsToUUIDs(t *testing.T) {
	t.Parallel()

	store := NewEventStore(nil)
	ev := store.Add(context.Background(), EventInput{Title: "uuid", Start: "2025-09-01T10:00"})
	if len(ev.ID) != 36 || strings.Count(ev.ID, "-") != 4 {
		t.Fatalf("expected UUID formatted id, got %q", ev.ID)
	}
}

func TestEventStore_Add_RegeneratesCollidingIDs(t *testing.T) {
	t.Parallel()

	ids := []string{"dup", "dup", "", "fresh"}
	next := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	store := NewEventStore(next, WithLocation(time.UTC))
	ctx := context.Background()

	first := store.Add(ctx, EventInput{Title: "a", Start: "2025-09-01"})
	second := store.Add(ctx, EventInput{Title: "b", Start: "2025-09-02"})
	if first.ID != "dup" || second.ID != "fresh" {
		t.Fatalf("unexpected ids %q and %q", first.ID, second.ID)
	}
}

func TestEventStore_Add_NormalizesEnd(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	cases := []struct {
		start string
		end   string
		want  string
	}{
		{"2025-09-19T08:00", "", "2025-09-19T09:00"},
		{"2025-09-19T08:00", "2025-09-19T07:00", "2025-09-19T09:00"},
		{"2025-09-19T08:00", "2025-09-19T10:00", "2025-09-19T10:00"},
		{"2025-09-05", "2025-09-07", "2025-09-07"},
		{"", "whenever", "whenever"},
	}
	for _, tc := range cases {
		ev := store.Add(ctx, EventInput{Title: "range", Start: tc.start, End: tc.end})
		if ev.End != tc.want {
			t.Fatalf("Add(start=%q, end=%q) end = %q, want %q", tc.start, tc.end, ev.End, tc.want)
		}
	}
}

func TestEventStore_Add_UsesDefaultAccentAndBorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	dark := newTestStore(WithDefaultAccentColor("#101010"))
	if ev := dark.Add(ctx, EventInput{Title: "accent", Start: "2025-09-01"}); ev.TextColor != contrast.White {
		t.Fatalf("expected accent driven white text, got %q", ev.TextColor)
	}
	if ev, _ := dark.Event("event-1"); ev.BackgroundColor != "" {
		t.Fatalf("accent must not be stored on the event, got %q", ev.BackgroundColor)
	}

	bordered := newTestStore(WithDefaultAccentColor("#101010"))
	if ev := bordered.Add(ctx, EventInput{Title: "border", Start: "2025-09-01", BorderColor: "#fafafa"}); ev.TextColor != contrast.Black {
		t.Fatalf("expected border driven black text, got %q", ev.TextColor)
	}
}

func TestEventStore_Add_InvalidColorFallsBack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := NewEventStoreWithLogger(sequentialIDs("event"), logger)

	ev := store.Add(context.Background(), EventInput{Title: "bad", Start: "2025-09-01", BackgroundColor: "chartreuse-ish"})
	if ev.TextColor != FallbackTextColor {
		t.Fatalf("expected fallback text color, got %q", ev.TextColor)
	}
	if ev.BackgroundColor != "chartreuse-ish" {
		t.Fatalf("expected background to be stored as supplied, got %q", ev.BackgroundColor)
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "invalid_color") {
		t.Fatalf("expected warning log, got %q", buf.String())
	}

	white := newTestStore(WithFallbackTextColor(contrast.White))
	if ev := white.Add(context.Background(), EventInput{Title: "bad", Start: "2025-09-01", BackgroundColor: "#12"}); ev.TextColor != contrast.White {
		t.Fatalf("expected overridden fallback, got %q", ev.TextColor)
	}
}

func TestEventStore_Update_MergesInPlace(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	first := store.Add(ctx, EventInput{Title: "first", Start: "2025-09-19T08:00", End: "2025-09-19T10:00", BackgroundColor: "#000000"})
	store.Add(ctx, EventInput{Title: "second", Start: "2025-09-20"})

	updated, err := store.Update(ctx, EventPatch{ID: first.ID, Title: strPtr("renamed"), AllDay: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ID != first.ID || updated.Title != "renamed" || !updated.AllDay {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if updated.Start != first.Start || updated.End != first.End || updated.BackgroundColor != "#000000" {
		t.Fatalf("expected untouched fields to survive: %+v", updated)
	}
	if updated.TextColor != contrast.White {
		t.Fatalf("expected text color to be preserved, got %q", updated.TextColor)
	}

	events := store.Events()
	if events[0].ID != first.ID || events[0].Title != "renamed" {
		t.Fatalf("expected position to be preserved, got %+v", events)
	}
}

func TestEventStore_Update_RecomputesTextColor(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	ev := store.Add(ctx, EventInput{Title: "dark", Start: "2025-09-01", BackgroundColor: "#000000"})
	if ev.TextColor != contrast.White {
		t.Fatalf("precondition failed: %q", ev.TextColor)
	}

	updated, err := store.Update(ctx, EventPatch{ID: ev.ID, BackgroundColor: strPtr("#ffffff")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.TextColor != contrast.Black {
		t.Fatalf("expected recomputed black text, got %q", updated.TextColor)
	}

	cleared, err := store.Update(ctx, EventPatch{ID: ev.ID, BackgroundColor: strPtr(""), BorderColor: strPtr("#000")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if cleared.TextColor != contrast.White {
		t.Fatalf("expected border driven white text, got %q", cleared.TextColor)
	}
}

func TestEventStore_Update_RenormalizesEnd(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	ev := store.Add(ctx, EventInput{Title: "meeting", Start: "2025-09-19T08:00", End: "2025-09-19T10:00"})

	moved, err := store.Update(ctx, EventPatch{ID: ev.ID, Start: strPtr("2025-09-19T11:00")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if moved.End != "2025-09-19T12:00" {
		t.Fatalf("expected end to follow moved start, got %q", moved.End)
	}

	backwards, err := store.Update(ctx, EventPatch{ID: ev.ID, End: strPtr("2025-09-19T09:00")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if backwards.End != "2025-09-19T12:00" {
		t.Fatalf("expected backwards end to be repaired, got %q", backwards.End)
	}
}

func TestEventStore_Update_UpsertsUnknownID(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	ev, err := store.Update(ctx, EventPatch{ID: "external-1", Title: strPtr("pasted"), Start: strPtr("2025-09-19T08:00"), BackgroundColor: strPtr("#000")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if ev.ID != "external-1" {
		t.Fatalf("expected caller id to be kept, got %q", ev.ID)
	}
	if ev.End != "2025-09-19T09:00" || ev.TextColor != contrast.White {
		t.Fatalf("expected normalisation on upsert, got %+v", ev)
	}
	if got, ok := store.Event("external-1"); !ok || got.Title != "pasted" {
		t.Fatalf("expected upserted event to be stored, got %+v", got)
	}

	degenerate, err := store.Update(ctx, EventPatch{ID: "external-2"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if degenerate.Start != "" || degenerate.End != "" || degenerate.TextColor == "" {
		t.Fatalf("expected degenerate event with derived text color, got %+v", degenerate)
	}
	if len(store.Events()) != 2 {
		t.Fatalf("expected two events, got %d", len(store.Events()))
	}
}

func TestEventStore_Update_StrictModeRejectsUnknownID(t *testing.T) {
	t.Parallel()

	store := newTestStore(WithStrictUpdates(true))
	_, err := store.Update(context.Background(), EventPatch{ID: "missing", Title: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.Events()) != 0 {
		t.Fatalf("expected no insertion in strict mode")
	}
}

func TestEventStore_Delete(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	a := store.Add(ctx, EventInput{Title: "a", Start: "2025-09-01"})
	b := store.Add(ctx, EventInput{Title: "b", Start: "2025-09-02"})

	store.SelectEvent(ctx, b.ID)
	if !store.Delete(ctx, b.ID) {
		t.Fatalf("expected delete to report removal")
	}
	if _, ok := store.SelectedEventID(); ok {
		t.Fatalf("expected selection to be cleared")
	}

	store.SelectEvent(ctx, a.ID)
	store.SelectDate(ctx, "2025-09-01")
	before := store.Events()
	if store.Delete(ctx, "does-not-exist") {
		t.Fatalf("expected no-op delete to report false")
	}
	after := store.Events()
	if len(before) != len(after) || after[0].ID != a.ID {
		t.Fatalf("expected collection unchanged, got %+v", after)
	}
	if id, ok := store.SelectedEventID(); !ok || id != a.ID {
		t.Fatalf("expected selection unchanged, got %q %v", id, ok)
	}
	if date, ok := store.SelectedDate(); !ok || date != "2025-09-01" {
		t.Fatalf("expected selected date unchanged, got %q %v", date, ok)
	}
}

func TestEventStore_Selection(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	if _, ok := store.SelectedEvent(); ok {
		t.Fatalf("expected no selection on a new store")
	}

	store.SelectEvent(ctx, "ghost")
	if id, ok := store.SelectedEventID(); !ok || id != "ghost" {
		t.Fatalf("expected dangling selection to be stored, got %q %v", id, ok)
	}
	if _, ok := store.SelectedEvent(); ok {
		t.Fatalf("expected dangling selection to resolve to nothing")
	}

	ev := store.Add(ctx, EventInput{Title: "pick me", Start: "2025-09-01"})
	store.SelectEvent(ctx, ev.ID)
	got, ok := store.SelectedEvent()
	if !ok || got.ID != ev.ID {
		t.Fatalf("expected selected event %q, got %+v %v", ev.ID, got, ok)
	}

	store.ClearSelection(ctx)
	if _, ok := store.SelectedEvent(); ok {
		t.Fatalf("expected selection to be cleared")
	}

	store.SelectDate(ctx, "not a date")
	if date, ok := store.SelectedDate(); !ok || date != "not a date" {
		t.Fatalf("expected unvalidated date, got %q %v", date, ok)
	}
	store.ClearSelectedDate(ctx)
	if _, ok := store.SelectedDate(); ok {
		t.Fatalf("expected selected date to be cleared")
	}
}

func TestEventStore_EventsReturnsCopy(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ev := store.Add(context.Background(), EventInput{Title: "original", Start: "2025-09-01"})

	events := store.Events()
	events[0].Title = "mutated"

	if got, _ := store.Event(ev.ID); got.Title != "original" {
		t.Fatalf("expected store to be unaffected by caller mutation, got %q", got.Title)
	}
}

func TestEventStore_Subscribe(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ctx := context.Background()

	var changes []Change
	unsubscribe := store.Subscribe(func(c Change) {
		// Subscribers may read the store while being notified.
		_ = store.Events()
		changes = append(changes, c)
	})

	ev := store.Add(ctx, EventInput{Title: "a", Start: "2025-09-01"})
	store.SelectEvent(ctx, ev.ID)
	if _, err := store.Update(ctx, EventPatch{ID: ev.ID, Title: strPtr("b")}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	store.Delete(ctx, ev.ID)
	store.SelectDate(ctx, "2025-09-02")

	want := []Change{
		{Kind: ChangeAdded, EventID: ev.ID},
		{Kind: ChangeSelection, EventID: ev.ID},
		{Kind: ChangeUpdated, EventID: ev.ID},
		{Kind: ChangeDeleted, EventID: ev.ID},
		{Kind: ChangeSelection},
		{Kind: ChangeDateSelection},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %+v", len(want), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}

	unsubscribe()
	unsubscribe()
	store.Add(ctx, EventInput{Title: "quiet", Start: "2025-09-03"})
	if len(changes) != len(want) {
		t.Fatalf("expected no notifications after unsubscribe")
	}
}
