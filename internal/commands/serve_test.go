package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/calendar-editor/internal/application"
	"github.com/example/calendar-editor/internal/config"
	"github.com/example/calendar-editor/internal/testfixtures"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseConfig() config.Config {
	return config.Config{
		HTTPPort:          8080,
		DefaultAccent:     "#3788d8",
		FallbackTextColor: "#000",
		Location:          time.UTC,
	}
}

func TestNewSeededStore(t *testing.T) {
	t.Parallel()

	t.Run("uses sample calendar without seed file", func(t *testing.T) {
		t.Parallel()

		store, err := newSeededStore(context.Background(), baseConfig(), discardLogger())
		if err != nil {
			t.Fatalf("newSeededStore returned error: %v", err)
		}
		events := store.Events()
		if len(events) != 3 {
			t.Fatalf("expected 3 sample events, got %d", len(events))
		}
		if events[0].End != "2025-09-01T01:00" || events[2].End != "2025-09-09T13:30" {
			t.Fatalf("expected corrected ends, got %+v", events)
		}
		for _, ev := range events {
			if ev.ID == "" || ev.TextColor != "#000" {
				t.Fatalf("unexpected event: %+v", ev)
			}
		}
	})

	t.Run("loads seed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seed.yaml")
		content := "events:\n  - title: Standup\n    start: \"2025-09-19T08:00\"\n    background_color: \"#000\"\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write seed: %v", err)
		}
		cfg := baseConfig()
		cfg.SeedFile = path

		store, err := newSeededStore(context.Background(), cfg, discardLogger())
		if err != nil {
			t.Fatalf("newSeededStore returned error: %v", err)
		}
		events := store.Events()
		if len(events) != 1 || events[0].Title != "Standup" || events[0].TextColor != "#fff" {
			t.Fatalf("unexpected events: %+v", events)
		}
	})

	t.Run("propagates seed errors", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig()
		cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
		if _, err := newSeededStore(context.Background(), cfg, discardLogger()); err == nil {
			t.Fatalf("expected error for missing seed file")
		}
	})
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.StrictUpdates = true
	store := testfixtures.NewStoreFactory().NewEventStore(storeOptions(cfg)...)
	clock := testfixtures.NewClock(time.Time{})
	handler := newHandler(cfg, store, discardLogger(), clock.NowFunc())

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"Planning","start":"2025-09-19T08:00"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if created["end"] != "2025-09-19T09:00" {
		t.Fatalf("unexpected created event: %v", created)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/events/unknown", strings.NewReader(`{}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected strict mode 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events.ics", nil))
	if !strings.Contains(rec.Body.String(), "DTSTAMP:20250919T080000Z") {
		t.Fatalf("expected export to use injected clock:\n%s", rec.Body.String())
	}
}

func TestStoreOptions(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.DefaultAccent = "#000000"
	cfg.FallbackTextColor = "#fff"
	store := application.NewEventStore(nil, storeOptions(cfg)...)

	ev := store.Add(context.Background(), application.EventInput{Title: "accent", Start: "2025-09-01"})
	if ev.TextColor != "#fff" {
		t.Fatalf("expected accent override to drive text color, got %q", ev.TextColor)
	}
	ev = store.Add(context.Background(), application.EventInput{Title: "broken", Start: "2025-09-01", BackgroundColor: "nope"})
	if ev.TextColor != "#fff" {
		t.Fatalf("expected fallback override, got %q", ev.TextColor)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	cmd := New()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		t.Fatalf("expected a version string")
	}
}
