package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/calendar-editor/internal/application"
	"github.com/example/calendar-editor/internal/config"
	"github.com/example/calendar-editor/internal/contrast"
	httptransport "github.com/example/calendar-editor/internal/http"
	"github.com/example/calendar-editor/internal/ics"
)

func addServe(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar editor HTTP API.",
		Example: `
CALENDAR_HTTP_PORT=9090 calendar-editor serve
CALENDAR_SEED_FILE=./seed.yaml CALENDAR_STRICT_UPDATES=true calendar-editor serve
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	store, err := newSeededStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to seed event store", "error", err)
		return err
	}
	unsubscribe := store.Subscribe(func(change application.Change) {
		logger.Debug("event store changed", "kind", change.Kind, "event_id", change.EventID)
	})
	defer unsubscribe()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newHandler(cfg, store, logger, time.Now),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("calendar editor API listening", "addr", server.Addr, "events", len(store.Events()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		return err
	}
	return nil
}

func storeOptions(cfg config.Config) []application.EventStoreOption {
	opts := []application.EventStoreOption{
		application.WithDefaultAccentColor(cfg.DefaultAccent),
		application.WithFallbackTextColor(cfg.FallbackTextColor),
		application.WithStrictUpdates(cfg.StrictUpdates),
	}
	if cfg.Location != nil {
		opts = append(opts, application.WithLocation(cfg.Location))
	}
	return opts
}

// newSeededStore builds the store and fills it from the seed file, or with the
// sample calendar when none is configured.
func newSeededStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application.EventStore, error) {
	seed := config.DefaultSeed()
	if cfg.SeedFile != "" {
		loaded, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
	}

	store := application.NewEventStoreWithLogger(uuid.NewString, logger, storeOptions(cfg)...)
	for _, input := range seed {
		store.Add(ctx, input)
	}
	return store, nil
}

func newHandler(cfg config.Config, store *application.EventStore, logger *slog.Logger, now func() time.Time) http.Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return httptransport.NewRouter(httptransport.RouterConfig{
		Events:     httptransport.NewEventHandler(store, logger),
		Selection:  httptransport.NewSelectionHandler(store, logger),
		Contrast:   httptransport.NewContrastHandler(application.NewContrastServiceWithLogger(contrast.Options{}, logger), logger),
		Calendar:   httptransport.NewCalendarHandler(store, ics.NewCodec(loc, logger), now, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})
}
