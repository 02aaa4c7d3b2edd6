package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/example/calendar-editor/internal/application"
)

// StoreFactory assists tests with constructing event stores using
// deterministic identifiers, a fixed zone and a silent logger.
type StoreFactory struct {
	IDGenerator *IDGenerator
	Location    *time.Location
	Logger      *slog.Logger
}

// StoreFactoryOption configures a StoreFactory instance.
type StoreFactoryOption func(*StoreFactory)

// NewStoreFactory constructs a StoreFactory with defaults.
func NewStoreFactory(opts ...StoreFactoryOption) *StoreFactory {
	factory := &StoreFactory{
		IDGenerator: NewIDGenerator("event"),
		Location:    time.UTC,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("event")
	}
	return factory
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.IDGenerator = generator
	}
}

// WithLogger overrides the logger handed to constructed stores.
func WithLogger(logger *slog.Logger) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.Logger = logger
	}
}

// NewEventStore builds a store with the factory defaults followed by opts.
func (f *StoreFactory) NewEventStore(opts ...application.EventStoreOption) *application.EventStore {
	all := append([]application.EventStoreOption{application.WithLocation(f.Location)}, opts...)
	return application.NewEventStoreWithLogger(f.IDGenerator.NextFunc(), f.Logger, all...)
}

// NewSeededEventStore builds a store and adds inputs in order.
func (f *StoreFactory) NewSeededEventStore(inputs []application.EventInput, opts ...application.EventStoreOption) *application.EventStore {
	store := f.NewEventStore(opts...)
	for _, input := range inputs {
		store.Add(context.Background(), input)
	}
	return store
}
