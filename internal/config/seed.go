package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/calendar-editor/internal/application"
)

// SeedEvent is one entry of the YAML seed file.
type SeedEvent struct {
	Title           string `yaml:"title"`
	Start           string `yaml:"start"`
	End             string `yaml:"end,omitempty"`
	AllDay          bool   `yaml:"all_day,omitempty"`
	BackgroundColor string `yaml:"background_color,omitempty"`
	BorderColor     string `yaml:"border_color,omitempty"`
}

// Seed is the top-level document of the seed file:
//
//	events:
//	  - title: event 1
//	    start: "2025-09-01"
type Seed struct {
	Events []SeedEvent `yaml:"events"`
}

// Input converts the entry into store input.
func (e SeedEvent) Input() application.EventInput {
	return application.EventInput{
		Title:           e.Title,
		Start:           e.Start,
		End:             e.End,
		AllDay:          e.AllDay,
		BackgroundColor: e.BackgroundColor,
		BorderColor:     e.BorderColor,
	}
}

// DefaultSeed returns the sample calendar shown on first start.
func DefaultSeed() []application.EventInput {
	return []application.EventInput{
		{Title: "event 1", Start: "2025-09-01"},
		{Title: "event 2", Start: "2025-09-05", End: "2025-09-07"},
		{Title: "event 3", Start: "2025-09-09T12:30:00"},
	}
}

// LoadSeed reads the YAML seed file at path. Entries without a start are
// rejected.
func LoadSeed(path string) ([]application.EventInput, error) {
	if path == "" {
		return nil, errors.New("config: seed path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read seed: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("config: parse seed %s: %w", path, err)
	}

	inputs := make([]application.EventInput, 0, len(seed.Events))
	for i, ev := range seed.Events {
		if ev.Start == "" {
			return nil, fmt.Errorf("config: seed event %d (%q) has no start", i, ev.Title)
		}
		inputs = append(inputs, ev.Input())
	}
	return inputs, nil
}
