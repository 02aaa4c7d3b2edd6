package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/calendar-editor/internal/application"
	"github.com/example/calendar-editor/internal/contrast"
	"github.com/example/calendar-editor/internal/logging"
)

// Config captures environment driven configuration values for the calendar editor.
type Config struct {
	HTTPPort          int
	DefaultAccent     string
	FallbackTextColor string
	StrictUpdates     bool
	SeedFile          string
	LogLevel          slog.Level
	// Location is nil when CALENDAR_TIMEZONE is unset.
	Location *time.Location
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults. Every invalid entry is collected and
// reported in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:          8080,
		DefaultAccent:     application.DefaultAccentColor,
		FallbackTextColor: contrast.Black,
		LogLevel:          slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("CALENDAR_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "CALENDAR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if accent := strings.TrimSpace(os.Getenv("CALENDAR_DEFAULT_ACCENT")); accent != "" {
		if _, err := contrast.ParseColor(accent); err != nil {
			invalid = append(invalid, "CALENDAR_DEFAULT_ACCENT")
		} else {
			cfg.DefaultAccent = accent
		}
	}

	if fallback := strings.ToLower(strings.TrimSpace(os.Getenv("CALENDAR_FALLBACK_TEXT_COLOR"))); fallback != "" {
		switch fallback {
		case contrast.Black, contrast.White:
			cfg.FallbackTextColor = fallback
		default:
			invalid = append(invalid, "CALENDAR_FALLBACK_TEXT_COLOR")
		}
	}

	if strictValue := strings.TrimSpace(os.Getenv("CALENDAR_STRICT_UPDATES")); strictValue != "" {
		strict, err := strconv.ParseBool(strictValue)
		if err != nil {
			invalid = append(invalid, "CALENDAR_STRICT_UPDATES")
		} else {
			cfg.StrictUpdates = strict
		}
	}

	cfg.SeedFile = strings.TrimSpace(os.Getenv("CALENDAR_SEED_FILE"))

	if levelValue := os.Getenv("CALENDAR_LOG_LEVEL"); strings.TrimSpace(levelValue) != "" {
		level, err := logging.ParseLevel(levelValue)
		if err != nil {
			invalid = append(invalid, "CALENDAR_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if zone := strings.TrimSpace(os.Getenv("CALENDAR_TIMEZONE")); zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			invalid = append(invalid, "CALENDAR_TIMEZONE")
		} else {
			cfg.Location = loc
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("config: invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
