package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/calendar-editor/internal/contrast"
)

// ContrastService validates foreground color requests coming from the UI
// before handing them to the contrast engine.
type ContrastService struct {
	options contrast.Options
	logger  *slog.Logger
}

// NewContrastService wires a service using opts as the base engine options.
func NewContrastService(opts contrast.Options) *ContrastService {
	return NewContrastServiceWithLogger(opts, nil)
}

// NewContrastServiceWithLogger wires a service that logs through logger.
func NewContrastServiceWithLogger(opts contrast.Options, logger *slog.Logger) *ContrastService {
	return &ContrastService{options: opts, logger: defaultLogger(logger)}
}

// Recommend picks a foreground color for params.Background and, when a
// minimum ratio is supplied, reports whether it is met.
func (s *ContrastService) Recommend(ctx context.Context, params ContrastParams) (ContrastReport, error) {
	if s == nil {
		return ContrastReport{}, fmt.Errorf("ContrastService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "ContrastService", "Recommend", "background", params.Background)

	vErr := &ValidationError{}
	background := strings.TrimSpace(params.Background)
	if background == "" {
		vErr.add("background", "background is required")
	}
	prefer, err := contrast.ParsePreference(params.Prefer)
	if err != nil {
		vErr.add("prefer", "prefer must be one of contrast, black, white")
	}
	if params.MinContrast != nil && (*params.MinContrast < 1 || *params.MinContrast > contrast.MaxContrast) {
		vErr.add("min_contrast", "min_contrast must be between 1 and 21")
	}
	if vErr.HasErrors() {
		logger.Info("contrast request rejected", "error_kind", ErrorKind(vErr))
		return ContrastReport{}, vErr
	}

	opts := s.options
	opts.Prefer = prefer
	if opts.Logger == nil {
		opts.Logger = logger
	}

	minContrast := 1.0
	if params.MinContrast != nil {
		minContrast = *params.MinContrast
	}
	res, err := contrast.PickForegroundColorReport(background, minContrast, opts)
	if err != nil {
		if errors.Is(err, contrast.ErrInvalidColorFormat) {
			logger.Info("contrast request rejected", "error_kind", ErrorKind(err), "error", err)
			return ContrastReport{}, NewValidationError("background", "background is not a valid color")
		}
		return ContrastReport{}, err
	}

	report := ContrastReport{
		Background:        background,
		Color:             res.Color,
		ContrastWithBlack: res.ContrastWithBlack,
		ContrastWithWhite: res.ContrastWithWhite,
	}
	if params.MinContrast != nil {
		meets := res.MeetsContrast
		report.MeetsContrast = &meets
	}
	return report, nil
}
