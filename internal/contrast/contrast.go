// Package contrast picks a legible foreground color for an arbitrary
// background using the WCAG relative luminance and contrast ratio formulas.
package contrast

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

const (
	// Black is the foreground recommended for light backgrounds.
	Black = "#000"
	// White is the foreground recommended for dark backgrounds.
	White = "#fff"
	// MaxContrast is the ratio between pure black and pure white.
	MaxContrast = 21.0

	maxWhiteBias = 0.95
)

// Preference selects how PickForegroundColor chooses between black and white.
type Preference string

const (
	// PreferContrast picks whichever of black or white contrasts more.
	PreferContrast Preference = "contrast"
	// PreferBlack always returns Black.
	PreferBlack Preference = "black"
	// PreferWhite always returns White.
	PreferWhite Preference = "white"
)

// ParsePreference maps a user supplied preference name to a Preference. An
// empty value yields PreferContrast.
func ParsePreference(value string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(value))) {
	case "", PreferContrast:
		return PreferContrast, nil
	case PreferBlack:
		return PreferBlack, nil
	case PreferWhite:
		return PreferWhite, nil
	default:
		return "", fmt.Errorf("contrast: unknown preference %q", value)
	}
}

// Options tune PickForegroundColor.
type Options struct {
	Prefer Preference
	// WhiteBias scales the white score by (1+bias) and the black score by
	// (1-bias) in PreferContrast mode. It is clamped to [-0.95, 0.95].
	WhiteBias float64
	// Logger receives a debug record describing each decision. Nil disables it.
	Logger *slog.Logger
}

// Result is the structured outcome of PickForegroundColorReport.
type Result struct {
	Color             string
	MeetsContrast     bool
	ContrastWithBlack float64
	ContrastWithWhite float64
}

// RelativeLuminance returns the perceptual brightness of c in [0, 1].
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel float64) float64 {
	v := channel / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two luminances. The
// result is always in [1, 21] for luminances in [0, 1].
func ContrastRatio(l1, l2 float64) float64 {
	hi := math.Max(l1, l2)
	lo := math.Min(l1, l2)
	return (hi + 0.05) / (lo + 0.05)
}

// PickForegroundColor returns Black or White for text drawn on bg.
func PickForegroundColor(bg string, opts Options) (string, error) {
	res, err := evaluate(bg, opts)
	if err != nil {
		return "", err
	}
	return res.Color, nil
}

// PickForegroundColorReport behaves like PickForegroundColor and also reports
// the measured contrast and whether the better of the two candidates reaches
// minContrast.
func PickForegroundColorReport(bg string, minContrast float64, opts Options) (Result, error) {
	res, err := evaluate(bg, opts)
	if err != nil {
		return Result{}, err
	}
	res.MeetsContrast = math.Max(res.ContrastWithBlack, res.ContrastWithWhite) >= minContrast
	return res, nil
}

func evaluate(bg string, opts Options) (Result, error) {
	rgb, err := ParseColor(bg)
	if err != nil {
		return Result{}, err
	}

	lum := RelativeLuminance(rgb)
	res := Result{
		ContrastWithBlack: ContrastRatio(lum, 0),
		ContrastWithWhite: ContrastRatio(1, lum),
	}

	switch opts.Prefer {
	case PreferBlack:
		res.Color = Black
	case PreferWhite:
		res.Color = White
	default:
		bias := math.Max(-maxWhiteBias, math.Min(maxWhiteBias, opts.WhiteBias))
		scoreBlack := res.ContrastWithBlack * (1 - bias)
		scoreWhite := res.ContrastWithWhite * (1 + bias)
		if scoreBlack >= scoreWhite {
			res.Color = Black
		} else {
			res.Color = White
		}
	}

	if opts.Logger != nil {
		opts.Logger.Debug("picked foreground color",
			"background", bg,
			"rgb", rgb.Hex(),
			"luminance", lum,
			"color", res.Color,
			"contrast_with_black", res.ContrastWithBlack,
			"contrast_with_white", res.ContrastWithWhite,
		)
	}

	return res, nil
}
