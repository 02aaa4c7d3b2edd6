package contrast

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned when a color specification matches neither
// the hex nor the rgb()/rgba() grammar.
var ErrInvalidColorFormat = errors.New("contrast: invalid color format")

var rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*([0-9.]+)[,\s]+([0-9.]+)[,\s]+([0-9.]+)(?:[,\s]+([0-9.]+))?\s*\)$`)

// RGB holds the red, green and blue channels of a color on the 0-255 scale.
type RGB struct {
	R float64
	G float64
	B float64
}

// Hex renders the color as a lowercase #rrggbb string.
func (c RGB) Hex() string {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Clamped().Hex()
}

// ParseColor converts a color specification into its RGB channels.
//
// Accepted forms are #rgb and #rrggbb (case-insensitive, the leading # is
// optional) and rgb(...)/rgba(...) with comma or space separated channels. The
// alpha channel is ignored and channels outside 0-255 are clamped.
func ParseColor(spec string) (RGB, error) {
	value := strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(value, "#"):
		return parseHex(strings.TrimPrefix(value, "#"), spec)
	case len(value) >= 3 && strings.EqualFold(value[:3], "rgb"):
		return parseRGBFunc(value, spec)
	case isHexDigits(value):
		return parseHex(value, spec)
	default:
		return RGB{}, fmt.Errorf("%w: unsupported color %q, provide hex \"#rrggbb\" or \"rgb(...)\"", ErrInvalidColorFormat, spec)
	}
}

func parseHex(digits, original string) (RGB, error) {
	if len(digits) != 3 && len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: hex color %q must have 3 or 6 digits", ErrInvalidColorFormat, original)
	}
	if !isHexDigits(digits) {
		return RGB{}, fmt.Errorf("%w: hex color %q contains non-hex characters", ErrInvalidColorFormat, original)
	}
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidColorFormat, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: float64(r), G: float64(g), B: float64(b)}, nil
}

func parseRGBFunc(value, original string) (RGB, error) {
	m := rgbPattern.FindStringSubmatch(value)
	if m == nil {
		return RGB{}, fmt.Errorf("%w: invalid rgb(a) string %q", ErrInvalidColorFormat, original)
	}
	channels := [3]float64{}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: invalid channel %q in %q", ErrInvalidColorFormat, m[i+1], original)
		}
		channels[i] = clampChannel(v)
	}
	if m[4] != "" {
		if _, err := strconv.ParseFloat(m[4], 64); err != nil {
			return RGB{}, fmt.Errorf("%w: invalid alpha %q in %q", ErrInvalidColorFormat, m[4], original)
		}
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func isHexDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
