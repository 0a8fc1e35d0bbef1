// Package config provides the editor settings, stored in the Fyne
// application preferences.
package config

import (
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"

	"AnnotationBoard/internal/state"
)

// Preference keys.
const (
	KeyVertexRadius        = "vertex_radius"
	KeyFirstVertexHitWidth = "first_vertex_hit_width"
	KeySnapScale           = "snap_scale"
	KeyStrokeColor         = "stroke_color"
	KeyStrokeWidth         = "stroke_width"
	KeyVertexFill          = "vertex_fill"
	KeyPolygonFill         = "polygon_fill"
	KeyDefaultMode         = "default_mode"
)

// Config holds the editor settings. Colours and stroke width are only
// passed through to the renderer.
type Config struct {
	VertexRadius        float64
	FirstVertexHitWidth float64
	SnapScale           float64
	StrokeColor         color.NRGBA
	StrokeWidth         float32
	VertexFill          color.NRGBA
	PolygonFill         color.NRGBA
	DefaultMode         state.Mode
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		VertexRadius:        state.DefaultVertexRadius,
		FirstVertexHitWidth: state.DefaultFirstVertexHitWidth,
		SnapScale:           3,
		StrokeColor:         color.NRGBA{R: 0x00, G: 0xF1, B: 0xFF, A: 0xFF},
		StrokeWidth:         3,
		VertexFill:          color.NRGBA{R: 0xFF, G: 0x01, B: 0x9A, A: 0xFF},
		PolygonFill:         color.NRGBA{R: 140, G: 30, B: 255, A: 0x80},
		DefaultMode:         state.ModePolygon,
	}
}

// Load reads the settings from p, falling back to Defaults for anything
// unset or invalid.
func Load(p fyne.Preferences) Config {
	c := Defaults()
	if r := p.FloatWithFallback(KeyVertexRadius, c.VertexRadius); r > 0 {
		c.VertexRadius = r
	}
	if w := p.FloatWithFallback(KeyFirstVertexHitWidth, c.FirstVertexHitWidth); w >= 0 {
		c.FirstVertexHitWidth = w
	}
	if s := p.FloatWithFallback(KeySnapScale, c.SnapScale); s >= 1 {
		c.SnapScale = s
	}
	if w := p.FloatWithFallback(KeyStrokeWidth, float64(c.StrokeWidth)); w > 0 {
		c.StrokeWidth = float32(w)
	}
	c.StrokeColor = loadColor(p, KeyStrokeColor, c.StrokeColor)
	c.VertexFill = loadColor(p, KeyVertexFill, c.VertexFill)
	c.PolygonFill = loadColor(p, KeyPolygonFill, c.PolygonFill)
	if name := p.String(KeyDefaultMode); name != "" {
		if m, ok := state.ParseMode(name); ok {
			c.DefaultMode = m
		} else {
			slog.Warn("ignoring preference", "key", KeyDefaultMode, "value", name)
		}
	}
	return c
}

// Save writes the settings the user can change from the toolbar.
func (c Config) Save(p fyne.Preferences) {
	p.SetString(KeyStrokeColor, FormatColor(c.StrokeColor))
	p.SetFloat(KeyStrokeWidth, float64(c.StrokeWidth))
}

// SessionOptions returns the session options derived from c.
func (c Config) SessionOptions() []state.Option {
	return []state.Option{
		state.WithVertexRadius(c.VertexRadius),
		state.WithFirstVertexHitWidth(c.FirstVertexHitWidth),
		state.WithMode(c.DefaultMode),
	}
}

func loadColor(p fyne.Preferences, key string, fallback color.NRGBA) color.NRGBA {
	s := p.String(key)
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		slog.Warn("ignoring preference", "key", key, "err", err)
		return fallback
	}
	return c
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xFF}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("want #RRGGBB or #RRGGBBAA")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
