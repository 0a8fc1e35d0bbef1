package config

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AnnotationBoard/internal/state"
)

func TestLoadDefaults(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	c := Load(a.Preferences())
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, 6.0, c.VertexRadius)
	assert.Equal(t, state.ModePolygon, c.DefaultMode)
}

func TestLoadOverrides(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	p := a.Preferences()

	p.SetFloat(KeyVertexRadius, 8)
	p.SetFloat(KeySnapScale, 0.5) // invalid, ignored
	p.SetString(KeyStrokeColor, "#112233")
	p.SetString(KeyPolygonFill, "not a colour")
	p.SetString(KeyDefaultMode, "polyline")

	c := Load(p)
	assert.Equal(t, 8.0, c.VertexRadius)
	assert.Equal(t, 3.0, c.SnapScale)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, c.StrokeColor)
	assert.Equal(t, Defaults().PolygonFill, c.PolygonFill)
	assert.Equal(t, state.ModePolyline, c.DefaultMode)
}

func TestLoadDefaultMode(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	p := a.Preferences()

	p.SetString(KeyDefaultMode, "polygons")
	assert.Equal(t, state.ModePolygon, Load(p).DefaultMode)

	p.SetString(KeyDefaultMode, "none")
	assert.Equal(t, state.ModeNone, Load(p).DefaultMode)
}

func TestSaveRoundTrip(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	p := a.Preferences()

	c := Defaults()
	c.StrokeColor = color.NRGBA{R: 0xFF, A: 0xFF}
	c.StrokeWidth = 7
	c.Save(p)

	got := Load(p)
	assert.Equal(t, c.StrokeColor, got.StrokeColor)
	assert.Equal(t, float32(7), got.StrokeWidth)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#8C1EFF80")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 140, G: 30, B: 255, A: 0x80}, c)
	assert.Equal(t, "#8C1EFF80", FormatColor(c))
	assert.Equal(t, "#00F1FF", FormatColor(Defaults().StrokeColor))

	_, err = ParseColor("#12")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
