package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"AnnotationBoard/internal/state"
)

var modeLabels = []string{"Polygon", "Line", "Polyline", "None"}

var labelModes = map[string]state.Mode{
	"Polygon":  state.ModePolygon,
	"Line":     state.ModeLine,
	"Polyline": state.ModePolyline,
	"None":     state.ModeNone,
}

func modeLabel(m state.Mode) string {
	for l, lm := range labelModes {
		if lm == m {
			return l
		}
	}
	return "None"
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the mode selector, edit actions, stroke colours and
// stroke width slider for board.
func NewToolbar(board *AnnotationBoard) fyne.CanvasObject {
	modes := widget.NewRadioGroup(modeLabels, func(l string) {
		if m, ok := labelModes[l]; ok {
			board.SetMode(m)
		}
	})
	modes.Horizontal = true
	modes.Required = true
	modes.SetSelected(modeLabel(board.Session().Mode()))

	// Right-click can leave a drawing mode; keep the radio in step.
	prevMode := board.OnModeChange
	board.OnModeChange = func(m state.Mode) {
		if l := modeLabel(m); modes.Selected != l {
			modes.SetSelected(l)
		}
		if prevMode != nil {
			prevMode(m)
		}
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), board.Reset),
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearActive),
	)

	onColorTapped := func(c color.Color) {
		board.SetStrokeColor(c)
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.NRGBA{R: 0x00, G: 0xF1, B: 0xFF, A: 0xFF}, onColorTapped), // Cyan
		newColorSwatch(color.NRGBA{R: 255, A: 255}, onColorTapped),                     // Red
		newColorSwatch(color.NRGBA{G: 255, A: 255}, onColorTapped),                     // Green
		newColorSwatch(color.NRGBA{R: 255, G: 255, A: 255}, onColorTapped),             // Yellow
		newColorSwatch(color.White, onColorTapped),
	)

	strokeSlider := widget.NewSlider(1.0, 12.0)
	strokeSlider.SetValue(float64(board.cfg.StrokeWidth))
	strokeSlider.OnChanged = func(val float64) {
		board.SetStrokeWidth(float32(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Mode:"),
		modes,
		widget.NewSeparator(),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
