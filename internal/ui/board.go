package ui

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"AnnotationBoard/internal/config"
	"AnnotationBoard/internal/state"
)

// AnnotationBoard shows the background image with the session's shapes on
// top and turns mouse input into session operations.
type AnnotationBoard struct {
	widget.BaseWidget
	session    *state.Session
	cfg        config.Config
	background image.Image
	statusBar  *widget.Label
	log        *slog.Logger

	// Set by MouseDown when the press landed on a vertex handle or,
	// outside drawing modes, on a finished shape. A vertex press only
	// becomes a drag once Dragged fires; released in place it is a click.
	dragVertex  *state.VertexRef
	vertexPress state.Point
	vertexMoved bool
	groupOrigin fyne.Position
	groupDelta  state.Point
	groupMoved  bool

	OnModeChange  func(m state.Mode)
	OnStyleChange func(c config.Config)
}

var _ fyne.Widget = (*AnnotationBoard)(nil)
var _ fyne.Draggable = (*AnnotationBoard)(nil)
var _ desktop.Mouseable = (*AnnotationBoard)(nil)
var _ desktop.Hoverable = (*AnnotationBoard)(nil)

// NewAnnotationBoard creates a board that drives s. The board becomes the
// session's change listener.
func NewAnnotationBoard(s *state.Session, cfg config.Config) *AnnotationBoard {
	b := &AnnotationBoard{
		session:   s,
		cfg:       cfg,
		statusBar: widget.NewLabel("Ready"),
		log:       slog.With("component", "board"),
	}
	s.OnChange = b.sessionChanged
	b.ExtendBaseWidget(b)
	return b
}

func (b *AnnotationBoard) sessionChanged(ev state.Event) {
	if ev.Type == state.EventModeChanged && b.OnModeChange != nil {
		b.OnModeChange(b.session.Mode())
	}
	b.Refresh()
}

// Session returns the session the board drives.
func (b *AnnotationBoard) Session() *state.Session { return b.session }

// StatusBar returns the label the board reports to.
func (b *AnnotationBoard) StatusBar() *widget.Label { return b.statusBar }

// SetStatus shows text in the status bar. Call it on the UI goroutine.
func (b *AnnotationBoard) SetStatus(text string) {
	b.statusBar.SetText(text)
}

// SetBackground installs the loaded image and makes its size the canvas
// bounds.
func (b *AnnotationBoard) SetBackground(img image.Image) {
	b.background = img
	sz := img.Bounds().Size()
	b.session.SetViewport(state.Viewport{Width: float64(sz.X), Height: float64(sz.Y)})
	b.SetStatus(fmt.Sprintf("Image %dx%d", sz.X, sz.Y))
	b.Refresh()
}

// SetMode switches the drawing mode.
func (b *AnnotationBoard) SetMode(m state.Mode) {
	b.session.SetMode(m)
}

// Undo steps back once in the active mode.
func (b *AnnotationBoard) Undo() {
	if !b.session.Undo() {
		b.SetStatus("Nothing to undo")
	}
}

// Reset clears the shape being drawn in the active mode.
func (b *AnnotationBoard) Reset() {
	b.session.Reset()
}

// ClearActive removes the finished shapes of the active mode's kind.
func (b *AnnotationBoard) ClearActive() {
	k, ok := b.session.Mode().Kind()
	if !ok {
		b.SetStatus("Select a shape kind to clear")
		return
	}
	b.session.Clear(k)
	b.SetStatus(fmt.Sprintf("Cleared %ss", k))
}

// SetStrokeColor changes the outline colour.
func (b *AnnotationBoard) SetStrokeColor(c color.Color) {
	b.cfg.StrokeColor = color.NRGBAModel.Convert(c).(color.NRGBA)
	b.styleChanged()
}

// SetStrokeWidth changes the outline width.
func (b *AnnotationBoard) SetStrokeWidth(w float32) {
	b.cfg.StrokeWidth = w
	b.styleChanged()
}

func (b *AnnotationBoard) styleChanged() {
	if b.OnStyleChange != nil {
		b.OnStyleChange(b.cfg)
	}
	b.Refresh()
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func toPos(p state.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (b *AnnotationBoard) MouseDown(e *desktop.MouseEvent) {
	pos := toPoint(e.Position)
	switch e.Button {
	case desktop.MouseButtonSecondary:
		b.report(b.session.PointerDown(state.ButtonSecondary, pos))
	case desktop.MouseButtonPrimary:
		// A press without a preceding move still needs fresh hover state.
		b.session.PointerMove(pos)
		if b.armDrag(pos, e.Position) {
			return
		}
		b.report(b.session.PointerDown(state.ButtonPrimary, pos))
	}
}

// armDrag decides whether a primary press starts a drag instead of a
// drawing action. A press that would close the polygon never does.
func (b *AnnotationBoard) armDrag(pos state.Point, at fyne.Position) bool {
	if b.session.Snapping() {
		return false
	}
	if ref, ok := b.session.VertexAt(pos); ok {
		b.dragVertex = &ref
		b.vertexPress = pos
		b.vertexMoved = false
		return true
	}
	if b.session.Mode() != state.ModeNone {
		return false
	}
	id, ok := b.session.ShapeAt(pos)
	if !ok {
		return false
	}
	if err := b.session.BeginGroupDrag(id); err != nil {
		b.log.Error("group drag", "err", err)
		return false
	}
	b.groupOrigin = at
	b.groupDelta = state.Point{}
	b.groupMoved = false
	return true
}

func (b *AnnotationBoard) report(o state.Outcome) {
	switch o {
	case state.OutcomeCommitted:
		b.SetStatus("Shape added")
	case state.OutcomeCancelled:
		b.SetStatus("Line cancelled")
	}
}

func (b *AnnotationBoard) MouseUp(*desktop.MouseEvent) {
	b.finishDrag()
}

func (b *AnnotationBoard) Dragged(e *fyne.DragEvent) {
	pos := toPoint(e.Position)
	switch {
	case b.dragVertex != nil:
		b.vertexMoved = true
		if _, err := b.session.DragVertex(*b.dragVertex, pos); err != nil {
			b.log.Error("vertex drag", "err", err)
			b.dragVertex = nil
		}
	case b.groupDragging():
		b.groupMoved = true
		b.groupDelta = state.Point{
			X: float64(e.Position.X - b.groupOrigin.X),
			Y: float64(e.Position.Y - b.groupOrigin.Y),
		}
		b.Refresh()
	default:
		// Held button while drawing: keep the preview following.
		b.session.PointerMove(pos)
	}
}

func (b *AnnotationBoard) DragEnd() {
	b.finishDrag()
}

// finishDrag ends whatever drag MouseDown armed. Both DragEnd and MouseUp
// call it; the second call finds nothing to do. A vertex press that never
// moved is handed to the session as an ordinary click, so drawing modes can
// place a vertex on top of an existing one.
func (b *AnnotationBoard) finishDrag() {
	if b.dragVertex != nil {
		clicked := !b.vertexMoved
		b.dragVertex = nil
		b.vertexMoved = false
		if clicked {
			b.report(b.session.PointerDown(state.ButtonPrimary, b.vertexPress))
		}
	}
	if !b.groupDragging() {
		return
	}
	if !b.groupMoved {
		b.session.CancelGroupDrag()
		return
	}
	if _, err := b.session.EndGroupDrag(b.groupDelta); err != nil {
		b.log.Error("group drag", "err", err)
	}
	b.groupDelta = state.Point{}
	b.groupMoved = false
}

func (b *AnnotationBoard) groupDragging() bool {
	_, ok := b.session.Dragging()
	return ok
}

func (b *AnnotationBoard) MouseIn(e *desktop.MouseEvent) {
	b.session.PointerMove(toPoint(e.Position))
}

func (b *AnnotationBoard) MouseMoved(e *desktop.MouseEvent) {
	b.session.PointerMove(toPoint(e.Position))
}

func (b *AnnotationBoard) MouseOut() {
	b.session.SetFirstVertexHover(false)
}

func (b *AnnotationBoard) MinSize() fyne.Size {
	if vp := b.session.Viewport(); vp.Known() {
		return fyne.NewSize(float32(vp.Width), float32(vp.Height))
	}
	return fyne.NewSize(300, 300)
}

func (b *AnnotationBoard) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.blank = canvas.NewRectangle(color.White)
	r.Refresh()
	return r
}
