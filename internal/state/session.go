package state

import (
	"log/slog"
)

const (
	// DefaultVertexRadius is the radius of a vertex handle in pixels.
	DefaultVertexRadius = 6
	// DefaultFirstVertexHitWidth widens the first polygon vertex's hit area
	// so the closing click is easy to land.
	DefaultFirstVertexHitWidth = 12
)

type options struct {
	logger       *slog.Logger
	vertexRadius float64
	hitWidth     float64
	mode         Mode
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithVertexRadius sets the vertex handle radius used for hit-testing and
// vertex clamping.
func WithVertexRadius(r float64) Option {
	return func(o *options) { o.vertexRadius = r }
}

// WithFirstVertexHitWidth sets the extra hit width around the first
// vertex of an in-progress polygon.
func WithFirstVertexHitWidth(w float64) Option {
	return func(o *options) { o.hitWidth = w }
}

// WithMode sets the drawing mode the session starts in.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// Session holds the annotation state of one image: the drawing mode, the
// finalized shapes of each kind, one in-progress shape per kind, and the
// pointer position used for the preview segment.
//
// A Session is not safe for concurrent use. It is meant to be driven from
// a single UI goroutine.
type Session struct {
	mode      Mode
	finalized [len(kinds)][]Shape
	current   [len(kinds)]Shape

	pointer      Point
	pointerKnown bool

	// polyComplete is set only while the in-progress polygon is being
	// closed by a click on its own first vertex. It is raised and lowered
	// within one PointerDown, so only OnChange listeners running during
	// the commit observe it.
	polyComplete bool
	hoverFirst   bool

	viewport Viewport
	drag     *groupDrag

	opts     options
	log      *slog.Logger
	revision uint64

	// OnChange, if set, is called after every state change.
	OnChange func(Event)
}

// NewSession creates an empty session. It starts in polygon mode unless
// WithMode says otherwise.
func NewSession(opts ...Option) *Session {
	o := options{
		vertexRadius: DefaultVertexRadius,
		hitWidth:     DefaultFirstVertexHitWidth,
		mode:         ModePolygon,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	s := &Session{
		mode: o.mode,
		opts: o,
		log:  o.logger.With("component", "session"),
	}
	for _, k := range kinds {
		s.current[k] = newShape(k)
	}
	return s
}

// Mode returns the active drawing mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode selects a drawing mode. Finalized shapes are kept, and so is the
// in-progress shape of the previous mode: switching back resumes it.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.log.Debug("mode changed", "from", s.mode, "to", m)
	s.mode = m
	s.hoverFirst = false
	s.emit(Event{Type: EventModeChanged})
}

// Viewport returns the canvas size used for clamping.
func (s *Session) Viewport() Viewport { return s.viewport }

// SetViewport records the canvas size once the background image is known.
func (s *Session) SetViewport(vp Viewport) {
	if vp == s.viewport {
		return
	}
	s.log.Info("viewport set", "width", vp.Width, "height", vp.Height)
	s.viewport = vp
	s.emit(Event{Type: EventViewportChanged})
}

// VertexRadius returns the vertex handle radius.
func (s *Session) VertexRadius() float64 { return s.opts.vertexRadius }

// Pointer returns the last known cursor position. ok is false until the
// pointer has been seen.
func (s *Session) Pointer() (p Point, ok bool) {
	return s.pointer, s.pointerKnown
}

// Completed reports the polygon completion flag. It is true only for the
// events emitted while a polygon is being closed (EventShapeCommitted and
// the following EventModeChanged); PolygonPhase reports PhaseFinished for
// exactly that window.
func (s *Session) Completed() bool { return s.polyComplete }

// Shapes returns a copy of the finalized shapes of kind k.
func (s *Session) Shapes(k Kind) []Shape {
	out := make([]Shape, len(s.finalized[k]))
	for i, sh := range s.finalized[k] {
		out[i] = sh.clone()
	}
	return out
}

// InProgress returns a copy of the in-progress shape of kind k.
func (s *Session) InProgress(k Kind) Shape {
	return s.current[k].clone()
}

// PointerMove updates the pointer tracker.
func (s *Session) PointerMove(pos Point) {
	s.pointer = pos
	s.pointerKnown = true
	if s.mode == ModePolygon {
		s.updateHover(pos)
	}
	s.emit(Event{Type: EventPointerMoved})
}

// PointerDown handles a button press at pos according to the active mode.
func (s *Session) PointerDown(btn Button, pos Point) Outcome {
	pos = clampPlacement(s.viewport, pos)
	s.pointer = pos
	s.pointerKnown = true

	if btn == ButtonSecondary {
		return s.secondaryDown()
	}

	switch s.mode {
	case ModePolygon:
		if s.polyComplete {
			// Re-entered from a listener during the close.
			return OutcomeIgnored
		}
		s.updateHover(pos)
		if s.hoverFirst && s.current[KindPolygon].Len() >= 3 {
			s.polyComplete = true
			s.commit(KindPolygon)
			s.polyComplete = false
			s.hoverFirst = false
			return OutcomeCommitted
		}
		s.appendVertex(KindPolygon, pos)
		return OutcomeVertexAdded

	case ModeLine:
		s.appendVertex(KindLine, pos)
		if s.current[KindLine].Len() < 2 {
			return OutcomeVertexAdded
		}
		s.commit(KindLine)
		return OutcomeCommitted

	case ModePolyline:
		s.appendVertex(KindPolyline, pos)
		return OutcomeVertexAdded
	}
	return OutcomeIgnored
}

// secondaryDown ends the active mode: a polyline is committed, a line is
// cancelled and an unfinished polygon is held for later.
func (s *Session) secondaryDown() Outcome {
	switch s.mode {
	case ModePolyline:
		if s.current[KindPolyline].Len() > 0 {
			s.commit(KindPolyline)
			return OutcomeCommitted
		}
	case ModeLine:
		if s.current[KindLine].Len() > 0 {
			id := s.current[KindLine].ID
			s.current[KindLine] = newShape(KindLine)
			s.log.Debug("line cancelled", "shape", id)
			s.emit(Event{Type: EventCancelled, Kind: KindLine, Shape: id})
			s.SetMode(ModeNone)
			return OutcomeCancelled
		}
	case ModeNone:
		return OutcomeIgnored
	}
	s.SetMode(ModeNone)
	return OutcomeModeExited
}

func (s *Session) appendVertex(k Kind, p Point) {
	sh := &s.current[k]
	sh.Vertices = append(sh.Vertices, newVertex(p))
	s.log.Debug("vertex added", "kind", k, "count", sh.Len())
	s.emit(Event{Type: EventVertexAdded, Kind: k, Shape: sh.ID})
}

// commit moves the in-progress shape of kind k to its finalized collection
// and leaves drawing mode.
func (s *Session) commit(k Kind) {
	sh := s.current[k]
	s.finalized[k] = append(s.finalized[k], sh)
	s.current[k] = newShape(k)
	s.log.Info("shape committed", "kind", k, "shape", sh.ID, "vertices", sh.Len())
	s.emit(Event{Type: EventShapeCommitted, Kind: k, Shape: sh.ID})
	s.SetMode(ModeNone)
}

// updateHover re-evaluates whether pos is over the first vertex of the
// in-progress polygon.
func (s *Session) updateHover(pos Point) {
	poly := s.current[KindPolygon]
	over := false
	if poly.Len() >= 3 && !s.polyComplete {
		reach := s.opts.vertexRadius + s.opts.hitWidth/2
		over = Distance(pos, poly.Vertices[0].Point) <= reach
	}
	s.setHover(over)
}

// SetFirstVertexHover lets a renderer that hit-tests its own handles report
// that the pointer entered or left the first polygon vertex. Entering is
// ignored until the polygon has three vertices.
func (s *Session) SetFirstVertexHover(over bool) {
	if over && (s.polyComplete || s.current[KindPolygon].Len() < 3) {
		return
	}
	s.setHover(over)
}

func (s *Session) setHover(over bool) {
	if over == s.hoverFirst {
		return
	}
	s.hoverFirst = over
	s.emit(Event{Type: EventHoverChanged, Kind: KindPolygon, Shape: s.current[KindPolygon].ID})
}

// Snapping reports whether the first polygon vertex should be highlighted
// because a click would close the polygon.
func (s *Session) Snapping() bool {
	return s.mode == ModePolygon && s.hoverFirst && s.current[KindPolygon].Len() >= 3
}

// PolygonPhase returns the state of the in-progress polygon.
func (s *Session) PolygonPhase() Phase {
	switch {
	case s.polyComplete:
		return PhaseFinished
	case s.current[KindPolygon].Len() == 0:
		return PhaseEmpty
	case s.Snapping():
		return PhaseCompleting
	default:
		return PhaseAccumulating
	}
}

// PreviewPoints returns the in-progress vertices of kind k for rendering.
// While k is being drawn the cursor is appended as a transient last point;
// it is never part of the shape.
func (s *Session) PreviewPoints(k Kind) []Point {
	pts := s.current[k].Points()
	if len(pts) == 0 || !s.pointerKnown {
		return pts
	}
	if mk, ok := s.mode.Kind(); !ok || mk != k {
		return pts
	}
	if k == KindPolygon && s.polyComplete {
		return pts
	}
	return append(pts, s.pointer)
}

// PreviewSegment returns the rubber-band segment from the last placed
// vertex of the active mode to the cursor.
func (s *Session) PreviewSegment() (from, to Point, ok bool) {
	k, active := s.mode.Kind()
	if !active || !s.pointerKnown {
		return Point{}, Point{}, false
	}
	sh := s.current[k]
	if sh.Len() == 0 || (k == KindPolygon && s.polyComplete) {
		return Point{}, Point{}, false
	}
	return sh.Vertices[sh.Len()-1].Point, s.pointer, true
}

// Undo steps back once in the active mode. It removes the last in-progress
// vertex; in line mode with nothing in progress it removes the most recent
// finalized line instead. It reports whether anything changed.
func (s *Session) Undo() bool {
	k, ok := s.mode.Kind()
	if !ok {
		return false
	}
	sh := &s.current[k]

	switch k {
	case KindPolygon:
		if sh.Len() == 0 {
			return false
		}
		removed := sh.Vertices[sh.Len()-1]
		sh.Vertices = sh.Vertices[:sh.Len()-1]
		s.polyComplete = false
		s.pointer = removed.Point
		s.pointerKnown = sh.Len() > 0
		if sh.Len() < 3 {
			s.hoverFirst = false
		}

	case KindLine:
		if sh.Len() == 0 {
			return s.removeLastFinalized(KindLine)
		}
		s.current[KindLine] = newShape(KindLine)

	case KindPolyline:
		if sh.Len() == 0 {
			return false
		}
		sh.Vertices = sh.Vertices[:sh.Len()-1]
	}

	s.log.Debug("undo", "kind", k, "count", s.current[k].Len())
	s.emit(Event{Type: EventUndo, Kind: k, Shape: s.current[k].ID})
	return true
}

func (s *Session) removeLastFinalized(k Kind) bool {
	n := len(s.finalized[k])
	if n == 0 {
		return false
	}
	sh := s.finalized[k][n-1]
	s.finalized[k] = s.finalized[k][:n-1]
	if s.drag != nil && s.drag.shape == sh.ID {
		s.drag = nil
	}
	s.log.Info("shape removed", "kind", k, "shape", sh.ID)
	s.emit(Event{Type: EventShapeRemoved, Kind: k, Shape: sh.ID})
	return true
}

// Reset clears the in-progress state of the active mode.
func (s *Session) Reset() {
	k, ok := s.mode.Kind()
	if !ok {
		return
	}
	s.current[k] = newShape(k)
	if k == KindPolygon {
		s.polyComplete = false
		s.hoverFirst = false
	}
	s.log.Debug("reset", "kind", k)
	s.emit(Event{Type: EventReset, Kind: k})
}

// Clear drops every finalized shape of kind k.
func (s *Session) Clear(k Kind) {
	if len(s.finalized[k]) == 0 {
		return
	}
	if s.drag != nil && s.drag.kind == k {
		s.drag = nil
	}
	s.log.Info("shapes cleared", "kind", k, "count", len(s.finalized[k]))
	s.finalized[k] = nil
	s.emit(Event{Type: EventCleared, Kind: k})
}
