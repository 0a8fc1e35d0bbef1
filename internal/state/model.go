package state

import (
	"github.com/google/uuid"
)

// Point is a position in canvas (image pixel) space.
type Point struct{ X, Y float64 }

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Vertex is a placed point. The ID survives edits, so a vertex handle
// keeps addressing the same vertex when others are removed.
type Vertex struct {
	ID uuid.UUID
	Point
}

func newVertex(p Point) Vertex {
	return Vertex{ID: uuid.New(), Point: p}
}

// Kind is the kind of an annotation shape.
type Kind int

const (
	KindPolygon Kind = iota
	KindLine
	KindPolyline
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

var kinds = [...]Kind{KindPolygon, KindLine, KindPolyline}

// Shape is an ordered sequence of vertices. A finished polygon is closed
// (last vertex connects to the first); lines and polylines are open.
type Shape struct {
	ID       uuid.UUID
	Kind     Kind
	Vertices []Vertex
}

func newShape(k Kind) Shape {
	return Shape{ID: uuid.New(), Kind: k}
}

// Points returns the vertex coordinates in order.
func (s Shape) Points() []Point {
	pts := make([]Point, len(s.Vertices))
	for i, v := range s.Vertices {
		pts[i] = v.Point
	}
	return pts
}

// Len returns the number of vertices.
func (s Shape) Len() int { return len(s.Vertices) }

// Closed reports whether the shape is rendered with a closing edge.
func (s Shape) Closed() bool { return s.Kind == KindPolygon }

func (s Shape) clone() Shape {
	c := s
	c.Vertices = append([]Vertex(nil), s.Vertices...)
	return c
}

func (s Shape) indexOf(id uuid.UUID) int {
	for i, v := range s.Vertices {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Mode selects which input handler is active.
type Mode int

const (
	ModeNone Mode = iota
	ModePolygon
	ModeLine
	ModePolyline
)

func (m Mode) String() string {
	switch m {
	case ModePolygon:
		return "polygon"
	case ModeLine:
		return "line"
	case ModePolyline:
		return "polyline"
	default:
		return "none"
	}
}

// Kind returns the shape kind drawn in mode m. ok is false for ModeNone.
func (m Mode) Kind() (k Kind, ok bool) {
	switch m {
	case ModePolygon:
		return KindPolygon, true
	case ModeLine:
		return KindLine, true
	case ModePolyline:
		return KindPolyline, true
	}
	return 0, false
}

// ParseMode is the inverse of Mode.String. ok is false for any other name.
func ParseMode(s string) (m Mode, ok bool) {
	switch s {
	case "polygon":
		return ModePolygon, true
	case "line":
		return ModeLine, true
	case "polyline":
		return ModePolyline, true
	case "none":
		return ModeNone, true
	}
	return ModeNone, false
}

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Outcome reports what a pointer-down did to the session.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeVertexAdded
	OutcomeCommitted
	OutcomeCancelled
	OutcomeModeExited
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVertexAdded:
		return "vertex-added"
	case OutcomeCommitted:
		return "committed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeModeExited:
		return "mode-exited"
	default:
		return "ignored"
	}
}

// Phase is the state of the in-progress polygon.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseAccumulating
	PhaseCompleting
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseAccumulating:
		return "accumulating"
	case PhaseCompleting:
		return "completing"
	case PhaseFinished:
		return "finished"
	default:
		return "empty"
	}
}

// VertexRef addresses one vertex handle of a finalized or in-progress shape.
type VertexRef struct {
	Shape  uuid.UUID
	Vertex uuid.UUID
}
