package state

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownShape  = errors.New("unknown shape")
	ErrUnknownVertex = errors.New("unknown vertex")
	ErrNotDraggable  = errors.New("shape is not draggable")
	ErrNoGroupDrag   = errors.New("no group drag in progress")
)

type groupDrag struct {
	shape uuid.UUID
	kind  Kind
	box   BBox
}

// lookup finds a finalized or in-progress shape by ID.
func (s *Session) lookup(id uuid.UUID) (sh *Shape, finalized bool) {
	for _, k := range kinds {
		if s.current[k].ID == id {
			return &s.current[k], false
		}
		for i := range s.finalized[k] {
			if s.finalized[k][i].ID == id {
				return &s.finalized[k][i], true
			}
		}
	}
	return nil, false
}

// DragVertex moves one vertex to pos, clamped to the viewport. Every other
// vertex and the shape's membership are left alone. It returns the position
// the vertex ended up at.
func (s *Session) DragVertex(ref VertexRef, pos Point) (Point, error) {
	sh, _ := s.lookup(ref.Shape)
	if sh == nil {
		return Point{}, fmt.Errorf("drag vertex %s: %w", ref.Vertex, ErrUnknownShape)
	}
	i := sh.indexOf(ref.Vertex)
	if i < 0 {
		return Point{}, fmt.Errorf("drag vertex %s of %s: %w", ref.Vertex, sh.Kind, ErrUnknownVertex)
	}

	p := ClampVertex(s.viewport, s.opts.vertexRadius, pos)
	sh.Vertices[i].Point = p
	s.emit(Event{Type: EventVertexMoved, Kind: sh.Kind, Shape: sh.ID})
	return p, nil
}

// BeginGroupDrag starts dragging a whole finalized shape. The shape's
// bounding box is captured now and bounds every delta until the drag ends.
func (s *Session) BeginGroupDrag(id uuid.UUID) error {
	sh, finalized := s.lookup(id)
	if sh == nil {
		return fmt.Errorf("begin group drag: %w", ErrUnknownShape)
	}
	if !finalized {
		return fmt.Errorf("begin group drag of in-progress %s: %w", sh.Kind, ErrNotDraggable)
	}
	box, ok := BoundsOf(sh.Points())
	if !ok {
		return fmt.Errorf("begin group drag of empty %s: %w", sh.Kind, ErrNotDraggable)
	}
	s.drag = &groupDrag{shape: id, kind: sh.Kind, box: box}
	s.log.Debug("group drag started", "kind", sh.Kind, "shape", id)
	return nil
}

// Dragging returns the shape being group-dragged, if any.
func (s *Session) Dragging() (uuid.UUID, bool) {
	if s.drag == nil {
		return uuid.Nil, false
	}
	return s.drag.shape, true
}

// GroupDragDelta returns delta clamped for the shape being dragged, for
// rendering the shape at its tentative position.
func (s *Session) GroupDragDelta(delta Point) (Point, error) {
	if s.drag == nil {
		return Point{}, ErrNoGroupDrag
	}
	return ClampGroupDrag(s.drag.box, s.viewport, delta), nil
}

// EndGroupDrag translates every vertex of the dragged shape by the clamped
// delta and ends the drag.
func (s *Session) EndGroupDrag(delta Point) (Point, error) {
	if s.drag == nil {
		return Point{}, ErrNoGroupDrag
	}
	d := ClampGroupDrag(s.drag.box, s.viewport, delta)
	id := s.drag.shape
	s.drag = nil

	sh, _ := s.lookup(id)
	if sh == nil {
		return Point{}, fmt.Errorf("end group drag: %w", ErrUnknownShape)
	}
	for i := range sh.Vertices {
		sh.Vertices[i].Point = sh.Vertices[i].Point.Add(d)
	}
	s.log.Debug("group drag ended", "kind", sh.Kind, "shape", id, "dx", d.X, "dy", d.Y)
	s.emit(Event{Type: EventShapeMoved, Kind: sh.Kind, Shape: id})
	return d, nil
}

// CancelGroupDrag abandons a group drag without moving the shape.
func (s *Session) CancelGroupDrag() {
	s.drag = nil
}

// renderOrder lists shapes bottom to top, the way they are drawn:
// finalized polygons, lines and polylines, then the in-progress shapes.
func (s *Session) renderOrder() []*Shape {
	var out []*Shape
	for _, k := range kinds {
		for i := range s.finalized[k] {
			out = append(out, &s.finalized[k][i])
		}
	}
	for _, k := range kinds {
		out = append(out, &s.current[k])
	}
	return out
}

// VertexAt returns the topmost vertex handle within the vertex radius of pos.
func (s *Session) VertexAt(pos Point) (VertexRef, bool) {
	order := s.renderOrder()
	for i := len(order) - 1; i >= 0; i-- {
		sh := order[i]
		for j := sh.Len() - 1; j >= 0; j-- {
			v := sh.Vertices[j]
			if Distance(v.Point, pos) <= s.opts.vertexRadius {
				return VertexRef{Shape: sh.ID, Vertex: v.ID}, true
			}
		}
	}
	return VertexRef{}, false
}

// ShapeAt returns the topmost finalized shape whose bounding box, grown by
// the vertex radius, contains pos.
func (s *Session) ShapeAt(pos Point) (uuid.UUID, bool) {
	r := s.opts.vertexRadius
	for k := len(kinds) - 1; k >= 0; k-- {
		shapes := s.finalized[kinds[k]]
		for i := len(shapes) - 1; i >= 0; i-- {
			box, ok := BoundsOf(shapes[i].Points())
			if !ok {
				continue
			}
			box = BBox{MinX: box.MinX - r, MinY: box.MinY - r, MaxX: box.MaxX + r, MaxY: box.MaxY + r}
			if box.Contains(pos) {
				return shapes[i].ID, true
			}
		}
	}
	return uuid.Nil, false
}

// Shape returns a copy of the finalized or in-progress shape with the
// given ID.
func (s *Session) Shape(id uuid.UUID) (Shape, bool) {
	sh, _ := s.lookup(id)
	if sh == nil {
		return Shape{}, false
	}
	return sh.clone(), true
}
