package state

import (
	"github.com/google/uuid"
)

// EventType identifies a session change.
type EventType int

const (
	EventVertexAdded EventType = iota
	EventVertexMoved
	EventShapeCommitted
	EventShapeRemoved
	EventShapeMoved
	EventCancelled
	EventModeChanged
	EventUndo
	EventReset
	EventCleared
	EventViewportChanged
	EventHoverChanged
	EventPointerMoved
)

func (t EventType) String() string {
	switch t {
	case EventVertexAdded:
		return "vertex-added"
	case EventVertexMoved:
		return "vertex-moved"
	case EventShapeCommitted:
		return "shape-committed"
	case EventShapeRemoved:
		return "shape-removed"
	case EventShapeMoved:
		return "shape-moved"
	case EventCancelled:
		return "cancelled"
	case EventModeChanged:
		return "mode-changed"
	case EventUndo:
		return "undo"
	case EventReset:
		return "reset"
	case EventCleared:
		return "cleared"
	case EventViewportChanged:
		return "viewport-changed"
	case EventHoverChanged:
		return "hover-changed"
	case EventPointerMoved:
		return "pointer-moved"
	default:
		return "unknown"
	}
}

// Event describes one session change. Shape is the zero UUID when the
// change is not about a single shape.
type Event struct {
	Type     EventType
	Kind     Kind
	Shape    uuid.UUID
	Revision uint64
}

// emit stamps ev with the next revision and hands it to the listener.
func (s *Session) emit(ev Event) {
	s.revision++
	ev.Revision = s.revision
	if s.OnChange != nil {
		s.OnChange(ev)
	}
}

// Revision returns the number of changes applied so far.
func (s *Session) Revision() uint64 {
	return s.revision
}
