package state

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Viewport is the size of the canvas, taken from the background image.
// The zero value means the image has not loaded yet.
type Viewport struct {
	Width  float64
	Height float64
}

// Known reports whether the viewport can be used as a clamping bound.
func (vp Viewport) Known() bool {
	return vp.Width > 0 && vp.Height > 0
}

// Contains reports whether p lies within [0,Width] x [0,Height].
func (vp Viewport) Contains(p Point) bool {
	return p.X >= 0 && p.X <= vp.Width && p.Y >= 0 && p.Y <= vp.Height
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside the box, edges included.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf returns the bounding box of pts. ok is false for an empty slice.
func BoundsOf(pts []Point) (box BBox, ok bool) {
	if len(pts) == 0 {
		return BBox{}, false
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return BBox{
		MinX: floats.Min(xs),
		MinY: floats.Min(ys),
		MaxX: floats.Max(xs),
		MaxY: floats.Max(ys),
	}, true
}

// ClampVertex keeps a dragged vertex on the canvas. The radius is only a
// margin for the test: a vertex that crosses an edge snaps to the edge
// itself, not to edge minus radius, so the marker can overhang the canvas.
// The left and top checks run last and win, so on a viewport narrower or
// shorter than 2*radius the result is not a fixed point: clamping (100,2)
// on a 4x4 viewport with radius 6 gives (4,0), and clamping that gives (0,0).
// With an unknown viewport pos is returned unchanged.
func ClampVertex(vp Viewport, radius float64, pos Point) Point {
	if !vp.Known() {
		return pos
	}
	x, y := pos.X, pos.Y
	if pos.X+radius > vp.Width {
		x = vp.Width
	}
	if pos.X-radius < 0 {
		x = 0
	}
	if pos.Y+radius > vp.Height {
		y = vp.Height
	}
	if pos.Y-radius < 0 {
		y = 0
	}
	return Point{X: x, Y: y}
}

// ClampGroupDrag limits a whole-shape translation so the shape's bounding
// box, captured when the drag started, stays on the canvas. The checks run
// top, left, bottom, right; for a shape larger than the viewport the
// bottom/right clamp wins. With an unknown viewport delta is returned
// unchanged.
func ClampGroupDrag(box BBox, vp Viewport, delta Point) Point {
	if !vp.Known() {
		return delta
	}
	dx, dy := delta.X, delta.Y
	if box.MinY+dy < 0 {
		dy = -box.MinY
	}
	if box.MinX+dx < 0 {
		dx = -box.MinX
	}
	if box.MaxY+dy > vp.Height {
		dy = vp.Height - box.MaxY
	}
	if box.MaxX+dx > vp.Width {
		dx = vp.Width - box.MaxX
	}
	return Point{X: dx, Y: dy}
}

// clampPlacement keeps a clicked point on the canvas.
func clampPlacement(vp Viewport, p Point) Point {
	if !vp.Known() {
		return p
	}
	return Point{
		X: math.Min(math.Max(p.X, 0), vp.Width),
		Y: math.Min(math.Max(p.Y, 0), vp.Height),
	}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Centroid returns the average of pts. ok is false for an empty slice.
func Centroid(pts []Point) (c Point, ok bool) {
	if len(pts) == 0 {
		return Point{}, false
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}, true
}
