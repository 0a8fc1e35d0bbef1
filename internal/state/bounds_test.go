package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampVertex(t *testing.T) {
	vp := Viewport{Width: 100, Height: 80}

	tests := []struct {
		name string
		pos  Point
		want Point
	}{
		{"inside", Point{50, 40}, Point{50, 40}},
		{"right margin", Point{97, 40}, Point{100, 40}},
		{"left margin", Point{3, 40}, Point{0, 40}},
		{"bottom margin", Point{50, 77}, Point{50, 80}},
		{"top margin", Point{50, -10}, Point{50, 0}},
		{"corner", Point{120, 90}, Point{100, 80}},
		{"exactly at margin", Point{94, 74}, Point{94, 74}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampVertex(vp, DefaultVertexRadius, tt.pos))
		})
	}
}

func TestClampVertexIdempotent(t *testing.T) {
	vp := Viewport{Width: 650, Height: 302}
	for _, p := range []Point{{-5, -5}, {3, 300}, {649, 1}, {325, 151}, {700, 400}} {
		once := ClampVertex(vp, DefaultVertexRadius, p)
		assert.Equal(t, once, ClampVertex(vp, DefaultVertexRadius, once), "pos %v", p)
		assert.True(t, vp.Contains(once), "pos %v clamped to %v", p, once)
	}
}

func TestClampVertexTinyViewport(t *testing.T) {
	vp := Viewport{Width: 4, Height: 4}
	once := ClampVertex(vp, 6, Point{100, 2})
	assert.Equal(t, Point{4, 0}, once)
	assert.Equal(t, Point{0, 0}, ClampVertex(vp, 6, once))
}

func TestClampVertexUnknownViewport(t *testing.T) {
	p := Point{-40, 1e6}
	assert.Equal(t, p, ClampVertex(Viewport{}, DefaultVertexRadius, p))
	assert.Equal(t, p, ClampVertex(Viewport{Width: 100}, DefaultVertexRadius, p))
}

func TestClampGroupDrag(t *testing.T) {
	box := BBox{MinX: 10, MinY: 10, MaxX: 50, MaxY: 50}
	vp := Viewport{Width: 100, Height: 100}

	assert.Equal(t, Point{-10, -10}, ClampGroupDrag(box, vp, Point{-20, -20}))
	assert.Equal(t, Point{50, 50}, ClampGroupDrag(box, vp, Point{80, 80}))
	assert.Equal(t, Point{5, -3}, ClampGroupDrag(box, vp, Point{5, -3}))
	assert.Equal(t, Point{-10, 50}, ClampGroupDrag(box, vp, Point{-30, 70}))
}

func TestClampGroupDragOversized(t *testing.T) {
	// Wider than the viewport: the right-edge clamp runs last and wins.
	box := BBox{MinX: 0, MinY: 10, MaxX: 150, MaxY: 20}
	vp := Viewport{Width: 100, Height: 100}

	got := ClampGroupDrag(box, vp, Point{-10, 0})
	assert.Equal(t, Point{-50, 0}, got)
}

func TestClampGroupDragUnknownViewport(t *testing.T) {
	box := BBox{MinX: 10, MinY: 10, MaxX: 50, MaxY: 50}
	d := Point{-200, 300}
	assert.Equal(t, d, ClampGroupDrag(box, Viewport{}, d))
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	box, ok := BoundsOf([]Point{{30, 5}, {10, 50}, {20, 20}})
	require.True(t, ok)
	assert.Equal(t, BBox{MinX: 10, MinY: 5, MaxX: 30, MaxY: 50}, box)
	assert.Equal(t, 20.0, box.Width())
	assert.Equal(t, 45.0, box.Height())
	assert.True(t, box.Contains(Point{10, 50}))
	assert.False(t, box.Contains(Point{9, 50}))
}

func TestDistanceAndCentroid(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Point{0, 0}, Point{3, 4}), 1e-9)

	_, ok := Centroid(nil)
	assert.False(t, ok)

	c, ok := Centroid([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	require.True(t, ok)
	assert.Equal(t, Point{5, 5}, c)
}
