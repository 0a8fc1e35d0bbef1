package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/google/uuid"

	"AnnotationBoard/internal/state"
)

type boardRenderer struct {
	board   *AnnotationBoard
	blank   *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.blank.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return r.board.MinSize()
}

// Refresh rebuilds every canvas object from the session. Shapes are drawn
// bottom to top: finished polygons, lines, polylines, then whatever is in
// progress.
func (r *boardRenderer) Refresh() {
	b := r.board
	s := b.session
	objs := []fyne.CanvasObject{r.blank}

	if b.background != nil {
		img := canvas.NewImageFromImage(b.background)
		img.FillMode = canvas.ImageFillStretch
		sz := b.background.Bounds().Size()
		img.Resize(fyne.NewSize(float32(sz.X), float32(sz.Y)))
		objs = append(objs, img)
	}

	dragID, dragging := s.Dragging()
	var dragOff state.Point
	if dragging {
		dragOff, _ = s.GroupDragDelta(b.groupDelta)
	}
	offset := func(id uuid.UUID) state.Point {
		if dragging && id == dragID {
			return dragOff
		}
		return state.Point{}
	}

	for i, sh := range s.Shapes(state.KindPolygon) {
		pts := translate(sh.Points(), offset(sh.ID))
		objs = append(objs, polygonFill(pts, b.cfg.PolygonFill))
		objs = append(objs, r.edges(pts, true)...)
		objs = append(objs, r.vertices(pts, -1)...)
		if c, ok := state.Centroid(pts); ok {
			objs = append(objs, label(fmt.Sprintf("%d", i+1), c))
		}
	}
	for _, k := range []state.Kind{state.KindLine, state.KindPolyline} {
		for _, sh := range s.Shapes(k) {
			pts := translate(sh.Points(), offset(sh.ID))
			objs = append(objs, r.edges(pts, false)...)
			objs = append(objs, r.vertices(pts, -1)...)
		}
	}

	for _, k := range []state.Kind{state.KindPolygon, state.KindLine, state.KindPolyline} {
		placed := s.InProgress(k).Points()
		objs = append(objs, r.edges(s.PreviewPoints(k), false)...)
		snap := -1
		if k == state.KindPolygon && s.Snapping() {
			snap = 0
		}
		objs = append(objs, r.vertices(placed, snap)...)
	}

	r.objects = objs
	canvas.Refresh(b)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Destroy() {}

func (r *boardRenderer) edges(pts []state.Point, closed bool) []fyne.CanvasObject {
	if len(pts) < 2 {
		return nil
	}
	n := len(pts) - 1
	if closed && len(pts) > 2 {
		n = len(pts)
	}
	out := make([]fyne.CanvasObject, 0, n)
	for i := 0; i < n; i++ {
		a, c := pts[i], pts[(i+1)%len(pts)]
		l := canvas.NewLine(r.board.cfg.StrokeColor)
		l.StrokeWidth = r.board.cfg.StrokeWidth
		l.Position1 = toPos(a)
		l.Position2 = toPos(c)
		out = append(out, l)
	}
	return out
}

// vertices draws a handle per point. The handle at index big is drawn
// SnapScale times larger.
func (r *boardRenderer) vertices(pts []state.Point, big int) []fyne.CanvasObject {
	cfg := r.board.cfg
	out := make([]fyne.CanvasObject, 0, len(pts))
	for i, p := range pts {
		rad := float32(cfg.VertexRadius)
		if i == big {
			rad *= float32(cfg.SnapScale)
		}
		c := canvas.NewCircle(cfg.VertexFill)
		c.StrokeColor = cfg.StrokeColor
		c.StrokeWidth = 1
		c.Resize(fyne.NewSize(2*rad, 2*rad))
		c.Move(fyne.NewPos(float32(p.X)-rad, float32(p.Y)-rad))
		out = append(out, c)
	}
	return out
}

func label(text string, at state.Point) fyne.CanvasObject {
	t := canvas.NewText(text, color.White)
	t.TextStyle = fyne.TextStyle{Bold: true}
	sz := t.MinSize()
	t.Move(fyne.NewPos(float32(at.X)-sz.Width/2, float32(at.Y)-sz.Height/2))
	t.Resize(sz)
	return t
}

// polygonFill rasterizes the interior of pts over its bounding box.
func polygonFill(pts []state.Point, fill color.Color) fyne.CanvasObject {
	box, ok := state.BoundsOf(pts)
	if !ok || len(pts) < 3 || box.Width() == 0 || box.Height() == 0 {
		return canvas.NewRectangle(color.Transparent)
	}
	raster := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		p := state.Point{
			X: box.MinX + (float64(x)+0.5)*box.Width()/float64(w),
			Y: box.MinY + (float64(y)+0.5)*box.Height()/float64(h),
		}
		if insidePolygon(pts, p) {
			return fill
		}
		return color.Transparent
	})
	raster.Move(fyne.NewPos(float32(box.MinX), float32(box.MinY)))
	raster.Resize(fyne.NewSize(float32(box.Width()), float32(box.Height())))
	return raster
}

// insidePolygon applies the even-odd rule.
func insidePolygon(pts []state.Point, p state.Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func translate(pts []state.Point, d state.Point) []state.Point {
	if d == (state.Point{}) {
		return pts
	}
	out := make([]state.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}
