package render

import "github.com/quadcopter/quadcopter/internal/geom"

// Transform is an orthographic 2D camera: Target maps to the viewport
// center and Zoom scales world units into normalized device coordinates
// (-1..1). A negative Zoom.Y puts world +Y at the bottom of the screen.
type Transform struct {
	Target geom.Vec2
	Zoom   geom.Vec2
}

// ScreenTransform maps world coordinates one-to-one onto a w×h screen.
func ScreenTransform(w, h float64) Transform {
	return Transform{
		Target: geom.V(w/2, h/2),
		Zoom:   geom.V(2/w, -2/h),
	}
}

func (t Transform) IsZero() bool { return t.Zoom.X == 0 || t.Zoom.Y == 0 }

// WorldToScreen maps p to pixel coordinates on a w×h screen.
func (t Transform) WorldToScreen(p geom.Vec2, w, h float64) geom.Vec2 {
	ndcX := (p.X - t.Target.X) * t.Zoom.X
	ndcY := (p.Y - t.Target.Y) * t.Zoom.Y
	return geom.V((ndcX+1)/2*w, (1-ndcY)/2*h)
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t Transform) ScreenToWorld(s geom.Vec2, w, h float64) geom.Vec2 {
	ndcX := s.X/w*2 - 1
	ndcY := 1 - s.Y/h*2
	return geom.V(ndcX/t.Zoom.X+t.Target.X, ndcY/t.Zoom.Y+t.Target.Y)
}

// PixelScale returns screen pixels per world unit on each axis.
func (t Transform) PixelScale(w, h float64) (float64, float64) {
	return t.Zoom.X * w / 2, -t.Zoom.Y * h / 2
}

// Visible returns the world rectangle visible on a w×h screen.
func (t Transform) Visible(w, h float64) geom.Rect {
	a := t.ScreenToWorld(geom.V(0, 0), w, h)
	b := t.ScreenToWorld(geom.V(w, h), w, h)
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return geom.R(minX, minY, maxX-minX, maxY-minY)
}
