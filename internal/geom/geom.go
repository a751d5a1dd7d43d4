package geom

// Vec2 is a 2D vector in world pixels.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Mul(o Vec2) Vec2      { return Vec2{v.X * o.X, v.Y * o.Y} }

// Eq reports whether v and o differ by at most eps on each axis.
func (v Vec2) Eq(o Vec2, eps float64) bool {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx <= eps && dx >= -eps && dy <= eps && dy >= -eps
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Contains reports whether p lies inside r. The right and bottom edges are inclusive,
// matching how a point on the border of the hit box still counts as a hit.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }
func (r Rect) Max() Vec2 { return Vec2{r.X + r.W, r.Y + r.H} }
