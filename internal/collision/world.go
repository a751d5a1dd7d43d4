package collision

import (
	"fmt"
	"math"

	"github.com/quadcopter/quadcopter/internal/geom"
)

// ActorID indexes a dynamic actor registered with a World.
type ActorID int

type actor struct {
	pos        geom.Vec2 // whole pixels
	w, h       int
	remX, remY float64
}

// World resolves actor movement against a static solidity grid. The grid is
// immutable after New. Cells outside the grid count as solid, so actors can
// never leave the map.
type World struct {
	solid  []bool // flat array [row*width + col]
	tileW  float64
	tileH  float64
	width  int
	height int
	actors []actor
}

// New builds a world from a row-major solidity sequence.
func New(solid []bool, tileW, tileH float64, width int) (*World, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid row width %d", width)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("invalid tile size %gx%g", tileW, tileH)
	}
	if len(solid)%width != 0 {
		return nil, fmt.Errorf("solidity length %d is not a multiple of row width %d", len(solid), width)
	}
	grid := make([]bool, len(solid))
	copy(grid, solid)
	return &World{
		solid:  grid,
		tileW:  tileW,
		tileH:  tileH,
		width:  width,
		height: len(solid) / width,
		actors: make([]actor, 0, 4),
	}, nil
}

// Bounds returns the world rectangle covered by the grid.
func (w *World) Bounds() geom.Rect {
	return geom.R(0, 0, float64(w.width)*w.tileW, float64(w.height)*w.tileH)
}

func (w *World) TileSize() (float64, float64) { return w.tileW, w.tileH }

// Cell returns the grid cell containing p and whether it lies inside the grid.
func (w *World) Cell(p geom.Vec2) (col, row int, ok bool) {
	col = int(math.Floor(p.X / w.tileW))
	row = int(math.Floor(p.Y / w.tileH))
	return col, row, col >= 0 && col < w.width && row >= 0 && row < w.height
}

func (w *World) solidCell(col, row int) bool {
	if col < 0 || col >= w.width || row < 0 || row >= w.height {
		return true
	}
	return w.solid[row*w.width+col]
}

// SolidAt reports whether the point p is inside a solid cell.
func (w *World) SolidAt(p geom.Vec2) bool {
	col, row, _ := w.Cell(p)
	return w.solidCell(col, row)
}

// collideSolids reports whether the rect at (x, y) of size wd×ht touches a
// solid cell. The right and bottom edges are exclusive.
func (w *World) collideSolids(x, y float64, wd, ht int) bool {
	c0 := int(math.Floor(x / w.tileW))
	c1 := int(math.Floor((x + float64(wd) - 1) / w.tileW))
	r0 := int(math.Floor(y / w.tileH))
	r1 := int(math.Floor((y + float64(ht) - 1) / w.tileH))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if w.solidCell(col, row) {
				return true
			}
		}
	}
	return false
}

// AddActor registers a w×h actor at pos, rounded to whole pixels.
func (w *World) AddActor(pos geom.Vec2, width, height int) ActorID {
	w.actors = append(w.actors, actor{
		pos: geom.V(math.Round(pos.X), math.Round(pos.Y)),
		w:   width,
		h:   height,
	})
	return ActorID(len(w.actors) - 1)
}

func (w *World) ActorPos(id ActorID) geom.Vec2 { return w.actors[id].pos }

func (w *World) ActorRect(id ActorID) geom.Rect {
	a := w.actors[id]
	return geom.R(a.pos.X, a.pos.Y, float64(a.w), float64(a.h))
}

// CollideCheck reports whether actor id would touch a solid cell at pos.
func (w *World) CollideCheck(id ActorID, pos geom.Vec2) bool {
	a := w.actors[id]
	return w.collideSolids(pos.X, pos.Y, a.w, a.h)
}

// MoveH moves actor id horizontally by dx, one pixel at a time, stopping
// at the first solid cell. Sub-pixel movement accumulates across calls.
// It reports false when the move was blocked.
func (w *World) MoveH(id ActorID, dx float64) bool {
	a := &w.actors[id]
	a.remX += dx
	move := math.Round(a.remX)
	if move == 0 {
		return true
	}
	a.remX -= move
	sign := math.Copysign(1, move)
	for move != 0 {
		if w.collideSolids(a.pos.X+sign, a.pos.Y, a.w, a.h) {
			a.remX = 0
			return false
		}
		a.pos.X += sign
		move -= sign
	}
	return true
}

// MoveV is the vertical counterpart of MoveH.
func (w *World) MoveV(id ActorID, dy float64) bool {
	a := &w.actors[id]
	a.remY += dy
	move := math.Round(a.remY)
	if move == 0 {
		return true
	}
	a.remY -= move
	sign := math.Copysign(1, move)
	for move != 0 {
		if w.collideSolids(a.pos.X, a.pos.Y+sign, a.w, a.h) {
			a.remY = 0
			return false
		}
		a.pos.Y += sign
		move -= sign
	}
	return true
}
