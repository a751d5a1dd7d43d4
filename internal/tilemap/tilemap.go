// Package tilemap loads rectangular tile maps described in YAML and draws
// their layers from a single tileset texture.
//
// Tile ids follow the usual tileset numbering: 0 is an empty cell and id n
// selects the (n-1)th tile of the tileset, counted left to right then top to
// bottom.
package tilemap

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render"
)

// ErrUnknownLayer is returned by Map.Layer for a name the map does not have.
var ErrUnknownLayer = errors.New("unknown layer")

// Tileset describes the image the tile ids index into.
type Tileset struct {
	Image   string `yaml:"image"`
	Columns int    `yaml:"columns"`
}

// Layer is one named grid of tile ids, stored row by row.
type Layer struct {
	Name string  `yaml:"name"`
	Rows [][]int `yaml:"rows"`
}

// Map is a parsed and validated tile map.
type Map struct {
	Name       string   `yaml:"name"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	TileWidth  int      `yaml:"tile_width"`
	TileHeight int      `yaml:"tile_height"`
	Tileset    Tileset  `yaml:"tileset"`
	Layers     []*Layer `yaml:"layers"`
}

// Tile is one cell of a layer. ID is 0 when the cell is empty.
type Tile struct {
	X, Y int
	ID   int
}

func (t Tile) Empty() bool { return t.ID == 0 }

// Load reads and parses the map file at path.
func Load(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tilemap: read %s: %w", path, err)
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("tilemap: %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML map description and validates it. Every validation
// problem is reported, combined into one error.
func Parse(raw []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Map) validate() error {
	var errs error
	if m.Width <= 0 || m.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid map size %dx%d", m.Width, m.Height))
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid tile size %dx%d", m.TileWidth, m.TileHeight))
	}
	if m.Tileset.Image == "" {
		errs = multierr.Append(errs, errors.New("tileset image is empty"))
	}
	if m.Tileset.Columns <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid tileset columns %d", m.Tileset.Columns))
	}
	if len(m.Layers) == 0 {
		errs = multierr.Append(errs, errors.New("map has no layers"))
	}

	seen := make(map[string]bool, len(m.Layers))
	for i, l := range m.Layers {
		if l == nil || l.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("layer %d has no name", i))
			continue
		}
		if seen[l.Name] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate layer %q", l.Name))
		}
		seen[l.Name] = true

		if len(l.Rows) != m.Height {
			errs = multierr.Append(errs, fmt.Errorf("layer %q: %d rows, want %d", l.Name, len(l.Rows), m.Height))
		}
		for y, row := range l.Rows {
			if len(row) != m.Width {
				errs = multierr.Append(errs, fmt.Errorf("layer %q row %d: %d cells, want %d", l.Name, y, len(row), m.Width))
			}
			for x, id := range row {
				if id < 0 {
					errs = multierr.Append(errs, fmt.Errorf("layer %q (%d,%d): negative tile id %d", l.Name, x, y, id))
				}
			}
		}
	}
	return errs
}

// Layer returns the layer with the given name.
func (m *Map) Layer(name string) (*Layer, error) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownLayer, name)
}

// Bounds returns the world rectangle covered by the map.
func (m *Map) Bounds() geom.Rect {
	return geom.R(0, 0, float64(m.Width*m.TileWidth), float64(m.Height*m.TileHeight))
}

// TileAt returns the tile under the world point p. ok is false outside the map.
func (m *Map) TileAt(l *Layer, p geom.Vec2) (Tile, bool) {
	x := int(math.Floor(p.X / float64(m.TileWidth)))
	y := int(math.Floor(p.Y / float64(m.TileHeight)))
	if x < 0 || y < 0 || y >= len(l.Rows) || x >= len(l.Rows[y]) {
		return Tile{}, false
	}
	return Tile{X: x, Y: y, ID: l.Rows[y][x]}, true
}

// Tiles yields every cell of the layer in row-major order, empty cells included.
func (l *Layer) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for y, row := range l.Rows {
			for x, id := range row {
				if !yield(Tile{X: x, Y: y, ID: id}) {
					return
				}
			}
		}
	}
}

// Solidity flattens the layer into a row-major grid where every non-empty
// cell is solid.
func (l *Layer) Solidity() []bool {
	var out []bool
	for t := range l.Tiles() {
		out = append(out, !t.Empty())
	}
	return out
}

// source returns the tileset rectangle for a non-empty tile id.
func (m *Map) source(id int) geom.Rect {
	idx := id - 1
	col := idx % m.Tileset.Columns
	row := idx / m.Tileset.Columns
	return geom.R(
		float64(col*m.TileWidth), float64(row*m.TileHeight),
		float64(m.TileWidth), float64(m.TileHeight),
	)
}

// DrawLayer draws the non-empty tiles of l that intersect view, in world
// coordinates, using tileset as the source texture.
func (m *Map) DrawLayer(canvas render.Canvas, tileset render.Texture, l *Layer, view geom.Rect) {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	x0 := max(0, int(math.Floor(view.X/tw)))
	y0 := max(0, int(math.Floor(view.Y/th)))
	x1 := min(m.Width-1, int(math.Floor((view.X+view.W)/tw)))
	y1 := min(m.Height-1, int(math.Floor((view.Y+view.H)/th)))

	for y := y0; y <= y1 && y < len(l.Rows); y++ {
		row := l.Rows[y]
		for x := x0; x <= x1 && x < len(row); x++ {
			id := row[x]
			if id == 0 {
				continue
			}
			src := m.source(id)
			canvas.DrawTexture(tileset, float64(x)*tw, float64(y)*th, render.DrawTextureOptions{Source: &src})
		}
	}
}
