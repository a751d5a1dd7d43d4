// genassets writes the default game assets: the copter sprite (SVG source
// plus a rasterized PNG), the terrain tileset and the cave map.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/tilemap"
)

const (
	copterW = 95
	copterH = 32

	tileSize = 32
	mapCols  = 80
	mapRows  = 24

	tileRock  = 1
	tileCrust = 2
)

// copterSVG faces left; the game mirrors it when the copter turns right.
const copterSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="95" height="32" viewBox="0 0 95 32">
  <rect x="8" y="1" width="62" height="3" rx="1.5" fill="#303030"/>
  <rect x="37" y="3" width="4" height="6" fill="#404040"/>
  <path d="M18 10 Q18 8 22 8 L52 8 Q60 8 62 16 L62 22 Q62 26 56 26 L24 26 Q18 26 18 20 Z" fill="#f0f0f0" stroke="#202020" stroke-width="1.5"/>
  <path d="M22 11 L34 11 L34 18 L20 18 Q20 12 22 11 Z" fill="#8fc8ec"/>
  <rect x="62" y="14" width="24" height="5" fill="#e0e0e0" stroke="#202020" stroke-width="1"/>
  <rect x="84" y="7" width="4" height="16" rx="1" fill="#303030"/>
  <rect x="24" y="28" width="34" height="2" fill="#303030"/>
  <rect x="30" y="26" width="2" height="3" fill="#303030"/>
  <rect x="50" y="26" width="2" height="3" fill="#303030"/>
</svg>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: genassets <output dir>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "heli.svg"), []byte(copterSVG), 0o644); err != nil {
		return err
	}
	copter, err := assets.RasterizeSVG(bytes.NewReader([]byte(copterSVG)), copterW, copterH)
	if err != nil {
		return fmt.Errorf("rasterize copter: %w", err)
	}
	if err := writePNG(filepath.Join(dir, "heli.png"), copter); err != nil {
		return err
	}

	if err := writePNG(filepath.Join(dir, "tileset.png"), tileset()); err != nil {
		return err
	}

	m := caveMap()
	raw, err := encodeMap(m)
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	// round-trip through the loader's validation before writing
	if _, err := tilemap.Parse(raw); err != nil {
		return fmt.Errorf("generated map is invalid: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "map.yaml"), raw, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote heli.svg, heli.png, tileset.png, map.yaml (%dx%d tiles) to %s\n", m.Width, m.Height, dir)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// tileset draws two tiles side by side: plain rock and rock with a lighter
// crust along its top edge.
func tileset() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2*tileSize, tileSize))
	rock := color.RGBA{0x6b, 0x55, 0x44, 0xff}
	dark := color.RGBA{0x4e, 0x3d, 0x31, 0xff}
	crust := color.RGBA{0x5d, 0x9b, 0x4a, 0xff}

	for i := 0; i < 2; i++ {
		r := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		draw.Draw(img, r, image.NewUniform(rock), image.Point{}, draw.Src)
		// speckles on a fixed grid so every rock tile matches its neighbours
		for y := 3; y < tileSize; y += 7 {
			for x := (y / 7 % 2) * 3; x < tileSize; x += 9 {
				img.SetRGBA(r.Min.X+x, y, dark)
				img.SetRGBA(r.Min.X+x+1, y, dark)
			}
		}
	}
	draw.Draw(img, image.Rect(tileSize, 0, 2*tileSize, 6), image.NewUniform(crust), image.Point{}, draw.Src)
	return img
}

// caveMap builds a cave with a wavy ceiling and floor, closed at both ends,
// and a few stalactites and pillars to fly around. The spawn area near the
// top-left corner stays open.
func caveMap() *tilemap.Map {
	rows := make([][]int, mapRows)
	for y := range rows {
		rows[y] = make([]int, mapCols)
	}
	fill := func(x, y0, y1 int) {
		for y := max(0, y0); y < min(mapRows, y1); y++ {
			rows[y][x] = tileRock
		}
	}

	for x := 0; x < mapCols; x++ {
		fx := float64(x)
		ceil := max(1, 1+int(math.Round(1+math.Sin(fx/5)+0.6*math.Sin(fx/2.3))))
		floor := 2 + int(math.Round(1.5+1.5*math.Sin(fx/7+1)+0.5*math.Cos(fx/3)))
		if x < 10 {
			ceil = 1
		}
		fill(x, 0, ceil)
		fill(x, mapRows-floor, mapRows)
	}
	for y := 0; y < mapRows; y++ {
		rows[y][0] = tileRock
		rows[y][mapCols-1] = tileRock
	}

	for _, x := range []int{22, 23, 47, 61} {
		fill(x, 0, 8)
	}
	for _, x := range []int{33, 34, 54, 70} {
		fill(x, mapRows-10, mapRows)
	}

	// exposed rock gets the crust tile
	for y := 1; y < mapRows; y++ {
		for x := range rows[y] {
			if rows[y][x] != 0 && rows[y-1][x] == 0 {
				rows[y][x] = tileCrust
			}
		}
	}

	return &tilemap.Map{
		Name:       "cave",
		Width:      mapCols,
		Height:     mapRows,
		TileWidth:  tileSize,
		TileHeight: tileSize,
		Tileset:    tilemap.Tileset{Image: "tileset.png", Columns: 2},
		Layers:     []*tilemap.Layer{{Name: "terrain", Rows: rows}},
	}
}

// encodeMap marshals m with every row on a single line.
func encodeMap(m *tilemap.Map) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(m); err != nil {
		return nil, err
	}
	flowRows(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flowRows switches every sequence of scalars below n to flow style.
func flowRows(n *yaml.Node) {
	if n.Kind == yaml.SequenceNode && len(n.Content) > 0 && n.Content[0].Kind == yaml.ScalarNode {
		n.Style = yaml.FlowStyle
		return
	}
	for _, c := range n.Content {
		flowRows(c)
	}
}
