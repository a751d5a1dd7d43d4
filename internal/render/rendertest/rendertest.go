// Package rendertest provides in-memory fakes of the render interfaces.
package rendertest

import (
	"image"
	"image/color"

	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render"
)

// Texture is a sized placeholder texture.
type Texture struct {
	Name string
	W, H int
}

func (t *Texture) Size() (int, int) { return t.W, t.H }

// Factory creates Textures from image bounds and counts them.
type Factory struct {
	Created int
}

func (f *Factory) NewTexture(img image.Image) render.Texture {
	f.Created++
	b := img.Bounds()
	return &Texture{W: b.Dx(), H: b.Dy()}
}

type TextureDraw struct {
	Tex       render.Texture
	X, Y      float64
	Opts      render.DrawTextureOptions
	Transform render.Transform
}

type Circle struct {
	X, Y, Radius float64
	Color        color.Color
}

type Rect struct {
	Rect      geom.Rect
	Color     color.Color
	Transform render.Transform
}

type Text struct {
	Text string
	X, Y int
}

// Canvas records every draw call.
type Canvas struct {
	W, H      int
	Transform render.Transform
	Clears    []color.Color
	Textures  []TextureDraw
	Circles   []Circle
	Rects     []Rect
	Texts     []Text
}

// NewCanvas returns a w×h recording canvas with a one-to-one transform.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, Transform: render.ScreenTransform(float64(w), float64(h))}
}

func (c *Canvas) Size() (int, int)                { return c.W, c.H }
func (c *Canvas) Clear(clr color.Color)           { c.Clears = append(c.Clears, clr) }
func (c *Canvas) SetTransform(t render.Transform) { c.Transform = t }
func (c *Canvas) DrawText(text string, x, y int)  { c.Texts = append(c.Texts, Text{text, x, y}) }

func (c *Canvas) FillRect(r geom.Rect, clr color.Color) {
	c.Rects = append(c.Rects, Rect{r, clr, c.Transform})
}

func (c *Canvas) DrawTexture(tex render.Texture, x, y float64, opts render.DrawTextureOptions) {
	c.Textures = append(c.Textures, TextureDraw{tex, x, y, opts, c.Transform})
}

func (c *Canvas) FillCircle(x, y, radius float64, clr color.Color) {
	c.Circles = append(c.Circles, Circle{x, y, radius, clr})
}

// Reset drops everything recorded so far.
func (c *Canvas) Reset() {
	c.Clears = nil
	c.Textures = nil
	c.Circles = nil
	c.Rects = nil
	c.Texts = nil
}

// Input is a scripted keyboard. Keys pressed with Press report
// IsKeyJustPressed until the next EndFrame.
type Input struct {
	Dt      float64
	down    map[render.Key]bool
	pressed map[render.Key]bool
}

// NewInput returns an Input reporting a fixed frame time of dt seconds.
func NewInput(dt float64) *Input {
	return &Input{
		Dt:      dt,
		down:    make(map[render.Key]bool),
		pressed: make(map[render.Key]bool),
	}
}

func (in *Input) FrameTime() float64 { return in.Dt }

func (in *Input) IsKeyDown(k render.Key) bool        { return in.down[k] }
func (in *Input) IsKeyJustPressed(k render.Key) bool { return in.pressed[k] }

// Press marks k as held and just pressed.
func (in *Input) Press(k render.Key) {
	if !in.down[k] {
		in.pressed[k] = true
	}
	in.down[k] = true
}

// Hold marks k as held without a fresh press.
func (in *Input) Hold(k render.Key) { in.down[k] = true }

func (in *Input) Release(k render.Key) { delete(in.down, k) }

// EndFrame clears the just-pressed set.
func (in *Input) EndFrame() { clear(in.pressed) }
