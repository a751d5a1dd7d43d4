package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/quadcopter/quadcopter/internal/geom"
)

// ErrQuit is returned from Game.Update to end the game loop normally.
var ErrQuit = errors.New("quit requested")

// Key is one of the fixed set of game actions the backend maps to keys.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	case KeyQuit:
		return "quit"
	}
	return "unknown"
}

// Input answers key state queries for the current frame.
type Input interface {
	IsKeyDown(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Platform is the per-frame view of the windowing backend.
type Platform interface {
	Input
	// FrameTime returns the duration of one frame in seconds.
	FrameTime() float64
}

// Texture is a drawable image owned by the backend.
type Texture interface {
	Size() (width, height int)
}

// TextureFactory uploads decoded images to the backend.
type TextureFactory interface {
	NewTexture(img image.Image) Texture
}

// DrawTextureOptions mirrors the knobs the game needs when drawing sprites.
type DrawTextureOptions struct {
	// Source selects a sub-rectangle of the texture; nil draws all of it.
	Source *geom.Rect
	// Rotation in radians around the center of the drawn rectangle.
	Rotation float64
	FlipX    bool
	// Tint multiplies the texture colors; nil leaves them unchanged.
	Tint color.Color
}

// Canvas is the frame being drawn. World-space calls go through the
// transform set with SetTransform; DrawText is always in screen pixels.
type Canvas interface {
	Size() (width, height int)
	Clear(clr color.Color)
	SetTransform(t Transform)
	DrawTexture(tex Texture, x, y float64, opts DrawTextureOptions)
	FillCircle(x, y, radius float64, clr color.Color)
	FillRect(r geom.Rect, clr color.Color)
	DrawText(text string, x, y int)
}

// Game is implemented by the game loop and driven by an Engine.
type Game interface {
	Update() error
	Draw(screen Canvas)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and runs the game loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	SetTPS(tps int)
	// RunGame blocks until the window closes or Update returns an error.
	// ErrQuit ends the loop without an error.
	RunGame(game Game) error
}
