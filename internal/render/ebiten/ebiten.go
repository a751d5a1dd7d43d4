// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render"
)

// Texture wraps an ebiten.Image.
type Texture struct {
	img *ebiten.Image
}

func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// TextureFactory uploads images as ebiten images.
type TextureFactory struct{}

func NewTextureFactory() render.TextureFactory {
	return TextureFactory{}
}

func (TextureFactory) NewTexture(img image.Image) render.Texture {
	return &Texture{img: ebiten.NewImageFromImage(img)}
}

// keyBindings lists the physical keys bound to each action.
var keyBindings = map[render.Key][]ebiten.Key{
	render.KeyUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	render.KeyDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	render.KeyLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	render.KeyRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	render.KeyFire:  {ebiten.KeySpace},
	render.KeyQuit:  {ebiten.KeyQ, ebiten.KeyEscape},
}

// Platform answers input and frame-time queries from ebiten's global state.
type Platform struct{}

func NewPlatform() render.Platform {
	return Platform{}
}

func (Platform) IsKeyDown(key render.Key) bool {
	for _, k := range keyBindings[key] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (Platform) IsKeyJustPressed(key render.Key) bool {
	for _, k := range keyBindings[key] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// FrameTime is fixed: ebiten calls Update exactly TPS times per second.
func (Platform) FrameTime() float64 {
	return 1 / float64(ebiten.TPS())
}

// Canvas draws onto the ebiten screen image.
type Canvas struct {
	screen    *ebiten.Image
	transform render.Transform
	face      text.Face
}

var defaultFace = text.NewGoXFace(basicfont.Face7x13)

func newCanvas(screen *ebiten.Image) *Canvas {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	return &Canvas{
		screen:    screen,
		transform: render.ScreenTransform(float64(w), float64(h)),
		face:      defaultFace,
	}
}

func (c *Canvas) Size() (int, int) {
	b := c.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) size() (float64, float64) {
	w, h := c.Size()
	return float64(w), float64(h)
}

func (c *Canvas) Clear(clr color.Color) { c.screen.Fill(clr) }

func (c *Canvas) SetTransform(t render.Transform) { c.transform = t }

func (c *Canvas) DrawTexture(tex render.Texture, x, y float64, opts render.DrawTextureOptions) {
	img := tex.(*Texture).img
	if opts.Source != nil {
		s := opts.Source
		img = img.SubImage(image.Rect(int(s.X), int(s.Y), int(s.X+s.W), int(s.Y+s.H))).(*ebiten.Image)
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	w, h := float64(iw), float64(ih)
	sw, sh := c.size()
	px, py := c.transform.PixelScale(sw, sh)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	if opts.FlipX {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Rotate(opts.Rotation)
	op.GeoM.Translate(w/2+x, h/2+y)
	op.GeoM.Translate(-c.transform.Target.X, -c.transform.Target.Y)
	op.GeoM.Scale(px, py)
	op.GeoM.Translate(sw/2, sh/2)
	if opts.Tint != nil {
		op.ColorScale.ScaleWithColor(opts.Tint)
	}
	c.screen.DrawImage(img, op)
}

func (c *Canvas) FillCircle(x, y, radius float64, clr color.Color) {
	sw, sh := c.size()
	p := c.transform.WorldToScreen(geom.V(x, y), sw, sh)
	px, _ := c.transform.PixelScale(sw, sh)
	vector.DrawFilledCircle(c.screen, float32(p.X), float32(p.Y), float32(radius*px), clr, true)
}

func (c *Canvas) FillRect(r geom.Rect, clr color.Color) {
	sw, sh := c.size()
	a := c.transform.WorldToScreen(r.Min(), sw, sh)
	b := c.transform.WorldToScreen(r.Max(), sw, sh)
	x, y := min(a.X, b.X), min(a.Y, b.Y)
	w, h := max(a.X, b.X)-x, max(a.Y, b.Y)-y
	vector.DrawFilledRect(c.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (c *Canvas) DrawText(str string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.LineSpacing = c.face.Metrics().HAscent + c.face.Metrics().HDescent
	text.Draw(c.screen, str, c.face, op)
}

// Engine runs a render.Game with ebiten.
type Engine struct{}

func NewEngine() render.Engine {
	return Engine{}
}

func (Engine) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }
func (Engine) SetWindowTitle(title string)     { ebiten.SetWindowTitle(title) }
func (Engine) SetTPS(tps int)                  { ebiten.SetTPS(tps) }

func (Engine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

func (Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game.
type gameAdapter struct {
	game render.Game
}

func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(newCanvas(screen))
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
