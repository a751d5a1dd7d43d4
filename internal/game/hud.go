package game

import (
	"fmt"
	"image/color"

	"github.com/quadcopter/quadcopter/internal/core/event"
	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render"
)

const hudLineHeight = 16

var (
	loadingBackground = color.RGBA{0x20, 0x20, 0x28, 0xff}
	progressFrame     = color.RGBA{0x60, 0x60, 0x70, 0xff}
	progressFill      = color.RGBA{0x50, 0xc8, 0x78, 0xff}
)

// hudLines formats the debug overlay.
func hudLines(w *World) []string {
	lines := []string{fmt.Sprintf("frame %d  t=%.2fs", w.ctx.Frame, w.ctx.Time)}
	if p, err := w.Player(); err == nil {
		lines = append(lines,
			fmt.Sprintf("state %s", p.StateName()),
			fmt.Sprintf("pos %.0f,%.0f  speed %.0f,%.0f", p.pos.X, p.pos.Y, p.speed.X, p.speed.Y),
		)
	} else {
		lines = append(lines, "player gone")
	}
	if ps, err := w.Projectiles(); err == nil {
		lines = append(lines, fmt.Sprintf("projectiles %d", ps.Len()))
	}
	s := w.stats
	lines = append(lines, fmt.Sprintf("shots %d  expired %d  terrain %d  hits %d",
		s.ShotsFired,
		s.Retired[event.RetireExpired],
		s.Retired[event.RetireTerrain],
		s.Retired[event.RetirePlayerHit],
	))
	return lines
}

func drawHUD(canvas render.Canvas, w *World) {
	for i, line := range hudLines(w) {
		canvas.DrawText(line, 8, 8+i*hudLineHeight)
	}
}

// drawLoading draws the loading screen with a progress bar. progress is 0..1.
func drawLoading(canvas render.Canvas, progress float64) {
	sw, sh := canvas.Size()
	canvas.SetTransform(render.ScreenTransform(float64(sw), float64(sh)))
	canvas.Clear(loadingBackground)

	barW, barH := float64(sw)*0.6, 16.0
	x, y := (float64(sw)-barW)/2, float64(sh)/2
	canvas.FillRect(geom.R(x-2, y-2, barW+4, barH+4), progressFrame)
	canvas.FillRect(geom.R(x, y, barW*max(0, min(1, progress)), barH), progressFill)
	canvas.DrawText(fmt.Sprintf("Loading... %d%%", int(progress*100)), int(x), int(y)-hudLineHeight-4)
}
