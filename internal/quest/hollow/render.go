package hollow

import (
	"fmt"

	"github.com/quellen/wander/internal/compose"
	"github.com/quellen/wander/internal/core"
)

const hudHeight = 2

// Render draws the committed snapshot: HUD on top, the camera view of
// the world below, and modal overlays last.
func (q *Quest) Render(dst *core.Screen) {
	dst.Clear()
	q.renderHUD(dst)

	snap := q.w.Snapshot()
	if snap == nil || snap.Tiles == nil {
		return
	}

	viewW := core.Min(dst.Width(), snap.Tiles.Width)
	viewH := core.Min(dst.Height()-hudHeight-1, snap.Tiles.Height)
	if viewW <= 0 || viewH <= 0 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	fx, fy := startX, startY
	for _, e := range snap.Entities {
		if e.ID == q.player {
			span := e.Box.TileSpan()
			fx, fy = span.X, span.Y
			break
		}
	}

	cam := compose.CameraRect(snap.Tiles, fx, fy, viewW, viewH)
	frame := q.comp.Compose(snap, cam)
	offX := (dst.Width() - viewW) / 2
	compose.Blit(dst, frame, offX, hudHeight)

	if q.messageTicks > 0 {
		dst.DrawTextColored(1, dst.Height()-1, q.message, core.ColorBrightWhite)
	}

	switch {
	case q.completed:
		q.renderOverlay(dst, "Quest Complete!", fmt.Sprintf("Coins: %d  Shades slain: %d", q.coins, q.slain))
	case q.paused:
		q.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (q *Quest) renderHUD(dst *core.Screen) {
	st := q.State()
	hud := fmt.Sprintf(" Hollow Keep | %s  Coins: %d  Slain: %d", st.MapID, q.coins, q.slain)
	dst.DrawText(0, 0, hud)

	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// renderOverlay draws a centered two-line modal box.
func (q *Quest) renderOverlay(dst *core.Screen, title, subtitle string) {
	w := core.Max(len(title), len(subtitle)) + 6
	h := 5
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r)
	dst.DrawTextCentered(r.Y+1, title)
	dst.DrawTextCentered(r.Y+3, subtitle)
}
