// Package compose turns committed world snapshots into ordered draw
// command lists. It reads only immutable snapshot data, so it can run
// on the render side of the tick boundary without synchronization.
package compose

import (
	"sort"

	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
	"github.com/quellen/wander/internal/tilemap"
	"github.com/quellen/wander/internal/world"
)

// Draw layers, back to front. Tile layers map directly; entities sit
// between decoration and overhang so rooftops occlude them.
const (
	LayerGround     = 0
	LayerDecoration = 1
	LayerEntities   = 2
	LayerOverhang   = 3
)

// Command is one positioned glyph. X and Y are screen cells relative
// to the visible rect's origin.
type Command struct {
	X, Y  int
	Glyph rune
	Color core.Color
	Layer int
}

// Frame is the full ordered command list for one composed snapshot.
type Frame struct {
	Tick     uint64
	Commands []Command
}

type keyed struct {
	cmd   Command
	seq   int
	sortY int
}

// Compositor composes snapshots into frames. The zero value is ready
// to use; reusing one Compositor across frames recycles its scratch
// buffer.
type Compositor struct {
	scratch []keyed
}

// Compose flattens the snapshot into draw commands for the cells
// covered by visible. Ordering is deterministic: layer ascending,
// then world y ascending, then emission order. Entities whose boxes
// fall entirely outside visible produce no commands.
func (c *Compositor) Compose(snap *world.Snapshot, visible core.Rect) Frame {
	if snap == nil || snap.Tiles == nil {
		return Frame{}
	}
	c.scratch = c.scratch[:0]

	c.composeTiles(snap.Tiles, visible)
	c.composeEntities(snap.Entities, visible)

	sort.SliceStable(c.scratch, func(i, j int) bool {
		a, b := c.scratch[i], c.scratch[j]
		if a.cmd.Layer != b.cmd.Layer {
			return a.cmd.Layer < b.cmd.Layer
		}
		if a.sortY != b.sortY {
			return a.sortY < b.sortY
		}
		return a.seq < b.seq
	})

	out := Frame{Tick: snap.Tick, Commands: make([]Command, len(c.scratch))}
	for i, k := range c.scratch {
		out.Commands[i] = k.cmd
	}
	return out
}

func (c *Compositor) composeTiles(m *tilemap.TileMap, visible core.Rect) {
	layers := []struct {
		id    tilemap.LayerID
		depth int
	}{
		{tilemap.LayerGround, LayerGround},
		{tilemap.LayerDecoration, LayerDecoration},
		{tilemap.LayerOverhang, LayerOverhang},
	}
	for _, l := range layers {
		for y := visible.Y; y < visible.Bottom(); y++ {
			for x := visible.X; x < visible.Right(); x++ {
				t := m.TileAt(x, y, l.id)
				if t == nil {
					continue
				}
				c.emit(Command{
					X:     x - visible.X,
					Y:     y - visible.Y,
					Glyph: t.Glyph,
					Color: t.Color,
					Layer: l.depth,
				}, y)
			}
		}
	}
}

func (c *Compositor) composeEntities(ents []world.EntitySnap, visible core.Rect) {
	for _, e := range ents {
		span := e.Box.TileSpan()
		// Depth is the bottom row of the span. Larger entities repeat
		// their glyph over every covered cell.
		sortY := span.Bottom() - 1
		for ty := span.Y; ty < span.Bottom(); ty++ {
			for tx := span.X; tx < span.Right(); tx++ {
				if !visible.Contains(tx, ty) {
					continue
				}
				c.emit(Command{
					X:     tx - visible.X,
					Y:     ty - visible.Y,
					Glyph: e.Glyph,
					Color: e.Color,
					Layer: entityDepth(e.Kind, e.Layer),
				}, sortY)
			}
		}
	}
}

func (c *Compositor) emit(cmd Command, sortY int) {
	c.scratch = append(c.scratch, keyed{cmd: cmd, seq: len(c.scratch), sortY: sortY})
}

// entityDepth picks the draw layer for an entity. Explicit layer
// overrides win; items render under actors so actors walk over them.
func entityDepth(kind entity.Kind, layer int) int {
	if layer != 0 {
		return layer
	}
	if kind == entity.KindItem {
		return LayerEntities - 1
	}
	return LayerEntities
}

// CameraRect centers a w-by-h view on the focus tile and clamps it to
// the map bounds. Maps smaller than the view pin to the origin.
func CameraRect(m *tilemap.TileMap, focusX, focusY, w, h int) core.Rect {
	x := focusX - w/2
	y := focusY - h/2
	x = core.Clamp(x, 0, core.Max(0, m.Width-w))
	y = core.Clamp(y, 0, core.Max(0, m.Height-h))
	return core.Rect{X: x, Y: y, W: w, H: h}
}

// Blit draws a frame onto a screen at the given offset. Commands are
// already ordered, so later ones overwrite earlier ones per cell.
func Blit(s *core.Screen, f Frame, offX, offY int) {
	for _, cmd := range f.Commands {
		s.SetCell(offX+cmd.X, offY+cmd.Y, cmd.Glyph, cmd.Color)
	}
}
