package tilemap

import (
	"github.com/quellen/wander/internal/core"
)

// TileMap is a bounded, layered tile grid. It is immutable after load
// and replaced wholesale on map transition; readers never observe a
// partially built map.
type TileMap struct {
	ID              string
	Width, Height   int // Dimensions in tile cells
	DefaultPassable bool
	Spawns          []Spawn

	// layers[l][y*Width+x]; nil entries are empty cells
	layers [layerCount][]*Tile
}

// InBounds reports whether the tile cell (x, y) lies on the map.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// TileAt returns the tile at (x, y) on the given layer, or nil if the
// cell is empty or out of bounds. No side effects on read.
func (m *TileMap) TileAt(x, y int, layer LayerID) *Tile {
	if !m.InBounds(x, y) || layer < 0 || layer >= layerCount {
		return nil
	}
	return m.layers[layer][y*m.Width+x]
}

// Bounds returns the map extent as a world-unit box.
func (m *TileMap) Bounds() core.Box {
	return core.NewBox(0, 0, core.TileToUnit(m.Width), core.TileToUnit(m.Height))
}

// CellPassable reports whether an entity moving in dir may occupy the
// cell (x, y). Every layer is evaluated independently and the most
// restrictive one wins. Cells off the map edge are impassable.
func (m *TileMap) CellPassable(x, y int, dir core.Direction) bool {
	if !m.InBounds(x, y) {
		return false
	}
	occupied := false
	for l := LayerID(0); l < layerCount; l++ {
		t := m.layers[l][y*m.Width+x]
		if t == nil {
			continue
		}
		occupied = true
		if !t.Pass.Allows(dir) {
			return false
		}
	}
	if !occupied {
		return m.DefaultPassable
	}
	return true
}

// Passable reports whether an entity whose shape is the given world-unit
// box may occupy that position while moving in dir. Every cell the shape
// overlaps must be passable.
func (m *TileMap) Passable(box core.Box, dir core.Direction) bool {
	span := box.TileSpan()
	for y := span.Y; y < span.Bottom(); y++ {
		for x := span.X; x < span.Right(); x++ {
			if !m.CellPassable(x, y, dir) {
				return false
			}
		}
	}
	return true
}

// TriggersIn returns the trigger tiles overlapped by the given box, in
// row-major cell order with layers inner-most. Deterministic ordering
// keeps event dispatch reproducible.
func (m *TileMap) TriggersIn(box core.Box) []TriggerHit {
	var hits []TriggerHit
	span := box.TileSpan()
	for y := span.Y; y < span.Bottom(); y++ {
		for x := span.X; x < span.Right(); x++ {
			if !m.InBounds(x, y) {
				continue
			}
			for l := LayerID(0); l < layerCount; l++ {
				t := m.layers[l][y*m.Width+x]
				if t == nil || t.Trigger == "" {
					continue
				}
				hits = append(hits, TriggerHit{Trigger: t.Trigger, X: x, Y: y, Layer: l})
			}
		}
	}
	return hits
}
