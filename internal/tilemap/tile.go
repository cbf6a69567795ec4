// Package tilemap owns the map representation: layered tile grids,
// per-tile passability, and the store that loads maps from YAML files.
package tilemap

import (
	"github.com/quellen/wander/internal/core"
)

// LayerID identifies a drawing/collision layer. Layers are globally
// ordered: ground draws first, overhang draws above entities.
type LayerID int

const (
	LayerGround LayerID = iota
	LayerDecoration
	LayerOverhang

	layerCount // always last
)

// LayerCount is the number of map layers.
const LayerCount = int(layerCount)

// String returns the layer name used in map files.
func (l LayerID) String() string {
	switch l {
	case LayerGround:
		return "ground"
	case LayerDecoration:
		return "decoration"
	case LayerOverhang:
		return "overhang"
	default:
		return "unknown"
	}
}

// PassMask is a directional passability bitmask. A set bit means an
// entity may enter the tile while moving in that direction. One-way
// ledges set a single bit; ordinary floor sets all four.
type PassMask uint8

const (
	PassNorth PassMask = 1 << iota
	PassSouth
	PassEast
	PassWest

	PassNone PassMask = 0
	PassAll  PassMask = PassNorth | PassSouth | PassEast | PassWest
)

// Allows reports whether movement in the given direction may enter the tile.
func (m PassMask) Allows(dir core.Direction) bool {
	switch dir {
	case core.North:
		return m&PassNorth != 0
	case core.South:
		return m&PassSouth != 0
	case core.East:
		return m&PassEast != 0
	default:
		return m&PassWest != 0
	}
}

// Tile is one cell of one layer. Tiles are immutable once the map is
// loaded; at most one tile occupies each (x, y, layer).
type Tile struct {
	Glyph   rune
	Color   core.Color
	Pass    PassMask
	Trigger string // Trigger id fired on overlap; empty for plain tiles
}

// Solid reports whether the tile blocks movement from every direction.
func (t *Tile) Solid() bool {
	return t.Pass == PassNone
}

// Spawn is an entity placement from a map's spawn list.
type Spawn struct {
	Kind   string
	X, Y   int // Tile cell
	Facing core.Direction
}

// TriggerHit identifies a trigger tile overlapped by an entity's box.
type TriggerHit struct {
	Trigger string
	X, Y    int
	Layer   LayerID
}
