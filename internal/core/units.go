package core

// Fixed-point world coordinates: 1 tile cell = 1000 units.
// Sub-tile positions stay exact integers, which keeps collision
// resolution deterministic across platforms.
const UnitsPerTile = 1000

// Unit is a fixed-point world coordinate (scaled by UnitsPerTile).
type Unit int

// TileToUnit converts a tile cell coordinate to world units.
func TileToUnit(cell int) Unit {
	return Unit(cell * UnitsPerTile)
}

// Tile returns the tile cell containing this coordinate (floor division,
// correct for negative coordinates).
func (u Unit) Tile() int {
	if u >= 0 {
		return int(u) / UnitsPerTile
	}
	return -((int(-u) + UnitsPerTile - 1) / UnitsPerTile)
}

// Abs returns the absolute value.
func (u Unit) Abs() Unit {
	if u < 0 {
		return -u
	}
	return u
}

// Sign returns -1, 0, or 1.
func (u Unit) Sign() int {
	if u < 0 {
		return -1
	}
	if u > 0 {
		return 1
	}
	return 0
}

// Vec is a 2D displacement in world units.
type Vec struct {
	X, Y Unit
}

// Add returns the component-wise sum of two vectors.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Box is an axis-aligned bounding box in world units. X, Y is the top-left
// corner. Boxes are half-open: a box touching another edge-to-edge does
// not overlap it.
type Box struct {
	X, Y Unit
	W, H Unit
}

// NewBox creates a box from a top-left corner and dimensions.
func NewBox(x, y, w, h Unit) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (b Box) Right() Unit {
	return b.X + b.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (b Box) Bottom() Unit {
	return b.Y + b.H
}

// Overlaps returns true if the two boxes share any interior area.
func (b Box) Overlaps(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Translate returns the box shifted by the given displacement.
func (b Box) Translate(v Vec) Box {
	return Box{X: b.X + v.X, Y: b.Y + v.Y, W: b.W, H: b.H}
}

// TileSpan returns the tile-cell rectangle covered by this box.
// A box flush against a cell boundary does not span the next cell.
func (b Box) TileSpan() Rect {
	x1 := b.X.Tile()
	y1 := b.Y.Tile()
	x2 := (b.Right() - 1).Tile()
	y2 := (b.Bottom() - 1).Tile()
	return Rect{X: x1, Y: y1, W: x2 - x1 + 1, H: y2 - y1 + 1}
}
