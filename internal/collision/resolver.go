// Package collision turns desired entity displacements into allowed
// ones. Resolution is axis-separated (x before y), clamps exactly to
// obstacle edges, and is pure integer math, so identical inputs always
// produce identical results.
package collision

import (
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
	"github.com/quellen/wander/internal/spatial"
	"github.com/quellen/wander/internal/tilemap"
)

// Resolver computes allowed displacements against tilemap passability
// and solid entities. It reads the registry and index but never
// mutates them.
type Resolver struct {
	tiles *tilemap.TileMap
	index *spatial.Grid
	reg   *entity.Registry
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(tiles *tilemap.TileMap, index *spatial.Grid, reg *entity.Registry) *Resolver {
	return &Resolver{tiles: tiles, index: index, reg: reg}
}

// SetMap swaps the tilemap on map transition.
func (r *Resolver) SetMap(tiles *tilemap.TileMap) {
	r.tiles = tiles
}

// Resolve returns the displacement the entity is actually allowed,
// clamped against impassable tiles and solid entities. The x sub-move
// resolves first, then y resolves from the x-adjusted position; this
// tie-break keeps replays deterministic and allows sliding along
// obstacles. Stale ids resolve to zero displacement.
func (r *Resolver) Resolve(id entity.ID, desired core.Vec) core.Vec {
	e, ok := r.reg.Get(id)
	if !ok {
		return core.Vec{}
	}

	box := e.Box()
	dx := r.resolveAxis(id, box, desired.X, true)
	box = box.Translate(core.Vec{X: dx})
	dy := r.resolveAxis(id, box, desired.Y, false)

	return core.Vec{X: dx, Y: dy}
}

// resolveAxis clamps a single-axis sub-move. horizontal selects the
// axis; d is the desired signed displacement along it.
func (r *Resolver) resolveAxis(id entity.ID, box core.Box, d core.Unit, horizontal bool) core.Unit {
	if d == 0 {
		return 0
	}

	dir := axisDirection(d, horizontal)
	allowed := r.clampToTiles(box, d, dir, horizontal)
	return r.clampToEntities(id, box, allowed, horizontal)
}

// axisDirection maps a signed axis displacement to the movement
// direction used for directional passability.
func axisDirection(d core.Unit, horizontal bool) core.Direction {
	if horizontal {
		if d > 0 {
			return core.East
		}
		return core.West
	}
	if d > 0 {
		return core.South
	}
	return core.North
}

// clampToTiles walks the tile columns (or rows) the moving edge would
// newly enter, in travel order, and clamps the displacement to the near
// edge of the first cell line that is not passable. Checking every
// line between start and destination rules out tunneling for any
// displacement magnitude.
func (r *Resolver) clampToTiles(box core.Box, d core.Unit, dir core.Direction, horizontal bool) core.Unit {
	if r.tiles == nil {
		return d
	}

	// Perpendicular span of cells the shape occupies.
	span := box.TileSpan()

	if horizontal {
		if d > 0 {
			lead := box.Right()
			first := lead.Tile() // box.Right is exclusive: cell `first` is newly entered unless flush
			if core.TileToUnit(first) < lead {
				first++
			}
			last := (lead + d - 1).Tile()
			for cx := first; cx <= last; cx++ {
				if !r.columnPassable(cx, span.Y, span.Bottom(), dir) {
					return core.TileToUnit(cx) - lead
				}
			}
			return d
		}
		lead := box.X
		// Cell lead.Tile() is already legally occupied (or flush); the
		// first newly entered column is the one left of it. When the
		// move stays inside the occupied cell, last > first and the
		// loop never runs.
		first := lead.Tile() - 1
		last := (lead + d).Tile()
		for cx := first; cx >= last; cx-- {
			if !r.columnPassable(cx, span.Y, span.Bottom(), dir) {
				return core.TileToUnit(cx+1) - lead
			}
		}
		return d
	}

	if d > 0 {
		lead := box.Bottom()
		first := lead.Tile()
		if core.TileToUnit(first) < lead {
			first++
		}
		last := (lead + d - 1).Tile()
		for cy := first; cy <= last; cy++ {
			if !r.rowPassable(cy, span.X, span.Right(), dir) {
				return core.TileToUnit(cy) - lead
			}
		}
		return d
	}
	lead := box.Y
	first := lead.Tile() - 1
	last := (lead + d).Tile()
	for cy := first; cy >= last; cy-- {
		if !r.rowPassable(cy, span.X, span.Right(), dir) {
			return core.TileToUnit(cy+1) - lead
		}
	}
	return d
}

// columnPassable reports whether every cell of column cx between rows
// [y1, y2) permits entry in dir.
func (r *Resolver) columnPassable(cx, y1, y2 int, dir core.Direction) bool {
	for cy := y1; cy < y2; cy++ {
		if !r.tiles.CellPassable(cx, cy, dir) {
			return false
		}
	}
	return true
}

// rowPassable reports whether every cell of row cy between columns
// [x1, x2) permits entry in dir.
func (r *Resolver) rowPassable(cy, x1, x2 int, dir core.Direction) bool {
	for cx := x1; cx < x2; cx++ {
		if !r.tiles.CellPassable(cx, cy, dir) {
			return false
		}
	}
	return true
}

// clampToEntities shrinks an already tile-clamped displacement so the
// box stops exactly at the edge of the nearest solid entity in its
// path. Non-solid entities (triggers, items) never block; they are
// reported as events by the world instead.
func (r *Resolver) clampToEntities(id entity.ID, box core.Box, d core.Unit, horizontal bool) core.Unit {
	if d == 0 {
		return 0
	}

	// Swept region covering start and destination.
	swept := box
	if horizontal {
		if d > 0 {
			swept.W += d
		} else {
			swept.X += d
			swept.W -= d
		}
	} else {
		if d > 0 {
			swept.H += d
		} else {
			swept.Y += d
			swept.H -= d
		}
	}

	for _, other := range r.index.Query(swept) {
		if other == id {
			continue
		}
		oe, ok := r.reg.Get(other)
		if !ok || !oe.Solid {
			continue
		}
		ob := oe.Box()

		if horizontal {
			if ob.Y >= box.Bottom() || box.Y >= ob.Bottom() {
				continue // no perpendicular overlap
			}
			if d > 0 && ob.X >= box.Right() {
				if gap := ob.X - box.Right(); gap < d {
					d = gap
				}
			} else if d < 0 && ob.Right() <= box.X {
				if gap := ob.Right() - box.X; gap > d {
					d = gap
				}
			}
		} else {
			if ob.X >= box.Right() || box.X >= ob.Right() {
				continue
			}
			if d > 0 && ob.Y >= box.Bottom() {
				if gap := ob.Y - box.Bottom(); gap < d {
					d = gap
				}
			} else if d < 0 && ob.Bottom() <= box.Y {
				if gap := ob.Bottom() - box.Y; gap > d {
					d = gap
				}
			}
		}
		if d == 0 {
			return 0
		}
	}
	return d
}
