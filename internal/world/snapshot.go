package world

import (
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
	"github.com/quellen/wander/internal/tilemap"
)

// EntitySnap is the render-facing view of one entity at commit time.
// The glyph and color are sampled from the animation controller during
// commit, so the compositor never touches mutable state.
type EntitySnap struct {
	ID     entity.ID
	Kind   entity.Kind
	Box    core.Box
	Layer  int
	Facing core.Direction
	Glyph  rune
	Color  core.Color
}

// Snapshot is the immutable committed state published at the end of a
// tick. The tilemap pointer is shared safely because maps never mutate
// after load.
type Snapshot struct {
	Tick     uint64
	MapID    string
	Tiles    *tilemap.TileMap
	Entities []EntitySnap
}

// publish commits the current state as the new snapshot.
func (w *World) publish() {
	snap := &Snapshot{
		Tick:  w.tick,
		MapID: w.tiles.ID,
		Tiles: w.tiles,
	}
	w.reg.ForEach(func(e *entity.Entity) {
		es := EntitySnap{
			ID:     e.ID,
			Kind:   e.Kind,
			Box:    e.Box(),
			Layer:  e.Layer,
			Facing: e.Facing,
		}
		if e.Anim != nil {
			f := e.Anim.Frame()
			es.Glyph = f.Glyph
			es.Color = f.Color
		}
		snap.Entities = append(snap.Entities, es)
	})
	w.snapshot = snap
}

// Snapshot returns the last committed snapshot, or nil before the
// first map load.
func (w *World) Snapshot() *Snapshot {
	return w.snapshot
}
