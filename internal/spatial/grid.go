// Package spatial provides a uniform-grid index over entity bounding
// boxes, bucketed by tile size. It answers "what overlaps this rect"
// for collision and culling without owning any entity state.
package spatial

import (
	"sort"

	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
)

// cellKey addresses one grid bucket (one tile cell).
type cellKey struct {
	X, Y int
}

// Grid is a uniform spatial hash with one bucket per tile cell. Updates
// are incremental as entities move; the grid is only rebuilt wholesale
// on map transition (Reset). It stores non-owning id references.
type Grid struct {
	cells map[cellKey][]entity.ID
	boxes map[entity.ID]core.Box
}

// NewGrid creates an empty index.
func NewGrid() *Grid {
	return &Grid{
		cells: make(map[cellKey][]entity.ID),
		boxes: make(map[entity.ID]core.Box),
	}
}

// Insert adds an entity with its bounding box. Inserting an id twice
// behaves like Update.
func (g *Grid) Insert(id entity.ID, box core.Box) {
	if _, ok := g.boxes[id]; ok {
		g.Update(id, box)
		return
	}
	g.boxes[id] = box
	g.addToCells(id, box)
}

// Update moves an entity to a new bounding box. Buckets are only
// touched when the covered cell span actually changes.
func (g *Grid) Update(id entity.ID, box core.Box) {
	old, ok := g.boxes[id]
	if !ok {
		g.Insert(id, box)
		return
	}
	if old.TileSpan() == box.TileSpan() {
		g.boxes[id] = box
		return
	}
	g.removeFromCells(id, old)
	g.boxes[id] = box
	g.addToCells(id, box)
}

// Remove deletes an entity from the index. Unknown ids are no-ops.
func (g *Grid) Remove(id entity.ID) {
	box, ok := g.boxes[id]
	if !ok {
		return
	}
	g.removeFromCells(id, box)
	delete(g.boxes, id)
}

// Query returns the ids of all entities whose boxes overlap the given
// box, in ascending id order for deterministic iteration.
func (g *Grid) Query(box core.Box) []entity.ID {
	span := box.TileSpan()
	var (
		out  []entity.ID
		seen map[entity.ID]bool
	)
	for y := span.Y; y < span.Bottom(); y++ {
		for x := span.X; x < span.Right(); x++ {
			for _, id := range g.cells[cellKey{X: x, Y: y}] {
				if seen[id] {
					continue
				}
				if g.boxes[id].Overlaps(box) {
					if seen == nil {
						seen = make(map[entity.ID]bool)
					}
					seen[id] = true
					out = append(out, id)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Box returns the indexed bounding box for an id.
func (g *Grid) Box(id entity.ID) (core.Box, bool) {
	b, ok := g.boxes[id]
	return b, ok
}

// Len returns the number of indexed entities.
func (g *Grid) Len() int {
	return len(g.boxes)
}

// Reset clears the index. Used on map transition.
func (g *Grid) Reset() {
	g.cells = make(map[cellKey][]entity.ID)
	g.boxes = make(map[entity.ID]core.Box)
}

func (g *Grid) addToCells(id entity.ID, box core.Box) {
	span := box.TileSpan()
	for y := span.Y; y < span.Bottom(); y++ {
		for x := span.X; x < span.Right(); x++ {
			k := cellKey{X: x, Y: y}
			g.cells[k] = append(g.cells[k], id)
		}
	}
}

func (g *Grid) removeFromCells(id entity.ID, box core.Box) {
	span := box.TileSpan()
	for y := span.Y; y < span.Bottom(); y++ {
		for x := span.X; x < span.Right(); x++ {
			k := cellKey{X: x, Y: y}
			bucket := g.cells[k]
			for i, other := range bucket {
				if other == id {
					bucket[i] = bucket[len(bucket)-1]
					g.cells[k] = bucket[:len(bucket)-1]
					break
				}
			}
			if len(g.cells[k]) == 0 {
				delete(g.cells, k)
			}
		}
	}
}
