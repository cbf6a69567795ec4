package entity

import (
	"errors"
	"fmt"

	"github.com/quellen/wander/internal/anim"
	"github.com/quellen/wander/internal/core"
)

// ErrInvalidSpawn is returned for unknown kinds or out-of-bounds
// positions. The spawn request is dropped; nothing is mutated.
var ErrInvalidSpawn = errors.New("entity: invalid spawn")

// Entity is one dynamic actor. Entities are owned by the Registry;
// other components refer to them only by ID.
type Entity struct {
	ID      ID
	Kind    Kind
	Pos     core.Vec // Top-left corner in world units
	Size    core.Vec
	Intent  core.Vec // Desired displacement for the current tick
	Facing  core.Direction
	Speed   core.Unit
	Layer   int
	Solid   bool
	Trigger string

	// Anim is nil for kinds without the animatable capability.
	Anim *anim.Controller
}

// Box returns the entity's bounding box in world units.
func (e *Entity) Box() core.Box {
	return core.Box{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Registry owns all live entities. IDs increase monotonically and are
// never reused, so stale references from the spatial index or queued
// events can be recognized and ignored. Despawns are deferred: marked
// entities stay fully observable until the tick boundary commits them.
type Registry struct {
	nextID     ID
	entities   map[ID]*Entity
	order      []ID // spawn order, for deterministic iteration
	despawning map[ID]bool
	blueprints map[Kind]Blueprint
	bounds     core.Box
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nextID:     1,
		entities:   make(map[ID]*Entity),
		despawning: make(map[ID]bool),
		blueprints: make(map[Kind]Blueprint),
	}
}

// RegisterBlueprint installs the spawn template for a kind. Spawning a
// kind without a blueprint fails with ErrInvalidSpawn.
func (r *Registry) RegisterBlueprint(bp Blueprint) {
	r.blueprints[bp.Kind] = bp
}

// SetBounds sets the world extent used to validate spawn positions.
// Called on map transition.
func (r *Registry) SetBounds(b core.Box) {
	r.bounds = b
}

// Spawn creates an entity of the given kind at a world-unit position.
// The entity is live immediately; the caller is responsible for
// inserting it into the spatial index and emitting the lifecycle event.
func (r *Registry) Spawn(kind Kind, pos core.Vec, facing core.Direction) (*Entity, error) {
	bp, ok := r.blueprints[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no blueprint for kind %s", ErrInvalidSpawn, kind)
	}

	box := core.Box{X: pos.X, Y: pos.Y, W: bp.Size.X, H: bp.Size.Y}
	if r.bounds.W > 0 && (box.X < r.bounds.X || box.Y < r.bounds.Y ||
		box.Right() > r.bounds.Right() || box.Bottom() > r.bounds.Bottom()) {
		return nil, fmt.Errorf("%w: kind %s out of bounds at (%d,%d)", ErrInvalidSpawn, kind, pos.X, pos.Y)
	}

	e := &Entity{
		ID:      r.nextID,
		Kind:    kind,
		Pos:     pos,
		Size:    bp.Size,
		Facing:  facing,
		Speed:   bp.Speed,
		Layer:   bp.Layer,
		Solid:   bp.solid(),
		Trigger: bp.Trigger,
	}
	if kind.Capabilities().Animatable && bp.Clips != nil {
		e.Anim = anim.NewController(bp.Clips, anim.ActionIdle, facing)
	}

	r.nextID++
	r.entities[e.ID] = e
	r.order = append(r.order, e.ID)
	return e, nil
}

// Despawn marks an entity for removal at the next tick boundary. The
// entity remains observable until CommitDespawns runs, so in-flight
// collision queries never see a half-destroyed entity. Unknown or
// already-marked ids are no-ops.
func (r *Registry) Despawn(id ID) {
	if _, ok := r.entities[id]; !ok {
		return
	}
	r.despawning[id] = true
}

// Despawning reports whether the entity is marked for removal.
func (r *Registry) Despawning(id ID) bool {
	return r.despawning[id]
}

// CommitDespawns removes all marked entities and returns their ids in
// spawn order. Called exactly once per tick, at the boundary.
func (r *Registry) CommitDespawns() []ID {
	if len(r.despawning) == 0 {
		return nil
	}

	var removed []ID
	kept := r.order[:0]
	for _, id := range r.order {
		if r.despawning[id] {
			delete(r.entities, id)
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	r.despawning = make(map[ID]bool)
	return removed
}

// Get returns the entity with the given id. A stale id returns
// (nil, false); callers treat that as a no-op, never as fatal.
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// Position returns an entity's position.
func (r *Registry) Position(id ID) (core.Vec, bool) {
	e, ok := r.entities[id]
	if !ok {
		return core.Vec{}, false
	}
	return e.Pos, true
}

// SetPosition moves an entity. Stale ids are ignored.
func (r *Registry) SetPosition(id ID, pos core.Vec) {
	if e, ok := r.entities[id]; ok {
		e.Pos = pos
	}
}

// SetIntent records an entity's desired displacement for this tick.
// Stale ids are ignored.
func (r *Registry) SetIntent(id ID, intent core.Vec) {
	if e, ok := r.entities[id]; ok {
		e.Intent = intent
	}
}

// ForEach visits all live entities in spawn order. The visitor must not
// spawn or despawn during iteration.
func (r *Registry) ForEach(visit func(*Entity)) {
	for _, id := range r.order {
		if e, ok := r.entities[id]; ok {
			visit(e)
		}
	}
}

// Len returns the number of live entities, including those marked for
// despawn but not yet committed.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Reset removes all entities. Used on map transition; ids keep
// increasing across resets.
func (r *Registry) Reset() {
	r.entities = make(map[ID]*Entity)
	r.order = nil
	r.despawning = make(map[ID]bool)
}
