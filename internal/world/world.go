// Package world wires the engine core together: the tilemap store,
// entity registry, spatial index, collision resolver, and event queue,
// behind one explicit context object. All mutation happens on the
// single update goroutine inside Step; the render side only ever reads
// the immutable snapshot committed at the end of a tick.
package world

import (
	"time"

	"github.com/quellen/wander/internal/collision"
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
	"github.com/quellen/wander/internal/event"
	"github.com/quellen/wander/internal/spatial"
	"github.com/quellen/wander/internal/tilemap"
)

// transitionResult is the outcome of an asynchronous map load.
type transitionResult struct {
	tiles *tilemap.TileMap
	err   error
}

// World owns all simulation state for one running quest.
type World struct {
	store    *tilemap.Store
	tiles    *tilemap.TileMap
	reg      *entity.Registry
	index    *spatial.Grid
	resolver *collision.Resolver
	events   event.Queue

	tick     uint64
	snapshot *Snapshot

	// pending carries at most one in-flight async map load. The swap
	// happens only at a tick boundary, never mid-tick.
	pending       chan transitionResult
	transitionErr error

	handlers  []func(event.Event)
	onMapSwap func(*tilemap.TileMap)
}

// New creates a world reading maps from the given store. No map is
// active until LoadMap succeeds.
func New(store *tilemap.Store) *World {
	reg := entity.NewRegistry()
	index := spatial.NewGrid()
	return &World{
		store:    store,
		reg:      reg,
		index:    index,
		resolver: collision.NewResolver(nil, index, reg),
	}
}

// RegisterBlueprint installs a spawn template for an entity kind.
func (w *World) RegisterBlueprint(bp entity.Blueprint) {
	w.reg.RegisterBlueprint(bp)
}

// Subscribe adds a handler for engine events. Handlers run on the
// update goroutine, after all displacements for the tick are final.
func (w *World) Subscribe(fn func(event.Event)) {
	w.handlers = append(w.handlers, fn)
}

// OnMapSwap sets a callback invoked right after a map becomes active,
// before the first tick on it. The game layer uses it to place the
// player.
func (w *World) OnMapSwap(fn func(*tilemap.TileMap)) {
	w.onMapSwap = fn
}

// Map returns the active tilemap.
func (w *World) Map() *tilemap.TileMap {
	return w.tiles
}

// Tick returns the number of completed update ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// LoadMap synchronously loads and activates a map. On failure the
// previously active map (if any) stays fully intact.
func (w *World) LoadMap(mapID string) error {
	tiles, err := w.store.Load(mapID)
	if err != nil {
		return err
	}
	w.swapMap(tiles)
	w.publish()
	return nil
}

// BeginTransition starts loading a map off the update goroutine. The
// result is applied at the start of the next tick; a failed load keeps
// the current map and is reported by TransitionErr. A transition
// already in flight wins over a new request.
func (w *World) BeginTransition(mapID string) {
	if w.pending != nil {
		return
	}
	ch := make(chan transitionResult, 1)
	w.pending = ch
	go func() {
		tiles, err := w.store.Load(mapID)
		ch <- transitionResult{tiles: tiles, err: err}
	}()
}

// Transitioning reports whether a map load is in flight.
func (w *World) Transitioning() bool {
	return w.pending != nil
}

// TransitionErr returns and clears the error from the most recent
// failed map transition.
func (w *World) TransitionErr() error {
	err := w.transitionErr
	w.transitionErr = nil
	return err
}

// swapMap atomically replaces the active map: entities and index are
// rebuilt wholesale, then the map's spawn list is instantiated.
func (w *World) swapMap(tiles *tilemap.TileMap) {
	w.tiles = tiles
	w.resolver.SetMap(tiles)
	w.index.Reset()
	w.reg.Reset()
	w.reg.SetBounds(tiles.Bounds())

	for _, sp := range tiles.Spawns {
		kind, err := entity.ParseKind(sp.Kind)
		if err != nil {
			continue // unknown kinds in map data are dropped, not fatal
		}
		pos := core.Vec{X: core.TileToUnit(sp.X), Y: core.TileToUnit(sp.Y)}
		//nolint:errcheck // spawn-list entries were bounds-checked at map load
		w.Spawn(kind, pos, sp.Facing)
	}

	if w.onMapSwap != nil {
		w.onMapSwap(tiles)
	}
}

// Spawn creates an entity and indexes it. The lifecycle event is
// queued and dispatched at the end of the current tick.
func (w *World) Spawn(kind entity.Kind, pos core.Vec, facing core.Direction) (entity.ID, error) {
	e, err := w.reg.Spawn(kind, pos, facing)
	if err != nil {
		return 0, err
	}
	w.index.Insert(e.ID, e.Box())
	w.events.Push(event.Event{Type: event.TypeSpawned, Entity: e.ID})
	return e.ID, nil
}

// Despawn marks an entity for removal at the end of the tick.
func (w *World) Despawn(id entity.ID) {
	w.reg.Despawn(id)
}

// Despawning reports whether the entity is marked for removal at the
// end of the current tick.
func (w *World) Despawning(id entity.ID) bool {
	return w.reg.Despawning(id)
}

// Entity returns a live entity for game-logic mutation on the update
// goroutine. Stale ids return (nil, false).
func (w *World) Entity(id entity.ID) (*entity.Entity, bool) {
	return w.reg.Get(id)
}

// SetIntent records a desired displacement for the coming tick.
func (w *World) SetIntent(id entity.ID, intent core.Vec) {
	w.reg.SetIntent(id, intent)
}

// Resolve exposes the collision resolver for probing moves without
// committing them.
func (w *World) Resolve(id entity.ID, desired core.Vec) core.Vec {
	return w.resolver.Resolve(id, desired)
}

// QueryArea returns the ids of entities overlapping a world-unit box.
func (w *World) QueryArea(box core.Box) []entity.ID {
	return w.index.Query(box)
}

// Step advances the simulation by one fixed tick of duration dt.
// Pipeline: apply a finished map transition, resolve and commit
// movement, collect trigger overlaps, advance animations, dispatch
// events, commit deferred despawns, publish the snapshot. Despawns are
// committed after dispatch so that despawns requested by event
// handlers land at this tick's boundary, not the next one; the
// lifecycle events from the commit are drained before publishing.
// Events and the snapshot carry the same tick number.
func (w *World) Step(dt time.Duration) {
	w.applyPendingTransition()
	if w.tiles == nil {
		return
	}

	w.tick++
	w.moveEntities()
	w.collectTriggers()
	w.advanceAnimations(dt)

	w.dispatch()
	w.commitDespawns()
	w.dispatch()
	w.publish()
}

// applyPendingTransition swaps in an asynchronously loaded map at the
// tick boundary. A failed load leaves all current state untouched.
func (w *World) applyPendingTransition() {
	if w.pending == nil {
		return
	}
	select {
	case res := <-w.pending:
		w.pending = nil
		if res.err != nil {
			w.transitionErr = res.err
			return
		}
		w.swapMap(res.tiles)
	default:
		// Load still running; it will land on a later tick.
	}
}

// moveEntities resolves every movable entity's intent and commits the
// allowed displacement. Intents are consumed each tick.
func (w *World) moveEntities() {
	w.reg.ForEach(func(e *entity.Entity) {
		if !e.Kind.Capabilities().Movable {
			return
		}
		intent := e.Intent
		e.Intent = core.Vec{}
		if intent.IsZero() {
			return
		}
		actual := w.resolver.Resolve(e.ID, intent)
		if actual.IsZero() {
			return
		}
		e.Pos = e.Pos.Add(actual)
		w.index.Update(e.ID, e.Box())
	})
}

// collectTriggers queues trigger events for every movable entity
// overlapping trigger tiles or non-solid trigger entities. Events stay
// queued until dispatch, after movement is final.
func (w *World) collectTriggers() {
	w.reg.ForEach(func(e *entity.Entity) {
		if !e.Kind.Capabilities().Movable {
			return
		}
		box := e.Box()

		for _, hit := range w.tiles.TriggersIn(box) {
			w.events.Push(event.Event{
				Type:    event.TypeTrigger,
				Entity:  e.ID,
				Trigger: hit.Trigger,
				TileX:   hit.X,
				TileY:   hit.Y,
			})
		}

		for _, other := range w.index.Query(box) {
			if other == e.ID {
				continue
			}
			oe, ok := w.reg.Get(other)
			if !ok || oe.Trigger == "" || oe.Solid {
				continue
			}
			w.events.Push(event.Event{
				Type:    event.TypeTrigger,
				Entity:  e.ID,
				Other:   other,
				Trigger: oe.Trigger,
			})
		}
	})
}

// commitDespawns applies deferred despawns at the tick boundary.
func (w *World) commitDespawns() {
	for _, id := range w.reg.CommitDespawns() {
		w.index.Remove(id)
		w.events.Push(event.Event{Type: event.TypeDespawned, Entity: id})
	}
}

// advanceAnimations moves every animation controller forward by the
// tick delta.
func (w *World) advanceAnimations(dt time.Duration) {
	w.reg.ForEach(func(e *entity.Entity) {
		if e.Anim != nil {
			e.Anim.Advance(dt)
		}
	})
}

// dispatch delivers queued events to subscribers in emission order.
// Every event is stamped with the tick at which it is delivered, the
// same number the snapshot reflecting it will carry.
func (w *World) dispatch() {
	for _, ev := range w.events.Drain() {
		ev.Tick = w.tick
		for _, h := range w.handlers {
			h(ev)
		}
	}
}
