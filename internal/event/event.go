// Package event defines the collision/trigger and entity lifecycle
// events the engine emits to the game-logic layer. Events raised during
// a tick are queued and dispatched only after all displacements for the
// tick are finalized, so handlers never observe mid-tick positions.
package event

import (
	"github.com/quellen/wander/internal/entity"
)

// Type discriminates engine events.
type Type int

const (
	// TypeTrigger fires when an entity overlaps a trigger tile or a
	// non-solid trigger entity. Triggers never block movement.
	TypeTrigger Type = iota
	// TypeSpawned fires after an entity is created.
	TypeSpawned
	// TypeDespawned fires after a deferred despawn is committed.
	TypeDespawned
)

// Event is a single engine notification. Tick is stamped at delivery
// and matches the snapshot published for the same simulation tick.
type Event struct {
	Type    Type
	Tick    uint64
	Entity  entity.ID // The entity the event is about
	Other   entity.ID // Trigger-bearing entity; zero for tile triggers
	Trigger string    // Trigger id for TypeTrigger
	TileX   int       // Trigger tile cell for tile triggers
	TileY   int
}

// Queue accumulates events during a tick. It is drained exactly once
// per tick, after movement is committed.
type Queue struct {
	events []Event
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns all queued events in push order and clears the queue.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}
