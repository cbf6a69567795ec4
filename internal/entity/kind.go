// Package entity owns all dynamic actors: their kinds, transforms,
// intents, and lifecycle. The spatial index and collision resolver hold
// only non-owning id references into the registry.
package entity

import (
	"fmt"

	"github.com/quellen/wander/internal/anim"
	"github.com/quellen/wander/internal/core"
)

// ID uniquely identifies an entity. IDs are never reused within a
// process run, so a stale ID can always be detected. Zero is never a
// valid id.
type ID uint64

// Kind is a closed tagged variant for entity categories. Behavior
// differences hang off the capability table, not ad hoc checks.
type Kind int

const (
	KindPlayer Kind = iota
	KindNPC
	KindMonster
	KindItem
	KindTriggerZone // invisible event-bearing region
)

// String returns the kind name used in map spawn lists.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNPC:
		return "npc"
	case KindMonster:
		return "monster"
	case KindItem:
		return "item"
	case KindTriggerZone:
		return "trigger_zone"
	default:
		return "unknown"
	}
}

// ParseKind converts a spawn-list kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "player":
		return KindPlayer, nil
	case "npc":
		return KindNPC, nil
	case "monster":
		return KindMonster, nil
	case "item":
		return KindItem, nil
	case "trigger_zone":
		return KindTriggerZone, nil
	default:
		return 0, fmt.Errorf("entity: unknown kind %q", s)
	}
}

// Capabilities describes what a kind of entity can do. The collision
// resolver and animation system consult these instead of switching on
// the kind directly.
type Capabilities struct {
	Movable    bool // participates in intent/resolve movement
	Solid      bool // blocks other entities
	Animatable bool // carries an animation controller
}

// capabilityTable maps each kind to its default capabilities.
// Blueprints may override Solid (e.g. a ghost monster).
var capabilityTable = map[Kind]Capabilities{
	KindPlayer:      {Movable: true, Solid: true, Animatable: true},
	KindNPC:         {Movable: true, Solid: true, Animatable: true},
	KindMonster:     {Movable: true, Solid: true, Animatable: true},
	KindItem:        {Movable: false, Solid: false, Animatable: true},
	KindTriggerZone: {Movable: false, Solid: false, Animatable: false},
}

// Capabilities returns the default capability set for the kind.
func (k Kind) Capabilities() Capabilities {
	return capabilityTable[k]
}

// Blueprint is the spawn-time template for a kind: shape, speed, draw
// layer, and animation clips. Quests register one per kind they use.
type Blueprint struct {
	Kind    Kind
	Size    core.Vec     // Bounding box dimensions in world units
	Speed   core.Unit    // Walk speed in units per tick (movable kinds)
	Layer   int          // Draw layer (see compose package ordering)
	Trigger string       // Trigger id emitted on overlap; non-solid kinds only
	Clips   anim.ClipSet // Animation clips (animatable kinds)

	// SolidOverride forces solidity on or off regardless of the kind's
	// default capability. Nil keeps the default.
	SolidOverride *bool
}

// solid resolves the blueprint's effective solidity.
func (b Blueprint) solid() bool {
	if b.SolidOverride != nil {
		return *b.SolidOverride
	}
	return b.Kind.Capabilities().Solid
}
