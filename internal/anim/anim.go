// Package anim implements the per-entity animation state machine:
// (action, direction) pairs select a clip, elapsed time selects the
// frame. State advances explicitly once per tick; there is no
// suspendable stepping.
package anim

import (
	"time"

	"github.com/quellen/wander/internal/core"
)

// Action is an animation action category.
type Action int

const (
	ActionIdle Action = iota
	ActionWalk
	ActionAttack
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionWalk:
		return "walk"
	case ActionAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Frame is one sprite frame: a glyph, its color, and how long it shows.
type Frame struct {
	Glyph    rune
	Color    core.Color
	Duration time.Duration
}

// Clip is an ordered frame sequence for one (action, direction) state.
// Looping clips wrap at the end; one-shot clips clamp on the last frame.
// Non-interruptible clips (attacks) defer requested transitions until
// the current cycle completes.
type Clip struct {
	Frames        []Frame
	Loop          bool
	Interruptible bool
}

// total returns the summed duration of all frames.
func (c Clip) total() time.Duration {
	var d time.Duration
	for _, f := range c.Frames {
		d += f.Duration
	}
	return d
}

// StateKey selects a clip.
type StateKey struct {
	Action Action
	Facing core.Direction
}

// ClipSet maps animation states to clips. A quest builds one per
// entity kind.
type ClipSet map[StateKey]Clip

// Uniform builds a ClipSet where every direction of every given action
// shows the same clip. Convenient for glyph sprites that do not vary
// by facing.
func Uniform(clips map[Action]Clip) ClipSet {
	set := make(ClipSet, len(clips)*4)
	for action, clip := range clips {
		for _, d := range []core.Direction{core.North, core.South, core.East, core.West} {
			set[StateKey{Action: action, Facing: d}] = clip
		}
	}
	return set
}

// Controller is the per-entity animation state: current action and
// facing, plus elapsed time within the clip. Mutated only by Advance
// and Request, once per update tick, never concurrently with rendering.
type Controller struct {
	clips   ClipSet
	action  Action
	facing  core.Direction
	elapsed time.Duration

	pending    StateKey
	hasPending bool
}

// NewController creates a controller starting in the given state.
func NewController(clips ClipSet, action Action, facing core.Direction) *Controller {
	return &Controller{clips: clips, action: action, facing: facing}
}

// Action returns the current animation action.
func (c *Controller) Action() Action {
	return c.action
}

// Facing returns the current facing direction.
func (c *Controller) Facing() core.Direction {
	return c.facing
}

// current returns the active clip. A missing state falls back to a
// zero clip, which renders nothing.
func (c *Controller) current() Clip {
	return c.clips[StateKey{Action: c.action, Facing: c.facing}]
}

// Request asks for a transition to a new state. The transition is
// immediate if the current clip is interruptible, otherwise it is
// deferred until the current cycle completes. Requesting the active
// state is a no-op.
func (c *Controller) Request(action Action, facing core.Direction) {
	if action == c.action && facing == c.facing {
		c.hasPending = false
		return
	}
	if c.current().Interruptible || len(c.current().Frames) == 0 {
		c.apply(StateKey{Action: action, Facing: facing})
		return
	}
	c.pending = StateKey{Action: action, Facing: facing}
	c.hasPending = true
}

// apply switches state and restarts the clip.
func (c *Controller) apply(key StateKey) {
	c.action = key.Action
	c.facing = key.Facing
	c.elapsed = 0
	c.hasPending = false
}

// Advance moves elapsed time forward by the tick's delta and applies a
// deferred transition once the non-interruptible cycle has completed.
func (c *Controller) Advance(dt time.Duration) {
	c.elapsed += dt

	if !c.hasPending {
		return
	}
	if total := c.current().total(); total == 0 || c.elapsed >= total {
		c.apply(c.pending)
	}
}

// FrameIndex returns the index of the current frame: the element whose
// cumulative duration bracket contains elapsed time. Looping clips wrap,
// one-shot clips clamp to the last frame.
func (c *Controller) FrameIndex() int {
	clip := c.current()
	if len(clip.Frames) == 0 {
		return 0
	}
	total := clip.total()
	if total == 0 {
		return 0
	}

	t := c.elapsed
	if clip.Loop {
		t %= total
	} else if t >= total {
		return len(clip.Frames) - 1
	}

	var cum time.Duration
	for i, f := range clip.Frames {
		cum += f.Duration
		if t < cum {
			return i
		}
	}
	return len(clip.Frames) - 1
}

// Frame returns the current frame, or a zero Frame if the state has no
// clip.
func (c *Controller) Frame() Frame {
	clip := c.current()
	if len(clip.Frames) == 0 {
		return Frame{}
	}
	return clip.Frames[c.FrameIndex()]
}
