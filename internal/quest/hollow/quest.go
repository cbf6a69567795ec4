// Package hollow implements the Hollow Keep quest: a small
// action-adventure across an overworld and a haunted keep. It doubles
// as the reference integration of the engine packages: tilemap
// loading, entity blueprints, collision, triggers, map warps, and
// snapshot rendering all run through it.
package hollow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quellen/wander/internal/anim"
	"github.com/quellen/wander/internal/compose"
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
	"github.com/quellen/wander/internal/event"
	"github.com/quellen/wander/internal/registry"
	"github.com/quellen/wander/internal/tilemap"
	"github.com/quellen/wander/internal/world"
)

const (
	startMap        = "overworld"
	startX, startY  = 5, 9
	playerSpeed     = core.Unit(125) // 8 ticks per tile at 60 tps
	attackCooldown  = 18             // ticks between swings
	messageDuration = 180            // ticks a HUD message stays visible
)

// dialogue is what the village NPC says, keyed by map.
var dialogue = map[string]string{
	"overworld": "Elder: The relic lies deep in the Hollow Keep.",
	"keep":      "It is quiet in here. Too quiet.",
}

// Quest implements registry.Quest for Hollow Keep.
type Quest struct {
	cfg     core.RuntimeConfig
	tickDur time.Duration

	w      *world.World
	player entity.ID
	patrol map[entity.ID]core.Direction
	comp   compose.Compositor

	coins       int
	slain       int
	attackTicks int

	// baseTicks is the play time carried in from a restored save;
	// the live world's tick counter starts over at zero.
	baseTicks uint64

	message      string
	messageTicks int

	paused    bool
	completed bool

	// Warp destination for the in-flight map transition, in tiles,
	// plus the facing to re-enter with. Nil when entering a map
	// through Reset or Restore.
	pendingEntry  *[2]int
	pendingFacing core.Direction
}

// New creates a new Hollow Keep quest.
func New() *Quest {
	return &Quest{}
}

func init() {
	registry.Register("hollow", func() registry.Quest {
		return New()
	})
}

// ID returns the quest identifier.
func (q *Quest) ID() string {
	return "hollow"
}

// Title returns the display name.
func (q *Quest) Title() string {
	return "Hollow Keep"
}

// Reset initializes the quest from the beginning.
func (q *Quest) Reset(cfg core.RuntimeConfig) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	q.cfg = cfg
	q.tickDur = time.Second / time.Duration(cfg.TickRate)
	q.coins = 0
	q.slain = 0
	q.attackTicks = 0
	q.message = ""
	q.messageTicks = 0
	q.paused = false
	q.completed = false
	q.pendingEntry = nil
	q.baseTicks = 0

	return q.enterMap(startMap, startX, startY, core.North)
}

// Restore resumes from a saved position. Play time continues from the
// saved tick count.
func (q *Quest) Restore(p core.Progress) error {
	if q.w == nil {
		if err := q.Reset(q.cfg); err != nil {
			return err
		}
	}
	q.baseTicks = p.PlayTicks
	facing := core.ParseDirection(p.Facing)
	return q.enterMap(p.MapID, p.PlayerTile[0], p.PlayerTile[1], facing)
}

// enterMap builds a fresh world on the named map and places the
// player at the given tile.
func (q *Quest) enterMap(mapID string, px, py int, facing core.Direction) error {
	w := world.New(tilemap.NewStore(mapRoot()))
	for _, bp := range blueprints(playerSpeed) {
		w.RegisterBlueprint(bp)
	}
	w.Subscribe(q.handleEvent)
	q.w = w
	q.patrol = make(map[entity.ID]core.Direction)

	if err := w.LoadMap(mapID); err != nil {
		return fmt.Errorf("hollow: load %s: %w", mapID, err)
	}
	if err := q.placePlayer(px, py, facing); err != nil {
		return err
	}
	// Registered only after the initial load so the swap hook fires
	// for warps alone; the first placement is handled right here.
	w.OnMapSwap(q.handleMapSwap)
	return nil
}

// placePlayer spawns the player and registers monster patrols on the
// current map.
func (q *Quest) placePlayer(px, py int, facing core.Direction) error {
	pos := core.Vec{X: core.TileToUnit(px), Y: core.TileToUnit(py)}
	id, err := q.w.Spawn(entity.KindPlayer, pos, facing)
	if err != nil {
		return fmt.Errorf("hollow: place player: %w", err)
	}
	q.player = id
	q.rebuildPatrols()
	return nil
}

// rebuildPatrols records an initial patrol heading for every monster
// on the active map.
func (q *Quest) rebuildPatrols() {
	q.patrol = make(map[entity.ID]core.Direction)
	for _, id := range q.w.QueryArea(q.w.Map().Bounds()) {
		e, ok := q.w.Entity(id)
		if !ok || e.Kind != entity.KindMonster {
			continue
		}
		dir := e.Facing
		if dir != core.East && dir != core.West {
			dir = core.West
		}
		q.patrol[id] = dir
	}
}

// Step advances the quest by one fixed tick.
func (q *Quest) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !q.completed {
		q.paused = !q.paused
	}
	if in.Has(core.ActionRestart) && (q.completed || q.paused) {
		q.Reset(q.cfg) //nolint:errcheck // embedded maps cannot fail to load
		return core.StepResult{State: q.State()}
	}
	if q.paused || q.completed {
		return core.StepResult{State: q.State()}
	}

	q.stepPlayer(in)
	q.stepMonsters()
	q.w.Step(q.tickDur)

	if q.attackTicks > 0 {
		q.attackTicks--
	}
	if q.messageTicks > 0 {
		q.messageTicks--
		if q.messageTicks == 0 {
			q.message = ""
		}
	}
	if err := q.w.TransitionErr(); err != nil {
		q.say("The way is blocked...")
	}

	return core.StepResult{State: q.State()}
}

// stepPlayer converts this tick's input into intent, facing, and
// animation requests for the player entity.
func (q *Quest) stepPlayer(in core.InputFrame) {
	e, ok := q.w.Entity(q.player)
	if !ok {
		return
	}

	dir, moving := core.North, false
	switch {
	case in.Has(core.ActionUp):
		dir, moving = core.North, true
	case in.Has(core.ActionDown):
		dir, moving = core.South, true
	case in.Has(core.ActionLeft):
		dir, moving = core.West, true
	case in.Has(core.ActionRight):
		dir, moving = core.East, true
	}

	if moving {
		e.Facing = dir
		dx, dy := dir.Delta()
		q.w.SetIntent(q.player, core.Vec{
			X: core.Unit(dx) * e.Speed,
			Y: core.Unit(dy) * e.Speed,
		})
		e.Anim.Request(anim.ActionWalk, dir)
	} else {
		e.Anim.Request(anim.ActionIdle, e.Facing)
	}

	if in.Has(core.ActionAttack) && q.attackTicks == 0 {
		q.attackTicks = attackCooldown
		e.Anim.Request(anim.ActionAttack, e.Facing)
		q.swing(e)
	}
	if in.Has(core.ActionInteract) {
		q.examine(e)
	}
}

// swing resolves a melee attack against the tile the player faces.
func (q *Quest) swing(player *entity.Entity) {
	for _, id := range q.w.QueryArea(q.facingTile(player)) {
		e, ok := q.w.Entity(id)
		if !ok || e.Kind != entity.KindMonster {
			continue
		}
		q.w.Despawn(id)
		delete(q.patrol, id)
		q.slain++
		q.say("The shade dissolves with a hiss.")
	}
}

// examine checks the tile ahead for someone to talk to.
func (q *Quest) examine(player *entity.Entity) {
	for _, id := range q.w.QueryArea(q.facingTile(player)) {
		e, ok := q.w.Entity(id)
		if !ok || e.Kind != entity.KindNPC {
			continue
		}
		if line, found := dialogue[q.w.Map().ID]; found {
			q.say(line)
		}
		return
	}
}

// facingTile returns the box of the tile directly ahead of the entity.
func (q *Quest) facingTile(e *entity.Entity) core.Box {
	span := e.Box().TileSpan()
	dx, dy := e.Facing.Delta()
	return core.Box{
		X: core.TileToUnit(span.X + dx),
		Y: core.TileToUnit(span.Y + dy),
		W: core.UnitsPerTile,
		H: core.UnitsPerTile,
	}
}

// stepMonsters walks each monster along its patrol line, turning
// around when the way ahead is blocked. Patrols use only resolved
// movement, so they are deterministic for a given map.
func (q *Quest) stepMonsters() {
	for id, dir := range q.patrol {
		e, ok := q.w.Entity(id)
		if !ok {
			delete(q.patrol, id)
			continue
		}
		dx, _ := dir.Delta()
		desired := core.Vec{X: core.Unit(dx) * e.Speed}
		if q.w.Resolve(id, desired).IsZero() {
			dir = dir.Opposite()
			q.patrol[id] = dir
			dx, _ = dir.Delta()
			desired = core.Vec{X: core.Unit(dx) * e.Speed}
		}
		e.Facing = dir
		q.w.SetIntent(id, desired)
		e.Anim.Request(anim.ActionWalk, dir)
	}
}

// handleEvent consumes simulation events after each tick.
func (q *Quest) handleEvent(ev event.Event) {
	if ev.Type != event.TypeTrigger || ev.Entity != q.player {
		return
	}
	switch {
	case ev.Trigger == "relic":
		if !q.completed {
			q.completed = true
			q.say("The relic hums in your hands. The Hollow is still.")
		}
	case ev.Trigger == "pickup:coin":
		if ev.Other != 0 && !q.w.Despawning(ev.Other) {
			q.w.Despawn(ev.Other)
			q.coins++
			q.say("Picked up a coin.")
		}
	case strings.HasPrefix(ev.Trigger, "warp:"):
		q.startWarp(ev.Trigger)
	}
}

// startWarp begins an async transition to the warp target. A warp
// already in flight wins; later triggers on the same tick are ignored.
func (q *Quest) startWarp(trigger string) {
	if q.w.Transitioning() {
		return
	}
	mapID, x, y, err := parseWarp(trigger)
	if err != nil {
		q.say("The door refuses to open.")
		return
	}
	q.pendingEntry = &[2]int{x, y}
	q.pendingFacing = core.South
	if e, ok := q.w.Entity(q.player); ok {
		q.pendingFacing = e.Facing
	}
	q.w.BeginTransition(mapID)
}

// handleMapSwap runs at the tick boundary where a transition commits.
// The registry was rebuilt from the new map's spawn list; the player
// is placed at the warp destination.
func (q *Quest) handleMapSwap(m *tilemap.TileMap) {
	px, py := startX, startY
	facing := core.South
	if q.pendingEntry != nil {
		px, py = q.pendingEntry[0], q.pendingEntry[1]
		facing = q.pendingFacing
		q.pendingEntry = nil
	}
	if err := q.placePlayer(px, py, facing); err != nil {
		// Fall back to the map origin area rather than losing the player.
		q.placePlayer(1, 1, core.South) //nolint:errcheck
	}
}

// parseWarp splits "warp:<map>:<x>,<y>" into its parts.
func parseWarp(trigger string) (mapID string, x, y int, err error) {
	parts := strings.Split(trigger, ":")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("hollow: malformed warp %q", trigger)
	}
	coords := strings.Split(parts[2], ",")
	if len(coords) != 2 {
		return "", 0, 0, fmt.Errorf("hollow: malformed warp %q", trigger)
	}
	x, err = strconv.Atoi(coords[0])
	if err != nil {
		return "", 0, 0, fmt.Errorf("hollow: malformed warp %q", trigger)
	}
	y, err = strconv.Atoi(coords[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("hollow: malformed warp %q", trigger)
	}
	return parts[1], x, y, nil
}

// say displays a HUD message for a few seconds.
func (q *Quest) say(line string) {
	q.message = line
	q.messageTicks = messageDuration
}

// State returns the externally visible quest state.
func (q *Quest) State() core.QuestState {
	st := core.QuestState{Paused: q.paused, Completed: q.completed}
	if q.w != nil && q.w.Map() != nil {
		st.MapID = q.w.Map().ID
	}
	return st
}

// Progress returns the current save point.
func (q *Quest) Progress() core.Progress {
	p := core.Progress{MapID: startMap, Facing: core.South.String()}
	if q.w == nil {
		return p
	}
	p.MapID = q.w.Map().ID
	p.PlayTicks = q.baseTicks + q.w.Tick()
	if e, ok := q.w.Entity(q.player); ok {
		span := e.Box().TileSpan()
		p.PlayerTile = [2]int{span.X, span.Y}
		p.Facing = e.Facing.String()
	}
	return p
}
