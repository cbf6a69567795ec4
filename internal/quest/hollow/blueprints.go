package hollow

import (
	"time"

	"github.com/quellen/wander/internal/anim"
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
)

const frameDur = 150 * time.Millisecond

// directionalWalk builds idle and walk clips whose glyph shows the
// facing direction, plus a short non-interruptible attack flash.
func directionalWalk(color core.Color) anim.ClipSet {
	glyphs := map[core.Direction]rune{
		core.North: '^',
		core.South: 'v',
		core.East:  '>',
		core.West:  '<',
	}
	set := make(anim.ClipSet)
	for dir, g := range glyphs {
		set[anim.StateKey{Action: anim.ActionIdle, Facing: dir}] = anim.Clip{
			Frames:        []anim.Frame{{Glyph: g, Color: color, Duration: frameDur}},
			Loop:          true,
			Interruptible: true,
		}
		set[anim.StateKey{Action: anim.ActionWalk, Facing: dir}] = anim.Clip{
			Frames: []anim.Frame{
				{Glyph: g, Color: color, Duration: frameDur},
				{Glyph: '@', Color: color, Duration: frameDur},
			},
			Loop:          true,
			Interruptible: true,
		}
		set[anim.StateKey{Action: anim.ActionAttack, Facing: dir}] = anim.Clip{
			Frames: []anim.Frame{
				{Glyph: '/', Color: core.ColorBrightWhite, Duration: frameDur / 2},
				{Glyph: g, Color: color, Duration: frameDur / 2},
			},
			Loop:          false,
			Interruptible: false,
		}
	}
	return set
}

func monsterClips() anim.ClipSet {
	return anim.Uniform(map[anim.Action]anim.Clip{
		anim.ActionIdle: {
			Frames:        []anim.Frame{{Glyph: 'm', Color: core.ColorRed, Duration: frameDur}},
			Loop:          true,
			Interruptible: true,
		},
		anim.ActionWalk: {
			Frames: []anim.Frame{
				{Glyph: 'm', Color: core.ColorRed, Duration: frameDur},
				{Glyph: 'M', Color: core.ColorRed, Duration: frameDur},
			},
			Loop:          true,
			Interruptible: true,
		},
	})
}

func npcClips() anim.ClipSet {
	return anim.Uniform(map[anim.Action]anim.Clip{
		anim.ActionIdle: {
			Frames: []anim.Frame{
				{Glyph: '&', Color: core.ColorCyan, Duration: frameDur * 4},
				{Glyph: '8', Color: core.ColorCyan, Duration: frameDur},
			},
			Loop:          true,
			Interruptible: true,
		},
	})
}

func coinClips() anim.ClipSet {
	return anim.Uniform(map[anim.Action]anim.Clip{
		anim.ActionIdle: {
			Frames: []anim.Frame{
				{Glyph: 'o', Color: core.ColorBrightYellow, Duration: frameDur * 2},
				{Glyph: 'O', Color: core.ColorBrightYellow, Duration: frameDur * 2},
			},
			Loop:          true,
			Interruptible: true,
		},
	})
}

// blueprints returns the spawn templates for every kind the quest
// uses. Sizes are one full tile; speeds are world units per tick.
func blueprints(playerSpeed core.Unit) []entity.Blueprint {
	tile := core.Vec{X: core.UnitsPerTile, Y: core.UnitsPerTile}
	return []entity.Blueprint{
		{Kind: entity.KindPlayer, Size: tile, Speed: playerSpeed, Clips: directionalWalk(core.ColorBrightCyan)},
		{Kind: entity.KindNPC, Size: tile, Speed: 0, Clips: npcClips()},
		{Kind: entity.KindMonster, Size: tile, Speed: 60, Clips: monsterClips()},
		{Kind: entity.KindItem, Size: tile, Trigger: "pickup:coin", Clips: coinClips()},
	}
}
