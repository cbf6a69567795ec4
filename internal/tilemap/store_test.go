package tilemap

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/quellen/wander/internal/core"
)

const testMap = `
id: courtyard
width: 6
height: 4
default_passable: true
tiles:
  "#": {glyph: "#", color: gray, passable: false}
  ".": {glyph: ".", color: green}
  "^": {glyph: "^", color: yellow, pass: "south"}
  "D": {glyph: "D", color: cyan, trigger: "warp:keep"}
  "*": {glyph: "*", color: bright-yellow}
layers:
  ground:
    - "######"
    - "#.^..#"
    - "#..D.#"
    - "######"
  decoration:
    - "      "
    - "    * "
    - "      "
    - "      "
spawns:
  - {kind: player, x: 1, y: 1, facing: east}
  - {kind: npc, x: 4, y: 2}
`

func testFS(docs map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range docs {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadValidMap(t *testing.T) {
	store := NewStore(testFS(map[string]string{"courtyard.yaml": testMap}))

	m, err := store.Load("courtyard")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if m.ID != "courtyard" || m.Width != 6 || m.Height != 4 {
		t.Errorf("map header = %s %dx%d", m.ID, m.Width, m.Height)
	}

	wall := m.TileAt(0, 0, LayerGround)
	if wall == nil || !wall.Solid() {
		t.Error("corner wall should be solid")
	}

	floor := m.TileAt(1, 1, LayerGround)
	if floor == nil || floor.Solid() {
		t.Error("floor should be passable")
	}

	deco := m.TileAt(4, 1, LayerDecoration)
	if deco == nil || deco.Glyph != '*' {
		t.Errorf("decoration tile missing: %+v", deco)
	}
	if m.TileAt(1, 1, LayerDecoration) != nil {
		t.Error("blank decoration cell should be empty")
	}

	if len(m.Spawns) != 2 {
		t.Fatalf("spawns = %d, want 2", len(m.Spawns))
	}
	if m.Spawns[0].Kind != "player" || m.Spawns[0].Facing != core.East {
		t.Errorf("player spawn = %+v", m.Spawns[0])
	}
	if m.Spawns[1].Facing != core.South {
		t.Errorf("default facing should be south, got %v", m.Spawns[1].Facing)
	}
}

func TestLoadMissingMap(t *testing.T) {
	store := NewStore(testFS(nil))

	_, err := store.Load("nowhere")
	if !errors.Is(err, ErrMapNotFound) {
		t.Errorf("expected ErrMapNotFound, got %v", err)
	}
}

func TestLoadCorruptMaps(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "{{{"},
		{"zero dimensions", "width: 0\nheight: 5"},
		{
			"row count mismatch",
			"width: 2\nheight: 2\ntiles:\n  \".\": {glyph: \".\"}\nlayers:\n  ground:\n    - \"..\"",
		},
		{
			"row width mismatch",
			"width: 2\nheight: 1\ntiles:\n  \".\": {glyph: \".\"}\nlayers:\n  ground:\n    - \"...\"",
		},
		{
			"undefined tile char",
			"width: 2\nheight: 1\ntiles:\n  \".\": {glyph: \".\"}\nlayers:\n  ground:\n    - \".X\"",
		},
		{
			"unknown layer name",
			"width: 1\nheight: 1\nlayers:\n  basement:\n    - \".\"",
		},
		{
			"spawn out of bounds",
			"width: 2\nheight: 2\nspawns:\n  - {kind: player, x: 5, y: 0}",
		},
		{
			"bad tile color",
			"width: 1\nheight: 1\ntiles:\n  \".\": {glyph: \".\", color: mauve}",
		},
		{
			"one-way conflicts with passable",
			"width: 1\nheight: 1\ntiles:\n  \"^\": {glyph: \"^\", passable: true, pass: \"south\"}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(testFS(map[string]string{"bad.yaml": tc.body}))
			_, err := store.Load("bad")
			if !errors.Is(err, ErrMapCorrupt) {
				t.Errorf("expected ErrMapCorrupt, got %v", err)
			}
		})
	}
}
