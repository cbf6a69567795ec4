package tilemap

import (
	"testing"

	"github.com/quellen/wander/internal/core"
)

func loadTestMap(t *testing.T) *TileMap {
	t.Helper()
	store := NewStore(testFS(map[string]string{"courtyard.yaml": testMap}))
	m, err := store.Load("courtyard")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return m
}

func TestCellPassable(t *testing.T) {
	m := loadTestMap(t)

	tests := []struct {
		name     string
		x, y     int
		dir      core.Direction
		expected bool
	}{
		{"wall blocks all", 0, 0, core.East, false},
		{"floor allows all", 1, 1, core.North, true},
		{"one-way ledge allows south entry", 2, 1, core.South, true},
		{"one-way ledge blocks north entry", 2, 1, core.North, false},
		{"one-way ledge blocks east entry", 2, 1, core.East, false},
		{"trigger tile is passable", 3, 2, core.West, true},
		{"off-map is impassable", -1, 0, core.West, false},
		{"past edge is impassable", 6, 2, core.East, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.CellPassable(tc.x, tc.y, tc.dir); got != tc.expected {
				t.Errorf("CellPassable(%d,%d,%v) = %v, expected %v", tc.x, tc.y, tc.dir, got, tc.expected)
			}
		})
	}
}

func TestPassableMostRestrictiveLayerWins(t *testing.T) {
	body := `
width: 2
height: 1
tiles:
  ".": {glyph: "."}
  "#": {glyph: "#", passable: false}
layers:
  ground:
    - ".."
  decoration:
    - " #"
`
	store := NewStore(testFS(map[string]string{"m.yaml": body}))
	m, err := store.Load("m")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !m.CellPassable(0, 0, core.East) {
		t.Error("cell with only passable ground should be passable")
	}
	if m.CellPassable(1, 0, core.East) {
		t.Error("solid decoration tile must override passable ground")
	}
}

func TestPassableRectSpansCells(t *testing.T) {
	m := loadTestMap(t)

	// A one-tile box fully inside floor cell (1,1)
	inside := core.NewBox(core.TileToUnit(1), core.TileToUnit(1), core.UnitsPerTile, core.UnitsPerTile)
	if !m.Passable(inside, core.East) {
		t.Error("box on open floor should be passable")
	}

	// Shift the box half a tile left so it straddles the wall column
	straddle := inside.Translate(core.Vec{X: -core.UnitsPerTile / 2})
	if m.Passable(straddle, core.West) {
		t.Error("box overlapping the wall column must be impassable")
	}
}

func TestDefaultPassability(t *testing.T) {
	body := `
width: 2
height: 1
default_passable: false
`
	store := NewStore(testFS(map[string]string{"void.yaml": body}))
	m, err := store.Load("void")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if m.CellPassable(0, 0, core.East) {
		t.Error("empty cell with default_passable false must block")
	}
}

func TestTriggersIn(t *testing.T) {
	m := loadTestMap(t)

	door := core.NewBox(core.TileToUnit(3), core.TileToUnit(2), core.UnitsPerTile, core.UnitsPerTile)
	hits := m.TriggersIn(door)
	if len(hits) != 1 {
		t.Fatalf("TriggersIn = %d hits, want 1", len(hits))
	}
	if hits[0].Trigger != "warp:keep" || hits[0].X != 3 || hits[0].Y != 2 {
		t.Errorf("hit = %+v", hits[0])
	}

	empty := core.NewBox(core.TileToUnit(1), core.TileToUnit(1), core.UnitsPerTile, core.UnitsPerTile)
	if hits := m.TriggersIn(empty); len(hits) != 0 {
		t.Errorf("floor cell should have no triggers, got %d", len(hits))
	}
}
