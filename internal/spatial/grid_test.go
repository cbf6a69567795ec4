package spatial

import (
	"testing"

	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/entity"
)

func tileBox(x, y int) core.Box {
	return core.NewBox(core.TileToUnit(x), core.TileToUnit(y), core.UnitsPerTile, core.UnitsPerTile)
}

func TestQueryOverlapping(t *testing.T) {
	g := NewGrid()
	g.Insert(1, tileBox(0, 0))
	g.Insert(2, tileBox(5, 5))
	g.Insert(3, tileBox(5, 6))

	got := g.Query(core.NewBox(core.TileToUnit(5), core.TileToUnit(5), core.UnitsPerTile, 2*core.UnitsPerTile))
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Query = %v, expected [2 3]", got)
	}

	if got := g.Query(tileBox(9, 9)); len(got) != 0 {
		t.Errorf("empty region Query = %v", got)
	}
}

func TestQueryIsSortedAndDeduplicated(t *testing.T) {
	g := NewGrid()
	// Straddles four cells, so it sits in four buckets
	g.Insert(7, core.NewBox(500, 500, core.UnitsPerTile, core.UnitsPerTile))
	g.Insert(2, tileBox(0, 0))

	got := g.Query(core.NewBox(0, 0, 2*core.UnitsPerTile, 2*core.UnitsPerTile))
	if len(got) != 2 || got[0] != 2 || got[1] != 7 {
		t.Errorf("Query = %v, expected deduplicated sorted [2 7]", got)
	}
}

func TestQueryEdgeAdjacency(t *testing.T) {
	g := NewGrid()
	g.Insert(1, tileBox(3, 3))

	// Box flush against the entity's left edge must not report overlap
	adjacent := core.NewBox(core.TileToUnit(2), core.TileToUnit(3), core.UnitsPerTile, core.UnitsPerTile)
	if got := g.Query(adjacent); len(got) != 0 {
		t.Errorf("edge-adjacent Query = %v, expected none", got)
	}

	overlapping := adjacent.Translate(core.Vec{X: 1})
	if got := g.Query(overlapping); len(got) != 1 {
		t.Errorf("one-unit overlap Query = %v, expected [1]", got)
	}
}

func TestUpdateMovesEntity(t *testing.T) {
	g := NewGrid()
	g.Insert(1, tileBox(0, 0))

	g.Update(1, tileBox(8, 8))

	if got := g.Query(tileBox(0, 0)); len(got) != 0 {
		t.Errorf("old position still indexed: %v", got)
	}
	if got := g.Query(tileBox(8, 8)); len(got) != 1 || got[0] != 1 {
		t.Errorf("new position Query = %v", got)
	}
}

func TestUpdateWithinSameCellSpan(t *testing.T) {
	g := NewGrid()
	g.Insert(1, core.NewBox(0, 0, 500, 500))

	// Sub-cell move: same bucket, but the box must be current
	g.Update(1, core.NewBox(400, 0, 500, 500))

	if got := g.Query(core.NewBox(850, 0, 100, 100)); len(got) != 1 {
		t.Errorf("Query after sub-cell move = %v, expected [1]", got)
	}
	if got := g.Query(core.NewBox(0, 0, 300, 300)); len(got) != 0 {
		t.Errorf("Query of vacated area = %v, expected none", got)
	}
}

func TestRemove(t *testing.T) {
	g := NewGrid()
	g.Insert(1, tileBox(2, 2))
	g.Remove(1)
	g.Remove(entity.ID(99)) // unknown id is a no-op

	if g.Len() != 0 {
		t.Errorf("Len = %d after removal", g.Len())
	}
	if got := g.Query(tileBox(2, 2)); len(got) != 0 {
		t.Errorf("Query after Remove = %v", got)
	}
}

func TestReset(t *testing.T) {
	g := NewGrid()
	for i := 0; i < 5; i++ {
		g.Insert(entity.ID(i+1), tileBox(i, i))
	}

	g.Reset()

	if g.Len() != 0 {
		t.Errorf("Len = %d after Reset", g.Len())
	}
}
