package core

import "testing"

func TestUnitTile(t *testing.T) {
	tests := []struct {
		name     string
		unit     Unit
		expected int
	}{
		{"origin", 0, 0},
		{"inside first tile", 999, 0},
		{"tile boundary", 1000, 1},
		{"mid tile", 4500, 4},
		{"negative inside tile", -1, -1},
		{"negative boundary", -1000, -1},
		{"negative past boundary", -1001, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.unit.Tile(); got != tc.expected {
				t.Errorf("Unit(%d).Tile() = %d, expected %d", tc.unit, got, tc.expected)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := NewBox(0, 0, 1000, 1000)

	if a.Overlaps(NewBox(1000, 0, 1000, 1000)) {
		t.Error("edge-adjacent boxes must not overlap")
	}
	if !a.Overlaps(NewBox(999, 0, 1000, 1000)) {
		t.Error("one-unit overlap must be detected")
	}
	if a.Overlaps(NewBox(0, 1000, 1000, 1000)) {
		t.Error("vertically adjacent boxes must not overlap")
	}
}

func TestBoxTileSpan(t *testing.T) {
	tests := []struct {
		name     string
		box      Box
		expected Rect
	}{
		{
			name:     "aligned single tile",
			box:      NewBox(4000, 5000, 1000, 1000),
			expected: NewRect(4, 5, 1, 1),
		},
		{
			name:     "straddles two columns",
			box:      NewBox(4500, 5000, 1000, 1000),
			expected: NewRect(4, 5, 2, 1),
		},
		{
			name:     "flush right edge stays in cell",
			box:      NewBox(4000, 0, 1000, 500),
			expected: NewRect(4, 0, 1, 1),
		},
		{
			name:     "large box",
			box:      NewBox(0, 0, 3000, 2500),
			expected: NewRect(0, 0, 3, 3),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.box.TileSpan(); got != tc.expected {
				t.Errorf("TileSpan() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}
