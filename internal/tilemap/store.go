package tilemap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quellen/wander/internal/core"
)

// Map load errors. Callers recover by keeping the previously active map.
var (
	ErrMapNotFound = errors.New("tilemap: map not found")
	ErrMapCorrupt  = errors.New("tilemap: map data corrupt")
)

// Store loads maps by id from a file system (typically an embedded FS).
// Loading has no side effects on any previously returned map.
type Store struct {
	fsys fs.FS
}

// NewStore creates a map store reading from the given file system.
// Map id "overworld" resolves to the file "overworld.yaml".
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// mapFile is the on-disk YAML shape of a map.
type mapFile struct {
	ID              string              `yaml:"id"`
	Width           int                 `yaml:"width"`
	Height          int                 `yaml:"height"`
	DefaultPassable *bool               `yaml:"default_passable"`
	Tiles           map[string]tileDef  `yaml:"tiles"`
	Layers          map[string][]string `yaml:"layers"`
	Spawns          []spawnDef          `yaml:"spawns"`
}

type tileDef struct {
	Glyph    string `yaml:"glyph"`
	Color    string `yaml:"color"`
	Passable *bool  `yaml:"passable"`
	Pass     string `yaml:"pass"` // comma-separated entry directions for one-way tiles
	Trigger  string `yaml:"trigger"`
}

type spawnDef struct {
	Kind   string `yaml:"kind"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

// Load reads, parses, and validates the map with the given id.
// Returns ErrMapNotFound if no such file exists and ErrMapCorrupt
// (wrapped with detail) if the data is malformed.
func (s *Store) Load(mapID string) (*TileMap, error) {
	data, err := fs.ReadFile(s.fsys, mapID+".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMapNotFound, mapID)
	}

	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMapCorrupt, mapID, err)
	}

	return buildMap(mapID, &mf)
}

// buildMap validates the parsed file and assembles an immutable TileMap.
func buildMap(mapID string, mf *mapFile) (*TileMap, error) {
	if mf.Width <= 0 || mf.Height <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid dimensions %dx%d", ErrMapCorrupt, mapID, mf.Width, mf.Height)
	}

	defs := make(map[rune]*Tile, len(mf.Tiles))
	for key, td := range mf.Tiles {
		r := []rune(key)
		if len(r) != 1 {
			return nil, fmt.Errorf("%w: %s: tile key %q must be a single character", ErrMapCorrupt, mapID, key)
		}
		tile, err := buildTile(td)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: tile %q: %v", ErrMapCorrupt, mapID, key, err)
		}
		defs[r[0]] = tile
	}

	m := &TileMap{
		ID:              mapID,
		Width:           mf.Width,
		Height:          mf.Height,
		DefaultPassable: mf.DefaultPassable == nil || *mf.DefaultPassable,
	}
	if mf.ID != "" {
		m.ID = mf.ID
	}

	for l := LayerID(0); l < layerCount; l++ {
		m.layers[l] = make([]*Tile, mf.Width*mf.Height)
		rows, ok := mf.Layers[l.String()]
		if !ok {
			continue // absent layers are fully empty
		}
		if len(rows) != mf.Height {
			return nil, fmt.Errorf("%w: %s: layer %s has %d rows, want %d", ErrMapCorrupt, mapID, l, len(rows), mf.Height)
		}
		for y, row := range rows {
			cells := []rune(row)
			if len(cells) != mf.Width {
				return nil, fmt.Errorf("%w: %s: layer %s row %d has %d cells, want %d", ErrMapCorrupt, mapID, l, y, len(cells), mf.Width)
			}
			for x, r := range cells {
				if r == ' ' {
					continue // blank means no tile on this layer
				}
				tile, ok := defs[r]
				if !ok {
					return nil, fmt.Errorf("%w: %s: layer %s row %d: undefined tile %q", ErrMapCorrupt, mapID, l, y, r)
				}
				m.layers[l][y*mf.Width+x] = tile
			}
		}
	}
	for name := range mf.Layers {
		if !knownLayer(name) {
			return nil, fmt.Errorf("%w: %s: unknown layer %q", ErrMapCorrupt, mapID, name)
		}
	}

	for _, sd := range mf.Spawns {
		if !m.InBounds(sd.X, sd.Y) {
			return nil, fmt.Errorf("%w: %s: spawn %q at (%d,%d) out of bounds", ErrMapCorrupt, mapID, sd.Kind, sd.X, sd.Y)
		}
		m.Spawns = append(m.Spawns, Spawn{
			Kind:   sd.Kind,
			X:      sd.X,
			Y:      sd.Y,
			Facing: core.ParseDirection(sd.Facing),
		})
	}

	return m, nil
}

// buildTile converts a tile definition to an immutable Tile.
func buildTile(td tileDef) (*Tile, error) {
	glyph := []rune(td.Glyph)
	if len(glyph) != 1 {
		return nil, fmt.Errorf("glyph %q must be a single character", td.Glyph)
	}

	pass := PassAll
	if td.Passable != nil && !*td.Passable {
		pass = PassNone
	}
	if td.Pass != "" {
		if td.Passable != nil {
			return nil, fmt.Errorf("cannot combine passable with pass")
		}
		pass = PassNone
		for _, name := range strings.Split(td.Pass, ",") {
			switch strings.TrimSpace(name) {
			case "north":
				pass |= PassNorth
			case "south":
				pass |= PassSouth
			case "east":
				pass |= PassEast
			case "west":
				pass |= PassWest
			default:
				return nil, fmt.Errorf("unknown direction %q", name)
			}
		}
	}

	color, err := parseColor(td.Color)
	if err != nil {
		return nil, err
	}

	return &Tile{
		Glyph:   glyph[0],
		Color:   color,
		Pass:    pass,
		Trigger: td.Trigger,
	}, nil
}

// knownLayer reports whether a layer name from a map file is valid.
func knownLayer(name string) bool {
	for l := LayerID(0); l < layerCount; l++ {
		if l.String() == name {
			return true
		}
	}
	return false
}

// parseColor maps a map-file color name to a core.Color.
func parseColor(name string) (core.Color, error) {
	switch name {
	case "", "default":
		return core.ColorDefault, nil
	case "red":
		return core.ColorRed, nil
	case "green":
		return core.ColorGreen, nil
	case "yellow":
		return core.ColorYellow, nil
	case "blue":
		return core.ColorBlue, nil
	case "magenta":
		return core.ColorMagenta, nil
	case "cyan":
		return core.ColorCyan, nil
	case "white":
		return core.ColorWhite, nil
	case "bright-red":
		return core.ColorBrightRed, nil
	case "bright-green":
		return core.ColorBrightGreen, nil
	case "bright-yellow":
		return core.ColorBrightYellow, nil
	case "bright-blue":
		return core.ColorBrightBlue, nil
	case "bright-magenta":
		return core.ColorBrightMagenta, nil
	case "bright-cyan":
		return core.ColorBrightCyan, nil
	case "bright-white":
		return core.ColorBrightWhite, nil
	case "orange":
		return core.ColorOrange, nil
	case "gray":
		return core.ColorGray, nil
	default:
		return core.ColorDefault, fmt.Errorf("unknown color %q", name)
	}
}
