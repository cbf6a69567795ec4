package core

// Direction is a cardinal facing/movement direction.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name to a Direction.
// Unknown names default to South (the conventional sprite-facing default).
func ParseDirection(s string) Direction {
	switch s {
	case "north":
		return North
	case "south":
		return South
	case "east":
		return East
	case "west":
		return West
	default:
		return South
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Delta returns the tile-cell step for this direction.
// North is negative y, matching screen coordinates.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}
