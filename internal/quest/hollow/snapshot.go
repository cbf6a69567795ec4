package hollow

// Snapshot captures the observable quest state for determinism testing.
type Snapshot struct {
	Tick      uint64
	MapID     string
	PlayerX   int // Tile coordinates
	PlayerY   int
	Facing    string
	Coins     int
	Slain     int
	Monsters  int
	Paused    bool
	Completed bool
}

// Snapshot returns the current quest snapshot for determinism
// verification.
func (q *Quest) Snapshot() Snapshot {
	s := Snapshot{
		Coins:     q.coins,
		Slain:     q.slain,
		Paused:    q.paused,
		Completed: q.completed,
	}
	if q.w == nil {
		return s
	}
	s.Tick = q.w.Tick()
	if m := q.w.Map(); m != nil {
		s.MapID = m.ID
	}
	s.Monsters = len(q.patrol)
	p := q.Progress()
	s.PlayerX = p.PlayerTile[0]
	s.PlayerY = p.PlayerTile[1]
	s.Facing = p.Facing
	return s
}
