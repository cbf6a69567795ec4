package core

// RuntimeConfig contains configuration passed to quests at initialization.
// Quests use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// QuestState represents the externally visible state of a running quest.
// Returned by Quest.State() to communicate status to the platform.
type QuestState struct {
	MapID     string // Active map
	Paused    bool   // Whether the simulation is paused
	Completed bool   // Whether the quest has ended
}

// StepResult is returned by Quest.Step() after each simulation tick.
type StepResult struct {
	State QuestState
}

// Progress is the persistable position within a quest, written to and
// restored from the save store.
type Progress struct {
	MapID      string
	PlayerTile [2]int // Tile cell the player occupies
	Facing     string // north/south/east/west
	PlayTicks  uint64 // Total simulation ticks played
}
