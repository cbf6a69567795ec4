// Package config provides YAML-based engine configuration loading for
// the wander platform.
package config

// EngineConfig contains all runtime tuning for the simulation and
// renderer.
type EngineConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Camera     CameraConfig     `yaml:"camera"`
	Input      InputConfig      `yaml:"input"`
}

// SimulationConfig defines the fixed-timestep parameters.
type SimulationConfig struct {
	TickRate    int `yaml:"tick_rate"`    // Simulation ticks per second
	MaxCatchUp  int `yaml:"max_catch_up"` // Ticks allowed per frame after a stall
	PlayerSpeed int `yaml:"player_speed"` // World units per tick
}

// CameraConfig defines the visible viewport in tiles.
type CameraConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InputConfig defines key repeat behavior.
type InputConfig struct {
	HoldToMove bool `yaml:"hold_to_move"`
}

// Validate clamps out-of-range values to sane defaults so a partial
// user config never produces a stuck simulation.
func (c *EngineConfig) Validate() {
	if c.Simulation.TickRate < 1 || c.Simulation.TickRate > 240 {
		c.Simulation.TickRate = DefaultEngineConfig().Simulation.TickRate
	}
	if c.Simulation.MaxCatchUp < 1 {
		c.Simulation.MaxCatchUp = DefaultEngineConfig().Simulation.MaxCatchUp
	}
	if c.Simulation.PlayerSpeed < 1 {
		c.Simulation.PlayerSpeed = DefaultEngineConfig().Simulation.PlayerSpeed
	}
	if c.Camera.Width < 8 {
		c.Camera.Width = DefaultEngineConfig().Camera.Width
	}
	if c.Camera.Height < 6 {
		c.Camera.Height = DefaultEngineConfig().Camera.Height
	}
}
