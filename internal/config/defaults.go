package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Simulation: SimulationConfig{
			TickRate:    60,
			MaxCatchUp:  8,
			PlayerSpeed: 125,
		},
		Camera: CameraConfig{
			Width:  40,
			Height: 20,
		},
		Input: InputConfig{
			HoldToMove: true,
		},
	}
}
