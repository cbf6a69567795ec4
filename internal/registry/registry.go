// Package registry provides a global registry for quest factories.
// Quests register themselves in init() functions, allowing the
// platform to discover and instantiate them without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quellen/wander/internal/core"
)

// Quest is the core interface every playable quest must implement.
// Quests contain pure simulation logic with no external dependencies
// (especially no Bubble Tea). The platform handles input mapping,
// timing, and terminal rendering.
type Quest interface {
	// ID returns a unique identifier for this quest (e.g., "hollow").
	// Used for CLI commands and save storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the quest state, loading its
	// starting map. The RuntimeConfig provides screen dimensions and
	// the RNG seed.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current quest state into the provided screen
	// buffer. The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current quest state (active map, paused,
	// completed).
	State() core.QuestState

	// Progress returns a serializable save point for the current
	// position.
	Progress() core.Progress

	// Restore resumes the quest from a previously saved point.
	Restore(p core.Progress) error
}

// QuestInfo contains metadata about a registered quest.
type QuestInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a quest.
type Factory func() Quest

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a quest factory to the registry.
// Typically called from a quest's init() function.
// Panics if a quest with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: quest %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	q := f()
	titles[id] = q.Title()
}

// List returns information about all registered quests, sorted by ID.
func List() []QuestInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]QuestInfo, 0, len(factories))
	for id := range factories {
		result = append(result, QuestInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new quest by its ID.
// Returns an error if the quest ID is not registered.
func Create(id string) (Quest, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown quest %q", id)
	}

	return f(), nil
}

// Exists checks if a quest with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
