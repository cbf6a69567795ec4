package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/loop"
	"github.com/quellen/wander/internal/registry"
	"github.com/quellen/wander/internal/storage"
)

// defaultSaveSlot is where quick saves and autosaves land.
const defaultSaveSlot = 1

// Model is the Bubble Tea model for playing a quest.
type Model struct {
	quest      registry.Quest
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	sched      *loop.Scheduler
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	questState core.QuestState
	lastTick   time.Time
	resumeSlot int // 0 means start fresh
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given quest.
// If resumeSlot is nonzero, the quest is restored from that save slot.
func NewModel(quest registry.Quest, store *storage.Store, cfg core.RuntimeConfig, resumeSlot int) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		quest:      quest,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		sched:      loop.NewScheduler(cfg.TickRate),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		resumeSlot: resumeSlot,
	}
}

// Init initializes the model and starts the quest.
func (m Model) Init() tea.Cmd {
	if err := m.quest.Reset(m.config); err != nil {
		return tea.Quit
	}
	if m.resumeSlot != 0 && m.store != nil {
		if p, err := m.store.LoadProgress(m.quest.ID(), m.resumeSlot); err == nil {
			//nolint:errcheck // A failed restore keeps the fresh start
			m.quest.Restore(p)
		}
	}

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveProgress()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveProgress()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The quest's camera
// follows the player, so the simulation continues untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick converts the elapsed frame time into simulation ticks.
// All granted ticks see the same input frame; a key press is never
// split across a catch-up burst.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.sched.TickDuration()
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	granted := m.sched.Advance(elapsed)
	for i := 0; i < granted; i++ {
		result := m.quest.Step(m.inputFrame)
		m.questState = result.State
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveProgress writes the current position to the quick-save slot.
func (m *Model) saveProgress() {
	if m.store == nil || m.questState.Completed {
		return
	}
	//nolint:errcheck // Best-effort save, play continues regardless
	m.store.SaveProgress(m.quest.ID(), defaultSaveSlot, m.quest.Progress())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render quest to screen buffer
	m.quest.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(quest registry.Quest, store *storage.Store, cfg core.RuntimeConfig, resumeSlot int) error {
	model := NewModel(quest, store, cfg, resumeSlot)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
