package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quellen/wander/internal/registry"
	"github.com/quellen/wander/internal/storage"
)

// Saves view layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show quest list sidebar
	sidebarWidth       = 20 // Width of quest list sidebar
)

// SavesKeyMap defines the key bindings for the saves view.
type SavesKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Delete    key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextQuest key.Binding
	PrevQuest key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextQuest, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextQuest, k.PrevQuest},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultSavesKeyMap returns default key bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete save"),
		),
		NextQuest: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next quest"),
		),
		PrevQuest: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev quest"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SavesModel is the Bubble Tea model for the save-slot browser.
type SavesModel struct {
	quests      []registry.QuestInfo
	questCursor int
	store       *storage.Store
	saves       []storage.SaveEntry
	table       table.Model
	help        help.Model
	keys        SavesKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewSavesModel creates a new saves model.
func NewSavesModel(store *storage.Store, width, height int) SavesModel {
	keys := DefaultSavesKeyMap()
	h := help.New()
	h.ShowAll = false

	m := SavesModel{
		quests:      registry.List(),
		questCursor: 0,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	// Load saves for first quest
	if len(m.quests) > 0 {
		m.loadSaves(m.quests[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Slot", Width: 5},
		{Title: "Map", Width: 12},
		{Title: "Position", Width: 10},
		{Title: "Played", Width: 8},
		{Title: "Updated", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSaves loads save slots for the given quest ID.
func (m *SavesModel) loadSaves(questID string) {
	if m.store == nil {
		m.saves = nil
		m.updateTableRows()
		return
	}

	saves, err := m.store.ListSaves(questID)
	if err != nil {
		m.saves = nil
	} else {
		m.saves = saves
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current saves.
func (m *SavesModel) updateTableRows() {
	rows := make([]table.Row, len(m.saves))
	for i, s := range m.saves {
		played := time.Duration(s.Progress.PlayTicks) * time.Second / 60
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.Slot),
			s.Progress.MapID,
			fmt.Sprintf("(%d,%d)", s.Progress.PlayerTile[0], s.Progress.PlayerTile[1]),
			played.Truncate(time.Second).String(),
			s.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the saves model.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves view.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextQuest):
			if len(m.quests) > 0 {
				m.questCursor = (m.questCursor + 1) % len(m.quests)
				m.loadSaves(m.quests[m.questCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevQuest):
			if len(m.quests) > 0 {
				m.questCursor--
				if m.questCursor < 0 {
					m.questCursor = len(m.quests) - 1
				}
				m.loadSaves(m.quests[m.questCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the save slot under the table cursor.
func (m *SavesModel) deleteSelected() {
	if m.store == nil || len(m.saves) == 0 || len(m.quests) == 0 {
		return
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.saves) {
		return
	}
	questID := m.quests[m.questCursor].ID
	//nolint:errcheck // Best-effort delete, the listing refresh shows the truth
	m.store.DeleteSave(questID, m.saves[idx].Slot)
	m.loadSaves(questID)
}

// View renders the saves view.
func (m SavesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SAVED JOURNEYS"
	if len(m.quests) > 0 {
		title = fmt.Sprintf("SAVED JOURNEYS - %s", m.quests[m.questCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the saves view with a quest sidebar.
func (m SavesModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Quests\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, q := range m.quests {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.questCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := q.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the saves view with quest tabs above the table.
func (m SavesModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.quests))
	for i, q := range m.quests {
		shortName := q.Title
		if len(shortName) > 10 {
			shortName = shortName[:9] + "."
		}
		if i == m.questCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 && len(m.quests) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.quests[m.questCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m SavesModel) renderTableContent() string {
	if len(m.saves) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No saved journeys yet.\nPress Ctrl+S in a quest to save your position.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SavesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SavesModel) IsQuitting() bool {
	return m.quitting
}

// RunSaves runs the save browser screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunSaves(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewSavesModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SavesModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
