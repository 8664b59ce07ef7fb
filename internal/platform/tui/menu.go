package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/registry"
	"github.com/vovakirdan/rollball/internal/storage"
)

// MenuItem is one course mode in the picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   string // empty until the course has been finished
	Runs   int
}

var (
	menuTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuFaint    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// MenuModel is the Bubble Tea model for the course mode picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   *KeyMapper

	quitting   bool
	scoreboard bool
	selected   *MenuItem
}

// NewMenuModel lists every registered course mode with its stored best time.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return newMenuModel(registry.List(), store, cfg)
}

func newMenuModel(games []registry.GameInfo, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		// A broken store only costs the best-time column.
		stats, _ = store.GetAllGamesStats()
	}

	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if s, ok := stats[g.ID]; ok && s.RunsCount > 0 {
			items[i].Best = formatDuration(s.BestTime)
			items[i].Runs = s.RunsCount
		}
	}
	return MenuModel{items: items, config: cfg, keys: NewKeyMapper()}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
		case MenuActionScoreboard:
			m.scoreboard = true
			return m, tea.Quit
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the course list with a best-time column.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleW := 0
	for _, it := range m.items {
		titleW = max(titleW, len(it.Title))
	}

	lines := []string{
		menuTitle.Render("R O L L   T H E   B A L L"),
		"",
		menuFaint.Render("Select a course"),
		"",
	}
	for i, it := range m.items {
		best := it.Best
		if best == "" {
			best = "--"
		}
		row := fmt.Sprintf(" %-*s  %9s ", titleW, it.Title, best)
		if i == m.cursor {
			row = menuSelected.Render(row)
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", menuFaint.Render(m.detail()), "",
		menuFaint.Render("up/down move  enter roll  tab times  q quit"))

	w := max(m.config.ScreenW, 1)
	return "\n" + lipgloss.PlaceHorizontal(w, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...)) + "\n"
}

// detail describes the highlighted course.
func (m MenuModel) detail() string {
	if len(m.items) == 0 {
		return "no courses registered"
	}
	it := m.items[m.cursor]
	switch it.Runs {
	case 0:
		return "not finished yet"
	case 1:
		return "1 finished run"
	default:
		return fmt.Sprintf("%d finished runs", it.Runs)
	}
}

// Selected returns the chosen item, or nil before a selection.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the best times.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config, WantsScoreboard: m.scoreboard}
	switch {
	case m.scoreboard:
	case m.selected != nil && !m.quitting:
		res.GameID = m.selected.GameID
	default:
		res.Quit = true
	}
	return res
}

// RunMenu runs the picker full screen and returns the choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
