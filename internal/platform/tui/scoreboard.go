package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rollball/internal/registry"
	"github.com/vovakirdan/rollball/internal/storage"
)

// scoreboardLimit caps the runs loaded per course.
const scoreboardLimit = 100

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("up/down", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next course")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev course")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the fastest finishes of one course mode at a time.
type ScoreboardModel struct {
	courses []registry.GameInfo
	current int
	store   *storage.Store
	runs    []storage.RunEntry
	stats   *storage.GameStats

	table  table.Model
	help   help.Model
	keys   scoreboardKeys
	width  int
	height int

	quitting bool
	back     bool
}

// NewScoreboardModel opens the scoreboard on the first registered course.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return newScoreboardModel(registry.List(), store, width, height)
}

func newScoreboardModel(courses []registry.GameInfo, store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		courses: courses,
		store:   store,
		help:    help.New(),
		keys:    newScoreboardKeys(),
		width:   width,
		height:  height,
	}
	m.table = newRunTable(height)
	m.load()
	return m
}

func newRunTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Time", Width: 10},
			{Title: "Hazards", Width: 8},
			{Title: "Finished", Width: 14},
		}),
		table.WithFocused(true),
		// Title, switcher, stats panel, borders and help.
		table.WithHeight(max(height-14, 3)),
	)
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

// load fetches runs and stats for the current course.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.courses) > 0 {
		id := m.courses[m.current].ID
		if runs, err := m.store.BestRuns(id, scoreboardLimit); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.RunsCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			formatDuration(r.Duration),
			fmt.Sprint(r.Segments),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.courses); n > 0 {
		m.current = (m.current + delta + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newRunTable(m.height)
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the switcher, the stats panel and the times table.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	course := "no courses"
	if len(m.courses) > 0 {
		course = fmt.Sprintf("< %s >  %d/%d", m.courses[m.current].Title, m.current+1, len(m.courses))
	}

	var times string
	if len(m.runs) == 0 {
		times = menuFaint.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nReach the End tile to set a time!")
	} else {
		times = m.table.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		menuTitle.Render("BEST TIMES"),
		"",
		course,
		"",
		panelStyle.Render(m.statsPanel()),
		panelStyle.Render(times),
	)
	return lipgloss.PlaceHorizontal(max(m.width, 1), lipgloss.Center, body) +
		"\n" + menuFaint.Render(m.help.View(m.keys))
}

// statsPanel summarises every stored run of the current course.
func (m ScoreboardModel) statsPanel() string {
	if m.stats == nil {
		return menuFaint.Render("runs 0")
	}
	last := "never"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	return fmt.Sprintf("runs %d   best %s   average %s   last %s",
		m.stats.RunsCount, formatDuration(m.stats.BestTime), formatDuration(m.stats.AvgTime), last)
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard full screen.
// It returns true when the user wants the menu back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

// formatDuration prints a run time as seconds with centisecond precision.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
