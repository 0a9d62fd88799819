package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cge/internal/registry"
	"github.com/vovakirdan/cge/internal/storage"
)

// Records board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	maxRecords         = 100 // Max records to load
)

// ScoreboardModel is the Bubble Tea model for the records board.
type ScoreboardModel struct {
	games       []registry.GameInfo // Games that keep records
	gameCursor  int
	records     RecordSource
	rows        []storage.Record
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a records board over the given games.
// Games without a record kind are left out.
func NewScoreboardModel(games []registry.GameInfo, records RecordSource, width, height int) ScoreboardModel {
	kept := make([]registry.GameInfo, 0, len(games))
	for _, g := range games {
		if g.Records != nil {
			kept = append(kept, g)
		}
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:       kept,
		records:     records,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadRecords()
	}
	return m
}

// WithTheme returns the board drawing with theme.
func (m ScoreboardModel) WithTheme(theme Theme) ScoreboardModel {
	m.theme = theme
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// current returns the game under the cursor.
func (m *ScoreboardModel) current() registry.GameInfo {
	return m.games[m.gameCursor]
}

// createTable creates a table whose value column is named after the
// current game's record kind.
func (m *ScoreboardModel) createTable() table.Model {
	label := "Record"
	if len(m.games) > 0 {
		label = m.current().Records.Label
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: label, Width: 10},
		{Title: "Date", Width: 18},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 40 {
		columns[1].Width = 12
		columns[2].Width = min(tableWidth-22, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)
	styles := table.DefaultStyles()
	styles.Header = m.theme.TableHeader
	styles.Selected = m.theme.TableSelected
	t.SetStyles(styles)
	return t
}

// loadRecords loads the best records of the current game.
func (m *ScoreboardModel) loadRecords() {
	m.rows, m.loadErr = nil, nil
	if m.records != nil {
		g := m.current()
		m.rows, m.loadErr = m.records.TopRecords(g.ID, RecordOrder(*g.Records), maxRecords)
	}
	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows fills the table with the loaded records.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	if len(m.games) > 0 {
		kind := *m.current().Records
		for i, r := range m.rows {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				FormatRecord(kind, r.Value),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the game cursor by delta, wrapping around, and loads its records.
func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.gameCursor = ((m.gameCursor+delta)%n + n) % n
	m.loadRecords()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			m.cycle(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			m.cycle(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECORDS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("RECORDS - %s", m.current().Title)
	}
	b.WriteString(m.theme.BoardTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	switch {
	case len(m.games) == 0:
		b.WriteString(m.theme.BoardEmpty.Render("No game keeps records."))
	case m.showSidebar:
		b.WriteString(m.renderWideLayout())
	default:
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for game selection.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			sidebar.WriteString(m.theme.SidebarActive.Render("> " + name))
		} else {
			sidebar.WriteString("  " + name)
		}
		sidebar.WriteByte('\n')
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Sidebar.Render(sidebar.String()),
		"  ",
		m.theme.Panel.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the board with game tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		if i == m.gameCursor {
			tabs[i] = m.theme.TabActive.Render(name)
		} else {
			tabs[i] = m.theme.TabNormal.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current().Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Panel.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.loadErr != nil {
		return m.theme.BoardEmpty.Render("Cannot read records:\n" + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		return m.theme.BoardEmpty.Render("No records yet.\nPlay a game to set one!")
	}
	return m.table.View()
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the records board over the registered games.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(records RecordSource, theme Theme, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(registry.List(), records, width, height).WithTheme(theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
