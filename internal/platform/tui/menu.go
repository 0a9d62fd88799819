package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cge/internal/registry"
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []registry.GameInfo
	cursor         int
	width          int
	height         int
	records        RecordSource
	keys           MenuKeyMap
	help           help.Model
	theme          Theme
	preview        *preview
	quitting       bool
	selected       *registry.GameInfo // Set when user selects a game
	openScoreboard bool               // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. records may be nil.
func NewMenuModel(games []registry.GameInfo, records RecordSource, width, height int) MenuModel {
	h := help.New()
	h.ShowAll = false

	m := MenuModel{
		items:   games,
		width:   width,
		height:  height,
		records: records,
		keys:    DefaultMenuKeyMap(),
		help:    h,
		theme:   DefaultTheme(),
	}
	m.loadPreview()
	return m
}

// WithTheme returns the model drawing with theme.
func (m MenuModel) WithTheme(theme Theme) MenuModel {
	m.theme = theme
	return m
}

// loadPreview starts a preview of the game under the cursor. Games that
// cannot run headless simply have none.
func (m *MenuModel) loadPreview() {
	m.preview = nil
	if len(m.items) == 0 {
		return
	}
	p, err := newPreview(m.items[m.cursor].ID)
	if err != nil {
		return
	}
	m.preview = p
}

// Init starts the preview clock.
func (m MenuModel) Init() tea.Cmd {
	return tickCmd(previewFPS)
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.quitting || m.selected != nil || m.openScoreboard {
			return m, nil
		}
		if m.preview != nil {
			m.preview.step(1.0 / previewFPS)
		}
		return m, tickCmd(previewFPS)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.loadPreview()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.loadPreview()
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("  C G E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a game"), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, item := range m.items {
		cursor, style := "  ", m.theme.MenuItemNormal
		if i == m.cursor {
			cursor, style = "> ", m.theme.MenuItemActive
		}
		list.WriteString(style.Render(cursor + item.Title))
		list.WriteString("\n")
		list.WriteString(m.theme.MenuDescription.Render("    " + m.describe(item)))
		list.WriteString("\n")
	}

	body := list.String()
	if m.preview != nil {
		frame := m.theme.PreviewBorder.Render(m.preview.view(previewWidth, previewHeight))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", frame)
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// describe returns the detail line under a game: its size and best record.
func (m MenuModel) describe(item registry.GameInfo) string {
	g := item.Geometry
	desc := fmt.Sprintf("%dx%d, font %dx%d", g.Width, g.Height, g.FontWidth, g.FontHeight)
	if item.Records == nil || m.records == nil {
		return desc
	}
	best, ok, err := m.records.Best(item.ID, RecordOrder(*item.Records))
	if err != nil || !ok {
		return desc
	}
	return fmt.Sprintf("%s, best %s %s", desc, strings.ToLower(item.Records.Label), FormatRecord(*item.Records, best))
}

// Selected returns the selected game, or nil if none selected.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Width, Height   int
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu over the registered games and returns the selection.
func RunMenu(records RecordSource, theme Theme, width, height int) (MenuResult, error) {
	model := NewMenuModel(registry.List(), records, width, height).WithTheme(theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().ID
	} else {
		result.Quit = true
	}

	return result, nil
}
