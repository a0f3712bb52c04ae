package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minutegames/gauntlet/internal/storage"
)

// maxSessions caps how many past sessions the browser loads.
const maxSessions = 100

// ResultsKeyMap defines the key bindings for the results browser.
type ResultsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "round detail"),
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

// ResultsModel is the Bubble Tea model for browsing past session results.
// It has two levels: the session list, and the per-round detail of one
// selected session.
type ResultsModel struct {
	store    *storage.Store
	sessions []storage.SessionEntry
	table    table.Model
	detail   bool
	detailID int64
	help     help.Model
	keys     ResultsKeyMap
	width    int
	height   int
	quitting bool
}

// NewResultsModel creates a results browser over the given store.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	keys := DefaultResultsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		store:  store,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}

	m.loadSessions()
	return m
}

func tableStyles() table.Styles {
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
	return s
}

// loadSessions fills the table with the session list.
func (m *ResultsModel) loadSessions() {
	m.detail = false

	if m.store != nil {
		sessions, err := m.store.RecentSessions(maxSessions)
		if err == nil {
			m.sessions = sessions
		} else {
			m.sessions = nil
		}
	}

	columns := []table.Column{
		{Title: "Date", Width: 18},
		{Title: "Rounds", Width: 8},
		{Title: "Average", Width: 9},
		{Title: "Grade", Width: 6},
		{Title: "Status", Width: 10},
	}

	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		status := "complete"
		if s.Abandoned {
			status = "abandoned"
		}
		rows[i] = table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d/%d", s.RoundsPlayed, s.RoundsTotal),
			fmt.Sprintf("%.2f", s.Average),
			s.Grade,
			status,
		}
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)
	m.table.SetStyles(tableStyles())
}

// loadDetail fills the table with the rounds of one session.
func (m *ResultsModel) loadDetail(id int64) {
	m.detail = true
	m.detailID = id

	var rounds []storage.RoundEntry
	if m.store != nil {
		if got, err := m.store.SessionRounds(id); err == nil {
			rounds = got
		}
	}

	columns := []table.Column{
		{Title: "Round", Width: 7},
		{Title: "Game", Width: 14},
		{Title: "Score", Width: 12},
		{Title: "Norm", Width: 7},
		{Title: "Grade", Width: 6},
	}

	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Index+1),
			r.ModuleID,
			fmt.Sprintf("%d/%d", r.RawScore, r.MaxScore),
			fmt.Sprintf("%.2f", r.Normalized),
			r.Grade,
		}
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)
	m.table.SetStyles(tableStyles())
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.detail {
				m.loadSessions()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if !m.detail && len(m.sessions) > 0 {
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.sessions) {
					m.loadDetail(m.sessions[idx].ID)
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.detail {
			m.loadDetail(m.detailID)
		} else {
			m.loadSessions()
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results browser.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "PAST SESSIONS"
	if m.detail {
		title = fmt.Sprintf("SESSION #%d ROUNDS", m.detailID)
	}
	b.WriteString(summaryTitleStyle.Render(title))
	b.WriteString("\n\n")

	if !m.detail && len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No sessions recorded yet.\nPlay a gauntlet to get on the board!"))
	} else {
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(borderStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunResults runs the results browser screen.
func RunResults(store *storage.Store, width, height int) error {
	model := NewResultsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
