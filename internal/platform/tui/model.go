package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/session"
	"github.com/minutegames/gauntlet/internal/storage"
)

// Model is the Bubble Tea model that runs one gauntlet session. It owns the
// two clocks the session core needs (frames and seconds) and the screen
// buffer the active round renders into. The controller must be started
// before the program runs.
type Model struct {
	controller *session.Controller
	screen     *core.Screen
	store      *storage.Store
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	config     core.RuntimeConfig

	width    int
	height   int
	quitting bool
	saved    bool
}

// hudRows is the vertical space reserved above and below the game area.
const hudRows = 2

// NewModel creates a Bubble Tea model for a started session controller.
func NewModel(controller *session.Controller, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		controller: controller,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		config:     cfg,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH + hudRows,
	}
}

// Init starts the frame and second clocks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.config.TickRate), secondCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()

	case SecondMsg:
		m.controller.TickSecond()
		return m, secondCmd()
	}

	return m, nil
}

// sessionOver reports whether the controller reached a terminal state.
func (m Model) sessionOver() bool {
	st := m.controller.State()
	return st == session.StateComplete || st == session.StateAbandoned
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)

	if m.sessionOver() {
		// Any exit key leaves the summary screen.
		if isQuit || action == core.ActionConfirm {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if isQuit {
		// First quit abandons the session; the summary screen appears and a
		// second quit leaves it.
		m.controller.Quit()
		return m, nil
	}

	// Session-level commands act immediately; everything else is collected
	// into the frame for the next simulation step.
	switch action {
	case core.ActionConfirm:
		if r := m.controller.Round(); r != nil && r.Phase() == session.PhaseCountdown {
			m.controller.SkipCountdown()
			return m, nil
		}
		m.inputFrame.Set(action)
	case core.ActionSkip:
		m.controller.SkipQuestion()
	case core.ActionAdvance:
		m.controller.ForceAdvance()
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The game area keeps a HUD
// line above and a help line below.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	gameH := msg.Height - hudRows
	if gameH < 4 {
		gameH = 4
	}
	m.config.ScreenW = msg.Width
	m.config.ScreenH = gameH
	m.screen.Resize(msg.Width, gameH)

	return m, nil
}

// handleFrame runs one simulation step and persists the result when the
// session reaches a terminal state.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	m.controller.Step(m.inputFrame)
	m.inputFrame.Clear()

	if m.sessionOver() && !m.saved {
		m.saveResult()
		m.saved = true
	}

	return m, frameCmd(m.config.TickRate)
}

// saveResult persists the session outcome. Best-effort: a storage failure
// never blocks the summary screen.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	res := m.controller.Result()
	if res == nil || res.RoundsPlayed() == 0 {
		return
	}
	//nolint:errcheck // best-effort save, summary is shown regardless
	m.store.SaveResult(res, m.controller.Aggregation(), m.controller.Grade())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.sessionOver() {
		return renderSummary(m.controller.Result(), m.controller.Aggregation(), m.controller.Grade(), m.width, m.height)
	}

	r := m.controller.Round()
	if r == nil {
		return ""
	}

	if r.Phase() == session.PhaseCountdown {
		return renderCountdown(r, m.controller.RoundCount(), m.width, m.height)
	}

	m.screen.Clear()
	r.Render(m.screen)

	help := helpStyle.Render(" n skip · tab next round · q quit")
	return renderHUD(r, m.controller.RoundCount()) + "\n" + m.screen.String() + "\n" + help
}

// RunSession starts the Bubble Tea program for a started controller and
// blocks until the player leaves.
func RunSession(controller *session.Controller, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(controller, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
