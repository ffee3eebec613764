package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/level"
)

type sessionStage int

const (
	stageMenu sessionStage = iota
	stagePlaying
	stageDone
)

// SessionModel drives one remote session: level picker, then a world,
// then back to the picker until the user quits.
type SessionModel struct {
	levels []*level.Level
	opts   Options
	config core.RuntimeConfig
	stage  sessionStage
	menu   MenuModel
	game   *Model
}

// NewSessionModel creates a session over levels. The developer console is
// never enabled for sessions since its scripts can reach the host.
func NewSessionModel(levels []*level.Level, opts Options, cfg core.RuntimeConfig) SessionModel {
	opts.Console = false
	opts.Room = ""
	opts.Script = ""
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		levels: levels,
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(levels, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = size.Width
		m.config.ScreenH = size.Height
	}

	switch m.stage {
	case stagePlaying:
		return m.updateGame(msg)
	case stageDone:
		return m, tea.Quit
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.stage = stageDone
		return m, tea.Quit
	case m.menu.WantsRooms():
		// The room browser edits the shared library; it stays a local tool.
		return m.showMenu()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	opts := m.opts
	opts.Level = selected.Level
	g, err := NewModel(opts, m.menu.Config())
	if err != nil {
		m.opts.Logger.Error("cannot start level", "level", selected.Level.ID, "error", err)
		return m.showMenu()
	}
	m.opts.Logger.Info("level started", "level", selected.Level.ID)
	m.game = &g
	m.stage = stagePlaying
	return m, g.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if g, ok := next.(Model); ok {
		m.game = &g
	}

	switch {
	case m.game.BackToMenu():
		m.endGame()
		return m.showMenu()
	case m.game.IsQuitting():
		m.endGame()
		m.stage = stageDone
		return m, tea.Quit
	}
	return m, cmd
}

func (m *SessionModel) endGame() {
	m.opts.Logger.Info("level left", "level", m.game.World().Level().ID)
	m.game.Close()
	m.game = nil
}

func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.stage = stageMenu
	m.menu = NewMenuModel(m.levels, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) View() string {
	switch m.stage {
	case stagePlaying:
		return m.game.View()
	case stageDone:
		return ""
	default:
		return m.menu.View()
	}
}
