package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/console"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/game"
	"github.com/vovakirdan/something/internal/level"
	"github.com/vovakirdan/something/internal/storage"
)

// minConsoleRows is the smallest console overlay, border and prompt included.
const minConsoleRows = 5

// Options selects what a game model runs.
type Options struct {
	Level      *level.Level
	Vars       *config.Tunables // shared with the console, changed between frames
	ConfigPath string           // tunables file the console reloads
	RoomDir    string
	Store      *storage.Store // may be nil
	Console    bool           // enable the developer console
	Room       string         // room loaded into the player's room at start
	Script     string         // Lua file run once the world exists
	Logger     *log.Logger
}

// requests carries console callbacks out of value-receiver updates.
type requests struct {
	quit   bool
	toggle bool
}

// Model is the Bubble Tea model that runs one world.
type Model struct {
	world       *game.World
	console     *console.Console
	prompt      textinput.Model
	consoleOpen bool
	historyPos  int
	requests    *requests

	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	frame      core.InputFrame
	held       map[core.Action]float64
	logger     *log.Logger
	quitting   bool
	backToMenu bool
}

// NewModel creates a model running opts.Level.
func NewModel(opts Options, cfg core.RuntimeConfig) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Vars == nil {
		vars := config.DefaultTunables()
		opts.Vars = &vars
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	world, err := game.NewWorld(opts.Level, opts.Vars, game.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}

	reqs := &requests{}
	m := Model{
		world:    world,
		requests: reqs,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		keys:     NewKeyMapper(),
		frame:    core.NewInputFrame(),
		held:     make(map[core.Action]float64),
		logger:   logger,
	}

	if opts.Console {
		env := console.Env{
			World:      world,
			Vars:       opts.Vars,
			ConfigPath: opts.ConfigPath,
			RoomDir:    opts.RoomDir,
			Quit:       func() { reqs.quit = true },
			Toggle:     func() { reqs.toggle = true },
		}
		// A nil *storage.Store must not become a non-nil interface.
		if opts.Store != nil {
			env.Store = opts.Store
		}
		m.console = console.New(env, logger)

		m.prompt = textinput.New()
		m.prompt.Prompt = "> "
		m.prompt.Placeholder = "help"
		m.prompt.CharLimit = 256

		if opts.Room != "" {
			if err := m.console.Exec("load_room " + opts.Room); err != nil {
				m.console.Close()
				return Model{}, fmt.Errorf("loading room %s: %w", opts.Room, err)
			}
		}
		if opts.Script != "" {
			if err := m.console.RunFile(opts.Script); err != nil {
				m.console.Close()
				return Model{}, err
			}
		}
	}
	return m, nil
}

// World returns the running world.
func (m Model) World() *game.World { return m.world }

// Console returns the developer console, or nil when it is disabled.
func (m Model) Console() *console.Console { return m.console }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.consoleOpen {
			return m.handleConsoleKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.resizeScreen()
		m.prompt.Width = msg.Width - len(m.prompt.Prompt) - 1
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input while the console is closed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.console != nil && m.keys.IsConsoleToggle(msg):
		return m.setConsole(true)
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case msg.String() == "b" && m.world.Paused:
		m.backToMenu = true
		return m, tea.Quit
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}

	if Held(action) {
		// Reversing direction releases the opposite key at once.
		delete(m.held, core.ActionMoveLeft)
		delete(m.held, core.ActionMoveRight)
		m.held[action] = holdTime
	} else {
		m.frame.Set(action)
	}
	return m, nil
}

// handleConsoleKey edits and submits the console prompt.
func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "esc", m.keys.IsConsoleToggle(msg):
		return m.setConsole(false)

	case msg.String() == "enter":
		line := m.prompt.Value()
		m.prompt.Reset()
		//nolint:errcheck // Errors are printed to the scrollback
		m.console.Exec(line)
		m.historyPos = len(m.console.History())
		return m.applyRequests()

	case msg.String() == "up":
		if m.historyPos > 0 {
			m.historyPos--
			m.prompt.SetValue(m.console.History()[m.historyPos])
			m.prompt.CursorEnd()
		}
		return m, nil

	case msg.String() == "down":
		history := m.console.History()
		if m.historyPos < len(history) {
			m.historyPos++
		}
		if m.historyPos < len(history) {
			m.prompt.SetValue(history[m.historyPos])
			m.prompt.CursorEnd()
		} else {
			m.prompt.Reset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// applyRequests acts on quit and toggle requests made by console commands.
func (m Model) applyRequests() (tea.Model, tea.Cmd) {
	if m.requests.quit {
		m.requests.quit = false
		m.quitting = true
		return m, tea.Quit
	}
	if m.requests.toggle {
		m.requests.toggle = false
		return m.setConsole(!m.consoleOpen)
	}
	return m, nil
}

func (m Model) setConsole(open bool) (tea.Model, tea.Cmd) {
	m.consoleOpen = open
	clear(m.held)
	m.resizeScreen()
	if open {
		m.historyPos = len(m.console.History())
		return m, m.prompt.Focus()
	}
	m.prompt.Blur()
	return m, nil
}

// handleMouse aims at the pointer and maps buttons to actions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	in := m.keys.MapMouse(msg)
	if in.Aim {
		if msg.Y >= m.screen.Height()-1 {
			// The HUD row and the console are not part of the world.
			return m, nil
		}
		m.frame.AimAt(m.view().ToWorld(msg.X, msg.Y))
	}
	if in.Action != core.ActionNone && !m.consoleOpen {
		m.frame.Set(in.Action)
	}
	return m, nil
}

// view returns the camera Render uses for the current screen.
func (m Model) view() game.View {
	return m.world.Camera(m.screen.Width(), m.screen.Height()-1)
}

// handleTick advances the world by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.config.TickSeconds()

	in := m.frame.Clone()
	for a, left := range m.held {
		if left <= 0 {
			delete(m.held, a)
			continue
		}
		in.Set(a)
		m.held[a] = left - dt
	}

	m.world.Step(in, dt)
	m.logEvents()

	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) logEvents() {
	for _, ev := range m.world.Events {
		switch ev.Kind {
		case game.EventShot:
			if ev.Sound != "" {
				m.logger.Debug("sound", "name", ev.Sound)
			}
		case game.EventKilled:
			m.logger.Debug("entity killed", "index", ev.Entity)
		case game.EventPlayerDied:
			m.logger.Info("player died", "level", m.world.Level().ID)
			if m.console != nil {
				m.console.Println("Player died")
			}
		}
	}
}

// consoleRows is the height of the console overlay.
func (m Model) consoleRows() int {
	return max(minConsoleRows, m.config.ScreenH/3)
}

func (m *Model) resizeScreen() {
	rows := m.config.ScreenH
	if m.consoleOpen {
		rows -= m.consoleRows()
	}
	m.screen.Resize(m.config.ScreenW, max(rows, 1))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.world.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".something", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.world.Level().ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.world.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.consoleOpen {
		out += "\n" + renderConsole(m.console.Lines(), m.prompt.View(), m.config.ScreenW, m.consoleRows())
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Close releases the console.
func (m Model) Close() {
	if m.console != nil {
		m.console.Close()
	}
}

// Run starts the Bubble Tea program for one level. It reports whether the
// player asked to go back to the level menu.
func Run(opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewModel(opts, cfg)
	if err != nil {
		return false, err
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
