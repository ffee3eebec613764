package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/something/internal/storage"
	"github.com/vovakirdan/something/internal/tile"
)

// Room browser layout constants
const (
	minWidthForPreview = 70 // Minimum width to show the room preview
	previewWidth       = tile.RoomWidth*2 + 4
)

// RoomsKeyMap defines the key bindings for the room browser.
type RoomsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RoomsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RoomsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultRoomsKeyMap returns default key bindings.
func DefaultRoomsKeyMap() RoomsKeyMap {
	return RoomsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
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

// RoomsModel is the Bubble Tea model for browsing the room library.
type RoomsModel struct {
	store       *storage.Store
	tiles       tile.Table
	rooms       []storage.RoomInfo
	preview     []tile.ID
	status      string
	table       table.Model
	help        help.Model
	keys        RoomsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showPreview bool
}

// NewRoomsModel creates a room browser over store, which may be nil.
func NewRoomsModel(store *storage.Store, width, height int) RoomsModel {
	h := help.New()
	h.ShowAll = false

	m := RoomsModel{
		store:       store,
		tiles:       tile.Standard(),
		keys:        DefaultRoomsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showPreview: width >= minWidthForPreview,
	}
	m.table = m.createTable()
	m.loadRooms()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RoomsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 16},
		{Title: "Level", Width: 10},
		{Title: "Updated", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// loadRooms reloads the listing and the preview of the selected room.
func (m *RoomsModel) loadRooms() {
	m.rooms = nil
	if m.store != nil {
		rooms, err := m.store.ListRooms(context.Background())
		if err != nil {
			m.status = err.Error()
		}
		m.rooms = rooms
	}

	rows := make([]table.Row, len(m.rooms))
	for i, r := range m.rooms {
		rows[i] = table.Row{r.Name, r.Level, r.UpdatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
	m.loadPreview()
}

func (m *RoomsModel) loadPreview() {
	m.preview = nil
	r, ok := m.selectedRoom()
	if !ok {
		return
	}
	room, err := m.store.LoadRoom(context.Background(), r.Name)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.preview = room.Tiles
}

func (m RoomsModel) selectedRoom() (storage.RoomInfo, bool) {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.rooms) {
		return storage.RoomInfo{}, false
	}
	return m.rooms[i], true
}

// Init initializes the room browser.
func (m RoomsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the room browser.
func (m RoomsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.selectedRoom(); ok {
				if err := m.store.DeleteRoom(context.Background(), r.Name); err != nil {
					m.status = err.Error()
				} else {
					m.status = "Deleted " + r.Name
				}
				m.loadRooms()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadPreview()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.showPreview = m.width >= minWidthForPreview
		m.table = m.createTable()
		m.loadRooms()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the room browser.
func (m RoomsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("ROOM LIBRARY", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	listing := boxStyle.Render(m.renderTableContent())
	if m.showPreview && m.preview != nil {
		preview := boxStyle.Width(previewWidth).Render(renderRoom(m.preview, m.tiles))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listing, "  ", preview))
	} else {
		b.WriteString(listing)
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RoomsModel) renderTableContent() string {
	if len(m.rooms) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.store == nil {
			return emptyStyle.Render("Room library is not available.")
		}
		return emptyStyle.Render("No rooms saved yet.\nUse save_room in the console to add one.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RoomsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RoomsModel) IsQuitting() bool {
	return m.quitting
}

// RunRooms runs the room browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunRooms(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRoomsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RoomsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
