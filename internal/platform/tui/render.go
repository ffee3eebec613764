package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	consoleStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240"))
	consoleTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderConsole draws the newest scrollback lines that fit above the prompt.
func renderConsole(lines []string, prompt string, width, height int) string {
	visible := height - 2 // border and prompt
	if visible < 0 {
		visible = 0
	}
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	var b strings.Builder
	for i := len(lines); i < visible; i++ {
		b.WriteString("\n")
	}
	for _, l := range lines {
		b.WriteString(consoleTextStyle.Render(l))
		b.WriteString("\n")
	}
	b.WriteString(prompt)
	return consoleStyle.Width(width).Render(b.String())
}

// renderRoom draws a room block the way the world draws tiles, one tile as
// two columns.
func renderRoom(tiles []tile.ID, table tile.Table) string {
	s := core.NewScreen(tile.RoomWidth*2, tile.RoomHeight)
	for y := range tile.RoomHeight {
		for x := range tile.RoomWidth {
			id := tiles[y*tile.RoomWidth+x]
			if !table.Valid(id) || id == tile.Empty {
				continue
			}
			def := table.Def(id)
			glyph := def.Fill
			if y == 0 || !table.Valid(tiles[(y-1)*tile.RoomWidth+x]) || !table.Solid(tiles[(y-1)*tile.RoomWidth+x]) {
				glyph = def.Top.Glyph
			}
			s.SetColored(x*2, y, glyph, def.Color())
			s.SetColored(x*2+1, y, glyph, def.Color())
		}
	}
	return RenderScreen(s)
}
