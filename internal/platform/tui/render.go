package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quellen/wander/internal/core"
)

// ansiCodes maps core.Color ordinals onto the terminal palette. The
// first sixteen are the standard colors; orange and gray come from the
// 256-color cube since tile art leans on them.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = buildStyles()

func buildStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiCodes))
	for c, code := range ansiCodes {
		if code == "" {
			styles[c] = lipgloss.NewStyle()
			continue
		}
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

// RenderScreen flattens a composed screen buffer into one styled
// string, row by row.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

// renderRow writes one row as maximal same-color runs. Default-colored
// runs bypass lipgloss: most of a tile map is unstyled ground, and
// those cells need no escape sequences at all.
func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	width := s.Width()
	for x := 0; x < width; {
		color := s.GetCell(x, y).Color

		var run strings.Builder
		for x < width {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}

		if color == core.ColorDefault || int(color) >= len(cellStyles) {
			sb.WriteString(run.String())
			continue
		}
		sb.WriteString(cellStyles[color].Render(run.String()))
	}
}
