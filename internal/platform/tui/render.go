package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// tileStyle colors a tile value; the big ones are bold.
func tileStyle(hex string, bold bool) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(bold)
}

// colorStyles gives every core.Color its look. Tiles follow the classic
// 2048 palette, warming from beige to gold as values grow.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#edc22e")).Bold(true),
	core.ColorRecord:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8fd14f")).Bold(true),
	core.ColorPop:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7ee8fa")).Bold(true),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#f65e3b")),

	core.ColorTile2:     tileStyle("#eee4da", false),
	core.ColorTile4:     tileStyle("#ede0c8", false),
	core.ColorTile8:     tileStyle("#f2b179", false),
	core.ColorTile16:    tileStyle("#f59563", false),
	core.ColorTile32:    tileStyle("#f67c5f", false),
	core.ColorTile64:    tileStyle("#f65e3b", false),
	core.ColorTile128:   tileStyle("#edcf72", true),
	core.ColorTile256:   tileStyle("#edcc61", true),
	core.ColorTile512:   tileStyle("#edc850", true),
	core.ColorTile1024:  tileStyle("#edc53f", true),
	core.ColorTile2048:  tileStyle("#edc22e", true),
	core.ColorTileSuper: tileStyle("#ff3cac", true),
}

// styleFor returns the style of c, falling back to plain text.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells sharing a color are styled together to keep the escape
// sequences short.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
