package styles

import (
	"image/color"

	"speedread/internal/draw"

	"github.com/charmbracelet/lipgloss"
)

// Help renders the key help line
var Help = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#626262")).
	Padding(0, 1)

// Cell styles a run of cells drawn in fg over bg.
func Cell(fg, bg color.NRGBA, bold bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(draw.Hex(fg))).
		Background(lipgloss.Color(draw.Hex(bg))).
		Bold(bold)
}

// Frame picks the border drawn for a rectangle of the given stroke width.
func Frame(stroke float32) lipgloss.Border {
	switch {
	case stroke >= 3:
		return lipgloss.DoubleBorder()
	case stroke >= 2:
		return lipgloss.ThickBorder()
	default:
		return lipgloss.NormalBorder()
	}
}
