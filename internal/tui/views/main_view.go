// Package views rasterizes draw intents onto a grid of terminal cells.
package views

import (
	"image/color"
	"math"
	"strings"
	"unicode"

	"speedread/internal/draw"
	"speedread/internal/tui/styles"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

type cell struct {
	r    rune // 0 marks the second half of a wide rune
	fg   color.NRGBA
	bold bool
}

// Canvas is a fixed size grid of cells. The zero cell is a blank in the
// background color.
type Canvas struct {
	width, height int
	bg            color.NRGBA
	cells         [][]cell
}

// NewCanvas returns a blank canvas
func NewCanvas(width, height int, bg color.NRGBA) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, bg: bg, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' ', fg: bg}
		}
		c.cells[y] = row
	}
	return c
}

// Draw rasterizes one intent. Anything outside the canvas is clipped.
func (c *Canvas) Draw(intent draw.Intent) {
	switch in := intent.(type) {
	case draw.Text:
		c.drawText(in)
	case draw.Rect:
		c.drawRect(in)
	}
}

func (c *Canvas) drawText(t draw.Text) {
	if c.width == 0 || c.height == 0 {
		return
	}

	content := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, t.Content)

	w := runewidth.StringWidth(content)
	if w > c.width {
		content = truncate.StringWithTail(content, uint(c.width), ellipsis)
		w = runewidth.StringWidth(content)
	}

	x := int(math.Round(float64(t.X)))
	switch t.HAlign {
	case draw.AlignCenter:
		x -= w / 2
	case draw.AlignRight:
		x -= w
	}
	if x < 0 {
		x = 0
	}
	if x+w > c.width {
		x = c.width - w
	}

	var y int
	switch t.VAlign {
	case draw.AlignBottom:
		y = int(math.Ceil(float64(t.Y))) - 1
	default:
		y = int(math.Floor(float64(t.Y)))
	}

	bold := t.Role == draw.RoleWord
	for _, r := range content {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.set(x, y, cell{r: r, fg: t.Color, bold: bold})
		if rw == 2 {
			c.set(x+1, y, cell{fg: t.Color, bold: bold})
		}
		x += rw
	}
}

func (c *Canvas) drawRect(r draw.Rect) {
	x0 := int(math.Round(float64(r.X)))
	y0 := int(math.Round(float64(r.Y)))
	x1 := int(math.Round(float64(r.X+r.Width))) - 1
	y1 := int(math.Round(float64(r.Y+r.Height))) - 1
	if x1 <= x0 || y1 <= y0 {
		return
	}

	b := styles.Frame(r.Stroke)
	edge := func(s string) cell {
		ch := ' '
		for _, first := range s {
			ch = first
			break
		}
		return cell{r: ch, fg: r.Color}
	}

	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, edge(b.Top))
		c.set(x, y1, edge(b.Bottom))
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, edge(b.Left))
		c.set(x1, y, edge(b.Right))
	}
	c.set(x0, y0, edge(b.TopLeft))
	c.set(x1, y0, edge(b.TopRight))
	c.set(x0, y1, edge(b.BottomLeft))
	c.set(x1, y1, edge(b.BottomRight))
}

func (c *Canvas) set(x, y int, v cell) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = v
}

// String renders the canvas one line per row, styling each run of cells
// that share a color.
func (c *Canvas) String() string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		var line, run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(styles.Cell(cur.fg, c.bg, cur.bold).Render(run.String()))
				run.Reset()
			}
		}
		for x, v := range row {
			if x == 0 || v.fg != cur.fg || v.bold != cur.bold {
				flush()
				cur = v
			}
			if v.r != 0 {
				run.WriteRune(v.r)
			}
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// RenderIntents draws intents in order onto a width by height canvas.
func RenderIntents(intents []draw.Intent, width, height int, bg color.NRGBA) string {
	c := NewCanvas(width, height, bg)
	for _, in := range intents {
		c.Draw(in)
	}
	return c.String()
}
