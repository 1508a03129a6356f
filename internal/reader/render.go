package reader

import (
	"fmt"
	"image/color"

	"speedread/internal/draw"
)

// Theme holds the fixed look of each display mode.
type Theme struct {
	Background color.NRGBA
	Prompt     color.NRGBA
	Word       color.NRGBA
	Speed      color.NRGBA
	Frame      color.NRGBA
	Drag       color.NRGBA

	PromptText     string
	DraggingFormat string // one %d verb: the drag count
	SpeedFormat    string // one %s verb: the formatted speed

	TextSize    float32
	SpeedSize   float32
	SpeedX      float32
	SpeedY      float32
	FrameInset  float32
	FrameStroke float32
}

// DefaultTheme returns orange and white text on black.
func DefaultTheme() Theme {
	return Theme{
		Background: color.NRGBA{A: 0xff},
		Prompt:     color.NRGBA{R: 0xff, G: 0xa5, A: 0xff},
		Word:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Speed:      color.NRGBA{R: 0xff, G: 0xa5, A: 0xff},
		Frame:      color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Drag:       color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},

		PromptText:     "Drop a text file here",
		DraggingFormat: "Dragging %d file(s)",
		SpeedFormat:    "%s words per minute",

		TextSize:    30,
		SpeedSize:   24,
		SpeedX:      25,
		SpeedY:      25,
		FrameInset:  10,
		FrameStroke: 6,
	}
}

// Snapshot is the state the selector reads.
type Snapshot struct {
	Dragging int
	Words    []string
	Position float64
	Speed    float64
}

// Mode derives the display mode of s
func (s Snapshot) Mode() Mode {
	return DeriveMode(s.Dragging, len(s.Words))
}

// Select maps a snapshot to the intents for one frame. It has no side
// effects.
func Select(s Snapshot, theme Theme, b draw.Bounds) []draw.Intent {
	cx, cy := b.Center()

	mode := s.Mode()
	switch mode.Kind {
	case Dragging:
		inset := theme.FrameInset
		return []draw.Intent{
			draw.Rect{
				X:      inset,
				Y:      inset,
				Width:  b.Width - 2*inset,
				Height: b.Height - 2*inset,
				Stroke: theme.FrameStroke,
				Color:  theme.Frame,
			},
			centered(draw.RoleDrag, fmt.Sprintf(theme.DraggingFormat, mode.Count), cx, cy, theme.TextSize, theme.Drag),
		}

	case Playing:
		word := s.Words[DisplayIndex(s.Position, len(s.Words))]
		return []draw.Intent{
			centered(draw.RoleWord, word, cx, cy, theme.TextSize, theme.Word),
			draw.Text{
				Role:    draw.RoleSpeed,
				Content: fmt.Sprintf(theme.SpeedFormat, FormatSpeed(s.Speed)),
				X:       theme.SpeedX,
				Y:       theme.SpeedY,
				Size:    theme.SpeedSize,
				Color:   theme.Speed,
				HAlign:  draw.AlignLeft,
				VAlign:  draw.AlignMiddle,
			},
		}

	default:
		return []draw.Intent{
			centered(draw.RolePrompt, theme.PromptText, cx, cy, theme.TextSize, theme.Prompt),
		}
	}
}

func centered(role draw.Role, content string, x, y, size float32, c color.NRGBA) draw.Text {
	return draw.Text{
		Role:    role,
		Content: content,
		X:       x,
		Y:       y,
		Size:    size,
		Color:   c,
		HAlign:  draw.AlignCenter,
		VAlign:  draw.AlignMiddle,
	}
}
