//go:build !nogui
// +build !nogui

package gui

import (
	"image/color"

	"speedread/internal/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Surface is a widget that shows one frame of draw intents over a solid
// background and reports mouse wheel movement.
type Surface struct {
	widget.BaseWidget

	background *canvas.Rectangle
	content    *fyne.Container

	// OnScrolled receives the vertical wheel delta; positive is away from
	// the user.
	OnScrolled func(dy float32)
}

var _ fyne.Scrollable = (*Surface)(nil)

// NewSurface creates an empty surface
func NewSurface(background color.Color) *Surface {
	s := &Surface{
		background: canvas.NewRectangle(background),
		content:    container.NewWithoutLayout(),
	}
	s.ExtendBaseWidget(s)
	return s
}

// Scrolled implements fyne.Scrollable
func (s *Surface) Scrolled(ev *fyne.ScrollEvent) {
	if s.OnScrolled != nil {
		s.OnScrolled(ev.Scrolled.DY)
	}
}

// SetIntents replaces the drawn objects with intents, in order.
func (s *Surface) SetIntents(intents []draw.Intent) {
	objects := make([]fyne.CanvasObject, 0, len(intents))
	for _, in := range intents {
		if obj := toObject(in); obj != nil {
			objects = append(objects, obj)
		}
	}
	s.content.Objects = objects
	s.content.Refresh()
}

// Objects returns the canvas objects of the current frame
func (s *Surface) Objects() []fyne.CanvasObject {
	return s.content.Objects
}

// CreateRenderer implements fyne.Widget
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{surface: s}
}

type surfaceRenderer struct {
	surface *Surface
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.surface.background.Resize(size)
	r.surface.content.Resize(size)
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(1, 1)
}

func (r *surfaceRenderer) Refresh() {
	r.surface.background.Refresh()
	r.surface.content.Refresh()
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.surface.background, r.surface.content}
}

func (r *surfaceRenderer) Destroy() {}

func toObject(in draw.Intent) fyne.CanvasObject {
	switch in := in.(type) {
	case draw.Text:
		return textObject(in)
	case draw.Rect:
		return rectObject(in)
	}
	return nil
}

// textObject places a text so that its anchor point lands on (X, Y)
func textObject(t draw.Text) *canvas.Text {
	txt := canvas.NewText(t.Content, t.Color)
	txt.TextSize = t.Size

	size := txt.MinSize()
	pos := fyne.NewPos(t.X, t.Y)
	switch t.HAlign {
	case draw.AlignCenter:
		pos.X -= size.Width / 2
	case draw.AlignRight:
		pos.X -= size.Width
	}
	switch t.VAlign {
	case draw.AlignMiddle:
		pos.Y -= size.Height / 2
	case draw.AlignBottom:
		pos.Y -= size.Height
	}

	txt.Resize(size)
	txt.Move(pos)
	return txt
}

func rectObject(r draw.Rect) *canvas.Rectangle {
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = r.Color
	rect.StrokeWidth = r.Stroke
	rect.Resize(fyne.NewSize(r.Width, r.Height))
	rect.Move(fyne.NewPos(r.X, r.Y))
	return rect
}
