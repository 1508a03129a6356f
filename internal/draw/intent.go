// Package draw defines the draw intents produced by the reader each frame.
// Intents are plain values; rasterizing them is up to the front end.
package draw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Role identifies what a text intent shows, for front ends that place
// text by meaning rather than by coordinates.
type Role string

const (
	RolePrompt Role = "prompt"
	RoleDrag   Role = "drag"
	RoleWord   Role = "word"
	RoleSpeed  Role = "speed"
)

// HAlign is horizontal alignment relative to the anchor point
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical alignment relative to the anchor point
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Intent is a single thing to draw
type Intent interface {
	isIntent()
}

// Text draws Content with its anchor at (X, Y).
type Text struct {
	Role    Role
	Content string
	X, Y    float32
	Size    float32
	Color   color.NRGBA
	HAlign  HAlign
	VAlign  VAlign
}

// Rect draws a rectangle outline.
type Rect struct {
	X, Y          float32
	Width, Height float32
	Stroke        float32
	Color         color.NRGBA
}

func (Text) isIntent() {}
func (Rect) isIntent() {}

// Bounds is the drawable area in logical pixels.
type Bounds struct {
	Width, Height float32
}

// Center returns the middle point of b
func (b Bounds) Center() (float32, float32) {
	return b.Width / 2, b.Height / 2
}

// Hex formats c as #rrggbb, ignoring alpha
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb or #rgb into an opaque color
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
