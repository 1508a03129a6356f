package reader

import "fmt"

// ModeKind is the display state
type ModeKind int

const (
	Idle ModeKind = iota
	Dragging
	Playing
)

// Mode is derived from drag state and word count on every frame; it is
// never stored.
type Mode struct {
	Kind  ModeKind
	Count int // drag sessions, only set for Dragging
}

// DeriveMode maps the drag counter and number of loaded words to a mode.
// Dragging wins over everything else.
func DeriveMode(dragging, words int) Mode {
	switch {
	case dragging > 0:
		return Mode{Kind: Dragging, Count: dragging}
	case words > 0:
		return Mode{Kind: Playing}
	default:
		return Mode{Kind: Idle}
	}
}

func (m Mode) String() string {
	switch m.Kind {
	case Dragging:
		return fmt.Sprintf("Dragging(%d)", m.Count)
	case Playing:
		return "Playing"
	default:
		return "Idle"
	}
}
