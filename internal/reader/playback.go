package reader

import (
	"math"
	"strconv"
)

// Settings configures the playback engine.
type Settings struct {
	Speed       float64 // initial words per minute
	Step        float64 // change per speed adjustment
	MinSpeed    float64
	ResetOnLoad bool // rewind to the first word when a new document loads
}

// DefaultSettings returns the stock playback settings
func DefaultSettings() Settings {
	return Settings{
		Speed:    60,
		Step:     10,
		MinSpeed: 10,
	}
}

// Playback owns the word sequence, the fractional position into it and
// the speed.
type Playback struct {
	settings Settings
	words    []string
	position float64
	speed    float64
}

// NewPlayback creates an engine with no document loaded
func NewPlayback(s Settings) *Playback {
	p := &Playback{settings: s, speed: s.Speed}
	if p.speed <= s.MinSpeed {
		p.speed = s.MinSpeed
	}
	return p
}

// Load replaces the word sequence.
func (p *Playback) Load(words []string) {
	p.words = words
	if p.settings.ResetOnLoad {
		p.position = 0
	}
}

// Advance moves the position forward by the words due in dt seconds.
func (p *Playback) Advance(dt float64) {
	if len(p.words) == 0 || !(dt > 0) {
		return
	}
	p.position += p.speed / 60.0 * dt
}

// AdjustSpeed steps the speed in the direction of delta's sign, never
// below the minimum. A zero delta is ignored.
func (p *Playback) AdjustSpeed(delta float64) {
	switch {
	case delta > 0:
		p.speed += p.settings.Step
	case delta < 0:
		p.speed -= p.settings.Step
	default:
		return
	}
	if p.speed <= p.settings.MinSpeed {
		p.speed = p.settings.MinSpeed
	}
}

// Index returns the displayed word index
func (p *Playback) Index() int {
	return DisplayIndex(p.position, len(p.words))
}

// Word returns the displayed word, false when no document is loaded
func (p *Playback) Word() (string, bool) {
	if len(p.words) == 0 {
		return "", false
	}
	return p.words[p.Index()], true
}

// Words returns the loaded word sequence. Callers must not modify it.
func (p *Playback) Words() []string { return p.words }

// Position returns the fractional word position, unclamped
func (p *Playback) Position() float64 { return p.position }

// Speed returns the current speed in words per minute
func (p *Playback) Speed() float64 { return p.speed }

// DisplayIndex is min(floor(position), n-1), and 0 when n is 0.
func DisplayIndex(position float64, n int) int {
	if n <= 0 || !(position > 0) {
		return 0
	}
	i := math.Floor(position)
	if i >= float64(n-1) {
		return n - 1
	}
	return int(i)
}

// FormatSpeed renders a speed without trailing zeros: 60, 62.5.
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}
