// Package reader is the speed-reading core: drag and drop ingestion, the
// playback engine and the selection of what to draw each frame.
//
// A Reader is driven by a single frame loop. Event handlers and Render must
// be called from that loop; nothing in this package starts goroutines or
// takes locks.
package reader

import (
	"speedread/internal/draw"
	"speedread/internal/errors"
	"speedread/internal/log"
)

// Reader wires ingestion, playback and rendering together.
type Reader struct {
	ingest   *Ingestion
	playback *Playback
	theme    Theme
	log      *log.Logger
}

// New creates a Reader. A nil logger uses the package default.
func New(loader Loader, settings Settings, theme Theme, logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{
		ingest:   NewIngestion(loader),
		playback: NewPlayback(settings),
		theme:    theme,
		log:      logger,
	}
}

// OnDragEnter handles a drag entering the window
func (r *Reader) OnDragEnter() {
	r.ingest.DragEnter()
	r.log.With(log.F("dragging", r.ingest.Dragging())).Debug("drag entered")
}

// OnDragLeave handles a drag leaving the window
func (r *Reader) OnDragLeave() {
	r.ingest.DragLeave()
	r.log.Debug("drag left")
}

// OnDrop handles a dropped file. Rejected drops are logged and otherwise
// ignored.
func (r *Reader) OnDrop(f File) {
	if err := r.ingest.Drop(f); err != nil {
		r.log.WithError(err).With(log.F("file", f.Name)).Debug("ignoring drop")
		return
	}
	r.log.With(log.F("file", f.Name), log.F("mime", f.MIME)).Debug("loading dropped file")
}

// OnScroll adjusts the speed in the direction of a wheel delta
func (r *Reader) OnScroll(delta float64) {
	r.playback.AdjustSpeed(delta)
}

// Render runs one frame: it takes over a finished load, advances playback
// when playing and returns the intents for the resulting state.
func (r *Reader) Render(dt float64, b draw.Bounds) []draw.Intent {
	r.consumeLoad()

	if r.Mode().Kind == Playing {
		r.playback.Advance(dt)
	}
	return Select(r.Snapshot(), r.theme, b)
}

func (r *Reader) consumeLoad() {
	text, ok, err := r.ingest.Poll()
	if err != nil {
		r.log.WithError(err).Warn("discarding failed load")
		return
	}
	if !ok {
		return
	}

	words := Tokenize(text)
	r.playback.Load(words)
	if len(words) == 0 {
		r.log.WithError(errors.ErrEmptyDocument).Info("loaded document is empty")
		return
	}
	r.log.With(log.F("words", len(words))).Info("document loaded")
}

// Snapshot returns the current state for rendering
func (r *Reader) Snapshot() Snapshot {
	return Snapshot{
		Dragging: r.ingest.Dragging(),
		Words:    r.playback.Words(),
		Position: r.playback.Position(),
		Speed:    r.playback.Speed(),
	}
}

// Mode returns the current derived display mode
func (r *Reader) Mode() Mode {
	return DeriveMode(r.ingest.Dragging(), len(r.playback.Words()))
}

// Words returns the loaded document's words
func (r *Reader) Words() []string { return r.playback.Words() }

// Position returns the fractional word position
func (r *Reader) Position() float64 { return r.playback.Position() }

// Speed returns the playback speed in words per minute
func (r *Reader) Speed() float64 { return r.playback.Speed() }

// Dragging returns the number of drags currently over the window
func (r *Reader) Dragging() int { return r.ingest.Dragging() }

// Loading reports whether a dropped file is still being read
func (r *Reader) Loading() bool { return r.ingest.HasPending() }

// Theme returns the colors, sizes and strings the reader draws with
func (r *Reader) Theme() Theme { return r.theme }
