package reader

import (
	"io"
	"mime"
	"strings"

	"speedread/internal/errors"
)

// PlainText is the only media type accepted for drops.
const PlainText = "text/plain"

// File is a dropped file as delivered by the windowing layer: a name, the
// declared media type, and a way to get at the raw bytes.
type File struct {
	Name string
	MIME string
	Open func() (io.ReadCloser, error)
}

// Pending is an in-flight or finished load. Poll never blocks.
type Pending interface {
	// Poll reports done once the load finished, with the decoded text or
	// the error that stopped it.
	Poll() (text string, done bool, err error)
	// Cancel signals that the result is no longer wanted.
	Cancel()
}

// Loader starts asynchronous loads of dropped files.
type Loader interface {
	Load(f File) Pending
}

// IsPlainText reports whether a declared media type is text/plain.
// Parameters such as charset are ignored.
func IsPlainText(mediaType string) bool {
	t, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return strings.EqualFold(t, PlainText)
}

// Ingestion tracks drag state and the single pending load.
type Ingestion struct {
	loader  Loader
	drag    int
	pending Pending
}

// NewIngestion creates an ingestion controller backed by loader
func NewIngestion(loader Loader) *Ingestion {
	return &Ingestion{loader: loader}
}

// DragEnter counts one more drag session over the window.
func (c *Ingestion) DragEnter() {
	c.drag++
}

// DragLeave ends all drag sessions.
func (c *Ingestion) DragLeave() {
	c.drag = 0
}

// Drop ends dragging and, for plain text, starts loading f in place of any
// pending load. Other media types are rejected with an UnsupportedMime
// error and leave the pending load untouched.
func (c *Ingestion) Drop(f File) error {
	c.drag = 0

	if !IsPlainText(f.MIME) {
		return errors.NewDocumentError("unsupported media type", f.MIME, errors.UnsupportedMime, nil)
	}

	if c.pending != nil {
		c.pending.Cancel()
	}
	c.pending = c.loader.Load(f)
	return nil
}

// Poll hands over the text of a finished load. ok is false while nothing
// is pending or the load is still running. A failed load is cleared and
// its error returned.
func (c *Ingestion) Poll() (text string, ok bool, err error) {
	if c.pending == nil {
		return "", false, nil
	}
	text, done, err := c.pending.Poll()
	if !done {
		return "", false, nil
	}
	c.pending = nil
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// Dragging returns the drag counter
func (c *Ingestion) Dragging() int {
	return c.drag
}

// HasPending reports whether a load is outstanding
func (c *Ingestion) HasPending() bool {
	return c.pending != nil
}
