// Package loader reads dropped files off the frame loop and decodes them
// as UTF-8 text.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"speedread/internal/errors"
	"speedread/internal/log"
	"speedread/internal/reader"
)

// DefaultMaxSize caps how much of a file is read.
const DefaultMaxSize = 64 << 20

// Loader starts one goroutine per load.
type Loader struct {
	ctx     context.Context
	maxSize int64
	log     *log.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithMaxSize limits the number of bytes read per file
func WithMaxSize(n int64) Option {
	return func(l *Loader) { l.maxSize = n }
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) { l.log = logger }
}

// New creates a loader. Cancelling ctx cancels every load it started.
func New(ctx context.Context, opts ...Option) *Loader {
	l := &Loader{
		ctx:     ctx,
		maxSize: DefaultMaxSize,
		log:     log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type result struct {
	text string
	err  error
}

// Handle is a pending load. It is polled from a single goroutine.
type Handle struct {
	done   chan result
	cancel context.CancelFunc
	res    *result
}

// Load starts reading f in the background.
func (l *Loader) Load(f reader.File) reader.Pending {
	ctx, cancel := context.WithCancel(l.ctx)
	h := &Handle{
		done:   make(chan result, 1),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		text, err := l.read(ctx, f)
		if ctx.Err() != nil && err == nil {
			err = ctx.Err()
		}
		h.done <- result{text: text, err: err}
	}()
	return h
}

// Poll reports the outcome once the read finished. It never blocks.
func (h *Handle) Poll() (string, bool, error) {
	if h.res == nil {
		select {
		case r := <-h.done:
			h.res = &r
		default:
			return "", false, nil
		}
	}
	return h.res.text, true, h.res.err
}

// Cancel abandons the load
func (h *Handle) Cancel() {
	h.cancel()
}

// Wait blocks until the load finished or ctx is done. It exists for
// callers outside a frame loop, such as tests.
func (h *Handle) Wait(ctx context.Context) (string, error) {
	if h.res == nil {
		select {
		case r := <-h.done:
			h.res = &r
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return h.res.text, h.res.err
}

func (l *Loader) read(ctx context.Context, f reader.File) (string, error) {
	if f.Open == nil {
		return "", errors.NewFileError("no content source", f.Name, errors.FileNotFound, nil)
	}
	rc, err := f.Open()
	if err != nil {
		return "", fileError(f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(contextReader{ctx: ctx, r: rc}, l.maxSize))
	if err != nil {
		return "", fileError(f.Name, err)
	}
	if int64(len(data)) == l.maxSize {
		data = trimPartialRune(data)
	}
	l.log.WithContext(ctx).With(log.F("file", f.Name), log.F("bytes", len(data))).Debug("read dropped file")
	return Decode(f.Name, data)
}

// trimPartialRune drops a multi-byte character cut off at the end of data.
func trimPartialRune(data []byte) []byte {
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				return data[:i]
			}
			break
		}
	}
	return data
}

// Decode validates data as UTF-8 and returns it as text.
func Decode(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.NewDocumentError("document is not valid UTF-8", name, errors.DecodeFailed,
			fmt.Errorf("invalid byte sequence at offset %d", invalidOffset(data)))
	}
	return string(data), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

func fileError(name string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case os.IsNotExist(err):
		return errors.NewFileError("file not found", name, errors.FileNotFound, err)
	case os.IsPermission(err):
		return errors.NewFileError("file access denied", name, errors.FileAccessDenied, err)
	default:
		return errors.NewFileError("failed to read file", name, errors.Unknown, err)
	}
}

// contextReader stops reading once ctx is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// OpenPath returns an opener for a file on disk
func OpenPath(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}
