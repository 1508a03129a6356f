//go:build !nogui
// +build !nogui

// Package gui is the desktop front end: a fyne window that accepts dropped
// files, turns the mouse wheel into speed changes and draws a frame of the
// reader sixty times a second.
package gui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"speedread/internal/config"
	"speedread/internal/draw"
	"speedread/internal/log"
	"speedread/internal/mimetype"
	"speedread/internal/reader"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/storage"
)

// FrameRate is the number of frames drawn per second
const FrameRate = 60

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	surface    *Surface
	reader     *reader.Reader
	classifier *mimetype.Classifier
	log        *log.Logger

	// mu serializes reader access between fyne's event callbacks and the
	// frame ticker
	mu   sync.Mutex
	last time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// Run opens the window and blocks until it is closed or ctx is done
func Run(ctx context.Context, cfg *config.Config, r *reader.Reader, logger *log.Logger) error {
	a, err := NewApp(cfg, r, logger)
	if err != nil {
		return err
	}
	a.Run(ctx)
	return nil
}

// NewApp creates the application around r
func NewApp(cfg *config.Config, r *reader.Reader, logger *log.Logger) (*App, error) {
	return NewAppWith(app.NewWithID("io.github.speedread"), cfg, r, logger)
}

// NewAppWith creates the application on an existing fyne app
func NewAppWith(fyneApp fyne.App, cfg *config.Config, r *reader.Reader, logger *log.Logger) (*App, error) {
	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, fmt.Errorf("failed to compile mime patterns: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	a := &App{
		fyneApp:    fyneApp,
		reader:     r,
		classifier: classifier,
		log:        logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	a.surface = NewSurface(r.Theme().Background)
	a.surface.OnScrolled = a.Scroll

	a.window = fyneApp.NewWindow(cfg.Window.Title)
	a.window.SetPadded(false)
	a.window.SetContent(a.surface)
	a.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.Drop(uris)
	})
	return a, nil
}

// Run starts the frame clock, shows the window and blocks until the
// application quits. Cancelling ctx quits the application.
func (a *App) Run(ctx context.Context) {
	a.Start()
	a.QuitOn(ctx)
	a.window.ShowAndRun()
	a.Stop()
}

// QuitOn quits the application once ctx is done. The watch ends when the
// frame clock is stopped.
func (a *App) QuitOn(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			a.log.Info("shutting down")
			a.Quit()
		case <-a.stop:
		}
	}()
}

// Quit stops the frame clock and ends the fyne event loop
func (a *App) Quit() {
	a.Stop()
	a.fyneApp.Quit()
}

// Running reports whether the frame clock is ticking
func (a *App) Running() bool {
	select {
	case <-a.stop:
		return false
	default:
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

// Start begins rendering frames on a ticker
func (a *App) Start() {
	a.startOnce.Do(func() {
		a.mu.Lock()
		a.started = true
		a.mu.Unlock()
		go a.loop()
	})
}

func (a *App) loop() {
	defer close(a.done)

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			a.Frame(a.elapsed(now))
		case <-a.stop:
			return
		}
	}
}

// Stop halts the frame clock started by Start
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
		a.mu.Lock()
		started := a.started
		a.mu.Unlock()
		if started {
			<-a.done
		}
		a.log.Debug("frame clock stopped")
	})
}

func (a *App) elapsed(now time.Time) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var dt float64
	if !a.last.IsZero() {
		dt = now.Sub(a.last).Seconds()
	}
	a.last = now
	return dt
}

// Frame runs the reader for dt seconds and redraws the surface
func (a *App) Frame(dt float64) {
	size := a.surface.Size()
	bounds := draw.Bounds{Width: size.Width, Height: size.Height}

	a.mu.Lock()
	intents := a.reader.Render(dt, bounds)
	a.mu.Unlock()

	a.surface.SetIntents(intents)
}

// Drop hands each dropped URI to the reader in order; the last accepted
// one is the document that loads.
func (a *App) Drop(uris []fyne.URI) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, uri := range uris {
		a.reader.OnDrop(a.fileFromURI(uri))
	}
}

// Scroll changes the speed in the direction of a wheel delta
func (a *App) Scroll(dy float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reader.OnScroll(float64(dy))
}

func (a *App) fileFromURI(uri fyne.URI) reader.File {
	return reader.File{
		Name: uri.Name(),
		MIME: a.classifier.Classify(uri.Name(), uri.MimeType()),
		Open: func() (io.ReadCloser, error) {
			return storage.Reader(uri)
		},
	}
}

// Window returns the main window
func (a *App) Window() fyne.Window { return a.window }

// Surface returns the drawing surface
func (a *App) Surface() *Surface { return a.surface }
