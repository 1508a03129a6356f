// Package watch turns files appearing in an inbox directory into drops.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"speedread/internal/errors"
	"speedread/internal/loader"
	"speedread/internal/log"
	"speedread/internal/mimetype"
	"speedread/internal/reader"

	"github.com/fsnotify/fsnotify"
)

// Arrival is a file that was created or written in a watched directory
type Arrival struct {
	File      reader.File
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors directories for new files using fsnotify
type Watcher struct {
	classifier  *mimetype.Classifier
	directories []string
	arrivals    chan Arrival
	stopChan    chan struct{}
	done        chan struct{}
	fsWatcher   *fsnotify.Watcher
	log         *log.Logger

	// Guards running, stopped and directories
	mutex   sync.RWMutex
	running bool
	stopped bool
}

// New creates a directory watcher. Arrivals are typed with classifier.
func New(classifier *mimetype.Classifier, logger *log.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Watcher{
		classifier: classifier,
		arrivals:   make(chan Arrival, 10),
		fsWatcher:  fsWatcher,
		log:        logger,
	}, nil
}

// AddDirectory adds a directory to watch
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(err, "error accessing directory")
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()

	w.log.With(log.F("directory", dir)).Info("watching directory for drops")
	return nil
}

// Arrivals delivers files as they land. It is closed by Stop.
func (w *Watcher) Arrivals() <-chan Arrival {
	return w.arrivals
}

// Start begins processing fsnotify events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	if w.stopped {
		w.mutex.Unlock()
		return errors.New("watcher has been stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	stop, done := w.stopChan, w.done
	w.mutex.Unlock()

	go w.loop(stop, done)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer close(w.arrivals)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event, stop)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, stop <-chan struct{}) {
	// A copy shows up as Create followed by Writes; each one is forwarded
	// and the reader keeps only the latest load.
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		if !os.IsNotExist(err) {
			w.log.WithError(err).With(log.F("file", event.Name)).Warn("error stating file")
		}
		return
	}
	if info.IsDir() {
		return
	}

	arrival := Arrival{
		File:      FileFromPath(event.Name, w.classifier),
		Path:      event.Name,
		Op:        event.Op,
		Timestamp: time.Now(),
	}

	select {
	case w.arrivals <- arrival:
	case <-stop:
	default:
		w.log.With(log.F("file", event.Name)).Warn("arrival channel is full, dropped event")
	}
}

// Stop halts watching and closes the arrivals channel. A stopped watcher
// cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	if err := w.fsWatcher.Close(); err != nil {
		w.log.WithError(err).Error("error closing fsnotify watcher")
	}
	if !w.running {
		close(w.arrivals)
		return
	}
	close(w.stopChan)
	<-w.done
	w.running = false
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, len(w.directories))
	copy(dirs, w.directories)
	return dirs
}

// FileFromPath describes a file on disk as a drop, typed by its name.
func FileFromPath(path string, classifier *mimetype.Classifier) reader.File {
	return reader.File{
		Name: filepath.Base(path),
		MIME: classifier.Classify(path, ""),
		Open: loader.OpenPath(path),
	}
}
