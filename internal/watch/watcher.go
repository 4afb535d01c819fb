package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"mirrorpick/internal/errors"
	"mirrorpick/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the watched file was written or replaced.
type Change struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors a single file for changes using fsnotify.
// The parent directory is watched so editors that replace the file are noticed.
type Watcher struct {
	path string
	dir  string

	changes   chan Change
	stopChan  chan struct{}
	done      chan struct{}
	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
	closed  bool
}

// New creates a watcher for path. The file may not exist yet, its directory must.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewFileError("invalid watch path", path, errors.InvalidPath, err)
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewFileError("error accessing directory", dir, errors.FileNotFound, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, errors.NewFileError("failed to watch directory", dir, errors.FileAccessDenied, err)
	}

	return &Watcher{
		path:      abs,
		dir:       dir,
		changes:   make(chan Change, 10),
		fsWatcher: fsWatcher,
	}, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers change events. It is closed once the watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}
	if w.closed {
		return errors.New("watcher already stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop()

	log.LogWithFields(log.F("file", w.path)).Info("Watching config file")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// a file renamed over the path arrives as Create; renaming it away is
			// ignored until the replacement shows up
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}

			change := Change{Path: w.path, Timestamp: time.Now(), Op: event.Op}

			// Never block the event loop on a slow consumer.
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogError(err, "fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher, waits for the event loop to exit and releases the fsnotify
// watcher. It is safe on a watcher that was never started.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	started := w.running
	w.running = false
	if started {
		close(w.stopChan)
	}
	w.mutex.Unlock()

	if started {
		<-w.done
	} else {
		close(w.changes)
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Error("Error closing fsnotify watcher")
	}
	log.Info("Watcher stopped.")
}
