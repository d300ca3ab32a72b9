// Package watch reports debounced batches of file changes under a set of
// roots, plus changes to a single configuration file.
package watch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phyten/todomark/internal/scan"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle. Editors often write a file several times per save.
const DefaultDebounce = 200 * time.Millisecond

// Editor swap files and build artifacts.
var ignoreSuffixes = []string{".swp", ".swx", "~", ".tmp", ".DS_Store", ".pyc", ".o", ".so", ".dylib"}

// Batch is one settled set of changes.
type Batch struct {
	// Paths holds the changed files, sorted and without duplicates.
	Paths []string
	// Config is set when the configuration file changed.
	Config bool
}

type Options struct {
	Debounce   time.Duration
	ConfigFile string
	Logger     *log.Logger
}

type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	config   string
	logger   *log.Logger

	mu      sync.Mutex
	dirs    []string
	files   map[string]bool
	done    chan struct{}
	stopped bool
}

func New(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fw:       fw,
		debounce: debounce,
		logger:   logger,
		files:    make(map[string]bool),
		done:     make(chan struct{}),
	}
	if opts.ConfigFile != "" {
		abs, err := filepath.Abs(opts.ConfigFile)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.config = abs
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Add watches roots. Directories are watched recursively, skipping the
// same directories the scanner skips; a file root watches only that file.
func (w *Watcher) Add(roots ...string) error {
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			w.mu.Lock()
			w.files[abs] = true
			w.mu.Unlock()
			if err := w.fw.Add(filepath.Dir(abs)); err != nil {
				return err
			}
			continue
		}
		w.mu.Lock()
		w.dirs = append(w.dirs, abs)
		w.mu.Unlock()
		if err := w.addTree(abs); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// skip inaccessible paths
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && scan.IgnoredDir(d.Name()) {
			return fs.SkipDir
		}
		return w.fw.Add(path)
	})
}

// Run delivers batches to onBatch until ctx is done or Stop is called.
// onBatch runs on the watcher goroutine; events arriving meanwhile are
// queued for the next batch.
func (w *Watcher) Run(ctx context.Context, onBatch func(Batch)) error {
	pending := make(map[string]bool)
	configChanged := false
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.underRoot(event.Name) && !scan.IgnoredDir(info.Name()) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Printf("watch %s: %v", event.Name, err)
					}
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(event.Name)
			switch {
			case w.config != "" && path == w.config:
				configChanged = true
			case w.relevant(path):
				pending[path] = true
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			batch := Batch{Config: configChanged, Paths: make([]string, 0, len(pending))}
			for p := range pending {
				batch.Paths = append(batch.Paths, p)
			}
			sort.Strings(batch.Paths)
			pending = make(map[string]bool)
			configChanged = false
			onBatch(batch)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("watch: %v", err)

		case <-ctx.Done():
			return ctx.Err()

		case <-w.done:
			return nil
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] {
		return true
	}
	for _, dir := range w.dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return !shouldIgnorePath(path[len(dir)+1:])
		}
	}
	return false
}

func (w *Watcher) underRoot(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, dir := range w.dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	err := w.fw.Close()
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}

// shouldIgnorePath reports swap files and paths inside skipped directories.
// rel is relative to a watched root.
func shouldIgnorePath(rel string) bool {
	base := filepath.Base(rel)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if scan.IgnoredDir(part) {
			return true
		}
	}
	return false
}
