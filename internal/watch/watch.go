// Package watch monitors source files and re-triggers analysis when
// their content actually changes. Events are debounced, and file content
// is fingerprinted so editors that rewrite files without changing them
// do not cause re-analysis.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/debug"
)

// defaultInclude covers the analyzable source extensions when the
// project config does not narrow the set.
var defaultInclude = []string{
	"**/*.py",
	"**/*.js",
	"**/*.jsx",
	"**/*.mjs",
	"**/*.java",
	"**/*.c",
	"**/*.cc",
	"**/*.cpp",
	"**/*.cxx",
	"**/*.h",
	"**/*.hpp",
}

// Watcher monitors a directory tree for source changes.
type Watcher struct {
	watcher   *fsnotify.Watcher
	cfg       *config.Config
	root      string
	debouncer *changeDebouncer
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	onChanged func(path string)
	onRemoved func(path string)

	mu           sync.Mutex
	fingerprints map[string]uint64
}

// New creates a watcher rooted at root. Call SetCallbacks then Start.
func New(cfg *config.Config, root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:      fsw,
		cfg:          cfg,
		root:         root,
		ctx:          ctx,
		cancel:       cancel,
		fingerprints: make(map[string]uint64),
	}
	w.debouncer = newChangeDebouncer(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, w)
	return w, nil
}

// SetCallbacks installs the handlers invoked after debouncing. onChanged
// fires for created and modified files whose content fingerprint moved;
// onRemoved fires for deleted files. Either may be nil.
func (w *Watcher) SetCallbacks(onChanged, onRemoved func(path string)) {
	w.onChanged = onChanged
	w.onRemoved = onRemoved
}

// Start registers watches over the whole tree and begins processing
// events until Stop is called.
func (w *Watcher) Start() error {
	debug.LogWatch("starting watcher at %s\n", w.root)

	if err := w.addWatches(w.root); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", w.root, err)
	}

	w.wg.Add(1)
	go w.processEvents()

	w.wg.Add(1)
	go w.debouncer.run(w.ctx, &w.wg)

	return nil
}

// Stop shuts the watcher down and waits for its goroutines to exit.
// Events still pending in the debounce window are dropped; flushing them
// here could invoke callbacks into a caller that is already tearing
// down. Stopping the debouncer also waits out any flush already in
// flight, so no callback runs after Stop returns.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()
	w.debouncer.stop()
	w.wg.Wait()
	debug.LogWatch("watcher stopped\n")
	return err
}

// addWatches recursively registers every directory under root. fsnotify
// watches are not recursive on their own.
func (w *Watcher) addWatches(root string) error {
	// Symlink cycles would make the walk run forever.
	visited := make(map[string]bool)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if !info.IsDir() {
			return nil
		}

		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visited[real] {
			return filepath.SkipDir
		}
		visited[real] = true

		if w.shouldIgnoreDirectory(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			debug.LogWatch("failed to add watch for %s: %v\n", path, err)
			return nil
		}
		return nil
	})
}

// shouldIgnoreDirectory checks a directory against the exclude patterns.
func (w *Watcher) shouldIgnoreDirectory(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.cfg.Exclude {
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimPrefix(dirPattern, "**/")
		if matched, _ := filepath.Match(dirPattern, base); matched {
			return true
		}
	}
	return false
}

// shouldProcessPath checks a file against the include and exclude globs.
// Matching runs against the path relative to the watch root.
func (w *Watcher) shouldProcessPath(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.cfg.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return false
		}
	}

	include := w.cfg.Include
	if len(include) == 0 {
		include = defaultInclude
	}
	for _, pattern := range include {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// processEvents drains fsnotify until shutdown.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogWatch("watcher error: %v\n", err)
		}
	}
}

// handleEvent routes one raw event into the debouncer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	info, err := os.Stat(path)
	if err != nil {
		// Stat failing usually means the path is gone.
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.shouldProcessPath(path) {
			w.debouncer.add(path, true)
		}
		return
	}

	if info.IsDir() {
		// New directories need their own watch to see files inside them.
		if event.Op&fsnotify.Create != 0 && !w.shouldIgnoreDirectory(path) {
			if err := w.watcher.Add(path); err != nil {
				debug.LogWatch("failed to watch new directory %s: %v\n", path, err)
			}
		}
		return
	}

	if info.Size() > int64(w.cfg.Analysis.MaxInputChars) {
		debug.LogWatch("skipping oversized file %s (%d bytes)\n", path, info.Size())
		return
	}
	if !w.shouldProcessPath(path) {
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		w.debouncer.add(path, false)
	}
}

// dispatch runs after the debounce window closes. Removed paths drop
// their fingerprint; surviving paths are re-read and only forwarded when
// their content hash moved.
func (w *Watcher) dispatch(events map[string]bool) {
	for path, removed := range events {
		if removed {
			w.mu.Lock()
			delete(w.fingerprints, path)
			w.mu.Unlock()
			if w.onRemoved != nil {
				w.onRemoved(path)
			}
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			debug.LogWatch("cannot read %s: %v\n", path, err)
			continue
		}

		sum := xxhash.Sum64(content)
		w.mu.Lock()
		prev, seen := w.fingerprints[path]
		w.fingerprints[path] = sum
		w.mu.Unlock()

		if seen && prev == sum {
			debug.LogWatch("content unchanged, skipping %s\n", path)
			continue
		}
		if w.onChanged != nil {
			w.onChanged(path)
		}
	}
}

// changeDebouncer collapses event bursts into one dispatch per path.
// The mutex is held across dispatch so stop can block until an in-flight
// flush has finished.
type changeDebouncer struct {
	mu       sync.Mutex
	events   map[string]bool // path -> removed
	debounce time.Duration
	timer    *time.Timer
	owner    *Watcher
	stopped  bool
}

func newChangeDebouncer(debounce time.Duration, owner *Watcher) *changeDebouncer {
	return &changeDebouncer{
		events:   make(map[string]bool),
		debounce: debounce,
		owner:    owner,
	}
}

// add records the latest event for a path and restarts the window.
// Events arriving after stop are dropped.
func (d *changeDebouncer) add(path string, removed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.events[path] = removed

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.flush)
}

// run keeps the debouncer alive until shutdown. Events pending at that
// point are intentionally lost; the watcher is going away anyway.
func (d *changeDebouncer) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	<-ctx.Done()
}

// stop fences the debouncer: the timer is disarmed, future adds and
// flushes become no-ops, and any flush already dispatching finishes
// before stop returns because it holds the same mutex.
func (d *changeDebouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// flush hands the accumulated batch to the watcher. The lock is held
// across dispatch; see the type comment.
func (d *changeDebouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	events := d.events
	d.events = make(map[string]bool)
	if len(events) == 0 {
		return
	}

	debug.LogWatch("dispatching %d debounced events\n", len(events))
	d.owner.dispatch(events)
}
