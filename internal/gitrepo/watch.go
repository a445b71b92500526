package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// headDebounce coalesces the burst of ref writes a single git operation
// produces into one notification.
const headDebounce = 500 * time.Millisecond

// HeadWatcher notifies when the repository HEAD moves, which is when a new
// commit, checkout, or fetch lands. It uses fsnotify on the .git metadata
// files with a polling fallback for missed events.
type HeadWatcher struct {
	gitDir  string
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	closed  bool
}

// NewHeadWatcher creates a HeadWatcher for the repository rooted at root.
func NewHeadWatcher(root string) (*HeadWatcher, error) {
	gitDir := filepath.Join(root, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return nil, fmt.Errorf("locating .git directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &HeadWatcher{gitDir: gitDir, watcher: watcher}
	for _, dir := range w.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			logDebug("[gitrepo] cannot watch %s: %v", dir, err)
		}
	}
	return w, nil
}

// watchDirs lists the metadata directories whose writes signal HEAD
// movement. refs/heads covers branch updates; the .git root covers HEAD
// itself and packed-refs.
func (w *HeadWatcher) watchDirs() []string {
	return []string{
		w.gitDir,
		filepath.Join(w.gitDir, "refs", "heads"),
	}
}

// Watch streams a notification each time HEAD moves. The channel is closed
// when the context is cancelled or Close is called. Rapid event bursts are
// debounced into a single notification.
func (w *HeadWatcher) Watch(ctx context.Context) <-chan struct{} {
	ticks := make(chan struct{}, 1)

	go w.watchLoop(ctx, ticks)

	return ticks
}

func (w *HeadWatcher) watchLoop(ctx context.Context, ticks chan<- struct{}) {
	defer close(ticks)

	lastHead := w.readHead()
	var debounce *time.Timer
	var debounceC <-chan time.Time

	// Poll periodically as backup for missed events
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	notify := func() {
		if debounce == nil {
			debounce = time.NewTimer(headDebounce)
			debounceC = debounce.C
			return
		}
		debounce.Reset(headDebounce)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.isHeadEvent(event) {
				notify()
			}
		case <-debounceC:
			debounce = nil
			debounceC = nil
			if head := w.readHead(); head != lastHead {
				lastHead = head
				select {
				case ticks <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		case <-ticker.C:
			if head := w.readHead(); head != lastHead {
				lastHead = head
				select {
				case ticks <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logDebug("[gitrepo] watcher error: %v", err)
			// Continue on errors, polling will handle detection
		}
	}
}

// isHeadEvent reports whether a filesystem event can move HEAD.
func (w *HeadWatcher) isHeadEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if name == "HEAD" || name == "packed-refs" {
		return true
	}
	return filepath.Dir(event.Name) == filepath.Join(w.gitDir, "refs", "heads")
}

// readHead returns a fingerprint of the current HEAD state: the HEAD file
// content plus the referenced branch tip, when resolvable.
func (w *HeadWatcher) readHead() string {
	data, err := os.ReadFile(filepath.Join(w.gitDir, "HEAD"))
	if err != nil {
		return ""
	}
	head := string(data)

	if ref, ok := strings.CutPrefix(head, "ref: "); ok {
		ref = strings.TrimSpace(ref)
		if tip, err := os.ReadFile(filepath.Join(w.gitDir, filepath.FromSlash(ref))); err == nil {
			head += string(tip)
		}
	}
	return head
}

// Close stops the watcher and releases resources.
func (w *HeadWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
