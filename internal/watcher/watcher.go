// Package watcher re-runs a pack whenever the watched source tree
// changes, with debouncing so bursts of writes trigger one rebuild.
package watcher

// Implementation Plan:
// 1. Use fsnotify on the root and every subdirectory
// 2. Debounce file system events (500ms)
// 3. Invoke the rebuild callback on debounce timeout
// 4. Handle errors gracefully (keep old output on failure)
// 5. Thread-safe start/stop

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceTime is how long the tree must stay quiet before a rebuild.
const debounceTime = 500 * time.Millisecond

// RebuildFunc regenerates the packed output.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a source tree and triggers rebuilds on change.
type Watcher struct {
	rootDir  string
	rebuild  RebuildFunc
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher over rootDir. Hidden directories and common
// build output directories are not watched.
func New(rootDir string, rebuild RebuildFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rootDir: rootDir,
		rebuild: rebuild,
		watcher: fw,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	if err := w.addDirs(); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addDirs registers the root and every non-skipped subdirectory.
// fsnotify does not recurse on its own.
func (w *Watcher) addDirs() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if skipDir(info.Name()) && path != w.rootDir {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// skipDir filters directories that churn without affecting packs.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	switch name {
	case "node_modules", "vendor", "target", "dist", "build", "__pycache__":
		return true
	}
	return false
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	rebuildCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories must be picked up for future events
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(filepath.Base(event.Name)) {
					_ = w.watcher.Add(event.Name)
				}
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(debounceTime, func() {
				select {
				case rebuildCh <- struct{}{}:
				default:
				}
			})

		case <-rebuildCh:
			w.triggerRebuild(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// triggerRebuild runs the rebuild callback, keeping the previous
// output when it fails.
func (w *Watcher) triggerRebuild(ctx context.Context) {
	log.Printf("Change detected, repacking...")
	start := time.Now()

	if err := w.rebuild(ctx); err != nil {
		log.Printf("Error repacking: %v (keeping previous output)", err)
		return
	}

	log.Printf("Repacked in %v", time.Since(start).Round(time.Millisecond))
}
