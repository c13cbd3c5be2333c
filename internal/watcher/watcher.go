// Package watcher tells the app when the repository's state may have
// changed so the diff pane can be refreshed ahead of the next poll.
//
// Only .git and its refs directories are watched, never the working tree,
// which keeps the number of inotify/kqueue watches small on any repository
// size. Staging, commits, checkouts, merges, rebases and fetches all touch
// one of them. Plain file edits are picked up by the app's refresh timer.
package watcher

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event signals that git state changed at least once since the last Event.
type Event struct{}

// Watcher coalesces filesystem events under a .git directory into Events.
type Watcher struct {
	fs       *fsnotify.Watcher
	events   chan Event
	done     chan struct{}
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching gitDir, the absolute path of the repository's git
// directory (for worktrees, the directory .git points to). Events are
// delivered after debounce plus up to half of it in random jitter, so that
// several instances on one repository do not refresh in lockstep.
func New(gitDir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	added := 0
	for _, dir := range watchDirs(gitDir) {
		if err := fsw.Add(dir); err != nil {
			logger.Debug("watch skipped", "path", dir, "err", err)
			continue
		}
		added++
	}
	if added == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("nothing to watch under %s", gitDir)
	}

	w := &Watcher{
		fs:       fsw,
		events:   make(chan Event, 1),
		done:     make(chan struct{}),
		debounce: debounce,
		logger:   logger,
	}
	go w.run()
	return w, nil
}

// Events is closed after Close.
func (w *Watcher) Events() <-chan Event { return w.events }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

// watchDirs lists the directories whose entries reflect git state: the git
// directory itself (HEAD, index, MERGE_HEAD, packed-refs...), refs, and one
// level of refs/remotes.
func watchDirs(gitDir string) []string {
	dirs := []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	remotes := filepath.Join(gitDir, "refs", "remotes")
	if entries, err := os.ReadDir(remotes); err == nil {
		dirs = append(dirs, remotes)
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, filepath.Join(remotes, e.Name()))
			}
		}
	}
	return slices.DeleteFunc(dirs, func(d string) bool {
		info, err := os.Stat(d)
		return err != nil || !info.IsDir()
	})
}

func (w *Watcher) run() {
	defer close(w.events)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	jitter := int64(max(w.debounce/2, 1))

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(ev.Name) {
				continue
			}
			w.logger.Debug("git state changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce + time.Duration(rand.Int64N(jitter)))

		case <-timer.C:
			select {
			case w.events <- Event{}:
			default: // an undelivered Event already covers this one
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)

		case <-w.done:
			return
		}
	}
}

var (
	noiseNames    = []string{"COMMIT_EDITMSG", "gc.log"}
	noisePrefixes = []string{".#", "fsmonitor"}
	noiseSuffixes = []string{".lock", ".swp", ".swo", "~"}
)

// relevant reports whether a change to path can alter what the app shows.
// Lock files only exist while git is mid-operation; the rest is editor or
// housekeeping noise.
func relevant(path string) bool {
	base := filepath.Base(path)
	if slices.Contains(noiseNames, base) {
		return false
	}
	for _, p := range noisePrefixes {
		if strings.HasPrefix(base, p) {
			return false
		}
	}
	for _, s := range noiseSuffixes {
		if strings.HasSuffix(base, s) {
			return false
		}
	}
	return true
}
