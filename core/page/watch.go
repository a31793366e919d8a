// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// watchDebounce batches the bursts of events editors produce on save.
	watchDebounce = 150 * time.Millisecond
	// watchMaxDelay bounds the wait for a file that keeps changing.
	watchMaxDelay = time.Second
)

// pendingChange tracks the first and latest event for one file.
type pendingChange struct {
	first, last time.Time
}

// Watch reloads pages whose files change under the content directory until
// ctx is done.
func (l *Library) Watch(ctx context.Context) error {
	if l.dir == "" {
		return ErrLibraryNotConfigured
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := l.watchTree(watcher, l.dir); err != nil {
		return err
	}

	l.logger.Info().Str("dir", l.dir).Msg("Watching content for changes")

	if l.watchReady != nil {
		l.watchReady()
	}

	pending := make(map[string]pendingChange)

	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			l.handleEvent(watcher, event, pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			l.logger.Warn().Err(err).Msg("Content watcher error")

		case now := <-ticker.C:
			for file, change := range pending {
				if now.Sub(change.last) < watchDebounce && now.Sub(change.first) < watchMaxDelay {
					continue
				}

				delete(pending, file)
				l.reloadFile(file)
			}
		}
	}
}

func (l *Library) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return watcher.Add(p)
	})
}

func (l *Library) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event, pending map[string]pendingChange) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := l.watchTree(watcher, event.Name); err != nil {
				l.logger.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch new directory")
			}

			return
		}
	}

	if !strings.HasSuffix(event.Name, mdExt) {
		return
	}

	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		now := time.Now()

		change, ok := pending[event.Name]
		if !ok {
			change.first = now
		}

		change.last = now
		pending[event.Name] = change
	}
}

func (l *Library) reloadFile(file string) {
	rel, err := filepath.Rel(l.dir, file)
	if err != nil {
		return
	}

	pagePath, err := CleanPath(filepath.ToSlash(rel))
	if err != nil {
		return
	}

	if err := l.Reload(pagePath); err != nil {
		l.logger.Warn().Err(err).Str("page", pagePath).Msg("Failed to reload page")

		return
	}

	l.logger.Debug().Str("page", pagePath).Msg("Reloaded page")
}
