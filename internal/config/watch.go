package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watch notifies onChange whenever the configuration file is written or
// replaced. Editors typically rename a temp file over the original, so the
// parent directory is watched rather than the file itself. The returned
// function stops the watcher.
func Watch(path string, onChange func()) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.WithField("file", path).Info("Configuration changed")
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithField("file", path).Warn("Config watcher error: ", err)
			}
		}
	}()

	return watcher.Close, nil
}
