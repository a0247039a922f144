package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/aledsdavies/frontc/pkgs/errors"
)

// watchFile calls onChange each time path is written or replaced, until ctx
// is done. The parent directory is watched so editors that save by
// renaming over the file are still seen.
func watchFile(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewWatchError(path, err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.NewWatchError(path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return errors.NewWatchError(path, err)
		}
	}
}
