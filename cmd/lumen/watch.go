package main

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// watch re-checks each file whenever it is written, until ctx is done.
func (c *checker) watch(ctx context.Context, log *zap.Logger, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return err
		}
	}
	c.report(c.checkFiles(paths))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			c.report(c.checkFile(ev.Name))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch failed", zap.Error(err))
		}
	}
}

func (c *checker) report(err error) {
	if err == nil {
		return
	}
	for _, err := range multierr.Errors(err) {
		fmt.Fprintln(c.stderr, err)
	}
}
