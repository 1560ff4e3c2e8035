package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const watchDebounce = 200 * time.Millisecond

var watchNoLint bool

type watcher struct {
	app      *app
	fs       *fsnotify.Watcher
	files    map[string]bool
	pending  map[string]time.Time
	debounce time.Duration
	out      io.Writer
}

var watchCmd = &cobra.Command{
	Use:   "watch [files...]",
	Short: "Typify files every time they are saved",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger, !watchNoLint, os.Stderr)
		if err != nil {
			return err
		}
		w, err := newWatcher(a, args, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = w.fs.Close() }()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return w.run(ctx)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoLint, "no-lint", false, "do not ask the linter for hints")
}

// newWatcher watches the directories of files since editors often replace a
// file on save instead of writing to it.
func newWatcher(a *app, files []string, out io.Writer) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		app:      a,
		fs:       fs,
		files:    map[string]bool{},
		pending:  map[string]time.Time{},
		debounce: watchDebounce,
		out:      out,
	}
	dirs := map[string]bool{}
	for _, file := range files {
		path, err := filepath.Abs(file)
		if err != nil {
			_ = fs.Close()
			return nil, err
		}
		w.files[path] = true
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

func (w *watcher) run(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.app.logger.Error("watch error", zap.Error(err))
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return
	}
	w.pending[path] = time.Now()
}

// flush typifies files that have been quiet for the debounce duration. A file
// rewritten by typify triggers one more pass which finds nothing to do.
func (w *watcher) flush(ctx context.Context, now time.Time) {
	for path, changed := range w.pending {
		if now.Sub(changed) < w.debounce {
			continue
		}
		delete(w.pending, path)
		res, err := w.app.fixFile(ctx, path, fixOptions{})
		if err != nil {
			w.app.logger.Error("typify failed", zap.String("path", path), zap.Error(err))
			continue
		} else if res.edits > 0 {
			fmt.Fprintf(w.out, "%s: applied %d edits\n", path, res.edits)
		}
	}
}
