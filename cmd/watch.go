package cmd

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

	"github.com/chriserin/fspec/internal/config"
)

// settle is how long watch waits after the last change before syncing, so an
// editor's burst of writes triggers one sync.
const settle = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync whenever a spec document changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return RunWatch(ctx, cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// RunWatch syncs once, then again after every change to a document in the
// spec directory, until ctx is done.
func RunWatch(ctx context.Context, w io.Writer, c *config.Config) error {
	if err := requireInit(c); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", c.Dir, err)
	}
	if err := RunSync(w, c); err != nil {
		return err
	}

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDocumentEvent(c, event) {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change")
			timer.Reset(settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")

		case <-timer.C:
			if err := RunSync(w, c); err != nil {
				logger.Error().Err(err).Msg("sync failed")
			}
		}
	}
}

func isDocumentEvent(c *config.Config, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ok, _ := filepath.Match(c.Pattern, filepath.Base(event.Name))
	return ok
}
