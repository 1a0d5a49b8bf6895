package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const defaultDebounce = 300 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever a post changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := a.logger()
			service := a.module.Posts()

			slugs, err := service.ListSlugs(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "indexed %d posts, watching %s\n", len(slugs), a.cfg.Posts.Dir)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(a.cfg.Posts.Dir); err != nil {
				return err
			}

			pattern := a.cfg.Posts.Pattern
			if pattern == "" {
				pattern = "*.md"
			}

			rebuild := func(ctx context.Context) error {
				if err := service.Refresh(ctx); err != nil {
					return err
				}
				slugs, err := service.ListSlugs(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "rebuilt: %d posts\n", len(slugs))
				return nil
			}
			return watchPosts(ctx, watcher.Events, watcher.Errors, pattern, debounce, rebuild, logger)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before a rebuild")
	return cmd
}

// watchPosts runs rebuild once per burst of matching events. It returns
// when ctx is done or either channel closes.
func watchPosts(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, pattern string, debounce time.Duration, rebuild func(context.Context) error, logger interfaces.Logger) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !postChanged(event, pattern) {
				continue
			}
			logger.Debug("watch.change", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch.error", "error", err)
		case <-fire:
			fire = nil
			if err := rebuild(ctx); err != nil {
				logger.Error("watch.rebuild.failed", "error", err)
			}
		}
	}
}

func postChanged(event fsnotify.Event, pattern string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	matched, err := filepath.Match(pattern, filepath.Base(event.Name))
	return err == nil && matched
}
