package source

import (
	"context"
	"io/fs"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DateStep is one link of the date fallback chain.
type DateStep struct {
	Source   interfaces.DateSource
	Resolver interfaces.DateResolver
}

// DateChain asks each step in order and returns the first answer.
type DateChain struct {
	steps  []DateStep
	logger interfaces.Logger
}

// NewDateChain builds a chain; steps with a nil resolver are dropped.
func NewDateChain(logger interfaces.Logger, steps ...DateStep) *DateChain {
	if logger == nil {
		logger = logging.NoOp()
	}
	chain := &DateChain{logger: logger}
	for _, step := range steps {
		if step.Resolver != nil {
			chain.steps = append(chain.steps, step)
		}
	}
	return chain
}

// Resolve returns the first date a step produces together with the step
// that produced it. When every step fails it returns DateSourceNone.
func (c *DateChain) Resolve(ctx context.Context, name string) (time.Time, interfaces.DateSource, bool) {
	if c == nil {
		return time.Time{}, interfaces.DateSourceNone, false
	}
	for _, step := range c.steps {
		if modified, ok := step.Resolver.ResolveDate(ctx, name); ok {
			return modified, step.Source, true
		}
		c.logger.Debug("source.date.degraded", "file", name, "step", string(step.Source))
	}
	return time.Time{}, interfaces.DateSourceNone, false
}

// FileInfoResolver reads the modification time from the filesystem.
type FileInfoResolver struct {
	fsys   fs.FS
	logger interfaces.Logger
}

// NewFileInfoResolver resolves dates through fs.Stat on fsys.
func NewFileInfoResolver(fsys fs.FS, logger interfaces.Logger) *FileInfoResolver {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &FileInfoResolver{fsys: fsys, logger: logger}
}

func (r *FileInfoResolver) ResolveDate(ctx context.Context, name string) (time.Time, bool) {
	if r == nil || r.fsys == nil || ctx.Err() != nil {
		return time.Time{}, false
	}
	info, err := fs.Stat(r.fsys, name)
	if err != nil {
		r.logger.Debug("source.date.stat_failed", "file", name, "error", err)
		return time.Time{}, false
	}
	modified := info.ModTime()
	if modified.IsZero() {
		return time.Time{}, false
	}
	return modified, true
}
