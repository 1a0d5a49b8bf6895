package posts

import (
	"context"
	"runtime"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Source is the file access a build needs.
type Source interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadRaw(ctx context.Context, name string) (string, error)
	ResolveDate(ctx context.Context, name string) (time.Time, interfaces.DateSource, bool)
}

// BuildObserver receives the report of every finished build.
type BuildObserver interface {
	ObserveBuild(report *BuildReport)
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithWorkers bounds concurrent file loads. Values below one select
// runtime.NumCPU().
func WithWorkers(workers int) BuilderOption {
	return func(b *Builder) {
		b.workers = workers
	}
}

// WithBuilderLogger sets the builder logger.
func WithBuilderLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithObserver registers a build observer such as a metrics recorder.
func WithObserver(observer BuildObserver) BuilderOption {
	return func(b *Builder) {
		if observer != nil {
			b.observers = append(b.observers, observer)
		}
	}
}

// WithClock overrides the build clock.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides build identifiers.
func WithIDGenerator(next func() string) BuilderOption {
	return func(b *Builder) {
		if next != nil {
			b.newID = next
		}
	}
}

// Builder loads every post of a Source.
type Builder struct {
	source    Source
	workers   int
	logger    interfaces.Logger
	observers []BuildObserver
	now       func() time.Time
	newID     func() string
}

// NewBuilder returns a Builder reading from source.
func NewBuilder(source Source, opts ...BuilderOption) *Builder {
	b := &Builder{
		source: source,
		logger: logging.NoOp(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = runtime.NumCPU()
	}
	return b
}

type loaded struct {
	post interfaces.Post
	file string
}

// BuildAll loads every listed file and returns the posts in listing order.
// Files that fail to load are missing from the result and recorded in the
// report. A listing failure or a cancelled context returns no posts.
func (b *Builder) BuildAll(ctx context.Context) ([]interfaces.Post, *BuildReport, error) {
	buildID := b.newID()
	started := b.now()
	logger := logging.WithBuildID(b.logger, buildID).WithContext(ctx)

	names, err := b.source.ListFiles(ctx)
	if err != nil {
		logger.Error("posts.build.source_unavailable", "error", err)
		return nil, nil, err
	}

	report := newBuildReport(buildID, started, len(names))
	slots := make([]*loaded, len(names))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)
	for i, name := range names {
		group.Go(func() error {
			post, from, loadErr := b.load(groupCtx, name)
			if loadErr != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("posts.build.file_failed", "file", name, "error", loadErr)
				report.recordFailure(loadFailed(name, loadErr))
				return nil
			}

			validSlug := isURLSafe(post.Slug)
			postLogger := logging.WithPostContext(logger, name, post.Slug, string(from))
			if post.Title == interfaces.UntitledPost {
				postLogger.Warn("posts.title.missing")
			}
			if !validSlug {
				postLogger.Warn("posts.slug.not_url_safe")
			}
			postLogger.Debug("posts.build.file_loaded")

			report.recordPost(post, from, validSlug)
			slots[i] = &loaded{post: post, file: name}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("posts.build.cancelled", "error", err)
		return nil, nil, err
	}

	posts := make([]interfaces.Post, 0, len(names))
	firstFile := make(map[string]string, len(names))
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if kept, exists := firstFile[slot.post.Slug]; exists {
			logger.Warn("posts.build.duplicate_slug", "slug", slot.post.Slug, "file", slot.file, "kept_file", kept)
			report.recordFailure(duplicateSlug(slot.post.Slug, kept, slot.file))
			continue
		}
		firstFile[slot.post.Slug] = slot.file
		posts = append(posts, slot.post)
	}

	report.Posts = len(posts)
	report.FinishedAt = b.now()
	logger.Info("posts.build.completed",
		"files", report.Files,
		"posts", report.Posts,
		"failed", len(report.Failures()),
		"duration", report.Duration(),
	)
	for _, observer := range b.observers {
		observer.ObserveBuild(report)
	}
	return posts, report, nil
}

func (b *Builder) load(ctx context.Context, name string) (interfaces.Post, interfaces.DateSource, error) {
	content, err := b.source.ReadRaw(ctx, name)
	if err != nil {
		return interfaces.Post{}, interfaces.DateSourceNone, err
	}

	post := interfaces.Post{
		Slug:    SlugFromFile(name),
		Title:   ExtractTitle(content),
		Content: content,
	}
	modified, from, ok := b.source.ResolveDate(ctx, name)
	if ok {
		post.UpdatedDate = &modified
	}
	return post, from, nil
}

func isURLSafe(value string) bool {
	normalized, err := slug.Normalize(value)
	return err == nil && normalized == value
}
