// Package di wires the blog runtime from a validated configuration.
package di

import (
	"io"
	"io/fs"
	"os"
	"strings"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/logging/zerologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/metrics"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/source"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Container holds every runtime component of one blog build.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	fsys           fs.FS
	gitRunner      source.Runner

	reader   *source.Reader
	builder  *posts.Builder
	service  *posts.Service
	recorder *metrics.Recorder
	parser   *markdown.GoldmarkParser
	sitemap  *generator.SitemapGenerator
	feeds    *generator.FeedGenerator
	commands *postscmd.HandlerSet
}

// Option overrides a default dependency.
type Option func(*Container)

// WithLoggerProvider replaces the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter sends console and zerolog output to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithFS reads posts from fsys instead of the posts directory.
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.fsys = fsys
	}
}

// WithGitRunner replaces the exec based history lookup.
func WithGitRunner(runner source.Runner) Option {
	return func(c *Container) {
		c.gitRunner = runner
	}
}

// NewContainer validates cfg and builds the component graph. Nothing is
// read from disk until the first post query.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureSource()
	c.configurePosts()
	c.configureGenerator()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"posts_dir", cfg.Posts.Dir,
		"history", cfg.History.Enabled,
		"logging_provider", cfg.Logging.Provider,
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(cfg)
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "zerolog":
		c.loggerProvider = zerologger.NewProvider(cfg, c.logWriter)
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureSource() {
	cfg := c.Config
	logger := logging.SourceLogger(c.loggerProvider)

	fsys := c.fsys
	if fsys == nil {
		fsys = os.DirFS(cfg.Posts.Dir)
	}

	var steps []source.DateStep
	if cfg.History.Enabled {
		gitOpts := []source.GitOption{source.WithGitLogger(logger)}
		if c.gitRunner != nil {
			gitOpts = append(gitOpts, source.WithRunner(c.gitRunner))
		}
		steps = append(steps, source.DateStep{
			Source: interfaces.DateSourceGit,
			Resolver: source.NewGitResolver(source.GitConfig{
				Dir:     cfg.Posts.Dir,
				Binary:  cfg.History.Binary,
				Timeout: cfg.History.Timeout,
				Retries: cfg.History.Retries,
			}, gitOpts...),
		})
	}
	steps = append(steps, source.DateStep{
		Source:   interfaces.DateSourceFilesystem,
		Resolver: source.NewFileInfoResolver(fsys, logger),
	})

	c.reader = source.NewReader(
		source.Config{Dir: cfg.Posts.Dir, Pattern: cfg.Posts.Pattern},
		source.WithFS(fsys),
		source.WithLogger(logger),
		source.WithDateChain(source.NewDateChain(logger, steps...)),
	)
}

func (c *Container) configurePosts() {
	logger := logging.PostsLogger(c.loggerProvider)
	c.recorder = metrics.NewRecorder()
	c.builder = posts.NewBuilder(c.reader,
		posts.WithWorkers(c.Config.Build.Workers),
		posts.WithBuilderLogger(logger),
		posts.WithObserver(c.recorder),
	)
	c.service = posts.NewService(c.builder, logger)
}

func (c *Container) configureGenerator() {
	render := c.Config.Render
	c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: render.Extensions,
		HardWraps:  render.HardWraps,
		SafeMode:   render.SafeMode,
	})
	logger := logging.GeneratorLogger(c.loggerProvider)
	c.sitemap = generator.NewSitemapGenerator(c.service, c.Config.Site, logger)
	c.feeds = generator.NewFeedGenerator(c.service, c.Config.Site, logger)
}

func (c *Container) configureCommands() error {
	set, err := postscmd.RegisterPostCommands(nil, c.service, c.sitemap, c.loggerProvider)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// LoggerProvider returns the active logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Reader returns the source reader.
func (c *Container) Reader() *source.Reader { return c.reader }

// PostService returns the post index service.
func (c *Container) PostService() *posts.Service { return c.service }

// Metrics returns the build metrics recorder.
func (c *Container) Metrics() *metrics.Recorder { return c.recorder }

// Parser returns the Markdown renderer.
func (c *Container) Parser() *markdown.GoldmarkParser { return c.parser }

// Sitemap returns the sitemap generator.
func (c *Container) Sitemap() *generator.SitemapGenerator { return c.sitemap }

// Feeds returns the RSS and Atom feed generator.
func (c *Container) Feeds() *generator.FeedGenerator { return c.feeds }

// Commands returns the post command handlers.
func (c *Container) Commands() *postscmd.HandlerSet { return c.commands }
