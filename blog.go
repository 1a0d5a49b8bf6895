// Package blog turns a directory of Markdown files into a read-only,
// date-ordered post index.
package blog

import (
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/metrics"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Post exports the immutable post record.
type Post = interfaces.Post

// Adjacent exports the previous/next pair returned by GetAdjacent.
type Adjacent = interfaces.Adjacent

// Heading exports one table of contents entry.
type Heading = interfaces.Heading

// PostService exports the read-only query contract.
type PostService = interfaces.PostService

// BuildReport exports the per-build summary.
type BuildReport = posts.BuildReport

// ErrNotFound is matched by every unknown slug or vanished file.
var ErrNotFound = interfaces.ErrNotFound

// Module is the top level blog runtime.
type Module struct {
	container *di.Container
}

// New constructs a blog module from cfg. Options override the wired
// defaults (logger provider, filesystem, history runner).
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the post index service.
func (m *Module) Posts() *posts.Service {
	return m.container.PostService()
}

// Report returns the report of the current snapshot, nil before the
// first build.
func (m *Module) Report() *BuildReport {
	return m.container.PostService().Report()
}

// Parser returns the Markdown renderer configured from Render.
func (m *Module) Parser() *markdown.GoldmarkParser {
	return m.container.Parser()
}

// Headings lists the headings of a post body.
func (m *Module) Headings(content string) ([]Heading, error) {
	return markdown.Headings(content)
}

// Sitemap returns the sitemap generator.
func (m *Module) Sitemap() *generator.SitemapGenerator {
	return m.container.Sitemap()
}

// Feeds returns the RSS and Atom feed generator.
func (m *Module) Feeds() *generator.FeedGenerator {
	return m.container.Feeds()
}

// Metrics returns the build metrics recorder.
func (m *Module) Metrics() *metrics.Recorder {
	return m.container.Metrics()
}

// Commands returns the post command handlers.
func (m *Module) Commands() *postscmd.HandlerSet {
	return m.container.Commands()
}
