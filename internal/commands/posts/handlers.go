// Package postscmd exposes post index operations as go-command handlers.
package postscmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	buildIndexOperation      = "posts.build_index"
	generateSitemapOperation = "posts.generate_sitemap"
)

var (
	_ command.Commander[BuildIndexCommand]      = (*BuildIndexHandler)(nil)
	_ command.Commander[GenerateSitemapCommand] = (*GenerateSitemapHandler)(nil)
)

// IndexService is the part of posts.Service the build handler needs.
type IndexService interface {
	ListSlugs(ctx context.Context) ([]string, error)
	Refresh(ctx context.Context) error
	Report() *posts.BuildReport
}

// SitemapWriter renders and stores the sitemap.
type SitemapWriter interface {
	WriteFile(ctx context.Context, path string) error
}

// BuildIndexHandler builds or refreshes the post index.
type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

// NewBuildIndexHandler binds the handler to service.
func NewBuildIndexHandler(service IndexService, logger interfaces.Logger, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		if msg.Refresh {
			if err := service.Refresh(ctx); err != nil {
				return err
			}
		}
		// ListSlugs builds the first snapshot when none exists yet.
		slugs, err := service.ListSlugs(ctx)
		if err != nil {
			return err
		}

		report := service.Report()
		fields := map[string]any{"posts": len(slugs)}
		if report != nil {
			fields["build_id"] = report.BuildID
			fields["failed"] = len(report.Failures())
		}
		logging.WithFields(logger, fields).Info("posts.command.build_index.completed")

		if msg.ResultCallback != nil {
			msg.ResultCallback(BuildIndexResult{Slugs: slugs, Report: report})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildIndexCommand]{
		commands.WithLogger[BuildIndexCommand](logger),
		commands.WithOperation[BuildIndexCommand](buildIndexOperation),
		commands.WithMessageFields[BuildIndexCommand](func(msg BuildIndexCommand) map[string]any {
			return map[string]any{"refresh": msg.Refresh}
		}),
		commands.WithTelemetry[BuildIndexCommand](commands.LogTelemetry[BuildIndexCommand]()),
	}
	return &BuildIndexHandler{
		inner: commands.NewHandler[BuildIndexCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[BuildIndexCommand].
func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// GenerateSitemapHandler writes the sitemap file.
type GenerateSitemapHandler struct {
	inner *commands.Handler[GenerateSitemapCommand]
}

// NewGenerateSitemapHandler binds the handler to writer.
func NewGenerateSitemapHandler(writer SitemapWriter, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateSitemapCommand]) *GenerateSitemapHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg GenerateSitemapCommand) error {
		return writer.WriteFile(ctx, msg.OutputPath)
	}

	handlerOpts := []commands.HandlerOption[GenerateSitemapCommand]{
		commands.WithLogger[GenerateSitemapCommand](logger),
		commands.WithOperation[GenerateSitemapCommand](generateSitemapOperation),
		commands.WithMessageFields[GenerateSitemapCommand](func(msg GenerateSitemapCommand) map[string]any {
			return map[string]any{"output_path": msg.OutputPath}
		}),
		commands.WithTelemetry[GenerateSitemapCommand](commands.LogTelemetry[GenerateSitemapCommand]()),
	}
	return &GenerateSitemapHandler{
		inner: commands.NewHandler[GenerateSitemapCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[GenerateSitemapCommand].
func (h *GenerateSitemapHandler) Execute(ctx context.Context, msg GenerateSitemapCommand) error {
	return h.inner.Execute(ctx, msg)
}
