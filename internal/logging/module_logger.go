package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	rootModule      = "blog"
	postsModule     = "blog.posts"
	sourceModule    = "blog.source"
	generatorModule = "blog.generator"
	commandsModule  = "blog.commands"
)

const (
	fieldPostFile  = "file"
	fieldPostSlug  = "slug"
	fieldBuildID   = "build_id"
	fieldDateStage = "date_source"
)

// ModuleLogger returns the logger registered for module, tagged with a
// "module" field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PostsLogger returns the logger namespace used by the post index.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// SourceLogger returns the logger namespace used by the source reader and
// date resolvers.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// GeneratorLogger returns the logger namespace used by sitemap generation.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// CommandsLogger returns the logger namespace used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithPostContext adds the source file, slug and date source of a post to
// logger. Empty values are skipped.
func WithPostContext(logger interfaces.Logger, file, slug, dateSource string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldPostFile] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPostSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(dateSource); trimmed != "" {
		fields[fieldDateStage] = trimmed
	}
	return WithFields(logger, fields)
}

// WithBuildID tags every entry of logger with the identifier of one build.
func WithBuildID(logger interfaces.Logger, id string) interfaces.Logger {
	if strings.TrimSpace(id) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldBuildID: id})
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
