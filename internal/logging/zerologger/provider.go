// Package zerologger adapts github.com/rs/zerolog to the blog logging
// contract.
package zerologger

import (
	"context"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Provider shares one zerolog root between module loggers.
type Provider struct {
	root zerolog.Logger
}

// NewProvider writes JSON lines to w, or to stderr when w is nil. Format
// "console" switches to zerolog's human readable writer.
func NewProvider(cfg runtimeconfig.LoggingConfig, w io.Writer) *Provider {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		w = zerolog.ConsoleWriter{Out: w}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if cfg.AddSource {
		ctx = ctx.Caller()
	}
	root := ctx.Logger().Level(parseLevel(cfg.Level))
	return &Provider{root: root}
}

func parseLevel(level string) zerolog.Level {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "warning" {
		normalized = "warn"
	}
	if normalized == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(normalized)
	if err != nil {
		return zerolog.InfoLevel
	}
	return parsed
}

func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	child := p.root
	if name = strings.TrimSpace(name); name != "" {
		child = p.root.With().Str("logger", name).Logger()
	}
	return &adapter{inner: child}
}

type adapter struct {
	inner zerolog.Logger
	ctx   context.Context
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (a *adapter) Trace(msg string, args ...any) { a.emit(a.inner.Trace(), msg, args) }
func (a *adapter) Debug(msg string, args ...any) { a.emit(a.inner.Debug(), msg, args) }
func (a *adapter) Info(msg string, args ...any)  { a.emit(a.inner.Info(), msg, args) }
func (a *adapter) Warn(msg string, args ...any)  { a.emit(a.inner.Warn(), msg, args) }
func (a *adapter) Error(msg string, args ...any) { a.emit(a.inner.Error(), msg, args) }

// Fatal logs at fatal level without exiting; the CLI owns process exit.
func (a *adapter) Fatal(msg string, args ...any) {
	a.emit(a.inner.WithLevel(zerolog.FatalLevel), msg, args)
}

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	return &adapter{
		inner: a.inner.With().Fields(maps.Clone(fields)).Logger(),
		ctx:   a.ctx,
	}
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	return &adapter{inner: a.inner, ctx: ctx}
}

func (a *adapter) emit(event *zerolog.Event, msg string, args []any) {
	// nil when the level is disabled
	if event == nil {
		return
	}
	if fields := logging.ContextFields(a.ctx); len(fields) > 0 {
		event = event.Fields(fields)
	}
	if fields := logging.ArgsToFields(args); len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}
