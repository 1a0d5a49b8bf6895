package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one finished execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is called after each execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// LogTelemetry logs the outcome and duration of each execution.
func LogTelemetry[T command.Message]() Telemetry[T] {
	return func(_ context.Context, _ T, info TelemetryInfo) {
		logger := info.Logger
		if logger == nil {
			logger = logging.NoOp()
		}
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case TelemetryStatusSuccess:
			logger.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
		default:
			logger.Error("command.execute.failed", append(args, "error", info.Error)...)
		}
	}
}
