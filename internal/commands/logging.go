package commands

import (
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Logger returns the commands module logger tagged as a command component.
func Logger(provider interfaces.LoggerProvider) interfaces.Logger {
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component": "command",
	})
}
