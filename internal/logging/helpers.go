package logging

import (
	"maps"
	"strconv"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns it unchanged otherwise. The map is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return fieldsLogger.WithFields(copied)
}

// ArgsToFields converts alternating key/value arguments into a map. A
// trailing key without value, or a non-string key, is stored under a
// positional "arg_N" name so nothing is dropped.
func ArgsToFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields[positionalKey(i)] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			fields[positionalKey(i+1)] = args[i+1]
			continue
		}
		fields[key] = args[i+1]
	}
	return fields
}

func positionalKey(index int) string {
	return "arg_" + strconv.Itoa(index)
}
