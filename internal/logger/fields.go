package logger

import (
	"strings"

	"go.uber.org/zap"
)

// StringField is a key/value pair that becomes a zap.String when both parts are set.
type StringField struct {
	Key   string
	Value string
}

// StringFields turns pairs into zap fields. Blank keys and values are skipped so
// optional context (an unknown model, a rule not chosen yet) leaves no empty keys.
func StringFields(pairs ...StringField) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs))
	for _, pair := range pairs {
		key, value := strings.TrimSpace(pair.Key), strings.TrimSpace(pair.Value)
		if key != "" && value != "" {
			fields = append(fields, zap.String(key, value))
		}
	}
	return fields
}

// WithFields returns logger with fields attached. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	switch {
	case logger == nil:
		logger = zap.NewNop()
	case len(fields) == 0:
		return logger
	}
	return logger.With(fields...)
}
