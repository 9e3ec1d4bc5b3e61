package logger

import "go.uber.org/zap"

const (
	FieldSession = "session_id"
	// FieldRule names the dialogue rule that produced a reply.
	FieldRule = "rule"
)

// SessionFields identifies a screening session and, once chosen, the reply rule.
func SessionFields(sessionID, rule string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSession, Value: sessionID},
		StringField{Key: FieldRule, Value: rule},
	)
}

// WithSession tags every entry of logger with the session id.
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return WithFields(logger, SessionFields(sessionID, "")...)
}
