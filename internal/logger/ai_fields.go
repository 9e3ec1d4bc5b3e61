package logger

import "go.uber.org/zap"

const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

// CommonFields describes the model used for assisted extraction.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields tags every entry of logger with the provider and model.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}
