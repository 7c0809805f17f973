package service

import "go.uber.org/zap"

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// zapLogger adapts zap.Logger to the Logger interface.
type zapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger as a service Logger
func NewZapLogger(logger *zap.Logger) Logger {
	return &zapLogger{logger: logger}
}

func (a *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues...)...)
}

func (a *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues...)...)
}

// toZapFields converts key-value pairs to zap fields. Non-string keys are skipped.
func toZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
