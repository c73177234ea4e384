package shared

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
	Panic(format string, args ...any)
}

type DisabledLogger struct{}

func (DisabledLogger) Info(string, ...any)    {}
func (DisabledLogger) Debug(string, ...any)   {}
func (DisabledLogger) Warning(string, ...any) {}
func (DisabledLogger) Error(string, ...any)   {}
func (DisabledLogger) Panic(string, ...any)   {}

// ZapLogger adapts a zap.Logger to the Logger interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Info(format string, args ...any)    { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Debug(format string, args ...any)   { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Warning(format string, args ...any) { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Error(format string, args ...any)   { l.sugar.Errorf(format, args...) }
func (l *ZapLogger) Panic(format string, args ...any)   { l.sugar.Panicf(format, args...) }

// NewLogger builds a console zap logger at the given level
// (debug, info, warn, error, dpanic, panic, fatal).
func NewLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
