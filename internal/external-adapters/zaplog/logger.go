// Package zaplog backs the domain Logger with zap.
package zaplog

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

// Logger implements interfaces.Logger
type Logger struct {
	sugar *zap.SugaredLogger
}

// New creates a console logger writing to w at the given level
// (debug, info, warn, error)
func New(level string, w io.Writer) (*Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)

	return NewWithCore(core), nil
}

// NewWithCore wraps an existing zap core
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{sugar: zap.New(core).Sugar()}
}

func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.sugar.Debugw(msg, keysAndValues(fields)...)
}

func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.sugar.Infow(msg, keysAndValues(fields)...)
}

func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.sugar.Warnw(msg, keysAndValues(fields)...)
}

func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.sugar.Errorw(msg, keysAndValues(fields)...)
}

// With returns a child logger carrying fields
func (l *Logger) With(fields ...interfaces.Field) interfaces.Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues(fields)...)}
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func keysAndValues(fields []interfaces.Field) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}
