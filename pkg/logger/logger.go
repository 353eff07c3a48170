
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a printf-style logger on top of zap. Its method set also
// satisfies resty.Logger.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a console logger writing to stderr. verbose enables debug output.
func New(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.CallerKey = ""
	enc.StacktraceKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		zap.NewAtomicLevelAt(level),
	)
	return &Logger{s: zap.New(core).Sugar()}
}

// NewNop discards everything.
func NewNop() *Logger { return &Logger{s: zap.NewNop().Sugar()} }

// FromZap wraps an existing zap logger, e.g. an observer core in tests.
func FromZap(z *zap.Logger) *Logger { return &Logger{s: z.Sugar()} }

func (l *Logger) Debugf(format string, args ...any) {
	l.s.Debugf(format, args...)
}
func (l *Logger) Infof(format string, args ...any) {
	l.s.Infof(format, args...)
}
func (l *Logger) Warnf(format string, args ...any) {
	l.s.Warnf(format, args...)
}
func (l *Logger) Errorf(format string, args ...any) {
	l.s.Errorf(format, args...)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() { _ = l.s.Sync() }
