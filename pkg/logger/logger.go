package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

func New(level string) *Logger {
	return newWithSink(level, zapcore.AddSync(os.Stdout))
}

func newWithSink(level string, sink zapcore.WriteSyncer) *Logger {
	atom := zap.NewAtomicLevelAt(ParseLevel(level))

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		sink,
		atom,
	)

	// skip one frame: Logger methods and package helpers both call the
	// sugared logger directly
	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.FatalLevel))
	return &Logger{level: atom, sugar: base.Sugar()}
}

// ParseLevel maps a LOG_LEVEL value to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) SetLevel(level string) { l.level.SetLevel(ParseLevel(level)) }

func (l *Logger) Enabled(level zapcore.Level) bool { return l.level.Enabled(level) }

func (l *Logger) Info(format string, v ...interface{})  { l.sugar.Infof(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.sugar.Warnf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.sugar.Errorf(format, v...) }
func (l *Logger) Debug(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
func (l *Logger) Fatal(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }

func (l *Logger) Infow(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warnw(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Errorw(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }
func (l *Logger) Debugw(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }

// With returns a child logger that adds kv to every entry.
func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{level: l.level, sugar: l.sugar.With(kv...)}
}

func (l *Logger) Sync() error { return l.sugar.Sync() }

// Global logger instance
var GlobalLogger = New("info")

// Convenience functions
func Info(format string, v ...interface{})  { GlobalLogger.sugar.Infof(format, v...) }
func Warn(format string, v ...interface{})  { GlobalLogger.sugar.Warnf(format, v...) }
func Error(format string, v ...interface{}) { GlobalLogger.sugar.Errorf(format, v...) }
func Debug(format string, v ...interface{}) { GlobalLogger.sugar.Debugf(format, v...) }
func Fatal(format string, v ...interface{}) { GlobalLogger.sugar.Fatalf(format, v...) }

func Infow(msg string, kv ...interface{})  { GlobalLogger.sugar.Infow(msg, kv...) }
func Warnw(msg string, kv ...interface{})  { GlobalLogger.sugar.Warnw(msg, kv...) }
func Errorw(msg string, kv ...interface{}) { GlobalLogger.sugar.Errorw(msg, kv...) }
func Debugw(msg string, kv ...interface{}) { GlobalLogger.sugar.Debugw(msg, kv...) }

func With(kv ...interface{}) *Logger { return GlobalLogger.With(kv...) }

func SetLevel(level string) { GlobalLogger.SetLevel(level) }

func Sync() error { return GlobalLogger.Sync() }
