// logger/logger.go - structured logging (zap)
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

// Init builds the process-wide logger. JSON output in production, console
// output everywhere else.
func Init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	level := zap.InfoLevel
	if env == "development" {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))
	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// Get returns the process logger, initializing it on first use so tests and
// small CLIs don't need an explicit Init call.
func Get() *zap.SugaredLogger {
	if log == nil {
		Init()
	}
	return log
}

func Debug(msg string, keysAndValues ...interface{}) { Get().Debugw(msg, keysAndValues...) }
func Info(msg string, keysAndValues ...interface{})  { Get().Infow(msg, keysAndValues...) }
func Warn(msg string, keysAndValues ...interface{})  { Get().Warnw(msg, keysAndValues...) }
func Error(msg string, keysAndValues ...interface{}) { Get().Errorw(msg, keysAndValues...) }
func Fatal(msg string, keysAndValues ...interface{}) { Get().Fatalw(msg, keysAndValues...) }

// Sync flushes buffered entries. Safe to call on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
