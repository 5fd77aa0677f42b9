package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a zap logger that writes JSON entries to a rotating file and,
// when debug is set, mirrors them to stderr. Interactive views own stdout,
// so the console core stays off the happy path.
func New(logFilePath string, debug bool) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		// Fall back to stderr-only logging if the directory is unusable.
		return zap.New(consoleCore(zapcore.WarnLevel))
	}

	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // Megabytes
		MaxBackups: 3,
		MaxAge:     30, // Days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	fileLevel := zap.InfoLevel
	if debug {
		fileLevel = zap.DebugLevel
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		fileLevel,
	)

	core := fileCore
	if debug {
		core = zapcore.NewTee(fileCore, consoleCore(zap.DebugLevel))
	}

	return zap.New(core, zap.AddCaller())
}

func consoleCore(level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
}
