package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDebugLogger logs at debug level to stdout/stderr with a console encoder.
// Planner retry loops log every failed attempt at debug, so this is noisy and
// intended for development only.
func NewDebugLogger(name string) (*zap.SugaredLogger, error) {
	logger, err := zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.DebugLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().Named(name), nil
}

// NewQuietLogger only surfaces fatal errors. Useful in benchmarks and bulk
// planning runs where per-attempt logging drowns the output.
func NewQuietLogger(name string) (*zap.SugaredLogger, error) {
	logger, err := zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.FatalLevel),
		Encoding:          "console",
		DisableStacktrace: true,
	}.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().Named(name), nil
}
