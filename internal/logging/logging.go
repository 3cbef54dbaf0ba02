// Package logging builds the process-wide zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const ModeProduction = "production"

// New returns a development logger unless mode is "production". When file
// is set, JSON entries also go to a rotated file next to the console output.
func New(mode, file string) (*zap.Logger, error) {
	var cfg zap.Config
	if mode == ModeProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}

	if file == "" {
		return cfg.Build(zap.AddCaller())
	}

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    64, // MB
		MaxBackups: 7,
		MaxAge:     7,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotated), cfg.Level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(os.Stdout), cfg.Level),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// Setup builds the logger and installs it as the zap global.
func Setup(mode, file string) (*zap.Logger, error) {
	l, err := New(mode, file)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
