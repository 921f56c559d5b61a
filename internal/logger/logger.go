// Package logger builds the zap logger used by the benchmark driver.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"richards/internal/sched"
)

// Build sets up a logger that writes below-error levels to stdout and
// error and above to stderr.
func Build(cfg sched.LoggerConfig) (*zap.Logger, error) {
	return build(cfg, os.Stdout, os.Stderr)
}

func build(cfg sched.LoggerConfig, out, errOut io.Writer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewJSONEncoder(encCfg)
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	// Level filters
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return level.Enabled(lvl) && lvl < zapcore.ErrorLevel
	})

	infoCore := zapcore.NewCore(encoder, zapcore.AddSync(out), lowPriority)
	errorCore := zapcore.NewCore(encoder, zapcore.AddSync(errOut), highPriority)

	return zap.New(zapcore.NewTee(infoCore, errorCore), zap.AddCaller()), nil
}
