package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a file-backed logger. Nothing may write to stdout or
// stderr while the TUI is running, so both output paths point at the
// same file.
func New(path, level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything. Used when the log
// file cannot be opened; diagnostics are best-effort and must never
// take the app down.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
