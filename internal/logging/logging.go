// Package logging builds the process-wide diagnostic logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/strongroom-dev/strongroom/internal/config"
)

// New returns a JSON logger at cfg.Level writing to cfg.File, or stderr when
// no file is set.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "warn"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}

	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log.Named("strongroom"), nil
}
