package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/camiloAVN/WebSockets-Tester/internal/config"
	"github.com/hashicorp/go-hclog"
)

const (
	logFileMode = 0o600
	logDirMode  = 0o700
)

// New builds the root logger. When cfg.File is set, output is appended to
// that file and the returned closer releases it; otherwise output goes to
// fallback.
func New(cfg config.LogConfig, fallback io.Writer) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(cfg.Level)
	if level == hclog.NoLevel {
		return nil, nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	output := fallback
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), logDirMode); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closer = f
	}
	if output == nil {
		output = io.Discard
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "wst",
		Level:      level,
		Output:     output,
		JSONFormat: cfg.Format == "json",
	})

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
