package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// Options configures the process logger.
type Options struct {
	Level string
	File  string
}

var (
	global arbor.ILogger
	mu     sync.RWMutex
)

// Get returns the process logger, creating a console logger on first use.
func Get() arbor.ILogger {
	mu.RLock()
	if global != nil {
		defer mu.RUnlock()
		return global
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		global = arbor.NewLogger().WithConsoleWriter(consoleConfig())
	}
	return global
}

// Init builds the process logger from opts and installs it for Get.
func Init(opts Options) arbor.ILogger {
	mu.Lock()
	defer mu.Unlock()

	logger := arbor.NewLogger().WithConsoleWriter(consoleConfig())
	var fileErr error
	if opts.File != "" {
		var cfg models.WriterConfiguration
		if cfg, fileErr = fileConfig(opts.File); fileErr == nil {
			logger = logger.WithFileWriter(cfg)
		}
	}
	if opts.Level != "" {
		logger = logger.WithLevelFromString(opts.Level)
	}
	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("file", opts.File).Msg("Log file disabled")
	}
	global = logger
	return logger
}

// fileConfig prepares the directory of path and returns its writer config.
func fileConfig(path string) (models.WriterConfiguration, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return models.WriterConfiguration{}, fmt.Errorf("create log directory: %w", err)
	}
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   path,
		TimeFormat: "15:04:05",
		MaxSize:    50 * 1024 * 1024,
		MaxBackups: 3,
		OutputType: models.OutputFormatLogfmt,
	}, nil
}

func consoleConfig() models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}
}
