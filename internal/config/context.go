package config

import (
	"context"
	"log/slog"
)

// loggerKey stores the logger in a command context.
type loggerKey struct{}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the context logger, or a discard logger when absent.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// currentConfig is the configuration loaded by the root command, exposed
// so subcommand packages can reach it without an import cycle.
var currentConfig *Config

// SetCurrent records the loaded configuration.
func SetCurrent(cfg *Config) { currentConfig = cfg }

// Current returns the loaded configuration, or defaults when the root
// command has not run (direct test invocation).
func Current() *Config {
	if currentConfig != nil {
		return currentConfig
	}
	cfg, err := Load("", nil)
	if err != nil {
		cfg = &Config{
			Addr:           DefaultAddr,
			PageSize:       DefaultPageSize,
			MatchLimit:     DefaultMatchLimit,
			UploadFilename: DefaultUploadFilename,
			UploadMaxBytes: DefaultUploadMaxBytes,
			LogLevel:       "info",
			LogFormat:      "text",
			Output:         "auto",
		}
	}
	return cfg
}
