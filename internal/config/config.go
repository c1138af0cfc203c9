// Package config loads itemdex configuration from defaults, an optional
// YAML file, environment variables, and CLI flags, in ascending priority.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, searched in the working directory.
const (
	ConfigFileName    = "itemdex.yaml"
	ConfigFileNameAlt = "itemdex.yml"
)

// EnvPrefix namespaces environment overrides: ITEMDEX_PAGE_SIZE -> page_size.
const EnvPrefix = "ITEMDEX_"

// Defaults.
const (
	DefaultAddr           = ":8080"
	DefaultPageSize       = 10
	DefaultMatchLimit     = 500
	DefaultChunkLimit     = 1024
	DefaultUploadFilename = "items.txt"
	DefaultUploadMaxBytes = 10 << 20 // 10 MiB
)

// Config is the resolved runtime configuration.
type Config struct {
	// Addr is the HTTP listen address for serve.
	Addr string `koanf:"addr"`

	// PageSize is results per rendered page.
	PageSize int `koanf:"page_size"`

	// MatchLimit is the too-broad query threshold.
	MatchLimit int `koanf:"match_limit"`

	// UploadFilename is the only accepted upload name (case-insensitive).
	UploadFilename string `koanf:"upload_filename"`

	// UploadMaxBytes caps accepted upload size.
	UploadMaxBytes int64 `koanf:"upload_max_bytes"`

	// WatchFile, when set, is a local item file serve re-ingests on change.
	WatchFile string `koanf:"watch_file"`

	// WatchTenant is the tenant the watched file is ingested into.
	WatchTenant string `koanf:"watch_tenant"`

	LogLevel  string `koanf:"log_level"`  // debug, info, warn, error
	LogFormat string `koanf:"log_format"` // text or json
	Output    string `koanf:"output"`     // auto, table, markdown, json, yaml
	Verbose   bool   `koanf:"verbose"`
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"addr":             DefaultAddr,
		"page_size":        DefaultPageSize,
		"match_limit":      DefaultMatchLimit,
		"upload_filename":  DefaultUploadFilename,
		"upload_max_bytes": DefaultUploadMaxBytes,
		"watch_tenant":     "dev",
		"log_level":        "info",
		"log_format":       "text",
		"output":           "auto",
		"verbose":          false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (explicit path, or itemdex.yaml/yml in the CWD)
	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables: ITEMDEX_MATCH_LIMIT -> match_limit
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the core invariants cannot hold under.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.MatchLimit < 1 {
		return fmt.Errorf("match_limit must be at least 1, got %d", c.MatchLimit)
	}
	if c.UploadMaxBytes < 1 {
		return fmt.Errorf("upload_max_bytes must be positive, got %d", c.UploadMaxBytes)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.WatchFile != "" && c.WatchTenant == "" {
		return fmt.Errorf("watch_file requires watch_tenant")
	}
	return nil
}

func findConfigFile() string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
