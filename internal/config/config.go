// Package config provides configuration management for topoconf.
//
// Settings come from an optional YAML or TOML file (chosen by extension);
// command-line flags override file values.
//
// Config file locations (priority order):
//  1. --config FILE
//  2. ./topoconf.yaml
//  3. ./topoconf.yml
//  4. ./topoconf.toml
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	units "github.com/docker/go-units"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultHost              = "127.0.0.1"
	DefaultPort              = 5000
	DefaultReportPath        = "test.txt"
	DefaultJournalMaxEntries = 500
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMaxBodySize       = "10MB"
	JournalMemoryDSN         = ":memory:"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Load finds and loads the config file, or returns defaults if none found
func Load(explicit string) (*Config, string, error) {
	path := FindConfigPath(explicit)

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path, as TOML for a .toml path and YAML otherwise
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for local development
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(DefaultReadTimeout)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(DefaultWriteTimeout)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
	if c.Server.MaxBodySize == "" {
		c.Server.MaxBodySize = DefaultMaxBodySize
	}
	if c.Report.Path == "" {
		c.Report.Path = DefaultReportPath
	}
	if c.Journal.DSN == "" {
		c.Journal.DSN = JournalMemoryDSN
	}
	if c.Journal.MaxEntries == 0 {
		c.Journal.MaxEntries = DefaultJournalMaxEntries
	}
	c.Log.Level = ParseLogLevel(string(c.Log.Level))
	c.Log.Format = ParseLogFormat(string(c.Log.Format))
}

// Validate reports settings that cannot be served
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if _, err := c.MaxBodyBytes(); err != nil {
		return err
	}
	if c.Journal.MaxEntries < 0 {
		return fmt.Errorf("invalid journal max_entries %d", c.Journal.MaxEntries)
	}
	return nil
}

// MaxBodyBytes parses Server.MaxBodySize ("512KB", "10MB", ...) into bytes
func (c *Config) MaxBodyBytes() (int64, error) {
	n, err := units.RAMInBytes(c.Server.MaxBodySize)
	if err != nil {
		return 0, fmt.Errorf("invalid max_body_size %q: %w", c.Server.MaxBodySize, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid max_body_size %q: must be positive", c.Server.MaxBodySize)
	}
	return n, nil
}

// JournalEnabled reports whether revisions are recorded
func (c *Config) JournalEnabled() bool {
	return c.Journal.Enabled == nil || *c.Journal.Enabled
}

// Addr returns the host:port listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s, Report: %s\n", c.Addr(), c.Report.Path)
	if c.JournalEnabled() {
		summary += fmt.Sprintf("Journal: %s (max %d)\n", c.Journal.DSN, c.Journal.MaxEntries)
	} else {
		summary += "Journal: disabled\n"
	}
	if c.Seed.Path != "" {
		summary += fmt.Sprintf("Seed: %s (watch=%t)\n", c.Seed.Path, c.Seed.Watch)
	}
	summary += fmt.Sprintf("Log: %s/%s", c.Log.Level, c.Log.Format)

	return summary
}
