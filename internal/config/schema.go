package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Report  ReportConfig  `yaml:"report" toml:"report"`
	Journal JournalConfig `yaml:"journal" toml:"journal"`
	Seed    SeedConfig    `yaml:"seed" toml:"seed"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	CORS    CORSConfig    `yaml:"cors" toml:"cors"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string   `yaml:"host" toml:"host"`
	Port            int      `yaml:"port" toml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	MaxBodySize     string   `yaml:"max_body_size" toml:"max_body_size"` // e.g. "10MB", binary units
}

// ReportConfig locates the QoS report served for download
type ReportConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// JournalConfig holds revision journal settings
type JournalConfig struct {
	Enabled    *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"` // nil = enabled
	DSN        string `yaml:"dsn" toml:"dsn"`
	MaxEntries int    `yaml:"max_entries" toml:"max_entries"`
}

// SeedConfig points at an optional topology file applied at startup
type SeedConfig struct {
	Path  string `yaml:"path,omitempty" toml:"path,omitempty"`
	Watch bool   `yaml:"watch" toml:"watch"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level  LogLevel  `yaml:"level" toml:"level"`
	Format LogFormat `yaml:"format" toml:"format"`
}

// CORSConfig lists origins allowed to call the API. Empty means any origin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" toml:"allowed_origins,omitempty"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
