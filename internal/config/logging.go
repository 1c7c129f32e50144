package config

// LogLevel is the minimum level the process logger emits
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ParseLogLevel converts a string to LogLevel, defaulting to LogLevelInfo
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// LogFormat selects the log line encoding
type LogFormat string

const (
	LogFormatText LogFormat = "text" // human readable, colored on a TTY
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat converts a string to LogFormat, defaulting to LogFormatText
func ParseLogFormat(s string) LogFormat {
	if s == "json" {
		return LogFormatJSON
	}
	return LogFormatText
}
