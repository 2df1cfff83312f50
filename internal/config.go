package internal

import (
	"strconv"
	"strings"
	"time"
)

const (
	defaultMinIntervalSeconds = 3
	minIntervalFloorSeconds   = 1
	minIntervalCeilSeconds    = 60
)

// Config is read once at startup. The monitoring realtime knobs are kept
// as raw strings so malformed values fall back to documented defaults
// instead of failing startup.
type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ReportInterval       time.Duration `env:"REPORT_INTERVAL,default=30s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	JWTSecret            string        `env:"JWT_SECRET,default=dev_only_not_a_secret"`

	InboundRatePerSecond float64 `env:"INBOUND_RATE_PER_SECOND,default=10"`
	InboundBurst         int     `env:"INBOUND_BURST,default=20"`

	MonitoringRealtimeEnabled    string `env:"MONITORING_REALTIME_ENABLED"`
	MonitoringMinIntervalSeconds string `env:"MONITORING_MIN_INTERVAL_SECONDS"`
}

// MonitoringEnabled parses the realtime toggle; anything unparseable
// means enabled.
func (c Config) MonitoringEnabled() bool {
	return ParseBool(c.MonitoringRealtimeEnabled, true)
}

// MonitoringMinInterval parses and clamps the debounce window.
func (c Config) MonitoringMinInterval() time.Duration {
	seconds := ClampInterval(ParseInt(c.MonitoringMinIntervalSeconds, defaultMinIntervalSeconds))
	return time.Duration(seconds) * time.Second
}

func ParseBool(raw string, defaultValue bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return parsed
}

func ParseInt(raw string, defaultValue int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// ClampInterval bounds the debounce window to [1, 60] seconds.
func ClampInterval(seconds int) int {
	if seconds < minIntervalFloorSeconds {
		return minIntervalFloorSeconds
	}
	if seconds > minIntervalCeilSeconds {
		return minIntervalCeilSeconds
	}
	return seconds
}
