// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for the gitdrift CLI.
package observability

import "log/slog"

const defaultShutdownTimeoutSec = 5

// Config controls telemetry initialization.
type Config struct {
	// ServiceName identifies this service in traces and metrics.
	ServiceName string

	// ServiceVersion is the version reported in telemetry resource attributes.
	ServiceVersion string

	// OTLPEndpoint is the OTLP gRPC endpoint (host:port). Empty disables export.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the OTLP connection.
	OTLPInsecure bool

	// LogLevel sets the minimum slog level.
	LogLevel slog.Level

	// LogJSON switches log output from text to JSON.
	LogJSON bool

	// ShutdownTimeoutSec bounds how long Shutdown waits for exporters to flush.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a config with conservative defaults and no export.
func DefaultConfig() Config {
	return Config{
		ServiceName:        "gitdrift",
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
