// Package config defines the resolved run configuration for gitdrift.
package config

import "errors"

// Config is the top-level configuration struct for gitdrift.
// Field tags use mapstructure for viper unmarshalling; the CLI overlays
// flag and argument values after loading.
type Config struct {
	// Repository is the clone source, a remote URL or a local path.
	Repository string `mapstructure:"repository"`

	// Outfile is the CSV file the run command writes for each commit.
	Outfile string `mapstructure:"outfile"`

	// Command is the primary run command. {target} and {outfile} tokens
	// are substituted once before the traversal begins.
	Command string `mapstructure:"command"`

	// Alternates are fallback commands tried in order when Command fails.
	Alternates []string `mapstructure:"alternates"`

	Clone     CloneConfig     `mapstructure:"clone"`
	Exec      ExecConfig      `mapstructure:"exec"`
	Input     InputConfig     `mapstructure:"input"`
	Range     RangeConfig     `mapstructure:"range"`
	Report    ReportConfig    `mapstructure:"report"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// CloneConfig holds clone placement settings.
type CloneConfig struct {
	// Dest is the parent directory for the clone; empty uses a temp dir.
	Dest string `mapstructure:"dest"`

	// Branch to check out after cloning; empty uses the remote default.
	Branch string `mapstructure:"branch"`
}

// ExecConfig holds command environment settings.
type ExecConfig struct {
	// PreCommand runs before each command candidate, e.g. environment setup.
	PreCommand string `mapstructure:"pre_command"`

	// Venv names a Python interpreter; when set, the canonical
	// virtual-environment pre-command pair is generated from it.
	Venv string `mapstructure:"venv"`

	// LibPath is a subdirectory of the checkout appended to the library
	// search path override.
	LibPath string `mapstructure:"lib_path"`
}

// InputConfig holds snapshot parsing settings.
type InputConfig struct {
	// IDColumn is the identifier column joining rows across commits.
	IDColumn string `mapstructure:"id_column"`

	// IgnoreColumns are dropped from every snapshot before ingestion.
	IgnoreColumns []string `mapstructure:"ignore_columns"`
}

// RangeConfig restricts which commits the run examines.
type RangeConfig struct {
	StartDate   string   `mapstructure:"start_date"`
	EndDate     string   `mapstructure:"end_date"`
	StartCommit string   `mapstructure:"start_commit"`
	EndCommit   string   `mapstructure:"end_commit"`
	Only        []string `mapstructure:"only"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	// Dir is the directory receiving the chart pages and index.
	Dir string `mapstructure:"dir"`

	// Title overrides the report document title.
	Title string `mapstructure:"title"`

	// Author is recorded in the report document metadata.
	Author string `mapstructure:"author"`

	// Theme selects the report color scheme, "dark" or "light".
	Theme string `mapstructure:"theme"`

	// KeepSnapshots preserves each commit's raw CSV as an lz4 archive.
	KeepSnapshots bool `mapstructure:"keep_snapshots"`
}

// ExportConfig holds dataset export settings.
type ExportConfig struct {
	// Dir receives one dataset file per field; empty disables export.
	Dir string `mapstructure:"dir"`

	// Format selects the export codec: csv, json or yaml.
	Format string `mapstructure:"format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `mapstructure:"level"`

	// Format is the handler format, "text" or "json".
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OTLP export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// Sentinel errors for configuration validation.
var (
	// ErrMissingRepository indicates no clone source was given.
	ErrMissingRepository = errors.New("repository must be set")
	// ErrMissingOutfile indicates no output file was given.
	ErrMissingOutfile = errors.New("outfile must be set")
	// ErrMissingCommand indicates no run command was given.
	ErrMissingCommand = errors.New("command must be set")
	// ErrInvalidLogFormat indicates the log format is not text or json.
	ErrInvalidLogFormat = errors.New("log.format must be text or json")
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("log.level must be debug, info, warn or error")
	// ErrInvalidTheme indicates the report theme is not recognized.
	ErrInvalidTheme = errors.New("report.theme must be dark or light")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Repository == "" {
		return ErrMissingRepository
	}

	if c.Outfile == "" {
		return ErrMissingOutfile
	}

	if c.Command == "" {
		return ErrMissingCommand
	}

	if c.Log.Format != LogFormatText && c.Log.Format != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	if _, levelErr := ParseLevel(c.Log.Level); levelErr != nil {
		return levelErr
	}

	if c.Report.Theme != ThemeDark && c.Report.Theme != ThemeLight {
		return ErrInvalidTheme
	}

	_, _, rangeErr := c.Range.Window()

	return rangeErr
}
