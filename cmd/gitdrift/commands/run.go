package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitdrift/gitdrift/internal/config"
	"github.com/gitdrift/gitdrift/internal/driver"
	"github.com/gitdrift/gitdrift/internal/observability"
	"github.com/gitdrift/gitdrift/internal/summary"
	"github.com/gitdrift/gitdrift/pkg/version"
)

// runArgCount is REPOSITORY, OUTFILE and COMMAND.
const runArgCount = 3

// RunCommand holds the flag-bound values for the run command.
type RunCommand struct {
	configPath string

	repoDest string
	branch   string

	preCommand string
	venv       string
	libPath    string

	idColumn      string
	ignoreColumns []string

	startDate   string
	endDate     string
	startCommit string
	endCommit   string
	only        []string

	alternates []string

	outputDir     string
	title         string
	author        string
	theme         string
	keepSnapshots bool

	exportDir    string
	exportFormat string

	logLevel  string
	logFormat string

	otlpEndpoint string
	otlpInsecure bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run REPOSITORY OUTFILE COMMAND",
		Short: "Clone, walk, measure and render the drift report",
		Long: `Run clones REPOSITORY, walks its history oldest-first and executes COMMAND
against every selected commit. Each execution must write a CSV file to
OUTFILE carrying an identifier column; the per-commit snapshots are
outer-joined per field and rendered as chart pages plus a combined report.

The tokens {target} and {outfile} inside COMMAND, pre-commands and alternate
commands are replaced with the checkout path and OUTFILE before the
traversal begins.`,
		Args: cobra.ExactArgs(runArgCount),
		RunE: rc.run,
	}

	flags := cmd.Flags()
	flags.StringVarP(&rc.configPath, "config", "c", "", "Config file path (default: .gitdrift.yaml in . or $HOME)")

	flags.StringVar(&rc.repoDest, "repo-dest", "", "Parent directory for the clone (default: a temp dir)")
	flags.StringVarP(&rc.branch, "branch", "b", "", "Branch to check out (default: the remote default)")

	flags.StringVar(&rc.preCommand, "pre-command", "", "Shell fragment run before each command candidate")
	flags.StringVar(&rc.venv, "venv", "", "Python interpreter used to build a throwaway virtualenv per run")
	flags.StringVar(&rc.libPath, "lib-path", "", "Checkout subdirectory appended to the PYTHONPATH override")

	flags.StringVar(&rc.idColumn, "id-col", config.DefaultIDColumn, "Identifier column joining rows across commits")
	flags.StringSliceVar(&rc.ignoreColumns, "ignore-columns", nil, "Columns dropped from every snapshot")

	flags.StringVar(&rc.startDate, "start-date", "", "Skip commits before this time (e.g. '24h', '2024-01-01', RFC3339)")
	flags.StringVar(&rc.endDate, "end-date", "", "Stop at the first commit after this time")
	flags.StringVar(&rc.startCommit, "start-commit", "", "Hash prefix opening the commit range")
	flags.StringVar(&rc.endCommit, "end-commit", "", "Hash prefix closing the commit range (inclusive)")
	flags.StringSliceVar(&rc.only, "only", nil, "Allow-list of commit hash prefixes")

	flags.StringArrayVar(&rc.alternates, "alternate", nil, "Fallback command tried when the primary fails (repeatable)")

	flags.StringVarP(&rc.outputDir, "output-dir", "o", config.DefaultReportDir, "Report output directory")
	flags.StringVar(&rc.title, "title", "", "Report document title")
	flags.StringVar(&rc.author, "author", "", "Report document author")
	flags.StringVar(&rc.theme, "theme", config.DefaultReportTheme, "Chart theme (dark, light)")
	flags.BoolVar(&rc.keepSnapshots, "keep-snapshots", false, "Archive each commit's raw snapshot under the report directory")

	flags.StringVar(&rc.exportDir, "export-dir", "", "Directory receiving per-field dataset exports")
	flags.StringVar(&rc.exportFormat, "export-format", config.DefaultExportFormat, "Export format (csv, json, yaml)")

	flags.StringVar(&rc.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&rc.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, json)")

	flags.StringVar(&rc.otlpEndpoint, "otlp-endpoint", "", "OTLP gRPC endpoint for traces and metrics")
	flags.BoolVar(&rc.otlpInsecure, "otlp-insecure", false, "Disable TLS for the OTLP exporter")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, loadErr := config.Load(rc.configPath)
	if loadErr != nil {
		return loadErr
	}

	cfg.Repository = args[0]
	cfg.Outfile = args[1]
	cfg.Command = args[2]
	rc.overlay(cmd, cfg)

	validateErr := cfg.Validate()
	if validateErr != nil {
		return validateErr
	}

	providers, initErr := rc.initObservability(cfg)
	if initErr != nil {
		return initErr
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	slog.SetDefault(providers.Logger)

	metrics, metricsErr := observability.NewRunMetrics(providers.Meter)
	if metricsErr != nil {
		return metricsErr
	}

	outcome, runErr := driver.Run(cmd.Context(), cfg, driver.Deps{
		Metrics: metrics,
		Logger:  providers.Logger,
	})
	if outcome != nil {
		summary.Printer{Out: cmd.OutOrStdout()}.Print(outcome.Stats)
	}

	return runErr
}

// overlay writes the flag values the user set over the loaded configuration.
// Only changed flags apply, so flag defaults never clobber file or
// environment values.
func (rc *RunCommand) overlay(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	overrides := map[string]func(){
		"repo-dest":      func() { cfg.Clone.Dest = rc.repoDest },
		"branch":         func() { cfg.Clone.Branch = rc.branch },
		"pre-command":    func() { cfg.Exec.PreCommand = rc.preCommand },
		"venv":           func() { cfg.Exec.Venv = rc.venv },
		"lib-path":       func() { cfg.Exec.LibPath = rc.libPath },
		"id-col":         func() { cfg.Input.IDColumn = rc.idColumn },
		"ignore-columns": func() { cfg.Input.IgnoreColumns = rc.ignoreColumns },
		"start-date":     func() { cfg.Range.StartDate = rc.startDate },
		"end-date":       func() { cfg.Range.EndDate = rc.endDate },
		"start-commit":   func() { cfg.Range.StartCommit = rc.startCommit },
		"end-commit":     func() { cfg.Range.EndCommit = rc.endCommit },
		"only":           func() { cfg.Range.Only = rc.only },
		"alternate":      func() { cfg.Alternates = rc.alternates },
		"output-dir":     func() { cfg.Report.Dir = rc.outputDir },
		"title":          func() { cfg.Report.Title = rc.title },
		"author":         func() { cfg.Report.Author = rc.author },
		"theme":          func() { cfg.Report.Theme = rc.theme },
		"keep-snapshots": func() { cfg.Report.KeepSnapshots = rc.keepSnapshots },
		"export-dir":     func() { cfg.Export.Dir = rc.exportDir },
		"export-format":  func() { cfg.Export.Format = rc.exportFormat },
		"log-level":      func() { cfg.Log.Level = rc.logLevel },
		"log-format":     func() { cfg.Log.Format = rc.logFormat },
		"otlp-endpoint":  func() { cfg.Telemetry.OTLPEndpoint = rc.otlpEndpoint },
		"otlp-insecure":  func() { cfg.Telemetry.OTLPInsecure = rc.otlpInsecure },
	}

	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
}

// initObservability builds the provider set from the resolved config. The
// OTLP endpoint falls back to the standard environment variable so the CLI
// honors OTEL_EXPORTER_OTLP_ENDPOINT without a flag.
func (rc *RunCommand) initObservability(cfg *config.Config) (observability.Providers, error) {
	level, levelErr := config.ParseLevel(cfg.Log.Level)
	if levelErr != nil {
		return observability.Providers{}, levelErr
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Log.Format == config.LogFormatJSON

	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	return observability.Init(obsCfg)
}
