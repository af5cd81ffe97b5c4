package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdrift/gitdrift/internal/config"
)

func TestLoad_NoFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte(""), 0o600))

	cfg, err := config.Load(emptyPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.Repository)
	assert.Empty(t, cfg.Command)
	assert.Equal(t, config.DefaultIDColumn, cfg.Input.IDColumn)
	assert.Equal(t, config.DefaultReportDir, cfg.Report.Dir)
	assert.Equal(t, config.DefaultReportTheme, cfg.Report.Theme)
	assert.Equal(t, config.DefaultExportFormat, cfg.Export.Format)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Log.Format)
	assert.False(t, cfg.Report.KeepSnapshots)
}

func TestLoad_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".gitdrift.yaml")
	content := `repository: https://example.com/project.git
outfile: metrics.csv
command: "python run.py {target} {outfile}"
alternates:
  - "python run_legacy.py {target} {outfile}"
clone:
  dest: /tmp/clones
  branch: main
exec:
  pre_command: "make deps"
  venv: python3
  lib_path: src
input:
  id_column: name
  ignore_columns:
    - notes
    - comment
range:
  start_date: "2023-01-01"
  end_date: "2023-12-31"
  start_commit: abc123
  end_commit: def456
  only:
    - abc123
    - def456
report:
  dir: out/report
  title: "Drift Report"
  author: ops
  theme: light
  keep_snapshots: true
export:
  dir: out/data
  format: json
log:
  level: debug
  format: json
telemetry:
  otlp_endpoint: "localhost:4317"
  otlp_insecure: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/project.git", cfg.Repository)
	assert.Equal(t, "metrics.csv", cfg.Outfile)
	assert.Equal(t, "python run.py {target} {outfile}", cfg.Command)
	assert.Equal(t, []string{"python run_legacy.py {target} {outfile}"}, cfg.Alternates)

	assert.Equal(t, "/tmp/clones", cfg.Clone.Dest)
	assert.Equal(t, "main", cfg.Clone.Branch)

	assert.Equal(t, "make deps", cfg.Exec.PreCommand)
	assert.Equal(t, "python3", cfg.Exec.Venv)
	assert.Equal(t, "src", cfg.Exec.LibPath)

	assert.Equal(t, "name", cfg.Input.IDColumn)
	assert.Equal(t, []string{"notes", "comment"}, cfg.Input.IgnoreColumns)

	assert.Equal(t, "2023-01-01", cfg.Range.StartDate)
	assert.Equal(t, "2023-12-31", cfg.Range.EndDate)
	assert.Equal(t, "abc123", cfg.Range.StartCommit)
	assert.Equal(t, "def456", cfg.Range.EndCommit)
	assert.Equal(t, []string{"abc123", "def456"}, cfg.Range.Only)

	assert.Equal(t, "out/report", cfg.Report.Dir)
	assert.Equal(t, "Drift Report", cfg.Report.Title)
	assert.Equal(t, "ops", cfg.Report.Author)
	assert.Equal(t, config.ThemeLight, cfg.Report.Theme)
	assert.True(t, cfg.Report.KeepSnapshots)

	assert.Equal(t, "out/data", cfg.Export.Dir)
	assert.Equal(t, "json", cfg.Export.Format)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)

	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
}

func TestLoad_PartialConfig_MergesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".gitdrift.yaml")
	content := `input:
  id_column: record
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "record", cfg.Input.IDColumn)
	assert.Equal(t, config.DefaultReportDir, cfg.Report.Dir)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_MalformedYAML_ReturnsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	content := `input:
  id_column: [invalid yaml
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := config.Load(cfgPath)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_UnknownKeys_NoError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".gitdrift.yaml")
	content := `unknown_section:
  unknown_key: "value"
input:
  id_column: record
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "record", cfg.Input.IDColumn)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte(""), 0o600))

	t.Setenv("GITDRIFT_INPUT_ID_COLUMN", "sample")

	cfg, err := config.Load(emptyPath)
	require.NoError(t, err)

	assert.Equal(t, "sample", cfg.Input.IDColumn)
}

func TestLoad_EnvOverride_LogLevel(t *testing.T) {
	dir := t.TempDir()
	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte(""), 0o600))

	t.Setenv("GITDRIFT_LOG_LEVEL", "debug")

	cfg, err := config.Load(emptyPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
