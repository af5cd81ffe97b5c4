package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdrift/gitdrift/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Repository: "https://example.com/project.git",
		Outfile:    "metrics.csv",
		Command:    "python run.py {target} {outfile}",
		Report:     config.ReportConfig{Theme: config.DefaultReportTheme},
		Log:        config.LogConfig{Level: config.DefaultLogLevel, Format: config.DefaultLogFormat},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Sentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"missing repository", func(c *config.Config) { c.Repository = "" }, config.ErrMissingRepository},
		{"missing outfile", func(c *config.Config) { c.Outfile = "" }, config.ErrMissingOutfile},
		{"missing command", func(c *config.Config) { c.Command = "" }, config.ErrMissingCommand},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }, config.ErrInvalidLogFormat},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }, config.ErrInvalidLogLevel},
		{"bad theme", func(c *config.Config) { c.Report.Theme = "sepia" }, config.ErrInvalidTheme},
		{"bad start date", func(c *config.Config) { c.Range.StartDate = "yesterday" }, config.ErrInvalidTimeFormat},
		{"bad end date", func(c *config.Config) { c.Range.EndDate = "someday" }, config.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestWindow_OpenBounds(t *testing.T) {
	t.Parallel()

	start, end, err := config.RangeConfig{}.Window()
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestWindow_DateOnly(t *testing.T) {
	t.Parallel()

	r := config.RangeConfig{StartDate: "2023-06-01", EndDate: "2023-06-30"}

	start, end, err := r.Window()
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)

	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), *start)
	assert.Equal(t, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), *end)
}

func TestWindow_RFC3339(t *testing.T) {
	t.Parallel()

	r := config.RangeConfig{StartDate: "2023-06-01T12:30:00Z"}

	start, _, err := r.Window()
	require.NoError(t, err)
	require.NotNil(t, start)

	assert.Equal(t, time.Date(2023, 6, 1, 12, 30, 0, 0, time.UTC), *start)
}

func TestWindow_DurationRelativeToNow(t *testing.T) {
	t.Parallel()

	r := config.RangeConfig{StartDate: "24h"}

	start, _, err := r.Window()
	require.NoError(t, err)
	require.NotNil(t, start)

	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), *start, time.Minute)
}

func TestWindow_Invalid(t *testing.T) {
	t.Parallel()

	_, _, err := config.RangeConfig{StartDate: "junk"}.Window()
	require.ErrorIs(t, err, config.ErrInvalidTimeFormat)
	assert.Contains(t, err.Error(), "junk")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			level, err := config.ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	t.Parallel()

	_, err := config.ParseLevel("loud")
	require.ErrorIs(t, err, config.ErrInvalidLogLevel)
}
