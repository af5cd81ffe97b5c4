package config

// Log format values.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Report theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Input defaults.
const (
	DefaultIDColumn = "id"
)

// Report defaults.
const (
	DefaultReportDir   = "drift-report"
	DefaultReportTheme = ThemeDark
)

// Export defaults.
const (
	DefaultExportFormat = "csv"
)

// Log defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)
