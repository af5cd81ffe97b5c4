// Package summary renders the end-of-run console summary.
package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Skip records one commit left out of the dataset and why.
type Skip struct {
	Commit string
	Reason string
}

// FieldStatus records one field's classification and chart outcome.
type FieldStatus struct {
	Name string
	Kind string
	// Rendered is false when the field's page was skipped; Note says why.
	Rendered bool
	Note     string
}

// Stats carries the tallies the driver collects over one run.
type Stats struct {
	Repository  string
	Commits     int
	Contributed int
	Skips       []Skip
	Fields      []FieldStatus
	Pages       int
	ReportDir   string
	Elapsed     time.Duration
}

// Printer writes a run summary to Out.
type Printer struct {
	Out io.Writer
}

// Print renders the summary: a status line, the run tallies, a per-field
// table, and the skipped commits with reasons.
func (p Printer) Print(stats Stats) {
	fmt.Fprintln(p.Out)
	p.statusColor(stats).Fprintf(p.Out, "%s in %s\n", p.statusText(stats), stats.Elapsed.Round(time.Millisecond))

	fmt.Fprintf(p.Out, "  repository: %s\n", stats.Repository)
	fmt.Fprintf(p.Out, "  commits: %s examined, %s contributed, %s skipped\n",
		humanize.Comma(int64(stats.Commits)),
		humanize.Comma(int64(stats.Contributed)),
		humanize.Comma(int64(len(stats.Skips))))

	if stats.ReportDir != "" {
		fmt.Fprintf(p.Out, "  report: %s (%s pages)\n", stats.ReportDir, humanize.Comma(int64(stats.Pages)))
	}

	if len(stats.Fields) > 0 {
		fmt.Fprintln(p.Out)
		fmt.Fprintln(p.Out, fieldTable(stats.Fields))
	}

	if len(stats.Skips) > 0 {
		fmt.Fprintln(p.Out)
		color.New(color.FgYellow).Fprintln(p.Out, "skipped commits:")
		fmt.Fprintln(p.Out, skipTable(stats.Skips))
	}
}

func (p Printer) statusText(stats Stats) string {
	if stats.Contributed == 0 {
		return "no data collected"
	}

	return "run complete"
}

func (p Printer) statusColor(stats Stats) *color.Color {
	switch {
	case stats.Contributed == 0:
		return color.New(color.FgRed)
	case len(stats.Skips) > 0:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// fieldTable renders the per-field classification and chart status.
func fieldTable(fields []FieldStatus) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"field", "kind", "chart"})

	for _, f := range fields {
		tbl.AppendRow(table.Row{f.Name, f.Kind, chartStatus(f)})
	}

	return tbl.Render()
}

// skipTable renders the skipped commits with their reasons.
func skipTable(skips []Skip) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"commit", "reason"})

	for _, s := range skips {
		tbl.AppendRow(table.Row{s.Commit, s.Reason})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d commits", len(skips))})

	return tbl.Render()
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	return tbl
}

func chartStatus(f FieldStatus) string {
	if f.Rendered {
		return "written"
	}

	if f.Note != "" {
		return "skipped: " + f.Note
	}

	return "skipped"
}
