// Package driver owns the run: it clones the repository, walks its history,
// re-executes the measurement command per commit, aggregates the snapshots,
// and turns the result into charts, exports and a run summary.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gitdrift/gitdrift/internal/config"
	"github.com/gitdrift/gitdrift/internal/export"
	"github.com/gitdrift/gitdrift/internal/observability"
	"github.com/gitdrift/gitdrift/internal/report"
	"github.com/gitdrift/gitdrift/internal/report/htmlpage"
	"github.com/gitdrift/gitdrift/internal/series"
	"github.com/gitdrift/gitdrift/internal/summary"
)

// ErrNoData reports a run where no commit produced a usable snapshot.
var ErrNoData = errors.New("no data collected")

// Deps are the run's collaborators. Zero values get production defaults:
// an HTML sink built from the report config, no-op metrics, slog.Default().
type Deps struct {
	Sink    report.Sink
	Metrics *observability.RunMetrics
	Logger  *slog.Logger
}

// Outcome is the finished run's accounting.
type Outcome struct {
	Stats summary.Stats
}

// Run executes one full traversal. When no commit contributes a snapshot
// the error is ErrNoData and the Outcome still carries the run accounting,
// so callers can report what happened before exiting non-zero.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*Outcome, error) {
	started := time.Now()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	codec, codecErr := export.ParseFormat(cfg.Export.Format)
	if codecErr != nil {
		return nil, codecErr
	}

	sink := deps.Sink
	if sink == nil {
		htmlSink, sinkErr := report.NewHTMLSink(
			cfg.Report.Dir, cfg.Report.Title, cfg.Report.Author,
			htmlpage.Theme(cfg.Report.Theme), logger)
		if sinkErr != nil {
			return nil, sinkErr
		}

		sink = htmlSink
	}

	coll, collectErr := collect(ctx, cfg, logger)
	if collectErr != nil {
		return nil, collectErr
	}

	stats := summary.Stats{
		Repository:  cfg.Repository,
		Commits:     coll.examined,
		Contributed: len(coll.contributed),
		Skips:       coll.skips,
		ReportDir:   cfg.Report.Dir,
	}

	if coll.agg.Empty() {
		stats.Elapsed = time.Since(started)
		deps.Metrics.RecordRun(ctx, runStats(stats))

		return &Outcome{Stats: stats}, fmt.Errorf("%w: %d commits examined", ErrNoData, coll.examined)
	}

	rendered := renderTables(coll.agg, sink, logger)
	overview := series.BuildOverview(coll.contributed, rendered.summaries)

	pages := rendered.pages

	if len(overview.Fields) > 0 {
		overviewErr := sink.WriteOverview(overview)
		if overviewErr != nil {
			logger.Warn("overview page failed", "error", overviewErr)
		} else {
			pages++
		}
	}

	finishErr := sink.Finish()
	if finishErr != nil {
		return nil, finishErr
	}

	exportErr := exportDatasets(cfg, codec, coll.agg, overview, logger)
	if exportErr != nil {
		return nil, exportErr
	}

	stats.Fields = rendered.fields
	stats.Pages = pages
	stats.Elapsed = time.Since(started)

	deps.Metrics.RecordRun(ctx, runStats(stats))

	return &Outcome{Stats: stats}, nil
}

// runStats maps run accounting onto the metrics payload.
func runStats(stats summary.Stats) observability.RunStats {
	var rendered int64

	for _, field := range stats.Fields {
		if field.Rendered {
			rendered++
		}
	}

	return observability.RunStats{
		CommitsContributed: int64(stats.Contributed),
		CommitsSkipped:     int64(len(stats.Skips)),
		FieldsRendered:     rendered,
		FieldsSkipped:      int64(len(stats.Fields)) - rendered,
		Duration:           stats.Elapsed,
	}
}
