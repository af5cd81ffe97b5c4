package driver

import (
	"log/slog"

	"github.com/gitdrift/gitdrift/internal/aggregate"
	"github.com/gitdrift/gitdrift/internal/config"
	"github.com/gitdrift/gitdrift/internal/export"
	"github.com/gitdrift/gitdrift/internal/report"
	"github.com/gitdrift/gitdrift/internal/series"
	"github.com/gitdrift/gitdrift/internal/summary"
)

// rendering is the chart phase's accounting.
type rendering struct {
	fields    []summary.FieldStatus
	summaries []series.Summary
	pages     int
}

// renderTables derives each field's series and writes its chart page. A
// field that fails derivation or rendering is noted and omitted; the
// remaining fields still render.
func renderTables(agg *aggregate.Aggregator, sink report.Sink, logger *slog.Logger) rendering {
	var out rendering

	for _, table := range agg.Tables() {
		kind := table.Classify()

		switch kind {
		case aggregate.Numeric:
			sums, dist, deriveErr := series.DeriveNumeric(table)
			if deriveErr != nil {
				logger.Warn("skipping field", "field", table.Field(), "error", deriveErr)
				out.fields = append(out.fields, summary.FieldStatus{
					Name: table.Field(), Kind: kind.String(), Note: "derivation failed",
				})

				continue
			}

			writeErr := sink.WriteNumeric(table.Field(), dist, sums)
			if writeErr != nil {
				logger.Warn("skipping field", "field", table.Field(), "error", writeErr)
				out.fields = append(out.fields, summary.FieldStatus{
					Name: table.Field(), Kind: kind.String(), Note: "render failed",
				})

				continue
			}

			out.summaries = append(out.summaries, sums)

		case aggregate.Categorical:
			counts, trans := series.DeriveCategorical(table)

			writeErr := sink.WriteCategorical(table.Field(), counts, trans)
			if writeErr != nil {
				logger.Warn("skipping field", "field", table.Field(), "error", writeErr)
				out.fields = append(out.fields, summary.FieldStatus{
					Name: table.Field(), Kind: kind.String(), Note: "render failed",
				})

				continue
			}
		}

		out.fields = append(out.fields, summary.FieldStatus{
			Name: table.Field(), Kind: kind.String(), Rendered: true,
		})
		out.pages++
	}

	return out
}

// exportDatasets writes every field table and the cross-field summary
// through the configured codec. A single failed dataset is logged and
// skipped; the rest still land.
func exportDatasets(
	cfg *config.Config, codec export.Codec,
	agg *aggregate.Aggregator, overview series.Overview, logger *slog.Logger,
) error {
	if cfg.Export.Dir == "" {
		return nil
	}

	exporter, newErr := export.New[export.Dataset](cfg.Export.Dir, codec, logger)
	if newErr != nil {
		return newErr
	}

	for _, table := range agg.Tables() {
		writeErr := exporter.Write(table.Field(), export.FromTable(table, cfg.Input.IDColumn))
		if writeErr != nil {
			logger.Warn("dataset export failed", "field", table.Field(), "error", writeErr)
		}
	}

	if len(overview.Fields) == 0 {
		return nil
	}

	writeErr := exporter.Write("summary", export.FromOverview(overview))
	if writeErr != nil {
		logger.Warn("dataset export failed", "field", "summary", "error", writeErr)
	}

	return nil
}
