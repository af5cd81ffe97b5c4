package report

import (
	"github.com/go-echarts/go-echarts/v2/charts"

	"github.com/gitdrift/gitdrift/internal/report/htmlpage"
	"github.com/gitdrift/gitdrift/internal/series"
	"github.com/gitdrift/gitdrift/pkg/stats"
)

// distributionChart builds the per-commit boxplot of a numeric field. A
// commit that carried no values gets a nil box.
func distributionChart(cOpts *htmlpage.ChartOpts, dist series.Distribution) *charts.BoxPlot {
	boxes := make([][]float64, len(dist.Values))
	for i, values := range dist.Values {
		boxes[i] = stats.FiveNum(values)
	}

	return htmlpage.BuildBoxPlot(cOpts, dist.Commits, dist.Field, boxes, dist.Field)
}

// summaryChart builds the per-commit sum line of a numeric field.
func summaryChart(cOpts *htmlpage.ChartOpts, palette htmlpage.Palette, sums series.Summary) *charts.Line {
	data := make([]htmlpage.SeriesData, len(sums.Sums))
	for i, v := range sums.Sums {
		data[i] = v
	}

	lineSeries := []htmlpage.LineSeries{
		{Name: sums.Field, Data: data, Color: palette.Color(0)},
	}

	return htmlpage.BuildLineChart(cOpts, sums.Commits, lineSeries, "sum")
}

// valueCountChart builds the stacked per-commit value counts of a
// categorical field.
func valueCountChart(cOpts *htmlpage.ChartOpts, palette htmlpage.Palette, counts series.ValueCounts) *charts.Bar {
	barSeries := make([]htmlpage.BarSeries, 0, len(counts.Values))

	for i, value := range counts.Values {
		data := make([]htmlpage.SeriesData, len(counts.Commits))
		for j, n := range counts.Counts[i] {
			data[j] = n
		}

		barSeries = append(barSeries, htmlpage.BarSeries{
			Name:  value,
			Data:  data,
			Color: palette.Color(i),
			Stack: "counts",
		})
	}

	return htmlpage.BuildBarChart(cOpts, counts.Commits, barSeries, "records")
}

// transitionChart builds grouped bars of value-pair counts per adjacent
// commit step. Unchanged pairs share the muted stable color so real changes
// stand out.
func transitionChart(cOpts *htmlpage.ChartOpts, palette htmlpage.Palette, trans series.Transitions) *charts.Bar {
	type pairKey struct {
		before, after string
	}

	labels := make([]string, len(trans.Steps))
	stepCounts := make([]map[pairKey]int, len(trans.Steps))

	var order []pairKey

	seen := make(map[pairKey]bool)

	for i, step := range trans.Steps {
		labels[i] = step.From + " → " + step.To
		stepCounts[i] = make(map[pairKey]int, len(step.Pairs))

		for _, p := range step.Pairs {
			k := pairKey{p.Before, p.After}
			stepCounts[i][k] = p.Count

			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}

	barSeries := make([]htmlpage.BarSeries, 0, len(order))
	changed := 0

	for _, k := range order {
		data := make([]htmlpage.SeriesData, len(trans.Steps))
		for i := range trans.Steps {
			data[i] = stepCounts[i][k]
		}

		color := palette.Stable
		if k.before != k.after {
			color = palette.Color(changed)
			changed++
		}

		barSeries = append(barSeries, htmlpage.BarSeries{
			Name:  k.before + " → " + k.after,
			Data:  data,
			Color: color,
		})
	}

	return htmlpage.BuildBarChart(cOpts, labels, barSeries, "records")
}

// overviewChart builds the cross-field line chart of numeric sums.
func overviewChart(cOpts *htmlpage.ChartOpts, palette htmlpage.Palette, overview series.Overview) *charts.Line {
	lineSeries := make([]htmlpage.LineSeries, 0, len(overview.Fields))

	for i, field := range overview.Fields {
		data := make([]htmlpage.SeriesData, len(overview.Commits))
		for j, v := range overview.Sums[i] {
			data[j] = v
		}

		lineSeries = append(lineSeries, htmlpage.LineSeries{
			Name:  field,
			Data:  data,
			Color: palette.Color(i),
		})
	}

	return htmlpage.BuildLineChart(cOpts, overview.Commits, lineSeries, "sum")
}
