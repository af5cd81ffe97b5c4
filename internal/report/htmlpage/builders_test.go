package htmlpage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitdrift/gitdrift/internal/report/htmlpage"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	cOpts := htmlpage.DefaultChartOpts()
	labels := []string{"c1", "c2", "c3"}
	series := []htmlpage.BarSeries{
		{
			Name:  "pass",
			Data:  []htmlpage.SeriesData{1, 2, 1},
			Color: "#00ff00",
			Stack: "counts",
		},
		{
			Name:  "fail",
			Data:  []htmlpage.SeriesData{1, 0, 1},
			Stack: "counts",
		},
	}

	chart := htmlpage.BuildBarChart(cOpts, labels, series, "records")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	require.Equal(t, "pass", chart.MultiSeries[0].Name)
	require.Equal(t, "fail", chart.MultiSeries[1].Name)
}

func TestBuildBarChart_NilOpts(t *testing.T) {
	t.Parallel()

	chart := htmlpage.BuildBarChart(nil, []string{"c1"}, []htmlpage.BarSeries{
		{Name: "v", Data: []htmlpage.SeriesData{1}},
	}, "count")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}

func TestBuildLineChart(t *testing.T) {
	t.Parallel()

	cOpts := htmlpage.NewChartOpts(htmlpage.ThemeLight)
	series := []htmlpage.LineSeries{
		{Name: "score", Data: []htmlpage.SeriesData{1.5, 2.25, 3.0}, Color: "#ff0000"},
	}

	chart := htmlpage.BuildLineChart(cOpts, []string{"c1", "c2", "c3"}, series, "sum")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	require.Equal(t, "score", chart.MultiSeries[0].Name)
}

func TestBuildLineChart_NilOpts(t *testing.T) {
	t.Parallel()

	chart := htmlpage.BuildLineChart(nil, []string{"c1"}, []htmlpage.LineSeries{
		{Name: "v", Data: []htmlpage.SeriesData{1.0}},
	}, "sum")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}

func TestBuildBoxPlot(t *testing.T) {
	t.Parallel()

	boxes := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6},
	}

	chart := htmlpage.BuildBoxPlot(htmlpage.DefaultChartOpts(), []string{"c1", "c2"}, "score", boxes, "value")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	require.Equal(t, "score", chart.MultiSeries[0].Name)
	require.Len(t, chart.MultiSeries[0].Data, 2)
}

func TestBuildBoxPlot_NilOpts(t *testing.T) {
	t.Parallel()

	chart := htmlpage.BuildBoxPlot(nil, []string{"c1"}, "v", [][]float64{{1, 1, 1, 1, 1}}, "value")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}
