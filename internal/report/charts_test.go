package report

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdrift/gitdrift/internal/report/htmlpage"
	"github.com/gitdrift/gitdrift/internal/series"
)

func TestDistributionChartBoxesPerCommit(t *testing.T) {
	t.Parallel()

	cOpts := htmlpage.NewChartOpts(htmlpage.ThemeDark)
	dist := series.Distribution{
		Field:   "lines",
		Commits: []string{"c1", "c2"},
		Values:  [][]float64{{1, 2, 3, 4}, nil},
	}

	chart := distributionChart(cOpts, dist)
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)

	boxes, ok := chart.MultiSeries[0].Data.([]opts.BoxPlotData)
	require.True(t, ok)
	require.Len(t, boxes, 2)

	assert.Equal(t, []float64{1, 1.75, 2.5, 3.25, 4}, boxes[0].Value)
	assert.Nil(t, boxes[1].Value)
}

func TestTransitionChartSeriesOrder(t *testing.T) {
	t.Parallel()

	trans := series.Transitions{
		Field: "status",
		Steps: []series.TransitionStep{
			{
				From: "a1b2c3d",
				To:   "e4f5a6b",
				Pairs: []series.TransitionPair{
					{Before: "pass", After: "pass", Count: 1},
					{Before: "pass", After: "fail", Count: 2},
				},
			},
			{
				From: "e4f5a6b",
				To:   "c7d8e9f",
				Pairs: []series.TransitionPair{
					{Before: "fail", After: "fail", Count: 1},
					{Before: "fail", After: "pass", Count: 2},
				},
			},
		},
	}

	palette := htmlpage.GetPalette(htmlpage.ThemeDark)
	chart := transitionChart(htmlpage.DefaultChartOpts(), palette, trans)

	require.Len(t, chart.MultiSeries, 4)
	assert.Equal(t, "pass → pass", chart.MultiSeries[0].Name)
	assert.Equal(t, "pass → fail", chart.MultiSeries[1].Name)
	assert.Equal(t, "fail → fail", chart.MultiSeries[2].Name)
	assert.Equal(t, "fail → pass", chart.MultiSeries[3].Name)
}

func TestTransitionChartColorsUnchangedPairsStable(t *testing.T) {
	t.Parallel()

	trans := series.Transitions{
		Field: "status",
		Steps: []series.TransitionStep{
			{
				From: "a1b2c3d",
				To:   "e4f5a6b",
				Pairs: []series.TransitionPair{
					{Before: "pass", After: "pass", Count: 3},
					{Before: "fail", After: "fail", Count: 1},
					{Before: "pass", After: "fail", Count: 2},
				},
			},
		},
	}

	palette := htmlpage.GetPalette(htmlpage.ThemeDark)
	chart := transitionChart(htmlpage.DefaultChartOpts(), palette, trans)

	require.Len(t, chart.MultiSeries, 3)

	require.NotNil(t, chart.MultiSeries[0].ItemStyle)
	assert.Equal(t, palette.Stable, chart.MultiSeries[0].ItemStyle.Color)

	require.NotNil(t, chart.MultiSeries[1].ItemStyle)
	assert.Equal(t, palette.Stable, chart.MultiSeries[1].ItemStyle.Color)

	require.NotNil(t, chart.MultiSeries[2].ItemStyle)
	assert.Equal(t, palette.Color(0), chart.MultiSeries[2].ItemStyle.Color)
}

func TestTransitionChartZeroFillsMissingPairs(t *testing.T) {
	t.Parallel()

	trans := series.Transitions{
		Field: "status",
		Steps: []series.TransitionStep{
			{
				From:  "a1b2c3d",
				To:    "e4f5a6b",
				Pairs: []series.TransitionPair{{Before: "pass", After: "fail", Count: 2}},
			},
			{
				From:  "e4f5a6b",
				To:    "c7d8e9f",
				Pairs: []series.TransitionPair{{Before: "fail", After: "pass", Count: 1}},
			},
		},
	}

	chart := transitionChart(htmlpage.DefaultChartOpts(), htmlpage.GetPalette(htmlpage.ThemeDark), trans)

	require.Len(t, chart.MultiSeries, 2)

	data, ok := chart.MultiSeries[0].Data.([]opts.BarData)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, 2, data[0].Value)
	assert.Equal(t, 0, data[1].Value)
}

func TestValueCountChartOneSeriesPerValue(t *testing.T) {
	t.Parallel()

	counts := series.ValueCounts{
		Field:   "status",
		Commits: []string{"a1b2c3d", "e4f5a6b"},
		Values:  []string{"pass", "fail"},
		Counts:  [][]int{{2, 1}, {0, 1}},
	}

	chart := valueCountChart(htmlpage.DefaultChartOpts(), htmlpage.GetPalette(htmlpage.ThemeDark), counts)

	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "pass", chart.MultiSeries[0].Name)
	assert.Equal(t, "fail", chart.MultiSeries[1].Name)
}

func TestOverviewChartOneSeriesPerField(t *testing.T) {
	t.Parallel()

	overview := series.Overview{
		Commits: []string{"a1b2c3d", "e4f5a6b"},
		Fields:  []string{"lines", "funcs"},
		Sums:    [][]float64{{30, 32}, {7, 9}},
	}

	chart := overviewChart(htmlpage.DefaultChartOpts(), htmlpage.GetPalette(htmlpage.ThemeDark), overview)

	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "lines", chart.MultiSeries[0].Name)
	assert.Equal(t, "funcs", chart.MultiSeries[1].Name)
}

func TestSanitizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		want  string
	}{
		{name: "spaces to dashes", field: "Total Lines", want: "total-lines"},
		{name: "already clean", field: "status", want: "status"},
		{name: "punctuation trimmed", field: "ratio (%)", want: "ratio"},
		{name: "underscores kept", field: "UP_low-9", want: "up_low-9"},
		{name: "only punctuation", field: "%%%", want: "field"},
		{name: "empty", field: "", want: "field"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sanitizeID(tt.field))
		})
	}
}

func TestPageIDDeduplicates(t *testing.T) {
	t.Parallel()

	s := &HTMLSink{used: make(map[string]bool)}

	assert.Equal(t, "lines-of-code", s.pageID("Lines Of Code"))
	assert.Equal(t, "lines-of-code-2", s.pageID("lines of code"))
	assert.Equal(t, "lines-of-code-3", s.pageID("LINES OF CODE"))
	assert.Equal(t, "status", s.pageID("status"))
}
