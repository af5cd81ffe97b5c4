package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gitdrift/gitdrift/internal/aggregate"
	"github.com/gitdrift/gitdrift/internal/export"
	"github.com/gitdrift/gitdrift/internal/series"
	"github.com/gitdrift/gitdrift/internal/snapshot"
)

// linesTable builds a two-commit table with one absent cell.
func linesTable(t *testing.T) *aggregate.Table {
	t.Helper()

	agg := aggregate.New("id", nil)

	first, readErr := snapshot.Read(strings.NewReader("id,lines\nx,10\ny,20\n"), "id")
	require.NoError(t, readErr)
	agg.Ingest("a1b2c3d", first)

	second, readErr := snapshot.Read(strings.NewReader("id,lines\nx,11\n"), "id")
	require.NoError(t, readErr)
	agg.Ingest("e4f5a6b", second)

	table, ok := agg.Table("lines")
	require.True(t, ok)

	return table
}

func TestFromTable(t *testing.T) {
	t.Parallel()

	ds := export.FromTable(linesTable(t), "id")

	assert.Equal(t, "lines", ds.Field)
	assert.Equal(t, "id", ds.Key)
	assert.Equal(t, []string{"a1b2c3d", "e4f5a6b"}, ds.Commits)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, export.Row{ID: "x", Values: []string{"10", "11"}}, ds.Rows[0])
	assert.Equal(t, export.Row{ID: "y", Values: []string{"20", ""}}, ds.Rows[1])
}

func TestFromOverview(t *testing.T) {
	t.Parallel()

	ds := export.FromOverview(series.Overview{
		Commits: []string{"a1b2c3d", "e4f5a6b"},
		Fields:  []string{"lines", "funcs"},
		Sums:    [][]float64{{30, 32.5}, {7, 0}},
	})

	assert.Equal(t, "summary", ds.Field)
	assert.Equal(t, "field", ds.Key)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, export.Row{ID: "lines", Values: []string{"30", "32.5"}}, ds.Rows[0])
	assert.Equal(t, export.Row{ID: "funcs", Values: []string{"7", "0"}}, ds.Rows[1])
}

func TestDatasetRecords(t *testing.T) {
	t.Parallel()

	ds := export.FromTable(linesTable(t), "id")

	assert.Equal(t, [][]string{
		{"id", "a1b2c3d", "e4f5a6b"},
		{"x", "10", "11"},
		{"y", "20", ""},
	}, ds.Records())
}

func TestCSVExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exporter, err := export.New[export.Dataset](dir, &export.CSVCodec{}, nil)
	require.NoError(t, err)

	ds := export.FromTable(linesTable(t), "id")
	require.NoError(t, exporter.Write("lines", ds))

	file, openErr := os.Open(filepath.Join(dir, "lines.csv"))
	require.NoError(t, openErr)
	defer file.Close()

	records, readErr := csv.NewReader(file).ReadAll()
	require.NoError(t, readErr)
	assert.Equal(t, ds.Records(), records)
}

func TestJSONExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exporter, err := export.New[export.Dataset](dir, export.NewJSONCodec(), nil)
	require.NoError(t, err)

	ds := export.FromTable(linesTable(t), "id")
	require.NoError(t, exporter.Write("lines", ds))

	data, readErr := os.ReadFile(filepath.Join(dir, "lines.json"))
	require.NoError(t, readErr)

	var decoded export.Dataset

	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ds, decoded)
}

func TestYAMLExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exporter, err := export.New[export.Dataset](dir, &export.YAMLCodec{}, nil)
	require.NoError(t, err)

	ds := export.FromTable(linesTable(t), "id")
	require.NoError(t, exporter.Write("lines", ds))

	data, readErr := os.ReadFile(filepath.Join(dir, "lines.yaml"))
	require.NoError(t, readErr)

	var decoded export.Dataset

	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, ds, decoded)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		format    string
		extension string
	}{
		{name: "empty defaults to csv", format: "", extension: ".csv"},
		{name: "csv", format: "csv", extension: ".csv"},
		{name: "case insensitive", format: "CSV", extension: ".csv"},
		{name: "json", format: "json", extension: ".json"},
		{name: "yaml", format: "YAML", extension: ".yaml"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codec, err := export.ParseFormat(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.extension, codec.Extension())
		})
	}
}

func TestParseFormatUnknown(t *testing.T) {
	t.Parallel()

	_, err := export.ParseFormat("xml")
	require.ErrorIs(t, err, export.ErrUnknownFormat)
	assert.Contains(t, err.Error(), "xml")
}

func TestCSVCodecRejectsNonTabular(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := (&export.CSVCodec{}).Encode(&buf, 42)
	require.ErrorIs(t, err, export.ErrNotTabular)
}

func TestExporterSanitizesBasename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exporter, err := export.New[export.Dataset](dir, &export.CSVCodec{}, nil)
	require.NoError(t, err)

	require.NoError(t, exporter.Write("Total Lines (%)", export.FromTable(linesTable(t), "id")))

	_, statErr := os.Stat(filepath.Join(dir, "total-lines.csv"))
	require.NoError(t, statErr)
}

func TestExporterDeduplicatesBasenames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exporter, err := export.New[export.Dataset](dir, &export.CSVCodec{}, nil)
	require.NoError(t, err)

	ds := export.FromTable(linesTable(t), "id")
	require.NoError(t, exporter.Write("summary", ds))
	require.NoError(t, exporter.Write("summary", ds))

	_, firstErr := os.Stat(filepath.Join(dir, "summary.csv"))
	require.NoError(t, firstErr)
	_, secondErr := os.Stat(filepath.Join(dir, "summary-2.csv"))
	require.NoError(t, secondErr)
}
