package export

import (
	"slices"
	"strconv"

	"github.com/gitdrift/gitdrift/internal/aggregate"
	"github.com/gitdrift/gitdrift/internal/series"
)

// Dataset is the serializable form of one field's table or of the
// cross-field summary.
type Dataset struct {
	Field   string   `json:"field"   yaml:"field"`
	Key     string   `json:"key"     yaml:"key"`
	Commits []string `json:"commits" yaml:"commits"`
	Rows    []Row    `json:"rows"    yaml:"rows"`
}

// Row is one record of a Dataset. An empty value marks an absent cell,
// matching the input contract.
type Row struct {
	ID     string   `json:"id"     yaml:"id"`
	Values []string `json:"values" yaml:"values"`
}

// Records implements Tabular: a header of the key column plus the commit
// short hashes, then one record per row.
func (d Dataset) Records() [][]string {
	records := make([][]string, 0, len(d.Rows)+1)
	records = append(records, append([]string{d.Key}, d.Commits...))

	for _, r := range d.Rows {
		records = append(records, append([]string{r.ID}, r.Values...))
	}

	return records
}

// FromTable flattens one field's table. key names the identifier column in
// the exported header.
func FromTable(t *aggregate.Table, key string) Dataset {
	rows := make([]Row, 0, len(t.Rows()))

	for _, r := range t.Rows() {
		values := make([]string, len(r.Cells))

		for i, c := range r.Cells {
			if c.Present {
				values[i] = c.Value
			}
		}

		rows = append(rows, Row{ID: r.ID, Values: values})
	}

	return Dataset{Field: t.Field(), Key: key, Commits: slices.Clone(t.Commits()), Rows: rows}
}

// FromOverview flattens the cross-field numeric summary, one row per field.
func FromOverview(o series.Overview) Dataset {
	rows := make([]Row, 0, len(o.Fields))

	for i, field := range o.Fields {
		values := make([]string, len(o.Sums[i]))
		for j, v := range o.Sums[i] {
			values[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}

		rows = append(rows, Row{ID: field, Values: values})
	}

	return Dataset{Field: "summary", Key: "field", Commits: slices.Clone(o.Commits), Rows: rows}
}
