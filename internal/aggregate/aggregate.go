// Package aggregate accumulates per-commit snapshots into longitudinal
// field tables, outer-joined on the record identifier. One Aggregator owns
// every table for a run; traversal is sequential, so no locking is needed.
package aggregate

import (
	"slices"

	"github.com/gitdrift/gitdrift/internal/snapshot"
)

// Cell is one field value for one identifier at one commit. Present is false
// when the identifier was absent from that commit's snapshot or the cell was
// empty.
type Cell struct {
	Value   string
	Present bool
}

// Row is one identifier's trajectory across the ingested commits.
type Row struct {
	ID    string
	Cells []Cell
}

// Table is one field's accumulated values: rows are identifiers, columns are
// the commits that carried the field, in ingest order.
type Table struct {
	field   string
	commits []string
	rows    []Row
}

// Field returns the column name this table tracks.
func (t *Table) Field() string {
	return t.field
}

// Commits returns the short hashes that contributed a column, in ingest
// order.
func (t *Table) Commits() []string {
	return t.commits
}

// Rows returns the joined rows. Callers must not mutate them.
func (t *Table) Rows() []Row {
	return t.rows
}

// entry is one (identifier, value) pair projected from a snapshot column.
type entry struct {
	id   string
	cell Cell
}

// ingest outer-joins one commit's projection into the table. Re-ingesting a
// short hash overwrites that column instead of adding a second one.
// Duplicate identifiers join permissively: m existing rows against n
// incoming entries produce m by n rows, the way a dataframe merge would.
func (t *Table) ingest(short string, entries []entry) {
	col := t.ensureColumn(short)
	groups, order := groupByID(entries)

	joined := make([]Row, 0, len(t.rows))
	consumed := make(map[string]bool, len(groups))

	for _, row := range t.rows {
		group, ok := groups[row.ID]
		if !ok {
			joined = append(joined, row)

			continue
		}

		consumed[row.ID] = true

		for _, cell := range group {
			dup := Row{ID: row.ID, Cells: slices.Clone(row.Cells)}
			dup.Cells[col] = cell
			joined = append(joined, dup)
		}
	}

	for _, id := range order {
		if consumed[id] {
			continue
		}

		for _, cell := range groups[id] {
			fresh := Row{ID: id, Cells: make([]Cell, len(t.commits))}
			fresh.Cells[col] = cell
			joined = append(joined, fresh)
		}
	}

	t.rows = joined
}

// ensureColumn returns the column index for short, clearing it when the
// commit was ingested before and appending a fresh absent column otherwise.
func (t *Table) ensureColumn(short string) int {
	if col := slices.Index(t.commits, short); col >= 0 {
		for i := range t.rows {
			t.rows[i].Cells[col] = Cell{}
		}

		return col
	}

	t.commits = append(t.commits, short)
	for i := range t.rows {
		t.rows[i].Cells = append(t.rows[i].Cells, Cell{})
	}

	return len(t.commits) - 1
}

// groupByID buckets entries by identifier, keeping both encounter order of
// identifiers and entry order within a bucket.
func groupByID(entries []entry) (map[string][]Cell, []string) {
	groups := make(map[string][]Cell, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		if _, seen := groups[e.id]; !seen {
			order = append(order, e.id)
		}

		groups[e.id] = append(groups[e.id], e.cell)
	}

	return groups, order
}

// Aggregator owns the field tables for one run and the order fields were
// first seen in.
type Aggregator struct {
	idColumn string
	ignore   map[string]struct{}
	fields   []string
	tables   map[string]*Table
}

// New builds an Aggregator keyed on idColumn. Columns named in ignore never
// become fields.
func New(idColumn string, ignore []string) *Aggregator {
	set := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		set[name] = struct{}{}
	}

	return &Aggregator{
		idColumn: idColumn,
		ignore:   set,
		tables:   make(map[string]*Table),
	}
}

// Ingest folds one commit's snapshot into the field tables. Every column
// except the identifier and the ignored ones lands as a column named by the
// commit's short hash in that field's table.
func (a *Aggregator) Ingest(short string, snap *snapshot.Snapshot) {
	for col, name := range snap.Header {
		if col == snap.IDIndex() || name == "" {
			continue
		}

		if _, skip := a.ignore[name]; skip {
			continue
		}

		a.table(name).ingest(short, project(snap, col))
	}
}

// Fields returns field names in first-sight order.
func (a *Aggregator) Fields() []string {
	return a.fields
}

// Table returns the accumulated table for a field.
func (a *Aggregator) Table(field string) (*Table, bool) {
	t, ok := a.tables[field]

	return t, ok
}

// Tables returns every field table in first-sight order.
func (a *Aggregator) Tables() []*Table {
	out := make([]*Table, 0, len(a.fields))
	for _, field := range a.fields {
		out = append(out, a.tables[field])
	}

	return out
}

// Empty reports whether no snapshot contributed any field yet.
func (a *Aggregator) Empty() bool {
	return len(a.fields) == 0
}

func (a *Aggregator) table(field string) *Table {
	if t, ok := a.tables[field]; ok {
		return t
	}

	t := &Table{field: field}
	a.tables[field] = t
	a.fields = append(a.fields, field)

	return t
}

// project extracts the (identifier, value) pairs of one snapshot column in
// row order. Empty values become absent cells.
func project(snap *snapshot.Snapshot, col int) []entry {
	entries := make([]entry, 0, len(snap.Rows))

	for i, row := range snap.Rows {
		value := row[col]
		entries = append(entries, entry{
			id:   snap.ID(i),
			cell: Cell{Value: value, Present: value != ""},
		})
	}

	return entries
}
