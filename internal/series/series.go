// Package series derives chartable series from accumulated field tables.
// The table's classification decides which derivation applies; nothing here
// re-inspects cell types beyond parsing.
package series

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gitdrift/gitdrift/internal/aggregate"
	"github.com/gitdrift/gitdrift/pkg/stats"
)

// ErrDerivation reports a series that could not be computed from its table.
// Callers log it and omit the field; other fields continue.
var ErrDerivation = errors.New("series derivation failed")

// Summary is a numeric field's per-commit sum across identifiers.
type Summary struct {
	Field   string
	Commits []string
	Sums    []float64
}

// Distribution is the raw per-identifier values per commit, the boxplot
// input for a numeric field. Values[i] holds commit i's present values in
// row order.
type Distribution struct {
	Field   string
	Commits []string
	Values  [][]float64
}

// DeriveNumeric computes the summary and distribution series of a numeric
// field table. A present cell that does not parse as a finite number fails
// the whole field.
func DeriveNumeric(t *aggregate.Table) (Summary, Distribution, error) {
	commits := t.Commits()
	values := make([][]float64, len(commits))

	for col, short := range commits {
		for _, row := range t.Rows() {
			cell := row.Cells[col]
			if !cell.Present {
				continue
			}

			v, parseErr := strconv.ParseFloat(strings.TrimSpace(cell.Value), 64)
			if parseErr != nil {
				return Summary{}, Distribution{}, fmt.Errorf(
					"%w: field %q commit %s: %v", ErrDerivation, t.Field(), short, parseErr)
			}

			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Summary{}, Distribution{}, fmt.Errorf(
					"%w: field %q commit %s: non-finite value %q", ErrDerivation, t.Field(), short, cell.Value)
			}

			values[col] = append(values[col], v)
		}
	}

	sums := make([]float64, len(commits))
	for col := range commits {
		sums[col] = stats.Sum(values[col])
	}

	summary := Summary{Field: t.Field(), Commits: commits, Sums: sums}
	dist := Distribution{Field: t.Field(), Commits: commits, Values: values}

	return summary, dist, nil
}

// ValueCounts is a categorical field's per-commit frequency of each distinct
// value. Values keeps first-encounter order scanning commits oldest first;
// Counts is indexed [value][commit]. Absent cells are never counted.
type ValueCounts struct {
	Field   string
	Commits []string
	Values  []string
	Counts  [][]int
}

// TransitionPair is one (before, after) value group and its size.
type TransitionPair struct {
	Before string
	After  string
	Count  int
}

// TransitionStep holds the grouped transition counts between two adjacent
// commits. Pairs lists unchanged groups first, then changed ones, each in
// encounter order.
type TransitionStep struct {
	From  string
	To    string
	Pairs []TransitionPair
}

// Transitions is a categorical field's transition series across every
// adjacent pair of present commits.
type Transitions struct {
	Field string
	Steps []TransitionStep
}

// DeriveCategorical computes the value-count and transition series of a
// categorical field table.
func DeriveCategorical(t *aggregate.Table) (ValueCounts, Transitions) {
	return deriveValueCounts(t), deriveTransitions(t)
}

func deriveValueCounts(t *aggregate.Table) ValueCounts {
	commits := t.Commits()
	index := make(map[string]int)

	var (
		values []string
		counts [][]int
	)

	for col := range commits {
		for _, row := range t.Rows() {
			cell := row.Cells[col]
			if !cell.Present {
				continue
			}

			i, seen := index[cell.Value]
			if !seen {
				i = len(values)
				index[cell.Value] = i
				values = append(values, cell.Value)
				counts = append(counts, make([]int, len(commits)))
			}

			counts[i][col]++
		}
	}

	return ValueCounts{Field: t.Field(), Commits: commits, Values: values, Counts: counts}
}

func deriveTransitions(t *aggregate.Table) Transitions {
	commits := t.Commits()

	var steps []TransitionStep
	for col := 0; col+1 < len(commits); col++ {
		steps = append(steps, transitionStep(t, col))
	}

	return Transitions{Field: t.Field(), Steps: steps}
}

// transitionStep groups identifiers present at both commits of an adjacent
// pair by their (before, after) values.
func transitionStep(t *aggregate.Table, col int) TransitionStep {
	type pair struct {
		before, after string
	}

	counts := make(map[pair]int)

	var order []pair

	for _, row := range t.Rows() {
		before, after := row.Cells[col], row.Cells[col+1]
		if !before.Present || !after.Present {
			continue
		}

		k := pair{before.Value, after.Value}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}

		counts[k]++
	}

	// Unchanged groups lead so the stable share of records reads off the
	// chart first.
	pairs := make([]TransitionPair, 0, len(order))
	for _, k := range order {
		if k.before == k.after {
			pairs = append(pairs, TransitionPair{Before: k.before, After: k.after, Count: counts[k]})
		}
	}

	for _, k := range order {
		if k.before != k.after {
			pairs = append(pairs, TransitionPair{Before: k.before, After: k.after, Count: counts[k]})
		}
	}

	commits := t.Commits()

	return TransitionStep{From: commits[col], To: commits[col+1], Pairs: pairs}
}

// Overview is the cross-field summary: every numeric field's sums aligned on
// one shared commit axis, zero-filled where a field had no data.
type Overview struct {
	Commits []string
	Fields  []string
	Sums    [][]float64
}

// BuildOverview aligns the given summaries on the run's commit axis. Sums is
// indexed [field][commit] in the order given.
func BuildOverview(commits []string, summaries []Summary) Overview {
	pos := make(map[string]int, len(commits))
	for i, short := range commits {
		pos[short] = i
	}

	fields := make([]string, 0, len(summaries))
	sums := make([][]float64, 0, len(summaries))

	for _, s := range summaries {
		row := make([]float64, len(commits))
		for i, short := range s.Commits {
			if j, ok := pos[short]; ok {
				row[j] = s.Sums[i]
			}
		}

		fields = append(fields, s.Field)
		sums = append(sums, row)
	}

	return Overview{Commits: commits, Fields: fields, Sums: sums}
}
