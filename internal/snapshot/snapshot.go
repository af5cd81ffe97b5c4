// Package snapshot parses one commit's CSV emission into rows keyed by the
// record identifier column.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Recoverable read failures. Both skip the offending commit; neither aborts
// the traversal.
var (
	// ErrEmptyOutput reports a snapshot with no data rows.
	ErrEmptyOutput = errors.New("snapshot has no data rows")

	// ErrMissingIdentifier reports a header without the identifier column.
	ErrMissingIdentifier = errors.New("identifier column missing")
)

// Snapshot is one commit's parsed measurement table. Rows are squared to the
// header width; empty cells count as missing values downstream.
type Snapshot struct {
	Header []string
	Rows   [][]string

	idIndex int
}

// ReadFile parses the command's output file keyed on idColumn. An absent or
// unreadable file reports ErrEmptyOutput, the same recoverable condition as
// a blank one.
func ReadFile(path, idColumn string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyOutput, err)
	}
	defer file.Close()

	return Read(file, idColumn)
}

// Read parses CSV content keyed on idColumn. The first record is the header;
// a header whose cells carry surrounding spaces still matches.
func Read(r io.Reader, idColumn string) (*Snapshot, error) {
	reader := csv.NewReader(r)
	// Ragged rows are accepted here and squared to the header width below.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, readErr := reader.ReadAll()
	if readErr != nil {
		return nil, fmt.Errorf("parse snapshot: %w", readErr)
	}

	if len(records) == 0 {
		return nil, ErrEmptyOutput
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	idIndex := slices.Index(header, idColumn)
	if idIndex < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingIdentifier, idColumn)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, square(record, len(header)))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyOutput
	}

	return &Snapshot{Header: header, Rows: rows, idIndex: idIndex}, nil
}

// IDIndex returns the position of the identifier column in Header.
func (s *Snapshot) IDIndex() int {
	return s.idIndex
}

// ID returns row i's identifier value.
func (s *Snapshot) ID(i int) string {
	return s.Rows[i][s.idIndex]
}

// square pads or truncates one record to the header width.
func square(record []string, width int) []string {
	if len(record) == width {
		return record
	}

	squared := make([]string, width)
	copy(squared, record)

	return squared
}
