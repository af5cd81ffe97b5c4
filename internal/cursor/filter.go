package cursor

import "time"

// Filters restricts which commits the cursor yields.
type Filters struct {
	StartDate   *time.Time // drop commits strictly before this date
	EndDate     *time.Time // halt once a commit is strictly after this date
	StartCommit string     // hash prefix opening the commit range
	EndCommit   string     // hash prefix closing the commit range, inclusive
	Select      []string   // allow-list of hash prefixes
}

// filterState walks the filter clauses over an ascending commit sequence.
// Clauses compose by short-circuit: dates first, then the commit range,
// then the allow-list.
type filterState struct {
	filters      Filters
	startReached bool
}

func newFilterState(f Filters) *filterState {
	return &filterState{filters: f, startReached: f.StartCommit == ""}
}

// judge decides one commit: include reports whether it passes every clause,
// halt whether iteration must stop after this commit. A halting commit can
// still be included (the end-commit bound is inclusive).
func (s *filterState) judge(c Commit) (include, halt bool) {
	f := s.filters

	if f.StartDate != nil && c.When.Before(rebase(*f.StartDate, c.When.Location())) {
		return false, false
	}

	if f.EndDate != nil && c.When.After(rebase(*f.EndDate, c.When.Location())) {
		return false, true
	}

	if !s.startReached {
		if !c.Hash.HasPrefix(f.StartCommit) {
			return false, false
		}

		s.startReached = true
	}

	if f.EndCommit != "" && c.Hash.HasPrefix(f.EndCommit) {
		halt = true
	}

	return s.allowed(c), halt
}

// allowed applies the explicit allow-list clause.
func (s *filterState) allowed(c Commit) bool {
	if len(s.filters.Select) == 0 {
		return true
	}

	for _, prefix := range s.filters.Select {
		if c.Hash.HasPrefix(prefix) {
			return true
		}
	}

	return false
}

// rebase reinterprets t's wall-clock fields in loc, so date bounds compare
// in each commit's own time zone.
func rebase(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
