package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// RevWalk wraps a libgit2 revision walker.
type RevWalk struct {
	walk *git2go.RevWalk
	repo *Repository
}

// PushHead starts the walk from HEAD.
func (w *RevWalk) PushHead() error {
	head, err := w.repo.Head()
	if err != nil {
		return err
	}

	err = w.walk.Push(head.ToOid())
	if err != nil {
		return fmt.Errorf("push HEAD to revwalk: %w", err)
	}

	return nil
}

// SortByTime orders the walk by commit time, newest first.
func (w *RevWalk) SortByTime() {
	w.walk.Sorting(git2go.SortTime)
}

// Iterate calls the callback for each commit in the walk. Returning false
// from the callback stops the iteration. The callback owns each commit and
// must Free it.
func (w *RevWalk) Iterate(cb func(*Commit) bool) error {
	err := w.walk.Iterate(func(commit *git2go.Commit) bool {
		return cb(&Commit{commit: commit, repo: w.repo})
	})
	if err != nil {
		return fmt.Errorf("revwalk iterate: %w", err)
	}

	return nil
}

// Free releases the walker resources.
func (w *RevWalk) Free() {
	if w.walk != nil {
		w.walk.Free()
		w.walk = nil
	}
}
