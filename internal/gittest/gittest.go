// Package gittest builds throwaway git repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/require"

	"github.com/gitdrift/gitdrift/pkg/gitlib"
)

// Repo is a scratch repository rooted in a test temp dir.
type Repo struct {
	Path string

	t      *testing.T
	native *git2go.Repository
}

// New initializes an empty repository under t.TempDir().
func New(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()

	native, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(native.Free)

	return &Repo{Path: dir, t: t, native: native}
}

// WriteFile creates or overwrites a file in the working tree.
func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.Path, name)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	require.NoError(r.t, err)

	err = os.WriteFile(path, []byte(content), 0o644)
	require.NoError(r.t, err)
}

// Commit stages every change and commits it with the given timestamp.
func (r *Repo) Commit(message string, when time.Time) gitlib.Hash {
	r.t.Helper()

	index, err := r.native.Index()
	require.NoError(r.t, err)

	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	require.NoError(r.t, err)

	err = index.Write()
	require.NoError(r.t, err)

	treeID, err := index.WriteTree()
	require.NoError(r.t, err)

	tree, err := r.native.LookupTree(treeID)
	require.NoError(r.t, err)

	defer tree.Free()

	sig := &git2go.Signature{
		Name:  "Drift Tester",
		Email: "tester@example.com",
		When:  when,
	}

	var parents []*git2go.Commit

	head, headErr := r.native.Head()
	if headErr == nil {
		parent, lookupErr := r.native.LookupCommit(head.Target())
		require.NoError(r.t, lookupErr)

		parents = append(parents, parent)

		head.Free()

		defer parent.Free()
	}

	oid, err := r.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(r.t, err)

	return gitlib.HashFromOid(oid)
}

// CommitFile writes one file and commits it in a single step.
func (r *Repo) CommitFile(name, content, message string, when time.Time) gitlib.Hash {
	r.t.Helper()

	r.WriteFile(name, content)

	return r.Commit(message, when)
}
