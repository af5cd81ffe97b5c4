package gitlib_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdrift/gitdrift/internal/gittest"
	"github.com/gitdrift/gitdrift/pkg/gitlib"
)

func TestOpenRepository(t *testing.T) {
	tr := gittest.New(t)
	tr.CommitFile("test.txt", "content", "initial", time.Now())

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	assert.Equal(t, tr.Path, repo.Path())
	assert.NotNil(t, repo.Native())
}

func TestOpenRepositoryNotFound(t *testing.T) {
	repo, err := gitlib.OpenRepository("/nonexistent/path/to/repo")

	assert.Nil(t, repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open repository")
}

func TestClone(t *testing.T) {
	tr := gittest.New(t)
	expected := tr.CommitFile("data.txt", "payload", "initial", time.Now())

	dest := filepath.Join(t.TempDir(), "clone")

	repo, err := gitlib.Clone(tr.Path, dest, "")
	require.NoError(t, err)

	defer repo.Free()

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, expected, head)

	content, err := os.ReadFile(filepath.Join(dest, "data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestCloneDestinationCollision(t *testing.T) {
	tr := gittest.New(t)
	tr.CommitFile("a.txt", "a", "initial", time.Now())

	dest := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.MkdirAll(filepath.Join(dest, "occupied"), 0o755))

	repo, err := gitlib.Clone(tr.Path, dest, "")

	assert.Nil(t, repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clone repository")
}

func TestRepositoryHead(t *testing.T) {
	tr := gittest.New(t)
	tr.CommitFile("x.txt", "x", "first", time.Now().Add(-time.Hour))
	expected := tr.CommitFile("y.txt", "y", "second", time.Now())

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, expected, head)
}

func TestLookupCommit(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tr := gittest.New(t)
	hash := tr.CommitFile("f.txt", "f", "subject line\n\nbody text", now)

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	commit, err := repo.LookupCommit(hash)
	require.NoError(t, err)

	defer commit.Free()

	assert.Equal(t, hash, commit.Hash())
	assert.Equal(t, "subject line", commit.Summary())
	assert.Equal(t, "Drift Tester", commit.Author().Name)
	assert.True(t, commit.When().Equal(now))
}

func TestCheckoutCommit(t *testing.T) {
	tr := gittest.New(t)
	first := tr.CommitFile("data.txt", "old", "first", time.Now().Add(-time.Hour))
	tr.CommitFile("data.txt", "new", "second", time.Now())

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	err = repo.CheckoutCommit(first)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(tr.Path, "data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, first, head)
}

func TestCheckoutCommitUnknownHash(t *testing.T) {
	tr := gittest.New(t)
	tr.CommitFile("a.txt", "a", "initial", time.Now())

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	err = repo.CheckoutCommit(gitlib.NewHash("deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup commit")
}

func TestWalkIterate(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tr := gittest.New(t)

	want := []gitlib.Hash{
		tr.CommitFile("a.txt", "1", "first", base),
		tr.CommitFile("a.txt", "2", "second", base.Add(time.Hour)),
		tr.CommitFile("a.txt", "3", "third", base.Add(2*time.Hour)),
	}

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	walk, err := repo.Walk()
	require.NoError(t, err)

	defer walk.Free()

	walk.SortByTime()
	require.NoError(t, walk.PushHead())

	var got []gitlib.Hash

	err = walk.Iterate(func(c *gitlib.Commit) bool {
		got = append(got, c.Hash())
		c.Free()

		return true
	})
	require.NoError(t, err)

	require.Len(t, got, len(want))
	assert.ElementsMatch(t, want, got)
}

func TestRepositoryFreeTwice(t *testing.T) {
	tr := gittest.New(t)
	tr.CommitFile("x.txt", "x", "init", time.Now())

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	repo.Free()
	repo.Free()
}
