package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens an existing git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Clone clones the repository at url (a remote URL or a local path) into
// path. An empty branch checks out the remote default branch.
func Clone(url, path, branch string) (*Repository, error) {
	opts := git2go.CloneOptions{CheckoutBranch: branch}

	repo, err := git2go.Clone(url, path, &opts)
	if err != nil {
		return nil, fmt.Errorf("clone repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository working-tree path.
func (r *Repository) Path() string {
	return r.path
}

// Head returns the HEAD reference target.
func (r *Repository) Head() (Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Hash{}, fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	return HashFromOid(ref.Target()), nil
}

// LookupCommit returns the commit with the given hash.
func (r *Repository) LookupCommit(hash Hash) (*Commit, error) {
	commit, err := r.repo.LookupCommit(hash.ToOid())
	if err != nil {
		return nil, fmt.Errorf("lookup commit: %w", err)
	}

	return &Commit{commit: commit, repo: r}, nil
}

// Walk creates a revision walker over the repository.
func (r *Repository) Walk() (*RevWalk, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	return &RevWalk{walk: walk, repo: r}, nil
}

// CheckoutCommit force-checks-out the working tree at the given commit and
// detaches HEAD to it. The commit graph is never mutated.
func (r *Repository) CheckoutCommit(hash Hash) error {
	commit, err := r.repo.LookupCommit(hash.ToOid())
	if err != nil {
		return fmt.Errorf("lookup commit %s: %w", hash.Short(), err)
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("get tree of %s: %w", hash.Short(), err)
	}
	defer tree.Free()

	checkoutErr := r.repo.CheckoutTree(tree, &git2go.CheckoutOptions{
		Strategy: git2go.CheckoutForce,
	})
	if checkoutErr != nil {
		return fmt.Errorf("checkout tree of %s: %w", hash.Short(), checkoutErr)
	}

	headErr := r.repo.SetHeadDetached(hash.ToOid())
	if headErr != nil {
		return fmt.Errorf("detach HEAD to %s: %w", hash.Short(), headErr)
	}

	return nil
}

// Free releases the repository resources. Safe to call more than once.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Native returns the underlying libgit2 repository for advanced operations.
func (r *Repository) Native() *git2go.Repository {
	return r.repo
}
