// Package cursor walks a cloned repository's history oldest-first, checking
// out each selected commit into the working tree before yielding it.
package cursor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gitdrift/gitdrift/pkg/gitlib"
)

// Sentinel errors for the fatal failure modes.
var (
	ErrClone    = errors.New("clone failed")
	ErrCheckout = errors.New("checkout failed")
)

// cloneAttempts bounds the alternate-destination retries on clone collision.
const cloneAttempts = 5

// Commit is one yielded revision.
type Commit struct {
	Hash  gitlib.Hash
	Short string
	When  time.Time
}

// Options configure Open.
type Options struct {
	URL     string // clone source: a remote URL or a local path
	Dest    string // parent directory for the clone; empty means a temp dir
	Branch  string
	Filters Filters
	Logger  *slog.Logger
}

// Cursor owns a clone of the repository and iterates its history. It is the
// sole writer of the working tree; one cursor per run.
type Cursor struct {
	repo    *gitlib.Repository
	path    string
	remove  string // directory removed on Close; empty once cleaned up
	commits []Commit
	filter  *filterState
	pos     int
	halted  bool
	log     *slog.Logger
}

// Open clones the repository and prepares the commit sequence. The caller
// must Close the cursor to release the clone.
func Open(ctx context.Context, opts Options) (*Cursor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	parent := opts.Dest
	remove := ""

	if parent == "" {
		tempRoot, err := os.MkdirTemp("", "gitdrift-")
		if err != nil {
			return nil, fmt.Errorf("create temp clone dir: %w", err)
		}

		parent = tempRoot
		remove = tempRoot
	}

	base := filepath.Join(parent, repoName(opts.URL))

	repo, path, err := cloneWithRetry(ctx, opts.URL, base, opts.Branch, logger)
	if err != nil {
		if remove != "" {
			_ = os.RemoveAll(remove)
		}

		return nil, err
	}

	if remove == "" {
		// Explicit destination: only the clone itself is ours to remove.
		remove = path
	}

	c := &Cursor{
		repo:   repo,
		path:   path,
		remove: remove,
		filter: newFilterState(opts.Filters),
		log:    logger,
	}

	loadErr := c.load()
	if loadErr != nil {
		c.Close()

		return nil, loadErr
	}

	return c, nil
}

// Next yields the next selected commit with its tree checked out. io.EOF
// signals the end of the sequence. A checkout failure halts the cursor.
func (c *Cursor) Next(ctx context.Context) (Commit, error) {
	if c.halted {
		return Commit{}, io.EOF
	}

	for c.pos < len(c.commits) {
		if err := ctx.Err(); err != nil {
			c.halted = true

			return Commit{}, fmt.Errorf("cursor interrupted: %w", err)
		}

		commit := c.commits[c.pos]
		c.pos++

		include, halt := c.filter.judge(commit)
		if halt {
			c.halted = true
		}

		if !include {
			if c.halted {
				break
			}

			continue
		}

		if err := c.repo.CheckoutCommit(commit.Hash); err != nil {
			c.halted = true

			return Commit{}, fmt.Errorf("%w: %v", ErrCheckout, err)
		}

		return commit, nil
	}

	c.halted = true

	return Commit{}, io.EOF
}

// Path returns the checked-out working tree path.
func (c *Cursor) Path() string {
	return c.path
}

// History returns how many commits the branch holds before filtering.
func (c *Cursor) History() int {
	return len(c.commits)
}

// Close frees the repository and removes the clone directory. Removal
// failures are logged, never raised. Safe to call more than once.
func (c *Cursor) Close() {
	if c.repo != nil {
		c.repo.Free()
		c.repo = nil
	}

	if c.remove == "" {
		return
	}

	target := c.remove
	c.remove = ""

	if err := os.RemoveAll(target); err != nil {
		c.log.Warn("could not remove clone directory", "path", target, "error", err)
	}
}

// load collects the branch history and orders it by commit time ascending.
func (c *Cursor) load() error {
	walk, err := c.repo.Walk()
	if err != nil {
		return err
	}
	defer walk.Free()

	walk.SortByTime()

	if pushErr := walk.PushHead(); pushErr != nil {
		return pushErr
	}

	iterErr := walk.Iterate(func(commit *gitlib.Commit) bool {
		c.commits = append(c.commits, Commit{
			Hash:  commit.Hash(),
			Short: commit.Hash().Short(),
			When:  commit.When(),
		})
		commit.Free()

		return true
	})
	if iterErr != nil {
		return iterErr
	}

	// The walk emits newest-first with topology constraints; the yielded
	// sequence must ascend strictly by commit time.
	sort.SliceStable(c.commits, func(i, j int) bool {
		return c.commits[i].When.Before(c.commits[j].When)
	})

	return nil
}

// cloneWithRetry tries the base destination first, then the alternates.
func cloneWithRetry(ctx context.Context, url, base, branch string, logger *slog.Logger) (*gitlib.Repository, string, error) {
	var lastErr error

	for _, path := range clonePaths(base) {
		if err := ctx.Err(); err != nil {
			return nil, "", fmt.Errorf("clone interrupted: %w", err)
		}

		repo, cloneErr := gitlib.Clone(url, path, branch)
		if cloneErr == nil {
			logger.Info("cloned repository", "url", url, "path", path)

			return repo, path, nil
		}

		lastErr = cloneErr

		logger.Warn("clone attempt failed", "path", path, "error", cloneErr)
	}

	return nil, "", fmt.Errorf("%w: %s: %v", ErrClone, url, lastErr)
}

// clonePaths lists the candidate destinations: the base name, then a
// timestamped alternate, then numbered alternates.
func clonePaths(base string) []string {
	stamp := time.Now().Format("20060102_150405")
	paths := []string{base, fmt.Sprintf("%s_%s", base, stamp)}

	for i := len(paths); i < cloneAttempts; i++ {
		paths = append(paths, fmt.Sprintf("%s_%s_%d", base, stamp, i))
	}

	return paths
}

// repoName derives the clone directory name from the source URL or path.
func repoName(url string) string {
	name := strings.TrimRight(url, "/")
	name = strings.TrimSuffix(name, ".git")

	if idx := strings.LastIndexAny(name, "/:"); idx >= 0 {
		name = name[idx+1:]
	}

	if name == "" {
		name = "repository"
	}

	return name
}
