package gitlib

import (
	"strings"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Signature is a git signature (author or committer).
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash returns the commit hash.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Author returns the commit author.
func (c *Commit) Author() Signature {
	sig := c.commit.Author()

	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// Committer returns the commit committer.
func (c *Commit) Committer() Signature {
	sig := c.commit.Committer()

	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// When returns the committer timestamp. History ordering uses this clock.
func (c *Commit) When() time.Time {
	return c.commit.Committer().When
}

// Message returns the full commit message.
func (c *Commit) Message() string {
	return c.commit.Message()
}

// Summary returns the first line of the commit message.
func (c *Commit) Summary() string {
	message := c.Message()

	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}

	return strings.TrimSpace(message)
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}

// Native returns the underlying libgit2 commit.
func (c *Commit) Native() *git2go.Commit {
	return c.commit
}
