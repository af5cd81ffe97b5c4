// Package command executes the measurement command against the checked-out
// tree and classifies each run as success or failure from its error stream.
// Exit codes are ignored; many measurement scripts exit non-zero on clean
// runs, so only the stderr heuristic decides.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ErrAllCandidatesFailed reports that every candidate command failed for one
// commit. The wrapped message concatenates the per-candidate diagnostics.
var ErrAllCandidatesFailed = errors.New("all command candidates failed")

// LibPathVar is the environment variable pointed into the checked-out tree
// so measurement scripts import the code under inspection, not an installed
// copy.
const LibPathVar = "PYTHONPATH"

// Spec is one fully resolved command set. Substitution tokens are resolved
// once before the traversal begins, never per commit.
type Spec struct {
	Candidates []string // primary command first, then the alternates
	PreCommand string   // full pre-command, may install dependencies
	NoInstall  string   // pre-command variant without dependency installation
	LibPath    string   // value assigned to LibPathVar, empty leaves it unset
}

// execFunc runs a shell script and returns its captured stderr. The seam
// keeps process spawning separate from outcome judgment.
type execFunc func(ctx context.Context, script string, env []string) (string, error)

// Runner executes Spec candidates in order until one succeeds.
type Runner struct {
	spec Spec
	run  execFunc
	log  *slog.Logger
}

// NewRunner builds a Runner for a resolved spec.
func NewRunner(spec Spec, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{spec: spec, run: runShell, log: logger}
}

// Execute runs the candidate chain against the current working tree. It
// returns nil as soon as one candidate succeeds; when every candidate fails
// the error is ErrAllCandidatesFailed carrying the joined diagnostics.
func (r *Runner) Execute(ctx context.Context) error {
	diagnostics := make([]string, 0, len(r.spec.Candidates))

	for _, candidate := range r.spec.Candidates {
		outcome := r.runCandidate(ctx, candidate)
		if outcome.Succeeded {
			return nil
		}

		r.log.Debug("command candidate failed", "command", candidate)
		diagnostics = append(diagnostics, outcome.Diagnostic)

		if ctx.Err() != nil {
			break
		}
	}

	return fmt.Errorf("%w: %s", ErrAllCandidatesFailed, strings.Join(diagnostics, "\n"))
}

// runCandidate executes one candidate with the full pre-command. When stderr
// reports a missing dependency manifest the candidate is retried once with
// the no-install variant; the retry's stream alone is judged.
func (r *Runner) runCandidate(ctx context.Context, candidate string) Outcome {
	stderr, runErr := r.run(ctx, joinScript(r.spec.PreCommand, candidate), r.environ())
	if spawnFailed(runErr) {
		return Outcome{Diagnostic: runErr.Error()}
	}

	if manifestMissing(stderr) {
		r.log.Info("dependency manifest absent, retrying without install", "command", candidate)

		stderr, runErr = r.run(ctx, joinScript(r.spec.NoInstall, candidate), r.environ())
		if spawnFailed(runErr) {
			return Outcome{Diagnostic: runErr.Error()}
		}
	}

	return Judge(stderr)
}

func (r *Runner) environ() []string {
	env := os.Environ()

	if r.spec.LibPath != "" {
		env = append(env, LibPathVar+"="+r.spec.LibPath)
	}

	return env
}

// spawnFailed reports process start failures. A non-zero exit is not one;
// failure is judged from the error stream instead.
func spawnFailed(err error) bool {
	if err == nil {
		return false
	}

	var exitErr *exec.ExitError

	return !errors.As(err, &exitErr)
}

// joinScript chains the pre-command in front of the candidate. The candidate
// still runs when the pre-command fails, mirroring a loose shell chain.
func joinScript(pre, candidate string) string {
	if pre == "" {
		return candidate
	}

	return pre + "; " + candidate
}

func runShell(ctx context.Context, script string, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.Env = env

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stderr.String(), err
}
