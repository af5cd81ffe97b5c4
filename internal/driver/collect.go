package driver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gitdrift/gitdrift/internal/aggregate"
	"github.com/gitdrift/gitdrift/internal/archive"
	"github.com/gitdrift/gitdrift/internal/command"
	"github.com/gitdrift/gitdrift/internal/config"
	"github.com/gitdrift/gitdrift/internal/cursor"
	"github.com/gitdrift/gitdrift/internal/snapshot"
	"github.com/gitdrift/gitdrift/internal/summary"
)

// collection is what the traversal gathered.
type collection struct {
	examined    int
	contributed []string
	skips       []summary.Skip
	agg         *aggregate.Aggregator
}

// collector runs the per-commit measurement while the cursor holds the
// checkout.
type collector struct {
	outfile  string
	idColumn string
	runner   *command.Runner
	keeper   *archive.Keeper
	log      *slog.Logger
}

// collect clones the repository and folds every selected commit's snapshot
// into the aggregator. The clone is released before returning, whatever the
// exit path.
func collect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (collection, error) {
	coll := collection{agg: aggregate.New(cfg.Input.IDColumn, cfg.Input.IgnoreColumns)}

	start, end, windowErr := cfg.Range.Window()
	if windowErr != nil {
		return coll, windowErr
	}

	cur, openErr := cursor.Open(ctx, cursor.Options{
		URL:    cfg.Repository,
		Dest:   cfg.Clone.Dest,
		Branch: cfg.Clone.Branch,
		Filters: cursor.Filters{
			StartDate:   start,
			EndDate:     end,
			StartCommit: cfg.Range.StartCommit,
			EndCommit:   cfg.Range.EndCommit,
			Select:      cfg.Range.Only,
		},
		Logger: logger,
	})
	if openErr != nil {
		return coll, openErr
	}
	defer cur.Close()

	var keeper *archive.Keeper

	if cfg.Report.KeepSnapshots {
		k, keeperErr := archive.NewKeeper(filepath.Join(cfg.Report.Dir, "snapshots"), logger)
		if keeperErr != nil {
			return coll, keeperErr
		}

		keeper = k
	}

	col := &collector{
		outfile:  cfg.Outfile,
		idColumn: cfg.Input.IDColumn,
		runner:   command.NewRunner(buildSpec(cfg, cur.Path()), logger),
		keeper:   keeper,
		log:      logger,
	}

	for {
		commit, nextErr := cur.Next(ctx)
		if errors.Is(nextErr, io.EOF) {
			return coll, nil
		}

		if nextErr != nil {
			return coll, nextErr
		}

		coll.examined++
		logger.Info("examining commit", "commit", commit.Short, "when", commit.When)

		snap, measureErr := col.measure(ctx, commit.Short)
		if measureErr != nil {
			if ctx.Err() != nil {
				return coll, ctx.Err()
			}

			logger.Warn("skipping commit", "commit", commit.Short, "error", measureErr)
			coll.skips = append(coll.skips, summary.Skip{Commit: commit.Short, Reason: skipReason(measureErr)})

			continue
		}

		coll.agg.Ingest(commit.Short, snap)
		coll.contributed = append(coll.contributed, commit.Short)
	}
}

// measure runs the command chain against the current checkout and reads the
// snapshot it produced, archiving the raw file when keeping is enabled.
func (c *collector) measure(ctx context.Context, short string) (*snapshot.Snapshot, error) {
	runErr := c.runner.Execute(ctx)
	if runErr != nil {
		return nil, runErr
	}

	snap, readErr := snapshot.ReadFile(c.outfile, c.idColumn)
	if readErr != nil {
		return nil, readErr
	}

	if c.keeper != nil {
		keepErr := c.keeper.Keep(short, c.outfile)
		if keepErr != nil {
			c.log.Warn("snapshot archive failed", "commit", short, "error", keepErr)
		}
	}

	return snap, nil
}

// buildSpec assembles the resolved command set for the checked-out tree.
func buildSpec(cfg *config.Config, target string) command.Spec {
	spec := command.Spec{Candidates: append([]string{cfg.Command}, cfg.Alternates...)}

	if cfg.Exec.Venv != "" {
		spec.PreCommand, spec.NoInstall = command.VenvPreCommands(cfg.Exec.Venv)
	}

	if cfg.Exec.PreCommand != "" {
		spec.PreCommand = chainScript(spec.PreCommand, cfg.Exec.PreCommand)
		spec.NoInstall = chainScript(spec.NoInstall, command.StripInstall(cfg.Exec.PreCommand))
	}

	spec.LibPath = target
	if cfg.Exec.LibPath != "" {
		spec.LibPath = filepath.Join(target, cfg.Exec.LibPath)
	}

	return spec.Resolve(target, cfg.Outfile)
}

// chainScript joins two shell fragments into a loose chain.
func chainScript(a, b string) string {
	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	return a + "; " + b
}

// skipReason condenses a recoverable per-commit error for the run summary.
func skipReason(err error) string {
	switch {
	case errors.Is(err, command.ErrAllCandidatesFailed):
		return "command failed"
	case errors.Is(err, snapshot.ErrMissingIdentifier):
		return "identifier column missing"
	case errors.Is(err, snapshot.ErrEmptyOutput):
		return "no usable output"
	default:
		return "malformed output"
	}
}
