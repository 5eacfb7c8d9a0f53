// Package scenario builds demo jj repositories.
//
// Each attempt creates a scratch repository and scripts a short history into
// it: a first change that gets a file and three descriptions, a second change
// that comments the file, and an empty third change. The loop repeats with a
// fresh repository until the three change ids meet the stop condition.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/mattn/go-shellwords"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/wahlandcase/baklab/internal/jj"
	"github.com/wahlandcase/baklab/internal/models"
)

// Snapshot names, in report order
const (
	Commit3    = "commit3"
	Commit2    = "commit2"
	Commit2v1  = "commit2_1"
	Commit2v2  = "commit2_2"
	Commit1    = "commit1"
	Commit1v1  = "commit1_1"
	Commit1v2  = "commit1_2"
	Commit1v3  = "commit1_3"
	ZeroCommit = "zero_commit"
)

// Observer is called after every finished attempt
type Observer func(models.Attempt)

// Result summarizes a generator run
type Result struct {
	RunID    uuid.UUID
	Attempts int
	// Final is the attempt that stopped the loop
	Final models.Attempt
}

// Generator runs scenario attempts until one meets the stop condition
type Generator struct {
	executor jj.Executor
	opts     Options
	logger   *zap.Logger
	observer Observer

	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
}

// NewGenerator creates a Generator
func NewGenerator(executor jj.Executor, opts Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.FirstVersion) == 0 {
		opts.FirstVersion = firstVersion
	}
	if len(opts.SecondVersion) == 0 {
		opts.SecondVersion = secondVersion
	}
	return &Generator{
		executor:  executor,
		opts:      opts,
		logger:    logger,
		mkdirTemp: os.MkdirTemp,
		removeAll: os.RemoveAll,
	}
}

// OnAttempt registers fn to be called after every attempt
func (g *Generator) OnAttempt(fn Observer) {
	g.observer = fn
}

// Preflight checks that the jj binary is usable
func (g *Generator) Preflight(ctx context.Context, minVersion string) (*semver.Version, error) {
	client := jj.NewClient(g.executor, g.opts.Binary, "", g.logger)
	return client.CheckVersion(ctx, minVersion)
}

// Run repeats attempts until one stops the loop, MaxAttempts is reached or
// ctx is done.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New()
	logger := g.logger.With(zap.String("run_id", runID.String()))

	for n := 1; g.opts.MaxAttempts == 0 || n <= g.opts.MaxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attempt, err := g.attempt(ctx, runID, n)
		if err != nil {
			if attempt.Kept && g.observer != nil {
				g.observer(attempt)
			}
			return nil, err
		}

		logger.Debug("attempt finished",
			zap.Int("attempt", n),
			zap.Strings("change_ids", attempt.ChangeIDs),
			zap.Bool("stopped", attempt.Stopped),
			zap.Duration("duration", attempt.Duration))

		if g.observer != nil {
			g.observer(attempt)
		}

		if attempt.Stopped {
			return &Result{RunID: runID, Attempts: n, Final: attempt}, nil
		}
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrAttemptsExhausted, g.opts.MaxAttempts)
}

func (g *Generator) attempt(ctx context.Context, runID uuid.UUID, n int) (models.Attempt, error) {
	start := time.Now()

	dir, err := g.mkdirTemp(g.opts.ScratchRoot, g.opts.ScratchPrefix+"*")
	if err != nil {
		return models.Attempt{}, fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}

	attempt := models.Attempt{RunID: runID, Number: n, Dir: dir}

	snapshots, err := g.script(ctx, jj.NewClient(g.executor, g.opts.Binary, dir, g.logger))
	if err != nil {
		if ctx.Err() != nil {
			_ = g.removeAll(dir)
			return models.Attempt{}, err
		}
		// Left on disk for inspection
		g.logger.Warn("attempt failed", zap.String("dir", dir), zap.Error(err))
		attempt.Failed = true
		attempt.Kept = true
		attempt.Duration = time.Since(start)
		return attempt, fmt.Errorf("attempt %d in %s: %w", n, dir, err)
	}

	attempt.Snapshots = snapshots
	attempt.ChangeIDs = changeIDs(snapshots)
	// The loop ends when two ids share an initial, not when all differ
	attempt.Stopped = HasCollision(attempt.ChangeIDs)
	attempt.Duration = time.Since(start)

	if attempt.Stopped || g.opts.KeepAll {
		attempt.Kept = true
		return attempt, nil
	}

	if err := g.removeAll(dir); err != nil {
		g.logger.Warn("failed to remove scratch repository", zap.String("dir", dir), zap.Error(err))
		attempt.Kept = true
	}
	return attempt, nil
}

// script drives jj through the demo history and returns the snapshots in report order
func (g *Generator) script(ctx context.Context, client *jj.Client) ([]models.Snapshot, error) {
	if err := g.setup(ctx, client); err != nil {
		return nil, err
	}

	// First change: add the file, then describe it three times
	zero, commit1, err := client.Status(ctx)
	if err != nil {
		return nil, err
	}

	if err := g.writeFile(client.Dir(), g.opts.FirstVersion); err != nil {
		return nil, err
	}
	_, commit1v1, err := client.Status(ctx)
	if err != nil {
		return nil, err
	}

	_, commit1v2, err := client.Describe(ctx, g.opts.FirstMessage, false)
	if err != nil {
		return nil, err
	}
	if _, _, err := client.Describe(ctx, g.opts.FirstMessage, true); err != nil {
		return nil, err
	}
	_, commit1v3, err := client.Describe(ctx, g.opts.LongMessage, false)
	if err != nil {
		return nil, err
	}

	// Second change: comment the file
	commit2, err := client.New(ctx)
	if err != nil {
		return nil, err
	}
	_, commit2v1, err := client.Describe(ctx, g.opts.SecondMessage, false)
	if err != nil {
		return nil, err
	}
	if err := g.writeFile(client.Dir(), g.opts.SecondVersion); err != nil {
		return nil, err
	}
	_, commit2v2, err := client.Status(ctx)
	if err != nil {
		return nil, err
	}

	// Third change stays empty
	commit3, err := client.New(ctx)
	if err != nil {
		return nil, err
	}

	return []models.Snapshot{
		models.NewSnapshot(Commit3, commit3, 0),
		models.NewSnapshot(Commit2, commit2, 0),
		models.NewSnapshot(Commit2v1, commit2v1, 1),
		models.NewSnapshot(Commit2v2, commit2v2, 1),
		models.NewSnapshot(Commit1, commit1, 0),
		models.NewSnapshot(Commit1v1, commit1v1, 1),
		models.NewSnapshot(Commit1v2, commit1v2, 1),
		models.NewSnapshot(Commit1v3, commit1v3, 1),
		models.NewSnapshot(ZeroCommit, zero, 0),
	}, nil
}

func (g *Generator) setup(ctx context.Context, client *jj.Client) error {
	if err := client.Init(ctx); err != nil {
		return err
	}
	if err := client.ConfigSet(ctx, jj.ScopeRepo, "user.email", g.opts.Email); err != nil {
		return err
	}
	if err := client.ConfigSet(ctx, jj.ScopeRepo, "user.name", g.opts.Name); err != nil {
		return err
	}
	if g.opts.UserPaginateNever {
		if err := client.ConfigSet(ctx, jj.ScopeUser, "ui.paginate", "never"); err != nil {
			return err
		}
	}

	for _, line := range g.opts.ExtraCommands {
		args, err := SplitCommand(line)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			continue
		}
		if _, err := client.Run(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

// SplitCommand splits a configured jj command line into arguments.
// A leading "jj" is dropped.
func SplitCommand(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSetupFailed, line, err)
	}
	if len(args) > 0 && args[0] == jj.DefaultBinary {
		args = args[1:]
	}
	return args, nil
}

func (g *Generator) writeFile(dir string, content []byte) error {
	return os.WriteFile(filepath.Join(dir, g.opts.FileName), content, 0644)
}

// changeIDs returns the ids of the three scripted changes, oldest first
func changeIDs(snapshots []models.Snapshot) []string {
	byName := make(map[string]string, len(snapshots))
	for _, s := range snapshots {
		byName[s.Name] = s.Change.ChangeID
	}
	return []string{byName[Commit1], byName[Commit2], byName[Commit3]}
}

// FinalSnapshots returns the last recorded state of each scripted change,
// the ones still visible in the repository
func FinalSnapshots(a models.Attempt) []models.Snapshot {
	final := []string{Commit3, Commit2v2, Commit1v3}
	return lo.FilterMap(final, func(name string, _ int) (models.Snapshot, bool) {
		return a.Snapshot(name)
	})
}

// IsCanceled reports whether err came from a canceled or expired context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
