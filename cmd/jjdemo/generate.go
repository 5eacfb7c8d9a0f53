package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wahlandcase/baklab/internal/git"
	"github.com/wahlandcase/baklab/internal/history"
	"github.com/wahlandcase/baklab/internal/models"
	"github.com/wahlandcase/baklab/internal/scenario"
	"github.com/wahlandcase/baklab/internal/ui"
)

var (
	errVerifyFailed  = errors.New("scratch repository does not match the git store")
	errStoppedByUser = errors.New("stopped by user")
)

type generateFlags struct {
	maxAttempts      int
	keepAll          bool
	verify           bool
	tui              bool
	skipVersionCheck bool
	noHistory        bool
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build scratch repositories until two change ids share an initial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.maxAttempts, "max-attempts", "n", 0, "Give up after this many attempts (0 = no limit)")
	cmd.Flags().BoolVar(&flags.keepAll, "keep-all", false, "Keep every scratch repository, not just the last one")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Check the reported commits against the git store")
	cmd.Flags().BoolVar(&flags.tui, "tui", false, "Show an interactive progress view")
	cmd.Flags().BoolVar(&flags.skipVersionCheck, "skip-version-check", false, "Do not check the jj version first")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record kept repositories")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *rootOptions, flags generateFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.Scenario.MaxAttempts = flags.maxAttempts
	}
	if flags.keepAll {
		cfg.Scenario.KeepAll = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := opts.logger()
	defer log.Sync()

	scOpts, err := scenario.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to read scenario files: %w", err)
	}

	gen := scenario.NewGenerator(opts.jjExecutor(log), scOpts, log)

	if !flags.tui {
		fmt.Fprintln(opts.stderr, ui.RenderBanner(ui.GeneratorSubtitle))
	}

	if !flags.skipVersionCheck {
		v, err := gen.Preflight(ctx, cfg.JJ.MinVersion)
		if err != nil {
			return err
		}
		log.Debug("jj version", zap.String("version", v.String()))
	}

	var hist *history.Store
	if !flags.noHistory {
		if hist, err = opts.historyStore(); err != nil {
			log.Warn("history disabled", zap.Error(err))
		}
	}
	record := func(a models.Attempt) {
		if hist == nil || !a.Kept {
			return
		}
		err := hist.Add(history.Entry{
			RunID:     a.RunID.String(),
			Attempt:   a.Number,
			Dir:       a.Dir,
			ChangeIDs: a.ChangeIDs,
			Stopped:   a.Stopped,
			CreatedAt: time.Now(),
		})
		if err != nil {
			log.Warn("failed to record history", zap.Error(err))
		}
	}

	var res *scenario.Result
	if flags.tui {
		res, err = runWithProgress(ctx, gen, cfg.Scenario.MaxAttempts, opts, record)
	} else {
		gen.OnAttempt(func(a models.Attempt) {
			record(a)
			fmt.Fprintln(opts.stderr, ui.RenderAttemptLine(a))
		})
		res, err = gen.Run(ctx)
		if scenario.IsCanceled(err) {
			err = fmt.Errorf("%w: %w", errStoppedByUser, err)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(opts.stdout, ui.Box(ui.RenderReport(res.Final), ui.ColorGreen))

	if flags.verify {
		return verify(opts, res.Final)
	}
	return nil
}

// runWithProgress runs the generator in the background while a bubbletea
// program shows its progress
func runWithProgress(ctx context.Context, gen *scenario.Generator, maxAttempts int, opts *rootOptions, record func(models.Attempt)) (*scenario.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(ui.NewProgress(maxAttempts, cancel),
		tea.WithInput(opts.stdin),
		tea.WithOutput(opts.stderr),
	)

	gen.OnAttempt(func(a models.Attempt) {
		record(a)
		p.Send(ui.AttemptMsg(a))
	})

	var (
		res    *scenario.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, runErr = gen.Run(ctx)
		p.Send(ui.DoneMsg{Err: runErr})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return nil, err
	}
	<-done
	return progressResult(final, res, runErr)
}

// progressResult turns a quit from the progress view into errStoppedByUser
func progressResult(final tea.Model, res *scenario.Result, runErr error) (*scenario.Result, error) {
	if progress, ok := final.(ui.Progress); ok && progress.Canceled() {
		return nil, fmt.Errorf("%w after %d attempts", errStoppedByUser, len(progress.Attempts()))
	}
	return res, runErr
}

func verify(opts *rootOptions, a models.Attempt) error {
	store, err := git.OpenStore(a.Dir)
	if err != nil {
		return err
	}

	mismatches := store.Verify(scenario.FinalSnapshots(a))
	if len(mismatches) == 0 {
		fmt.Fprintln(opts.stdout, ui.StatusLine("ok", "verified against "+store.Path()))
		return nil
	}
	for _, m := range mismatches {
		fmt.Fprintln(opts.stderr, ui.StatusLine("failed", fmt.Sprintf("%s: %s", m.Snapshot.Name, m.Reason)))
	}
	return errVerifyFailed
}
