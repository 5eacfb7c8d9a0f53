package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/baklab/internal/termfix"

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wahlandcase/baklab/internal/config"
	"github.com/wahlandcase/baklab/internal/history"
	"github.com/wahlandcase/baklab/internal/jj"
	"github.com/wahlandcase/baklab/internal/logger"
	"github.com/wahlandcase/baklab/internal/termfix"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
)

// rootOptions carries the persistent flags and the injectable dependencies
type rootOptions struct {
	configPath  string
	historyPath string
	verbose     bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// executor runs jj; nil uses the real binary
	executor jj.Executor
}

func main() {
	termfix.Apply(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	rootCmd := newRootCmd(opts)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jjdemo",
		Short:         "Generate demo jj repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: jjdemo.toml in the user config dir)")
	rootCmd.PersistentFlags().StringVar(&opts.historyPath, "history-file", "", "History file (default: jjdemo-history.json in the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every jj command")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newParseCmd(opts),
		newHistoryCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)

	rootCmd.SetIn(opts.stdin)
	rootCmd.SetOut(opts.stdout)
	rootCmd.SetErr(opts.stderr)
	return rootCmd
}

func (o *rootOptions) logger() *zap.Logger {
	return logger.NewWithOutput(o.verbose, o.stderr)
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) jjExecutor(log *zap.Logger) jj.Executor {
	if o.executor != nil {
		return o.executor
	}
	return jj.NewExecExecutor(log)
}

func (o *rootOptions) historyStore() (*history.Store, error) {
	if o.historyPath != "" {
		return history.NewStore(o.historyPath), nil
	}
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	return history.NewStore(path), nil
}
