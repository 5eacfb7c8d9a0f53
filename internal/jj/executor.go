package jj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Output holds the trimmed output streams of a finished command
type Output struct {
	Stdout string
	Stderr string
}

// Executor runs external commands
type Executor interface {
	// Run executes name with args in dir and waits for it to finish
	Run(ctx context.Context, dir, name string, args ...string) (Output, error)
}

// ExecExecutor is the default Executor, backed by os/exec
type ExecExecutor struct {
	logger *zap.Logger
}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor(logger *zap.Logger) *ExecExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecExecutor{logger: logger}
}

// Run implements Executor
func (e *ExecExecutor) Run(ctx context.Context, dir, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running command",
		zap.String("dir", dir),
		zap.String("command", name),
		zap.Strings("args", args))

	err := cmd.Run()
	out := Output{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return out, fmt.Errorf("%w: %w", ErrBinaryNotFound, err)
		}
		e.logger.Debug("command failed",
			zap.String("command", name),
			zap.String("stderr", out.Stderr),
			zap.Error(err))
		return out, &CommandError{
			Args:   args,
			Stderr: out.Stderr,
			Err:    fmt.Errorf("%w: %w", ErrCommandFailed, err),
		}
	}

	return out, nil
}
