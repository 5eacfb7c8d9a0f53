package jj

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestExecExecutor_TrimsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	e := NewExecExecutor(zaptest.NewLogger(t))
	out, err := e.Run(context.Background(), t.TempDir(), "sh", "-c", "printf '  out\\n\\n'; printf 'err\\n' >&2")
	require.NoError(t, err)
	assert.Equal(t, "out", out.Stdout)
	assert.Equal(t, "err", out.Stderr)
}

func TestExecExecutor_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	e := NewExecExecutor(nil)
	out, err := e.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, "boom", out.Stderr)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "boom", cmdErr.Stderr)
}

func TestExecExecutor_MissingBinary(t *testing.T) {
	e := NewExecExecutor(nil)
	_, err := e.Run(context.Background(), t.TempDir(), "baklab-no-such-binary-7c1e")
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}
