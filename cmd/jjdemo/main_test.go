package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/baklab/internal/config"
	"github.com/wahlandcase/baklab/internal/history"
	"github.com/wahlandcase/baklab/internal/jj"
	"github.com/wahlandcase/baklab/internal/jj/jjtest"
	"github.com/wahlandcase/baklab/internal/models"
	"github.com/wahlandcase/baklab/internal/scenario"
	"github.com/wahlandcase/baklab/internal/ui"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type harness struct {
	opts       *rootOptions
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	configPath string
	scratch    string
}

func newHarness(t *testing.T, executor jj.Executor) *harness {
	t.Helper()
	dir := t.TempDir()

	h := &harness{
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
		configPath: filepath.Join(dir, "jjdemo.toml"),
		scratch:    filepath.Join(dir, "scratch"),
	}
	require.NoError(t, os.MkdirAll(h.scratch, 0755))

	cfg := config.DefaultConfig()
	cfg.Scenario.ScratchRoot = h.scratch
	require.NoError(t, cfg.Save(h.configPath))

	h.opts = &rootOptions{
		stdin:    strings.NewReader(""),
		stdout:   h.stdout,
		stderr:   h.stderr,
		executor: executor,
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := newRootCmd(h.opts)
	cmd.SetArgs(append([]string{"--config", h.configPath, "--history-file", h.historyPath()}, args...))
	return cmd.Execute()
}

func (h *harness) historyPath() string {
	return filepath.Join(filepath.Dir(h.configPath), "history.json")
}

func TestGenerate_StopsAndReports(t *testing.T) {
	sim := jjtest.NewSim(
		"kmkuslsw", "rlvkpnrz", "zsuskuln",
		"qpvuntsm", "qzmtwlrs", "mnxsqnnr",
	)
	h := newHarness(t, jjtest.NewExecutor(sim.Handler()))

	require.NoError(t, h.run("generate"))

	out := h.stdout.String()
	assert.Contains(t, out, "ATTEMPT 2")
	assert.Contains(t, out, "qpvuntsm")
	assert.Contains(t, out, "bak version 1")
	assert.True(t, strings.HasPrefix(out, "╭"), "report is boxed")
	assert.Contains(t, h.stderr.String(), ui.GeneratorSubtitle)
	assert.Contains(t, h.stderr.String(), "attempt 1: kmkuslsw rlvkpnrz zsuskuln")
	assert.Contains(t, h.stderr.String(), "attempt 2: qpvuntsm qzmtwlrs mnxsqnnr")

	entries, err := history.NewStore(h.historyPath()).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Stopped)
	assert.Equal(t, 2, entries[0].Attempt)
	assert.DirExists(t, entries[0].Dir)
	assert.Equal(t, []string{"qpvuntsm", "qzmtwlrs", "mnxsqnnr"}, entries[0].ChangeIDs)

	kept, err := os.ReadDir(h.scratch)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestGenerate_MaxAttempts(t *testing.T) {
	sim := jjtest.NewSim("kmkuslsw", "rlvkpnrz", "zsuskuln")
	h := newHarness(t, jjtest.NewExecutor(sim.Handler()))

	err := h.run("generate", "--max-attempts", "1", "--no-history")
	require.ErrorIs(t, err, scenario.ErrAttemptsExhausted)
	assert.NoFileExists(t, h.historyPath())
}

func TestGenerate_VersionTooOld(t *testing.T) {
	exec := jjtest.NewExecutor(func(call jjtest.Call) (jj.Output, error) {
		return jj.Output{Stdout: "jj 0.9.0"}, nil
	})
	h := newHarness(t, exec)

	err := h.run("generate")
	require.ErrorIs(t, err, jj.ErrUnsupportedVersion)
	assert.Equal(t, []string{"--version"}, exec.Lines())
}

func TestGenerate_SkipVersionCheck(t *testing.T) {
	sim := jjtest.NewSim("qpvuntsm", "qzmtwlrs", "mnxsqnnr")
	exec := jjtest.NewExecutor(sim.Handler())
	h := newHarness(t, exec)

	require.NoError(t, h.run("generate", "--skip-version-check"))
	assert.NotContains(t, exec.Lines(), "--version")
}

func TestGenerate_FailedAttemptRecorded(t *testing.T) {
	sim := jjtest.NewSim("qpvuntsm", "qzmtwlrs")
	exec := jjtest.NewExecutor(func(call jjtest.Call) (jj.Output, error) {
		if call.Line() == "new" {
			return jj.Output{}, &jj.CommandError{Args: call.Args, Stderr: "Error: boom", Err: jj.ErrCommandFailed}
		}
		return sim.Handler()(call)
	})
	h := newHarness(t, exec)

	err := h.run("generate")
	require.ErrorIs(t, err, jj.ErrCommandFailed)
	assert.Contains(t, h.stderr.String(), "attempt 1 failed")

	entries, err := history.NewStore(h.historyPath()).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Stopped)
	assert.DirExists(t, entries[0].Dir)

	h.stdout.Reset()
	require.NoError(t, h.run("history", "--prune"))
	assert.NoDirExists(t, entries[0].Dir)
}

func TestGenerate_TUI(t *testing.T) {
	sim := jjtest.NewSim("qpvuntsm", "qzmtwlrs", "mnxsqnnr")
	h := newHarness(t, jjtest.NewExecutor(sim.Handler()))

	require.NoError(t, h.run("generate", "--tui"))
	assert.Contains(t, h.stdout.String(), "ATTEMPT 1")

	entries, err := history.NewStore(h.historyPath()).Load()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestProgressResult(t *testing.T) {
	res := &scenario.Result{Attempts: 1}

	got, err := progressResult(ui.NewProgress(0, nil), res, nil)
	require.NoError(t, err)
	assert.Same(t, res, got)

	var m tea.Model = ui.NewProgress(0, func() {})
	m, _ = m.Update(ui.AttemptMsg(models.Attempt{Number: 1}))
	m, _ = m.Update(ui.AttemptMsg(models.Attempt{Number: 2}))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	got, err = progressResult(m, nil, context.Canceled)
	require.ErrorIs(t, err, errStoppedByUser)
	assert.Nil(t, got)
	assert.Equal(t, "stopped by user after 2 attempts", err.Error())
}

func TestParse_Args(t *testing.T) {
	h := newHarness(t, nil)

	err := h.run("parse",
		"Working copy : xvpztrxr 26d5ff49 (empty) (no description set)",
		"Parent commit: zzzzzzzz 00000000 (empty) (no description set)",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Working copy  xvpztrxr 26d5ff49 (empty) (no description set)", lines[0])
	assert.Equal(t, "Parent commit zzzzzzzz 00000000 (empty) (no description set)", lines[1])
}

func TestParse_Stdin(t *testing.T) {
	h := newHarness(t, nil)
	h.opts.stdin = strings.NewReader("Working copy now at: mnxsqnnr 713abd34 ok\n\n")

	require.NoError(t, h.run("parse"))
	assert.Equal(t, "Working copy  mnxsqnnr 713abd34 ok\n", h.stdout.String())
}

func TestParse_BadLine(t *testing.T) {
	h := newHarness(t, nil)

	err := h.run("parse", "Working copy : xvpztrxr 26d5ff49 ok", "Working copy changes:")
	require.ErrorIs(t, err, jj.ErrUnexpectedStatus)
	assert.Equal(t, 1, strings.Count(h.stdout.String(), "\n"))
}

func TestHistory(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.run("history"))
	assert.Contains(t, h.stdout.String(), "no scratch repositories")

	dir := t.TempDir()
	store := history.NewStore(h.historyPath())
	require.NoError(t, store.Add(history.Entry{
		Attempt:   3,
		Dir:       dir,
		ChangeIDs: []string{"qpvuntsm", "qzmtwlrs", "mnxsqnnr"},
		Stopped:   true,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}))

	h.stdout.Reset()
	require.NoError(t, h.run("history"))
	assert.Contains(t, h.stdout.String(), dir)
	assert.Contains(t, h.stdout.String(), "2 hours ago")

	h.stdout.Reset()
	require.NoError(t, h.run("history", "--prune"))
	assert.Contains(t, h.stdout.String(), "removed "+dir)
	assert.NoDirExists(t, dir)
}

func TestConfig_ShowAndInit(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.run("config", "show"))
	assert.Contains(t, h.stdout.String(), "binary = 'jj'")
	assert.Contains(t, h.stdout.String(), h.scratch)

	err := h.run("config", "init")
	require.ErrorIs(t, err, errConfigExists)

	h.stdout.Reset()
	require.NoError(t, h.run("config", "init", "--force"))
	assert.Contains(t, h.stdout.String(), "wrote "+h.configPath)

	cfg, err := config.Load(h.configPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.Scenario.ScratchRoot)
}

func TestVersion(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.run("version"))
	assert.Equal(t, "jjdemo dev (unknown)\n", h.stdout.String())
}
