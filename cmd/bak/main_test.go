package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "bak - a simple backup tool")
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "bak [file...]")
	assert.Empty(t, stderr.String())
}

func TestRun_BacksUpFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.bin")
	require.NoError(t, os.WriteFile(a, []byte("alpha\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte{0, 1, 2, 0xff}, 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{a, b}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for _, f := range []string{a, b} {
		want, err := os.ReadFile(f)
		require.NoError(t, err)
		got, err := os.ReadFile(f + ".bak")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Contains(t, stdout.String(), a+".bak")
	assert.Contains(t, stdout.String(), b+".bak")
}

func TestRun_MissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.txt")
	require.NoError(t, os.WriteFile(ok, []byte("ok"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(dir, "missing.txt"), ok}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "backup failed")
	assert.Contains(t, stderr.String(), "missing.txt")
	assert.FileExists(t, ok+".bak")
}

func TestRun_DashFileNames(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("-notes", []byte("dash\n"), 0644))
	require.NoError(t, os.WriteFile("-h", []byte("not help\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-notes"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	got, err := os.ReadFile(filepath.Join(dir, "-notes.bak"))
	require.NoError(t, err)
	assert.Equal(t, "dash\n", string(got))

	stdout.Reset()
	code = run([]string{"--", "-h"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	got, err = os.ReadFile(filepath.Join(dir, "-h.bak"))
	require.NoError(t, err)
	assert.Equal(t, "not help\n", string(got))
}

func TestRun_Help(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	for _, arg := range []string{"-h", "--help"} {
		var stdout, stderr bytes.Buffer
		code := run([]string{arg}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), "bak [file...]")
		assert.Empty(t, stderr.String())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
