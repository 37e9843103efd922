package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a settings file whose saves live in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(dir, "settings.yaml")
	if _, err := os.Stat(cfg); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(cfg, []byte("save_dir: "+filepath.Join(dir, "saves")+"\n"), 0o644))
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg, "--log-file", filepath.Join(dir, "rubiks.log")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApply(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "apply", "R U R' U'")
	require.NoError(t, err)
	assert.Contains(t, out, "valid:  yes")
	assert.Contains(t, out, "solved: false")
	assert.Contains(t, out, "moves:  R U R' U'")

	out, err = run(t, dir, "apply", "R", "U", "Q")
	assert.ErrorIs(t, err, cube.ErrInvalidMove)
	assert.Empty(t, out)

	sexy := strings.Repeat("R U R' U' ", 6)
	out, err = run(t, dir, "apply", sexy)
	require.NoError(t, err)
	assert.Contains(t, out, "solved: true")
}

func TestApplyFromState(t *testing.T) {
	dir := t.TempDir()
	start := cube.Solved().ApplyMove(cube.Move{Base: 'F', Amount: 2})

	out, err := run(t, dir, "apply", "--state", start.String(), "F2")
	require.NoError(t, err)
	assert.Contains(t, out, "solved: true")

	_, err = run(t, dir, "apply", "--state", "WWW", "F2")
	assert.ErrorIs(t, err, cube.ErrInvalidState)
}

func TestScramble(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "scramble", "-n", "7", "--seed", "42")
	require.NoError(t, err)
	first := strings.SplitN(out, "\n", 2)[0]
	moves, err := cube.ParseMoves(first)
	require.NoError(t, err)
	assert.Len(t, moves, 7)
	assert.Contains(t, out, "valid:  yes")

	again, err := run(t, dir, "scramble", "-n", "7", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, out, again, "a fixed seed repeats the scramble")

	_, err = run(t, dir, "scramble", "-n", "0")
	assert.Error(t, err)
}

func TestSaves(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "saves", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no saves")

	out, err = run(t, dir, "scramble", "-n", "5", "--seed", "3", "--save", "practice")
	require.NoError(t, err)
	assert.Contains(t, out, "saved:  practice")

	out, err = run(t, dir, "saves", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "practice")
	assert.Contains(t, out, "MOVES")

	out, err = run(t, dir, "saves", "show", "practice")
	require.NoError(t, err)
	assert.Contains(t, out, "moves:  5")

	_, err = run(t, dir, "saves", "delete", "practice")
	require.NoError(t, err)
	_, err = run(t, dir, "saves", "rm", "practice")
	assert.ErrorIs(t, err, storage.ErrSaveNotFound)
}

func TestInvalidSettingsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("tick_rate: -1\n"), 0o644))
	_, err := run(t, dir, "apply", "R")
	assert.Error(t, err)
}

func TestShaderPaths(t *testing.T) {
	v, f := shaderPaths("")
	assert.Empty(t, v)
	assert.Empty(t, f)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, vertexShaderFile), []byte("// vs"), 0o644))
	v, f = shaderPaths(dir)
	assert.Equal(t, filepath.Join(dir, vertexShaderFile), v)
	assert.Empty(t, f)
}
