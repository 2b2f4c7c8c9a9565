package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainScenario = `
title: short chain
model: {kind: chain, length: 4}
analysis:
  kind: energy
  sweeps: [{name: energy, start: 0.5, stop: 1.5, points: 3}]
`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestRunSaveAndShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainScenario), 0o644))
	db := filepath.Join(dir, "runs.db")

	out := execute(t, "run", path, "--db", db, "--log-level", "error")
	assert.Contains(t, out, "short chain")
	assert.Contains(t, out, "3 points")
	assert.Contains(t, out, "T(1,0)")

	out = execute(t, "runs", "--db", db)
	assert.Contains(t, out, "1 runs")
	assert.Contains(t, out, "short chain")

	out = execute(t, "show", "1", "--db", db)
	assert.Contains(t, out, "run 1: short chain")
	assert.Contains(t, out, "ENERGY")
}

func TestChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainScenario), 0o644))

	out := execute(t, "channels", path, "--energy", "0.5", "--log-level", "error")
	assert.Contains(t, out, "lead 0: 1 channels")
	assert.Contains(t, out, "lead 1: 1 channels")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, "ENERGY", []string{"ENERGY", "T(1,0)"}, map[string][]float64{
		"ENERGY": {0.5, 1},
		"T(1,0)": {1, 0.25},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "ENERGY")
	assert.Contains(t, lines[4], "0.2500")

	buf.Reset()
	printResults(&buf, "MU", nil, map[string][]float64{})
	assert.Contains(t, buf.String(), "no results")
}

func TestRunsNeedsDatabase(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"runs"})
	assert.Error(t, root.Execute())
}
