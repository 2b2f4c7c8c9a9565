package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs", "transport.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	run := &Run{
		Title:    "wire",
		Model:    "wire",
		Analysis: "energy",
		Params:   map[string]float64{"V0": 0.5},
		Columns:  []string{"ENERGY", "T(1,0)"},
		Results: map[string][]float64{
			"ENERGY": {0.5, 1.0},
			"T(1,0)": {0.25, 0.75},
			"N(0)":   {1, 1},
		},
	}
	id, err := s.SaveRun(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.LoadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "wire", got.Title)
	assert.Equal(t, map[string]float64{"V0": 0.5}, got.Params)
	assert.Equal(t, []string{"ENERGY", "T(1,0)", "N(0)"}, got.Columns)
	assert.Equal(t, run.Results, got.Results)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
}

func TestListAndDeleteRuns(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		_, err := s.SaveRun(ctx, &Run{Title: title, Model: "chain", Analysis: "point"})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].Title)
	assert.Nil(t, runs[0].Results)

	require.NoError(t, s.DeleteRun(ctx, runs[0].ID))
	_, err = s.LoadRun(ctx, runs[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteRun(ctx, runs[0].ID), ErrNotFound)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transport.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := s.SaveRun(ctx, &Run{Title: "kept", Model: "chain", Analysis: "point"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	run, err := s.LoadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kept", run.Title)
	assert.Equal(t, path, s.Path())
}
