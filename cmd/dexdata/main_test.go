package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/notjagan/typedex/pkg/dataset"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFromDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	ds, err := dataset.Reference()
	require.NoError(t, err)
	require.NoError(t, ds.WriteDir(filepath.Join(dir, "data")))

	out := filepath.Join(dir, "pokedex.db")
	require.NoError(t, run(ctx, []string{"build", "-in", filepath.Join(dir, "data"), "-out", out, "-driver", "sqlite"}))

	mdl, err := model.New(ctx, "sqlite", out)
	require.NoError(t, err)
	defer mdl.Close()

	assert.Equal(t, 151, mdl.Roster.Len())
	assert.Equal(t, ds.Chart.Types(), mdl.Chart.Types())
}

func TestBuildBundled(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "pokedex.db")

	require.NoError(t, run(ctx, []string{"build", "-out", out}))

	mdl, err := model.New(ctx, model.DefaultDriver, out)
	require.NoError(t, err)
	defer mdl.Close()

	pikachu, err := mdl.PokemonByID(25)
	require.NoError(t, err)
	assert.Len(t, mdl.Counters(pikachu), 14)
}

func TestRunUsage(t *testing.T) {
	assert.ErrorIs(t, run(context.Background(), nil), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"serve"}), errUsage)
}
