package model_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func buildDB(t *testing.T, driver string) string {
	t.Helper()
	ds := reference(t)

	path := filepath.Join(t.TempDir(), "pokedex.db")
	db, err := sqlx.Open(driver, path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, model.Build(context.Background(), db, ds.Chart, ds.Pokemon))
	return path
}

func TestBuildAndLoad(t *testing.T) {
	for _, driver := range []string{"sqlite3", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			ds := reference(t)
			path := buildDB(t, driver)

			mdl, err := model.New(ctx, driver, path)
			require.NoError(t, err)
			defer mdl.Close()

			assert.Equal(t, ds.Roster().All(), mdl.Roster.All())
			assert.Equal(t, ds.Chart.Types(), mdl.Chart.Types())

			for _, p := range ds.Pokemon {
				assert.Equal(t, ds.Chart.Matchups(p.Types...), mdl.Matchups(&p), p.Name)
			}

			pikachu, err := mdl.PokemonByName("pikachu")
			require.NoError(t, err)
			assert.Equal(t, ds.Roster().Counters(*pikachu, ds.Chart), mdl.Counters(pikachu))
		})
	}
}

func TestNewIsReadOnly(t *testing.T) {
	ctx := context.Background()
	path := buildDB(t, "sqlite3")

	mdl, err := model.New(ctx, "", path)
	require.NoError(t, err)
	defer mdl.Close()

	db, err := sqlx.Open("sqlite3", "file:"+path+"?mode=ro")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM pokemon_v2_pokemon`)
	assert.Error(t, err)
}

func TestNewMissingDatabase(t *testing.T) {
	_, err := model.New(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestBuildStoresPercentages(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	chart := typechart.NewChart([]typechart.Entry{
		{Attack: "ghost", Defend: "normal", Factor: 0},
		{Attack: "ghost", Defend: "ghost", Factor: 2},
		{Attack: "ghost", Defend: "dark", Factor: 0.5},
	})
	pokemon := []model.Pokemon{
		{ID: 92, Name: "gastly", Types: []typechart.Type{"ghost", "poison"}, Sprite: "92.png"},
	}
	require.NoError(t, model.Build(ctx, db, chart, pokemon))

	var factors []int
	require.NoError(t, db.SelectContext(ctx, &factors, `SELECT damage_factor FROM pokemon_v2_typeefficacy ORDER BY id`))
	assert.Equal(t, []int{0, 200, 50}, factors)

	mdl, err := model.Load(ctx, db)
	require.NoError(t, err)

	gastly, ok := mdl.Roster.Find(model.ByName("GASTLY"))
	require.True(t, ok)
	assert.Equal(t, pokemon[0], gastly)
	assert.Equal(t, typechart.Multiplier(0), mdl.Chart.Lookup("ghost", "normal"))
	assert.Equal(t, typechart.Multiplier(0.5), mdl.Chart.Lookup("ghost", "dark"))
	assert.Equal(t, typechart.Neutral, mdl.Chart.Lookup("poison", "ghost"))
}

func TestBuildTwiceFails(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ds := reference(t)
	require.NoError(t, model.Build(ctx, db, ds.Chart, ds.Pokemon))
	assert.Error(t, model.Build(ctx, db, ds.Chart, ds.Pokemon))
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, model.Migrate(ctx, db))
	require.NoError(t, model.Migrate(ctx, db))

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE 'pokemon_v2_%' ORDER BY name`))
	assert.Equal(t, []string{
		"pokemon_v2_pokemon",
		"pokemon_v2_pokemonsprites",
		"pokemon_v2_pokemontype",
		"pokemon_v2_type",
		"pokemon_v2_typeefficacy",
	}, tables)
}

func TestBuildKeepsAttackersWithoutEntries(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	chart := typechart.NewChartWithTypes(
		[]typechart.Type{"normal", "fire"},
		[]typechart.Entry{{Attack: "fire", Defend: "grass", Factor: 2}},
	)
	pokemon := []model.Pokemon{
		{ID: 1, Name: "bulbasaur", Types: []typechart.Type{"grass", "poison"}},
	}
	require.NoError(t, model.Build(ctx, db, chart, pokemon))

	mdl, err := model.Load(ctx, db)
	require.NoError(t, err)

	assert.Equal(t, []typechart.Type{"normal", "fire"}, mdl.Chart.Types())
	assert.False(t, mdl.Chart.Has("grass"))
	assert.False(t, mdl.Chart.Has("poison"))
	assert.Equal(t, chart.Matchups("grass", "poison"), mdl.Chart.Matchups("grass", "poison"))
}
