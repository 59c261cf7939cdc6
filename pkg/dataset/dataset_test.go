package dataset

import (
	"strings"
	"testing"

	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference(t *testing.T) {
	ds, err := Reference()
	require.NoError(t, err)

	require.Len(t, ds.Pokemon, 151)
	for i, p := range ds.Pokemon {
		assert.Equal(t, i+1, p.ID)
		assert.NotEmpty(t, p.Sprite)
	}

	assert.Len(t, ds.Chart.Types(), 18)
	assert.Len(t, ds.Chart.Entries(), 18*18)
	assert.Equal(t, typechart.Type("normal"), ds.Chart.Types()[0])
	assert.Equal(t, typechart.Type("fairy"), ds.Chart.Types()[17])

	pikachu := ds.Pokemon[24]
	assert.Equal(t, "pikachu", pikachu.Name)
	assert.Equal(t, []typechart.Type{"electric"}, pikachu.Types)
}

func TestDecodeNormalizesTypes(t *testing.T) {
	ds, err := Decode(
		strings.NewReader(`[{"id": 1, "name": "bulbasaur", "types": ["Grass", "POISON"], "spriteUrl": "1.png"}]`),
		strings.NewReader(`{"Fire": {"Grass": 2}}`),
	)
	require.NoError(t, err)

	assert.Equal(t, []typechart.Type{"grass", "poison"}, ds.Pokemon[0].Types)
	assert.Equal(t, typechart.Multiplier(2), ds.Chart.Lookup("fire", "grass"))
}

func TestValidate(t *testing.T) {
	chart := typechart.NewChart([]typechart.Entry{{Attack: "fire", Defend: "grass", Factor: 2}})

	tests := []struct {
		name    string
		pokemon []model.Pokemon
		chart   *typechart.Chart
		wantErr bool
	}{
		{
			name:    "valid",
			pokemon: []model.Pokemon{{ID: 1, Name: "a", Types: []typechart.Type{"fire"}}},
			chart:   chart,
		},
		{
			name:    "no types",
			pokemon: []model.Pokemon{{ID: 1, Name: "a"}},
			chart:   chart,
			wantErr: true,
		},
		{
			name:    "three types",
			pokemon: []model.Pokemon{{ID: 1, Name: "a", Types: []typechart.Type{"fire", "water", "grass"}}},
			chart:   chart,
			wantErr: true,
		},
		{
			name: "duplicate id",
			pokemon: []model.Pokemon{
				{ID: 1, Name: "a", Types: []typechart.Type{"fire"}},
				{ID: 1, Name: "b", Types: []typechart.Type{"fire"}},
			},
			chart:   chart,
			wantErr: true,
		},
		{
			name: "duplicate name ignoring case",
			pokemon: []model.Pokemon{
				{ID: 1, Name: "abra", Types: []typechart.Type{"psychic"}},
				{ID: 2, Name: "Abra", Types: []typechart.Type{"psychic"}},
			},
			chart:   chart,
			wantErr: true,
		},
		{
			name:    "zero id",
			pokemon: []model.Pokemon{{ID: 0, Name: "a", Types: []typechart.Type{"fire"}}},
			chart:   chart,
			wantErr: true,
		},
		{
			name:    "negative multiplier",
			pokemon: []model.Pokemon{{ID: 1, Name: "a", Types: []typechart.Type{"fire"}}},
			chart:   typechart.NewChart([]typechart.Entry{{Attack: "fire", Defend: "grass", Factor: -1}}),
			wantErr: true,
		},
		{
			name:    "missing chart",
			pokemon: []model.Pokemon{{ID: 1, Name: "a", Types: []typechart.Type{"fire"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := Dataset{Pokemon: tt.pokemon, Chart: tt.chart}
			err := ds.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDataset)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteDirRoundTrip(t *testing.T) {
	ref, err := Reference()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, ref.WriteDir(dir))

	got, err := ReadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, ref.Pokemon, got.Pokemon)
	assert.Equal(t, ref.Chart.Types(), got.Chart.Types())
	assert.Equal(t, ref.Chart.Entries(), got.Chart.Entries())
}

func TestReadDirMissing(t *testing.T) {
	_, err := ReadDir(t.TempDir())
	assert.Error(t, err)
}
