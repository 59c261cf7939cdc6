package pokeapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/notjagan/typedex/pkg/typechart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pokemonBodies = map[string]string{
	"/pokemon/1": `{"id": 1, "name": "bulbasaur", "types": [
		{"slot": 1, "type": {"name": "grass"}}, {"slot": 2, "type": {"name": "poison"}}
	], "sprites": {"front_default": "https://example.com/1.png", "back_default": "b.png"}}`,
	"/pokemon/2": `{"id": 2, "name": "charmander", "types": [
		{"slot": 1, "type": {"name": "fire"}}
	], "sprites": {"front_default": "https://example.com/2.png"}}`,
}

var typeBodies = map[string]string{
	"/type/fire": `{"name": "fire", "damage_relations": {
		"double_damage_to": [{"name": "grass"}],
		"half_damage_to": [{"name": "fire"}],
		"no_damage_to": []
	}}`,
	"/type/grass": `{"name": "grass", "damage_relations": {
		"double_damage_to": [],
		"half_damage_to": [{"name": "fire"}, {"name": "grass"}, {"name": "poison"}],
		"no_damage_to": []
	}}`,
	"/type/poison": `{"name": "poison", "damage_relations": {
		"double_damage_to": [{"name": "grass"}],
		"half_damage_to": [{"name": "poison"}],
		"no_damage_to": [{"name": "steel"}]
	}}`,
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient()
	c.BaseURL = srv.URL
	c.HTTP = srv.Client()
	c.BackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return c
}

func serve(bodies ...map[string]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range bodies {
			if body, ok := m[r.URL.Path]; ok {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, body)
				return
			}
		}
		http.NotFound(w, r)
	})
}

func TestPokemon(t *testing.T) {
	c := testClient(t, serve(pokemonBodies))

	p, err := c.Pokemon(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "bulbasaur", p.Name)
	assert.Equal(t, []typechart.Type{"grass", "poison"}, p.Types)
	assert.Equal(t, "https://example.com/1.png", string(p.Sprite))
}

func TestPokemonNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	_, err := c.Pokemon(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ok := serve(pokemonBodies)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		ok.ServeHTTP(w, r)
	}))

	p, err := c.Pokemon(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "charmander", p.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))

	_, err := c.Pokemon(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.Equal(t, int32(3), calls.Load())
}

func TestMalformedPayload(t *testing.T) {
	c := testClient(t, serve(map[string]string{"/pokemon/1": `{"id": "one"`}))

	_, err := c.Pokemon(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestRoster(t *testing.T) {
	c := testClient(t, serve(pokemonBodies))

	pokemon, err := c.Roster(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pokemon, 2)
	assert.Equal(t, "bulbasaur", pokemon[0].Name)
	assert.Equal(t, "charmander", pokemon[1].Name)

	_, err = c.Roster(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChart(t *testing.T) {
	c := testClient(t, serve(typeBodies))

	chart, err := c.Chart(context.Background(), []typechart.Type{"fire", "grass", "poison"})
	require.NoError(t, err)

	assert.Equal(t, []typechart.Type{"fire", "grass", "poison"}, chart.Types())
	assert.Equal(t, typechart.Multiplier(2), chart.Lookup("fire", "grass"))
	assert.Equal(t, typechart.Multiplier(0.5), chart.Lookup("fire", "fire"))
	assert.Equal(t, typechart.Multiplier(1), chart.Lookup("fire", "poison"))
	assert.Equal(t, typechart.Multiplier(0.5), chart.Lookup("grass", "poison"))
	assert.Equal(t, typechart.Multiplier(0), chart.Lookup("poison", "steel"))
	assert.Equal(t, typechart.Multiplier(2), chart.Lookup("poison", "grass"))

	// 3x3 neutral grid plus the one relation outside it.
	assert.Len(t, chart.Entries(), 10)
}

func TestDataset(t *testing.T) {
	types := map[string]string{}
	for _, typ := range DefaultTypes {
		path := "/type/" + string(typ)
		body, ok := typeBodies[path]
		if !ok {
			body = fmt.Sprintf(`{"name": %q, "damage_relations": {}}`, typ)
		}
		types[path] = body
	}
	c := testClient(t, serve(pokemonBodies, types))

	ds, err := c.Dataset(context.Background(), 2)
	require.NoError(t, err)

	assert.Len(t, ds.Pokemon, 2)
	assert.Len(t, ds.Chart.Types(), 18)
	assert.Equal(t, typechart.Multiplier(2), ds.Chart.Effectiveness("fire", ds.Pokemon[0].Types...))
}

func TestBaseURLTrailingSlash(t *testing.T) {
	c := testClient(t, serve(pokemonBodies))
	c.BaseURL = c.BaseURL + "/"

	p, err := c.Pokemon(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(p.Sprite), "https://"))
}
