package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/notjagan/typedex/pkg/typechart"
)

const DefaultDriver = "sqlite3"

// Model is the read-only dataset shared by every request: the roster and the
// type chart, loaded once.
type Model struct {
	db *sqlx.DB

	Chart  *typechart.Chart
	Roster *Roster
}

// New opens the database at dbPath read-only and loads it into memory.
func New(ctx context.Context, driver string, dbPath string) (*Model, error) {
	if driver == "" {
		driver = DefaultDriver
	}

	db, err := sqlx.Open(driver, fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to read from database: %w", err)
	}

	mdl, err := Load(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to load dataset: %w", err)
	}

	return mdl, nil
}

// Static wraps an already loaded dataset.
func Static(chart *typechart.Chart, roster *Roster) *Model {
	return &Model{Chart: chart, Roster: roster}
}

func (m *Model) Close() error {
	if m.db == nil {
		return nil
	}

	return m.db.Close()
}

var ErrNotFound = errors.New("no matching pokemon found")

func (m *Model) Pokemon(ref Ref) (*Pokemon, error) {
	pokemon, ok := m.Roster.Find(ref)
	if !ok {
		return nil, fmt.Errorf("pokemon %v: %w", ref, ErrNotFound)
	}

	return &pokemon, nil
}

func (m *Model) PokemonByID(id int) (*Pokemon, error) {
	return m.Pokemon(ByID(id))
}

func (m *Model) PokemonByName(name string) (*Pokemon, error) {
	return m.Pokemon(ByName(name))
}

// Matchups is the defensive type chart of a pokemon.
func (m *Model) Matchups(pokemon *Pokemon) []typechart.Matchup {
	return m.Chart.Matchups(pokemon.Types...)
}

func (m *Model) Counters(pokemon *Pokemon) []Pokemon {
	return m.Roster.Counters(*pokemon, m.Chart)
}

func (m *Model) SearchPokemon(prefix string, limit int) []Pokemon {
	return m.Roster.Search(prefix, limit)
}

func (m *Model) SearchTypes(prefix string, limit int) []typechart.Type {
	prefix = string(typechart.Type(prefix).Normalize())
	types := make([]typechart.Type, 0)
	for _, typ := range m.Chart.Types() {
		if len(types) == limit {
			break
		}
		if len(typ) >= len(prefix) && string(typ[:len(prefix)]) == prefix {
			types = append(types, typ)
		}
	}

	return types
}
