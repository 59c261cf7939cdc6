package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/notjagan/typedex/pkg/model/sprite"
	"github.com/notjagan/typedex/pkg/typechart"
)

type typeRow struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	ChartSlot *int   `db:"chart_slot"`
}

type efficacyRow struct {
	DamageTypeID int `db:"damage_type_id"`
	TargetTypeID int `db:"target_type_id"`
	DamageFactor int `db:"damage_factor"`
}

type pokemonRow struct {
	ID      int    `db:"id"`
	Name    string `db:"name"`
	Sprites string `db:"sprites"`
}

type pokemonTypeRow struct {
	PokemonID int    `db:"pokemon_id"`
	TypeID    int    `db:"type_id"`
	Slot      int    `db:"slot"`
	Name      string `db:"name"`
}

// Build migrates db and writes the chart and roster into it. Multipliers are
// stored as integer percentages. Building into a populated database fails.
func Build(ctx context.Context, db *sqlx.DB, chart *typechart.Chart, pokemon []Pokemon) (ret error) {
	err := Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer func() {
		if ret != nil {
			tx.Rollback()
		}
	}()

	ids := make(map[typechart.Type]int)
	types := make([]typeRow, 0)
	addType := func(typ typechart.Type) {
		if _, ok := ids[typ]; !ok {
			ids[typ] = len(ids) + 1
			types = append(types, typeRow{ID: ids[typ], Name: string(typ)})
		}
	}
	for i, typ := range chart.Types() {
		addType(typ)
		slot := i + 1
		types[ids[typ]-1].ChartSlot = &slot
	}
	for _, e := range chart.Entries() {
		addType(e.Defend)
	}
	for _, p := range pokemon {
		for _, typ := range p.Types {
			addType(typ)
		}
	}

	for _, row := range types {
		_, err = tx.NamedExecContext(ctx,
			/* sql */ `
			INSERT INTO pokemon_v2_type (id, name, chart_slot)
			VALUES (:id, :name, :chart_slot)
		`, row)
		if err != nil {
			return fmt.Errorf("could not insert type %q: %w", row.Name, err)
		}
	}

	for _, e := range chart.Entries() {
		row := efficacyRow{
			DamageTypeID: ids[e.Attack],
			TargetTypeID: ids[e.Defend],
			DamageFactor: int(e.Factor.Level()),
		}
		_, err = tx.NamedExecContext(ctx,
			/* sql */ `
			INSERT INTO pokemon_v2_typeefficacy (damage_type_id, target_type_id, damage_factor)
			VALUES (:damage_type_id, :target_type_id, :damage_factor)
		`, row)
		if err != nil {
			return fmt.Errorf("could not insert efficacy of %q against %q: %w", e.Attack, e.Defend, err)
		}
	}

	for _, p := range pokemon {
		sprites, err := json.Marshal(sprite.New(p.Sprite))
		if err != nil {
			return fmt.Errorf("could not encode sprites for pokemon %q: %w", p.Name, err)
		}

		row := pokemonRow{ID: p.ID, Name: p.Name, Sprites: string(sprites)}
		_, err = tx.NamedExecContext(ctx,
			/* sql */ `
			INSERT INTO pokemon_v2_pokemon (id, name)
			VALUES (:id, :name)
		`, row)
		if err != nil {
			return fmt.Errorf("could not insert pokemon %q: %w", p.Name, err)
		}

		_, err = tx.NamedExecContext(ctx,
			/* sql */ `
			INSERT INTO pokemon_v2_pokemonsprites (pokemon_id, sprites)
			VALUES (:id, :sprites)
		`, row)
		if err != nil {
			return fmt.Errorf("could not insert sprites for pokemon %q: %w", p.Name, err)
		}

		for i, typ := range p.Types {
			_, err = tx.NamedExecContext(ctx,
				/* sql */ `
				INSERT INTO pokemon_v2_pokemontype (pokemon_id, type_id, slot)
				VALUES (:pokemon_id, :type_id, :slot)
			`, pokemonTypeRow{PokemonID: p.ID, TypeID: ids[typ], Slot: i + 1})
			if err != nil {
				return fmt.Errorf("could not insert type %q for pokemon %q: %w", typ, p.Name, err)
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("could not commit dataset: %w", err)
	}

	return nil
}

// Load reads the whole dataset from db.
func Load(ctx context.Context, db *sqlx.DB) (*Model, error) {
	chart, err := loadChart(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("error while loading type chart: %w", err)
	}

	pokemon, err := loadPokemon(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("error while loading roster: %w", err)
	}

	return &Model{
		db:     db,
		Chart:  chart,
		Roster: NewRoster(pokemon),
	}, nil
}

func loadChart(ctx context.Context, db *sqlx.DB) (*typechart.Chart, error) {
	var types []typeRow
	err := db.SelectContext(ctx, &types,
		/* sql */ `
		SELECT id, name, chart_slot
		FROM pokemon_v2_type
		ORDER BY chart_slot IS NULL, chart_slot, id
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting types: %w", err)
	}

	names := make(map[int]typechart.Type, len(types))
	attackers := make([]typechart.Type, 0, len(types))
	for _, t := range types {
		names[t.ID] = typechart.Type(t.Name)
		if t.ChartSlot != nil {
			attackers = append(attackers, typechart.Type(t.Name))
		}
	}

	var effs []efficacyRow
	err = db.SelectContext(ctx, &effs,
		/* sql */ `
		SELECT damage_type_id, target_type_id, damage_factor
		FROM pokemon_v2_typeefficacy
		ORDER BY damage_type_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting type efficacies: %w", err)
	}

	entries := make([]typechart.Entry, len(effs))
	for i, e := range effs {
		entries[i] = typechart.Entry{
			Attack: names[e.DamageTypeID],
			Defend: names[e.TargetTypeID],
			Factor: typechart.EfficacyLevel(e.DamageFactor).Multiplier(),
		}
	}

	return typechart.NewChartWithTypes(attackers, entries), nil
}

func loadPokemon(ctx context.Context, db *sqlx.DB) ([]Pokemon, error) {
	var rows []pokemonRow
	err := db.SelectContext(ctx, &rows,
		/* sql */ `
		SELECT p.id, p.name, COALESCE(s.sprites, '{}') AS sprites
		FROM pokemon_v2_pokemon p
		LEFT JOIN pokemon_v2_pokemonsprites s
			ON p.id = s.pokemon_id
		ORDER BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting pokemon: %w", err)
	}

	var typeRows []pokemonTypeRow
	err = db.SelectContext(ctx, &typeRows,
		/* sql */ `
		SELECT pt.pokemon_id, pt.type_id, pt.slot, t.name
		FROM pokemon_v2_pokemontype pt
		JOIN pokemon_v2_type t
			ON pt.type_id = t.id
		ORDER BY pt.pokemon_id, pt.slot
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting pokemon types: %w", err)
	}

	types := make(map[int][]typechart.Type, len(rows))
	for _, row := range typeRows {
		types[row.PokemonID] = append(types[row.PokemonID], typechart.Type(row.Name))
	}

	pokemon := make([]Pokemon, len(rows))
	for i, row := range rows {
		var sprites sprite.Sprites
		err := json.Unmarshal([]byte(row.Sprites), &sprites)
		if err != nil {
			return nil, fmt.Errorf("could not decode sprites for pokemon %q: %w", row.Name, err)
		}

		pokemon[i] = Pokemon{
			ID:     row.ID,
			Name:   row.Name,
			Types:  types[row.ID],
			Sprite: sprites.Front.Default,
		}
	}

	return pokemon, nil
}
