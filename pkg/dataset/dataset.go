// Package dataset reads and writes the two offline artifacts the pokedex is
// built from: the roster (pokemon.json) and the type chart (typechart.json).
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
)

const (
	PokemonFile   = "pokemon.json"
	TypeChartFile = "typechart.json"
)

//go:embed data/pokemon.json data/typechart.json
var reference embed.FS

type Dataset struct {
	Pokemon []model.Pokemon
	Chart   *typechart.Chart
}

// Reference returns the bundled Gen 1 dataset.
func Reference() (*Dataset, error) {
	pokemon, err := reference.Open("data/" + PokemonFile)
	if err != nil {
		return nil, fmt.Errorf("could not open bundled roster: %w", err)
	}
	defer pokemon.Close()

	chart, err := reference.Open("data/" + TypeChartFile)
	if err != nil {
		return nil, fmt.Errorf("could not open bundled type chart: %w", err)
	}
	defer chart.Close()

	return Decode(pokemon, chart)
}

// ReadDir reads both artifacts from dir.
func ReadDir(dir string) (*Dataset, error) {
	pokemon, err := os.Open(filepath.Join(dir, PokemonFile))
	if err != nil {
		return nil, fmt.Errorf("could not open roster: %w", err)
	}
	defer pokemon.Close()

	chart, err := os.Open(filepath.Join(dir, TypeChartFile))
	if err != nil {
		return nil, fmt.Errorf("could not open type chart: %w", err)
	}
	defer chart.Close()

	return Decode(pokemon, chart)
}

// Decode parses and validates both artifacts.
func Decode(pokemon io.Reader, chart io.Reader) (*Dataset, error) {
	var ds Dataset
	err := json.NewDecoder(pokemon).Decode(&ds.Pokemon)
	if err != nil {
		return nil, fmt.Errorf("could not decode roster: %w", err)
	}

	ds.Chart = new(typechart.Chart)
	err = json.NewDecoder(chart).Decode(ds.Chart)
	if err != nil {
		return nil, fmt.Errorf("could not decode type chart: %w", err)
	}

	for i := range ds.Pokemon {
		for j, typ := range ds.Pokemon[i].Types {
			ds.Pokemon[i].Types[j] = typ.Normalize()
		}
	}

	err = ds.Validate()
	if err != nil {
		return nil, err
	}

	return &ds, nil
}

// WriteDir writes both artifacts to dir, indented.
func (ds *Dataset) WriteDir(dir string) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("could not create dataset directory: %w", err)
	}

	pokemon, err := json.MarshalIndent(ds.Pokemon, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode roster: %w", err)
	}
	err = os.WriteFile(filepath.Join(dir, PokemonFile), append(pokemon, '\n'), 0o644)
	if err != nil {
		return fmt.Errorf("could not write roster: %w", err)
	}

	chart, err := json.MarshalIndent(ds.Chart, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode type chart: %w", err)
	}
	err = os.WriteFile(filepath.Join(dir, TypeChartFile), append(chart, '\n'), 0o644)
	if err != nil {
		return fmt.Errorf("could not write type chart: %w", err)
	}

	return nil
}

var ErrInvalidDataset = errors.New("invalid dataset")

// Validate checks the loader's preconditions: every pokemon has a positive
// unique id, a unique name and one or two types, and no multiplier is
// negative. The computations themselves never rely on it.
func (ds *Dataset) Validate() error {
	var errs []error
	ids := make(map[int]bool, len(ds.Pokemon))
	names := make(map[string]bool, len(ds.Pokemon))
	for _, p := range ds.Pokemon {
		if p.ID <= 0 {
			errs = append(errs, fmt.Errorf("pokemon %q has non-positive id %d", p.Name, p.ID))
		}
		if ids[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate pokemon id %d", p.ID))
		}
		ids[p.ID] = true

		name := strings.ToLower(p.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("pokemon %d has no name", p.ID))
		} else if names[name] {
			errs = append(errs, fmt.Errorf("duplicate pokemon name %q", p.Name))
		}
		names[name] = true

		if len(p.Types) < 1 || len(p.Types) > 2 {
			errs = append(errs, fmt.Errorf("pokemon %q has %d types", p.Name, len(p.Types)))
		}
	}

	if ds.Chart == nil {
		errs = append(errs, errors.New("missing type chart"))
	} else {
		for _, e := range ds.Chart.Entries() {
			if e.Factor < 0 {
				errs = append(errs, fmt.Errorf("negative multiplier %v for %q against %q", e.Factor, e.Attack, e.Defend))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
	}

	return nil
}

func (ds *Dataset) Roster() *model.Roster {
	return model.NewRoster(ds.Pokemon)
}
