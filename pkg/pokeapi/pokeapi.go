// Package pokeapi fetches the roster and type chart from PokeAPI for the
// offline build step. Nothing at runtime talks to the network.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/notjagan/typedex/pkg/dataset"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/model/sprite"
	"github.com/notjagan/typedex/pkg/typechart"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// DefaultTypes lists the types whose damage relations make up the chart, in
// chart order.
var DefaultTypes = []typechart.Type{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

type Client struct {
	BaseURL     string
	HTTP        *http.Client
	Attempts    uint
	Concurrency int
	BackOff     func() backoff.BackOff
	Logger      *slog.Logger
}

func NewClient() *Client {
	return &Client{
		BaseURL:     DefaultBaseURL,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
		Attempts:    3,
		Concurrency: 8,
		BackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			return b
		},
		Logger: slog.Default(),
	}
}

var (
	ErrNotFound   = errors.New("resource not found")
	ErrBadStatus  = errors.New("unexpected response status")
	ErrBadPayload = errors.New("malformed response")
)

func (c *Client) get(ctx context.Context, path string, v any) error {
	url := strings.TrimSuffix(c.BaseURL, "/") + path
	attempt := 0

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		if attempt > 1 {
			c.Logger.Debug("retrying request", "url", url, "attempt", attempt)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("could not build request: %w", err))
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return struct{}{}, backoff.Permanent(fmt.Errorf("GET %s: %w", path, ErrNotFound))
		case resp.StatusCode != http.StatusOK:
			return struct{}{}, fmt.Errorf("GET %s returned %d: %w", path, resp.StatusCode, ErrBadStatus)
		}

		err = json.NewDecoder(resp.Body).Decode(v)
		if err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("could not decode %s: %w: %w", path, ErrBadPayload, err))
		}

		return struct{}{}, nil
	}, backoff.WithBackOff(c.BackOff()), backoff.WithMaxTries(c.Attempts))

	return err
}

type rawPokemon struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites sprite.Sprites `json:"sprites"`
}

type namedResource struct {
	Name string `json:"name"`
}

type rawType struct {
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageTo []namedResource `json:"double_damage_to"`
		HalfDamageTo   []namedResource `json:"half_damage_to"`
		NoDamageTo     []namedResource `json:"no_damage_to"`
	} `json:"damage_relations"`
}

func (c *Client) Pokemon(ctx context.Context, id int) (*model.Pokemon, error) {
	var raw rawPokemon
	err := c.get(ctx, fmt.Sprintf("/pokemon/%d", id), &raw)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pokemon %d: %w", id, err)
	}

	pokemon := model.Pokemon{
		ID:     raw.ID,
		Name:   raw.Name,
		Types:  make([]typechart.Type, len(raw.Types)),
		Sprite: raw.Sprites.Front.Default,
	}
	for i, t := range raw.Types {
		pokemon.Types[i] = typechart.Type(t.Type.Name).Normalize()
	}

	return &pokemon, nil
}

// Roster fetches pokemon 1 through n, in id order.
func (c *Client) Roster(ctx context.Context, n int) ([]model.Pokemon, error) {
	pokemon := make([]model.Pokemon, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			p, err := c.Pokemon(ctx, i+1)
			if err != nil {
				return err
			}
			pokemon[i] = *p
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	c.Logger.Info("fetched pokemon", "count", len(pokemon))
	return pokemon, nil
}

// Chart builds the type chart from the damage relations of types. Every pair
// of listed types starts neutral; relations then set 2x, 0.5x and 0x in that
// order.
func (c *Client) Chart(ctx context.Context, types []typechart.Type) (*typechart.Chart, error) {
	raws := make([]rawType, len(types))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())
	for i, typ := range types {
		i, typ := i, typ
		g.Go(func() error {
			err := c.get(ctx, "/type/"+string(typ), &raws[i])
			if err != nil {
				return fmt.Errorf("could not fetch type %q: %w", typ, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch type chart: %w", err)
	}

	entries := make([]typechart.Entry, 0, len(types)*len(types))
	for _, attack := range types {
		for _, defend := range types {
			entries = append(entries, typechart.Entry{Attack: attack, Defend: defend, Factor: typechart.Neutral})
		}
	}

	for i, raw := range raws {
		attack := types[i]
		relations := []struct {
			targets []namedResource
			factor  typechart.Multiplier
		}{
			{raw.DamageRelations.DoubleDamageTo, 2},
			{raw.DamageRelations.HalfDamageTo, 0.5},
			{raw.DamageRelations.NoDamageTo, 0},
		}
		for _, rel := range relations {
			for _, target := range rel.targets {
				entries = append(entries, typechart.Entry{
					Attack: attack,
					Defend: typechart.Type(target.Name).Normalize(),
					Factor: rel.factor,
				})
			}
		}
	}

	c.Logger.Info("built type chart", "types", len(types))
	return typechart.NewChartWithTypes(types, entries), nil
}

// Dataset fetches the first n pokemon and the chart for DefaultTypes.
func (c *Client) Dataset(ctx context.Context, n int) (*dataset.Dataset, error) {
	var ds dataset.Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pokemon, err := c.Roster(gctx, n)
		ds.Pokemon = pokemon
		return err
	})
	g.Go(func() error {
		chart, err := c.Chart(gctx, DefaultTypes)
		ds.Chart = chart
		return err
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	err = ds.Validate()
	if err != nil {
		return nil, fmt.Errorf("fetched data is inconsistent: %w", err)
	}

	return &ds, nil
}

func (c *Client) concurrency() int {
	if c.Concurrency < 1 {
		return 1
	}
	return c.Concurrency
}
