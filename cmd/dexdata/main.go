// Command dexdata fetches the roster and type chart from PokeAPI and builds
// the read-only database the bot serves from.
//
//	dexdata fetch -out data [-n 151]
//	dexdata build [-in data] -out pokedex.db [-driver sqlite3]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/notjagan/typedex/pkg/dataset"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/pokeapi"
	_ "modernc.org/sqlite"
)

var errUsage = errors.New("usage: dexdata fetch|build [flags]")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "fetch":
		return fetch(ctx, args[1:])
	case "build":
		return build(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q: %w", args[0], errUsage)
	}
}

func fetch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	out := fs.String("out", "data", "directory to write pokemon.json and typechart.json to")
	n := fs.Int("n", 151, "number of pokemon to fetch, by dex number")
	baseURL := fs.String("api", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := pokeapi.NewClient()
	client.BaseURL = *baseURL

	ds, err := client.Dataset(ctx, *n)
	if err != nil {
		return fmt.Errorf("fetching dataset: %w", err)
	}

	err = ds.WriteDir(*out)
	if err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	slog.Info("dataset written", "dir", *out, "pokemon", len(ds.Pokemon), "types", len(ds.Chart.Types()))
	return nil
}

func build(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	in := fs.String("in", "", "dataset directory; the bundled dataset when empty")
	out := fs.String("out", "pokedex.db", "database file to create")
	driver := fs.String("driver", model.DefaultDriver, "database/sql driver: sqlite3 or sqlite")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var ds *dataset.Dataset
	var err error
	if *in == "" {
		ds, err = dataset.Reference()
	} else {
		ds, err = dataset.ReadDir(*in)
	}
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}

	db, err := sqlx.Open(*driver, *out)
	if err != nil {
		return fmt.Errorf("opening database %q: %w", *out, err)
	}
	defer db.Close()

	err = model.Build(ctx, db, ds.Chart, ds.Pokemon)
	if err != nil {
		return fmt.Errorf("building database %q: %w", *out, err)
	}

	slog.Info("database built", "path", *out, "driver", *driver, "pokemon", len(ds.Pokemon))
	return nil
}
