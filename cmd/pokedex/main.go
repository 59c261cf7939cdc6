package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/notjagan/typedex/pkg/bot"
	"github.com/notjagan/typedex/pkg/config"
	"github.com/notjagan/typedex/pkg/model"
	_ "modernc.org/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	if err := run(ctx, *configPath); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	err = cfg.Validate()
	if err != nil {
		return err
	}

	mdl, err := model.New(ctx, cfg.DB.Driver, cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("loading pokedex database %q: %w", cfg.DB.Path, err)
	}
	slog.Info("database loaded", "path", cfg.DB.Path, "driver", cfg.DB.Driver, "pokemon", mdl.Roster.Len(), "types", len(mdl.Chart.Types()))

	b, err := bot.New(ctx, *cfg, mdl)
	if err != nil {
		mdl.Close()
		return err
	}

	return b.Run(ctx)
}
