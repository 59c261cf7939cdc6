package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "POKEDEX_"

type Config struct {
	Discord struct {
		Token   string `toml:"token" env:"TOKEN"`
		GuildID string `toml:"guild_id" env:"GUILD_ID"`
	} `toml:"discord" envPrefix:"DISCORD_"`
	DB struct {
		Path   string `toml:"path" env:"PATH"`
		Driver string `toml:"driver" env:"DRIVER"`
	} `toml:"database" envPrefix:"DATABASE_"`
	Bot struct {
		AutocompleteLimit int `toml:"autocomplete_limit" env:"AUTOCOMPLETE_LIMIT"`
		CounterLimit      int `toml:"counter_limit" env:"COUNTER_LIMIT"`
		SearchLimit       int `toml:"search_limit" env:"SEARCH_LIMIT"`
	} `toml:"bot" envPrefix:"BOT_"`
	Emojis map[string]string `toml:"emojis" env:"EMOJIS"`
	Log    struct {
		Level string `toml:"level" env:"LEVEL"`
	} `toml:"log" envPrefix:"LOG_"`
}

func Default() Config {
	var cfg Config
	cfg.DB.Path = "pokedex.db"
	cfg.DB.Driver = "sqlite3"
	cfg.Bot.AutocompleteLimit = 25
	cfg.Bot.CounterLimit = 24
	cfg.Bot.SearchLimit = 30
	cfg.Log.Level = "info"
	return cfg
}

// Read loads the TOML file at path over the defaults, then applies
// POKEDEX_* environment overrides. A missing file is not an error.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not decode config file %q: %w", path, err)
		}
	}

	err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (cfg *Config) Validate() error {
	if cfg.Discord.Token == "" {
		return fmt.Errorf("missing discord token: %w", ErrInvalidConfig)
	}
	if cfg.DB.Path == "" {
		return fmt.Errorf("missing database path: %w", ErrInvalidConfig)
	}
	if cfg.Bot.AutocompleteLimit < 1 || cfg.Bot.AutocompleteLimit > 25 {
		return fmt.Errorf("autocomplete limit %d outside 1..25: %w", cfg.Bot.AutocompleteLimit, ErrInvalidConfig)
	}
	if cfg.Bot.CounterLimit < 1 || cfg.Bot.SearchLimit < 1 {
		return fmt.Errorf("list limits must be positive: %w", ErrInvalidConfig)
	}

	return nil
}

func (cfg *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(cfg.Log.Level))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", cfg.Log.Level, ErrInvalidConfig)
	}

	return level, nil
}
