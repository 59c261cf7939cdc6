package command

import (
	"context"
	"fmt"

	"github.com/notjagan/typedex/pkg/config"
)

type commandFunc func(*Builder, context.Context) (Command, error)

type Builder struct {
	funcs  []commandFunc
	emojis Emojis

	autocompleteLimit int
	counterLimit      int
	searchLimit       int
}

func NewBuilder(cfg config.Config) *Builder {
	return &Builder{
		funcs: []commandFunc{
			(*Builder).dex,
			(*Builder).weak,
			(*Builder).coverage,
			(*Builder).counters,
			(*Builder).search,
		},
		emojis:            Emojis(cfg.Emojis),
		autocompleteLimit: cfg.Bot.AutocompleteLimit,
		counterLimit:      cfg.Bot.CounterLimit,
		searchLimit:       cfg.Bot.SearchLimit,
	}
}

// All builds every registered command.
func (builder *Builder) All(ctx context.Context) ([]Command, error) {
	cmds := make([]Command, 0, len(builder.funcs))
	for _, f := range builder.funcs {
		cmd, err := f(builder, ctx)
		if err != nil {
			return nil, fmt.Errorf("error while building command: %w", err)
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}
