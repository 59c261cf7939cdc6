package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
)

type pokemonOptions struct {
	Name discordField[string] `option:"pokemon"`
}

func autocompletePokemon(limit int) handler[*pokemonOptions, []*discordgo.ApplicationCommandOptionChoice] {
	return func(
		ctx context.Context,
		mdl *model.Model,
		opt *pokemonOptions,
	) ([]*discordgo.ApplicationCommandOptionChoice, error) {
		if !opt.Name.Focused {
			return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
		}

		s := pokemonSearcher{
			model:  mdl,
			prefix: opt.Name.Value,
			limit:  limit,
		}
		return searchChoices[model.Pokemon](s), nil
	}
}

var pokemonOption = &discordgo.ApplicationCommandOption{
	Type:         discordgo.ApplicationCommandOptionString,
	Name:         "pokemon",
	Description:  "Name or number of the Pokemon",
	Required:     true,
	Autocomplete: true,
}

type dexResponder struct {
	counterLimit int
	emojis       Emojis
}

func counterNames(counters []model.Pokemon, limit int) string {
	if len(counters) == 0 {
		return noneValue
	}

	shown := counters
	if len(shown) > limit {
		shown = shown[:limit]
	}

	names := make([]string, len(shown))
	for i, p := range shown {
		names[i] = p.DisplayName()
	}

	value := strings.Join(names, ", ")
	if rest := len(counters) - len(shown); rest > 0 {
		value += fmt.Sprintf(" _and %d more_", rest)
	}

	return value
}

func (resp dexResponder) Handle(
	ctx context.Context,
	mdl *model.Model,
	opt *pokemonOptions,
) (*discordgo.InteractionResponseData, error) {
	pokemon, err := mdl.Pokemon(model.ParseRef(opt.Name.Value))
	if errors.Is(err, model.ErrNotFound) {
		return notFound(opt.Name.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("could not get pokemon %q: %w", opt.Name.Value, err)
	}

	matchups := mdl.Matchups(pokemon)
	grouped := typechart.Group(matchups)
	counters := mdl.Counters(pokemon)

	fields := matchupsToFields(matchups, false, defensiveNames, resp.emojis)
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("Counters (%d)", len(counters)),
		Value: counterNames(counters, resp.counterLimit),
	})

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", pokemon.Number(), pokemon.DisplayName()),
		Description: fmt.Sprintf(
			"%s\n%d weaknesses ▸ %d resistances ▸ %d immunities",
			resp.emojis.Labels(pokemon.Types),
			len(grouped.Weaknesses),
			len(grouped.Resistances),
			len(grouped.Immunities),
		),
		Color:  typeColor(pokemon.Types),
		Fields: fields,
	}
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			embed,
		},
	}

	err = attachSprite(data, embed, pokemon)
	if err != nil {
		return nil, fmt.Errorf("could not get sprite for pokemon %q: %w", pokemon.Name, err)
	}

	return data, nil
}

func (builder *Builder) dex(ctx context.Context) (Command, error) {
	resp := dexResponder{
		counterLimit: builder.counterLimit,
		emojis:       builder.emojis,
	}

	return command[pokemonOptions]{
		handle:       resp.Handle,
		autocomplete: autocompletePokemon(builder.autocompleteLimit),
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "dex",
			Description: "Pokedex entry for a Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				pokemonOption,
			},
		},
	}, nil
}
