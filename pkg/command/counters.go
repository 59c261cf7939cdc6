package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/model"
)

type countersResponder struct {
	limit  int
	emojis Emojis
}

func (resp countersResponder) Handle(
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

	counters := mdl.Counters(pokemon)
	if len(counters) == 0 {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("No counters found for %s.", pokemon.DisplayName()),
		}, nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Counters for %s %s", pokemon.DisplayName(), resp.emojis.Labels(pokemon.Types)),
		Description: pokemonList(counters, resp.limit, resp.emojis),
		Color:       typeColor(pokemon.Types),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Resists at least one of its types and hits it super effectively",
		},
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

func (builder *Builder) counters(ctx context.Context) (Command, error) {
	resp := countersResponder{
		limit:  builder.counterLimit,
		emojis: builder.emojis,
	}

	return command[pokemonOptions]{
		handle:       resp.Handle,
		autocomplete: autocompletePokemon(builder.autocompleteLimit),
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "counters",
			Description: "Pokemon that counter a given Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				pokemonOption,
			},
		},
	}, nil
}
