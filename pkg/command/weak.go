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

type weakOptions struct {
	Pokemon *struct {
		Name discordField[string] `option:"pokemon"`
	} `option:"pokemon"`
	Type *struct {
		Name1 discordField[string]  `option:"type_1"`
		Name2 *discordField[string] `option:"type_2"`
	} `option:"type"`
}

type weakResponder struct {
	autocompleteLimit int
	emojis            Emojis
}

func (resp weakResponder) Handle(
	ctx context.Context,
	mdl *model.Model,
	opt *weakOptions,
) (*discordgo.InteractionResponseData, error) {
	titleStrings := make([]string, 0, 3)
	var types []typechart.Type
	var pokemon *model.Pokemon
	switch {
	case opt.Pokemon != nil:
		var err error
		pokemon, err = mdl.Pokemon(model.ParseRef(opt.Pokemon.Name.Value))
		if errors.Is(err, model.ErrNotFound) {
			return notFound(opt.Pokemon.Name.Value), nil
		} else if err != nil {
			return nil, fmt.Errorf("could not get pokemon %q: %w", opt.Pokemon.Name.Value, err)
		}

		titleStrings = append(titleStrings, pokemon.DisplayName())
		types = pokemon.Types
	case opt.Type != nil:
		typ1, err := mdl.Chart.Parse(opt.Type.Name1.Value)
		if errors.Is(err, typechart.ErrUnknownType) {
			return unknownType(opt.Type.Name1.Value), nil
		} else if err != nil {
			return nil, fmt.Errorf("could not parse first type: %w", err)
		}
		types = append(types, typ1)

		if opt.Type.Name2 != nil {
			typ2, err := mdl.Chart.Parse(opt.Type.Name2.Value)
			if errors.Is(err, typechart.ErrUnknownType) {
				return unknownType(opt.Type.Name2.Value), nil
			} else if err != nil {
				return nil, fmt.Errorf("could not parse second type: %w", err)
			}
			// a repeated type is still a single type
			if typ2 != typ1 {
				types = append(types, typ2)
			}
		}
	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"weak\": %w", ErrCommandFormat)
	}

	titleStrings = append(titleStrings, resp.emojis.Labels(types))
	matchups := mdl.Chart.Matchups(types...)

	embed := &discordgo.MessageEmbed{
		Title:       strings.Join(titleStrings, " "),
		Description: "Defensive type chart",
		Color:       typeColor(types),
		Fields:      matchupsToFields(matchups, false, defensiveNames, resp.emojis),
	}
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			embed,
		},
	}

	if pokemon != nil {
		err := attachSprite(data, embed, pokemon)
		if err != nil {
			return nil, fmt.Errorf("could not get sprite for pokemon %q: %w", pokemon.Name, err)
		}
	}

	return data, nil
}

func (resp weakResponder) Autocomplete(
	ctx context.Context,
	mdl *model.Model,
	opt *weakOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Pokemon != nil:
		if opt.Pokemon.Name.Focused {
			s := pokemonSearcher{
				model:  mdl,
				prefix: opt.Pokemon.Name.Value,
				limit:  resp.autocompleteLimit,
			}
			return searchChoices[model.Pokemon](s), nil
		}
	case opt.Type != nil:
		var prefix string
		switch {
		case opt.Type.Name1.Focused:
			prefix = opt.Type.Name1.Value
		case opt.Type.Name2 != nil && opt.Type.Name2.Focused:
			prefix = opt.Type.Name2.Value
		default:
			return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
		}

		s := typeSearcher{
			model:  mdl,
			prefix: prefix,
			limit:  resp.autocompleteLimit,
		}
		return searchChoices[typechart.Type](s), nil
	default:
		return nil, fmt.Errorf("no recognized subcommand in focus: %w", ErrCommandFormat)
	}

	return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
}

func (builder *Builder) weak(ctx context.Context) (Command, error) {
	resp := weakResponder{
		autocompleteLimit: builder.autocompleteLimit,
		emojis:            builder.emojis,
	}

	return command[weakOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "weak",
			Description: "View type chart against a defending Pokemon/type combination.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pokemon",
					Description: "View type chart against a defending Pokemon",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "pokemon",
							Description:  "Name or number of the Pokemon",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "type",
					Description: "View type chart against a defending type (combination)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type_1",
							Description:  "Name of the first type",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type_2",
							Description:  "Name of the second type",
							Required:     false,
							Autocomplete: true,
						},
					},
				},
			},
		},
	}, nil
}
