package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
)

type coverageOptions struct {
	Type discordField[string] `option:"type"`
	All  *bool                `option:"all"`
}

type coverageResponder struct {
	autocompleteLimit int
	emojis            Emojis
}

var offensiveNames = efficacyNames{
	doubleStrong: "Super effective (4x)",
	strong:       "Super effective",
	neutral:      "Neutral",
	weak:         "Not very effective",
	doubleWeak:   "Not very effective (0.25x)",
	immune:       "No effect",
}

func (resp coverageResponder) Handle(
	ctx context.Context,
	mdl *model.Model,
	opt *coverageOptions,
) (*discordgo.InteractionResponseData, error) {
	typ, err := mdl.Chart.Parse(opt.Type.Value)
	if errors.Is(err, typechart.ErrUnknownType) {
		return unknownType(opt.Type.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("could not parse attacking type: %w", err)
	}

	includeAll := opt.All != nil && *opt.All
	matchups := mdl.Chart.Coverage(typ)

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       resp.emojis.Label(typ),
				Description: "Offensive type chart",
				Color:       typeColor([]typechart.Type{typ}),
				Fields:      matchupsToFields(matchups, includeAll, offensiveNames, resp.emojis),
			},
		},
	}, nil
}

func (resp coverageResponder) Autocomplete(
	ctx context.Context,
	mdl *model.Model,
	opt *coverageOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if !opt.Type.Focused {
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}

	s := typeSearcher{
		model:  mdl,
		prefix: opt.Type.Value,
		limit:  resp.autocompleteLimit,
	}
	return searchChoices[typechart.Type](s), nil
}

func (builder *Builder) coverage(ctx context.Context) (Command, error) {
	resp := coverageResponder{
		autocompleteLimit: builder.autocompleteLimit,
		emojis:            builder.emojis,
	}

	return command[coverageOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "coverage",
			Description: "View offensive type chart for an attacking type.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type",
					Description:  "Name of the attacking type",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "all",
					Description: "Also list neutral matchups and empty categories",
					Required:    false,
				},
			},
		},
	}, nil
}
