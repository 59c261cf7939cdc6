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

type searchOptions struct {
	Name *discordField[string] `option:"name"`
	Type *discordField[string] `option:"type"`
}

type searchResponder struct {
	limit             int
	autocompleteLimit int
	emojis            Emojis
}

func (resp searchResponder) Handle(
	ctx context.Context,
	mdl *model.Model,
	opt *searchOptions,
) (*discordgo.InteractionResponseData, error) {
	var query model.Query
	criteria := make([]string, 0, 2)
	if opt.Name != nil {
		query.Name = strings.TrimSpace(opt.Name.Value)
		criteria = append(criteria, fmt.Sprintf("name contains %q", query.Name))
	}
	if opt.Type != nil {
		typ, err := mdl.Chart.Parse(opt.Type.Value)
		if errors.Is(err, typechart.ErrUnknownType) {
			return unknownType(opt.Type.Value), nil
		} else if err != nil {
			return nil, fmt.Errorf("could not parse type filter: %w", err)
		}
		query.Type = typ
		criteria = append(criteria, fmt.Sprintf("type is %s", resp.emojis.Label(typ)))
	}

	matches := mdl.Roster.Filter(query)
	if len(matches) == 0 {
		return &discordgo.InteractionResponseData{
			Content: "No Pokemon match that search.",
		}, nil
	}

	title := "All Pokemon"
	if len(criteria) > 0 {
		title = "Pokemon where " + strings.Join(criteria, " and ")
	}

	shown := min(len(matches), resp.limit)
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: pokemonList(matches, resp.limit, resp.emojis),
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Showing %d of %d", shown, len(matches)),
				},
			},
		},
	}, nil
}

func (resp searchResponder) Autocomplete(
	ctx context.Context,
	mdl *model.Model,
	opt *searchOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if opt.Type == nil || !opt.Type.Focused {
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}

	s := typeSearcher{
		model:  mdl,
		prefix: opt.Type.Value,
		limit:  resp.autocompleteLimit,
	}
	return searchChoices[typechart.Type](s), nil
}

func (builder *Builder) search(ctx context.Context) (Command, error) {
	resp := searchResponder{
		limit:             builder.searchLimit,
		autocompleteLimit: builder.autocompleteLimit,
		emojis:            builder.emojis,
	}

	return command[searchOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "search",
			Description: "Search Pokemon by name and type.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Part of the Pokemon's name",
					Required:    false,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type",
					Description:  "Type the Pokemon must have",
					Required:     false,
					Autocomplete: true,
				},
			},
		},
	}, nil
}
