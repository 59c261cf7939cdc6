package command

import (
	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
)

type searcher[T any] interface {
	Search() []T
	Choice(T) *discordgo.ApplicationCommandOptionChoice
}

type pokemonSearcher struct {
	model  *model.Model
	prefix string
	limit  int
}

func (s pokemonSearcher) Search() []model.Pokemon {
	return s.model.SearchPokemon(s.prefix, s.limit)
}

func (pokemonSearcher) Choice(pokemon model.Pokemon) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{
		Name:  pokemon.DisplayName(),
		Value: pokemon.Name,
	}
}

type typeSearcher struct {
	model  *model.Model
	prefix string
	limit  int
}

func (s typeSearcher) Search() []typechart.Type {
	return s.model.SearchTypes(s.prefix, s.limit)
}

func (typeSearcher) Choice(typ typechart.Type) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{
		Name:  model.DisplayType(typ),
		Value: string(typ),
	}
}

func searchChoices[T any](s searcher[T]) []*discordgo.ApplicationCommandOptionChoice {
	results := s.Search()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(results))
	for i, res := range results {
		choices[i] = s.Choice(res)
	}

	return choices
}
