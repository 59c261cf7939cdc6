package model

import (
	"fmt"
	"strings"

	"github.com/notjagan/typedex/pkg/model/sprite"
	"github.com/notjagan/typedex/pkg/typechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pokemon is a single roster entry. Its types are ordered for display only.
type Pokemon struct {
	ID     int              `json:"id"`
	Name   string           `json:"name"`
	Types  []typechart.Type `json:"types"`
	Sprite sprite.Sprite    `json:"spriteUrl"`
}

// A Caser is stateful, so each call builds its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// DisplayName turns a PokeAPI slug such as "mr-mime" into "Mr Mime".
func (pokemon Pokemon) DisplayName() string {
	return title(strings.ReplaceAll(pokemon.Name, "-", " "))
}

// Number is the zero padded dex number, e.g. "#025".
func (pokemon Pokemon) Number() string {
	return fmt.Sprintf("#%03d", pokemon.ID)
}

func (pokemon Pokemon) HasType(typ typechart.Type) bool {
	for _, t := range pokemon.Types {
		if t == typ {
			return true
		}
	}

	return false
}

// DisplayType capitalizes a type name.
func DisplayType(typ typechart.Type) string {
	return title(string(typ))
}
