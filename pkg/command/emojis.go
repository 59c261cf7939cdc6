package command

import (
	"strings"

	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
)

// Emojis maps a type name to a custom emoji string such as
// "<:fire:1234>". Types without an emoji are rendered by name.
type Emojis map[string]string

func (emojis Emojis) Label(typ typechart.Type) string {
	if emoji, ok := emojis[string(typ)]; ok && emoji != "" {
		return emoji
	}

	return model.DisplayType(typ)
}

func (emojis Emojis) Labels(types []typechart.Type) string {
	labels := make([]string, len(types))
	for i, typ := range types {
		labels[i] = emojis.Label(typ)
	}

	return strings.Join(labels, " ")
}

var typeColors = map[typechart.Type]int{
	"normal":   0xA8A878,
	"fire":     0xF08030,
	"water":    0x6890F0,
	"electric": 0xF8D030,
	"grass":    0x78C850,
	"ice":      0x98D8D8,
	"fighting": 0xC03028,
	"poison":   0xA040A0,
	"ground":   0xE0C068,
	"flying":   0xA890F0,
	"psychic":  0xF85888,
	"bug":      0xA8B820,
	"rock":     0xB8A038,
	"ghost":    0x705898,
	"dragon":   0x7038F8,
	"dark":     0x705848,
	"steel":    0xB8B8D0,
	"fairy":    0xEE99AC,
}

const defaultColor = 0x68A090

func typeColor(types []typechart.Type) int {
	if len(types) == 0 {
		return defaultColor
	}
	if color, ok := typeColors[types[0]]; ok {
		return color
	}

	return defaultColor
}
