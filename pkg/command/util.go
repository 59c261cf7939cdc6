package command

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/model"
	"github.com/notjagan/typedex/pkg/typechart"
)

var ErrCommandFormat = errors.New("invalid command format")

const noneValue = "_None_"

type efficacyNames struct {
	doubleStrong string
	strong       string
	neutral      string
	weak         string
	doubleWeak   string
	immune       string
}

func formatMultiplier(m typechart.Multiplier) string {
	return strconv.FormatFloat(float64(m), 'f', -1, 64) + "x"
}

// matchupLabel renders a type, adding its multiplier when it does not match
// the bucket it is listed under.
func matchupLabel(m typechart.Matchup, emojis Emojis, canonical bool) string {
	if canonical {
		return emojis.Label(m.Type)
	}

	return fmt.Sprintf("%s (%s)", emojis.Label(m.Type), formatMultiplier(m.Multiplier))
}

func matchupsToFields(
	matchups []typechart.Matchup,
	includeAll bool,
	names efficacyNames,
	emojis Emojis,
) []*discordgo.MessageEmbedField {
	n := len(matchups)
	doubleStrengths := make([]string, 0, n)
	strengths := make([]string, 0, n)
	neutrals := make([]string, 0, n)
	weaks := make([]string, 0, n)
	doubleWeaks := make([]string, 0, n)
	immunes := make([]string, 0, n)

	for _, m := range matchups {
		level := m.Multiplier.Level()
		switch m.Category() {
		case typechart.CategoryImmune:
			immunes = append(immunes, matchupLabel(m, emojis, true))
		case typechart.CategoryWeak:
			if level >= typechart.DoubleSuperEffective {
				doubleStrengths = append(doubleStrengths, matchupLabel(m, emojis, level == typechart.DoubleSuperEffective))
			} else {
				strengths = append(strengths, matchupLabel(m, emojis, level == typechart.SuperEffective))
			}
		case typechart.CategoryResistant:
			if level <= typechart.DoubleNotVeryEffective {
				doubleWeaks = append(doubleWeaks, matchupLabel(m, emojis, level == typechart.DoubleNotVeryEffective))
			} else {
				weaks = append(weaks, matchupLabel(m, emojis, level == typechart.NotVeryEffective))
			}
		default:
			neutrals = append(neutrals, matchupLabel(m, emojis, true))
		}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, 6)
	add := func(name string, values []string, always bool) {
		switch {
		case len(values) > 0:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  name,
				Value: strings.Join(values, " "),
			})
		case always:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  name,
				Value: noneValue,
			})
		}
	}

	add(names.doubleStrong, doubleStrengths, false)
	add(names.strong, strengths, includeAll)
	if includeAll {
		add(names.neutral, neutrals, true)
	}
	add(names.weak, weaks, includeAll)
	add(names.doubleWeak, doubleWeaks, false)
	add(names.immune, immunes, includeAll)

	return fields
}

var defensiveNames = efficacyNames{
	doubleStrong: "Weaknesses (4x)",
	strong:       "Weaknesses (2x)",
	weak:         "Resistances (0.5x)",
	doubleWeak:   "Resistances (0.25x)",
	immune:       "Immunities",
}

func pokemonLine(pokemon model.Pokemon, emojis Emojis) string {
	return fmt.Sprintf("`%s` %s ▸ %s", pokemon.Number(), pokemon.DisplayName(), emojis.Labels(pokemon.Types))
}

// pokemonList renders at most limit pokemon, one per line, noting how many
// were left out.
func pokemonList(pokemon []model.Pokemon, limit int, emojis Emojis) string {
	shown := pokemon
	if len(shown) > limit {
		shown = shown[:limit]
	}

	lines := make([]string, 0, len(shown)+1)
	for _, p := range shown {
		lines = append(lines, pokemonLine(p, emojis))
	}
	if rest := len(pokemon) - len(shown); rest > 0 {
		lines = append(lines, fmt.Sprintf("_…and %d more_", rest))
	}

	return strings.Join(lines, "\n")
}

// attachSprite shows the pokemon's sprite as the embed thumbnail, uploading
// it when it is a local file.
func attachSprite(data *discordgo.InteractionResponseData, embed *discordgo.MessageEmbed, pokemon *model.Pokemon) error {
	if pokemon.Sprite == "" {
		return nil
	}

	if pokemon.Sprite.IsRemote() {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: string(pokemon.Sprite)}
		return nil
	}

	spritePath, err := pokemon.Sprite.Filepath()
	if err != nil {
		return fmt.Errorf("could not get filepath for pokemon sprite: %w", err)
	}

	file, err := spriteFile(fmt.Sprintf("%s.png", pokemon.Name), spritePath)
	if err != nil {
		return err
	}

	data.Files = append(data.Files, file)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
		URL: fmt.Sprintf("attachment://%s", file.Name),
	}

	return nil
}

// spriteFile loads a local sprite into memory so no file stays open while
// the response is sent.
func spriteFile(name string, spritePath string) (*discordgo.File, error) {
	contents, err := os.ReadFile(spritePath)
	if err != nil {
		return nil, fmt.Errorf("could not read sprite path %q: %w", spritePath, err)
	}

	return &discordgo.File{
		Name:        name,
		ContentType: "image/png",
		Reader:      bytes.NewReader(contents),
	}, nil
}

func notFound(ref string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("No Pokemon found matching %q.", ref),
	}
}

func unknownType(name string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("%q is not a known type.", name),
	}
}
