package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/model"
)

type (
	Command interface {
		ApplicationCommand() *discordgo.ApplicationCommand
		Handle(context.Context, *model.Model, *discordgo.Session, *discordgo.InteractionCreate) error
		Autocomplete(context.Context, *model.Model, *discordgo.Session, *discordgo.InteractionCreate) error
		Name() string
	}

	handler[S any, T any] func(context.Context, *model.Model, S) (T, error)

	command[T any] struct {
		applicationCommand *discordgo.ApplicationCommand
		handle             handler[*T, *discordgo.InteractionResponseData]
		autocomplete       handler[*T, []*discordgo.ApplicationCommandOptionChoice]
	}
)

func (cmd command[T]) ApplicationCommand() *discordgo.ApplicationCommand {
	return cmd.applicationCommand
}

func (cmd command[T]) Name() string {
	return cmd.applicationCommand.Name
}

var ErrUnrecognizedInteraction = errors.New("could not handle interaction")

// respond decodes the interaction options and runs the handler, without
// sending anything.
func (cmd command[T]) respond(
	ctx context.Context,
	mdl *model.Model,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) (*discordgo.InteractionResponseData, error) {
	if cmd.handle == nil {
		return nil, fmt.Errorf("no handler for command %q: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	var structure T
	err := decodeOptions(options, &structure)
	if err != nil {
		return nil, fmt.Errorf("error while decoding options for command %q: %w", cmd.Name(), err)
	}

	body, err := cmd.handle(ctx, mdl, &structure)
	if err != nil {
		return nil, fmt.Errorf("error while calling handler: %w", err)
	}

	return body, nil
}

func (cmd command[T]) Handle(
	ctx context.Context,
	mdl *model.Model,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	body, err := cmd.respond(ctx, mdl, interaction.ApplicationCommandData().Options)
	if err != nil {
		return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: body,
	})
	if err != nil {
		return fmt.Errorf("error while responding to command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (cmd command[T]) choices(
	ctx context.Context,
	mdl *model.Model,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if cmd.autocomplete == nil {
		return nil, fmt.Errorf("no autocompletion for command %q: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	var structure T
	err := decodeOptions(options, &structure)
	if err != nil {
		return nil, fmt.Errorf("error while decoding options for autocomplete: %w", err)
	}

	choices, err := cmd.autocomplete(ctx, mdl, &structure)
	if err != nil {
		return nil, fmt.Errorf("error while calling autocompletion handler: %w", err)
	}

	return choices, nil
}

func (cmd command[T]) Autocomplete(
	ctx context.Context,
	mdl *model.Model,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	choices, err := cmd.choices(ctx, mdl, interaction.ApplicationCommandData().Options)
	if err != nil {
		return err
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		return fmt.Errorf("error while sending autocompletions: %w", err)
	}

	return nil
}

var ErrDecodeOption = errors.New("error while decoding options")

type discordValue interface {
	string | int | bool
}

type discordField[T discordValue] struct {
	Value   T
	Focused bool
}

var fieldTypes = map[reflect.Type]bool{
	reflect.TypeOf(discordField[string]{}): true,
	reflect.TypeOf(discordField[int]{}):    true,
	reflect.TypeOf(discordField[bool]{}):   true,
}

// decodeOptions fills structure from interaction options, matching each
// option to the field whose `option` tag carries its name. Pointer fields are
// allocated only when the option is present.
func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption, structure any) (ret error) {
	defer func() {
		r := recover()
		if err, ok := r.(*reflect.ValueError); ok {
			ret = fmt.Errorf("reflection error while decoding options: %v: %w", err.Error(), ErrDecodeOption)
		} else if r != nil {
			panic(r)
		}
	}()

	value := reflect.Indirect(reflect.ValueOf(structure))
	if value.Kind() != reflect.Struct || !value.CanAddr() {
		return fmt.Errorf("value is not an addressable struct: %w", ErrDecodeOption)
	}

	m := make(map[string]reflect.Value, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		tfield := value.Type().Field(i)
		option := tfield.Tag.Get("option")
		if option == "" {
			continue
		}

		if !field.CanSet() {
			return fmt.Errorf("field %q cannot be set: %w", tfield.Name, ErrDecodeOption)
		}
		m[option] = field
	}

	for _, option := range options {
		field, ok := m[option.Name]
		if !ok {
			return fmt.Errorf("unexpected option name %q: %w", option.Name, ErrDecodeOption)
		}

		if field.Kind() == reflect.Pointer {
			ptr := reflect.New(field.Type().Elem())
			field.Set(ptr)

			field = ptr.Elem()
		}
		if field.Kind() == reflect.Struct && fieldTypes[field.Type()] {
			focused := field.FieldByName("Focused")
			focused.SetBool(option.Focused)

			field = field.FieldByName("Value")
		}

		switch option.Type {
		case discordgo.ApplicationCommandOptionString:
			if field.Kind() == reflect.String {
				field.SetString(option.StringValue())
				continue
			}
		case discordgo.ApplicationCommandOptionInteger:
			if field.Kind() == reflect.Int {
				field.SetInt(option.IntValue())
				continue
			}
		case discordgo.ApplicationCommandOptionBoolean:
			if field.Kind() == reflect.Bool {
				field.SetBool(option.BoolValue())
				continue
			}
		case discordgo.ApplicationCommandOptionSubCommand:
			if field.Kind() == reflect.Struct {
				err := decodeOptions(option.Options, field.Addr().Interface())
				if err != nil {
					return fmt.Errorf("error while decoding options for subcommand %q: %w", option.Name, err)
				}

				continue
			}
		default:
			return fmt.Errorf("unsupported type %q for option %q: %w", option.Type, option.Name, ErrDecodeOption)
		}
		return fmt.Errorf("unexpected type %q for option %q: %w", option.Type, option.Name, ErrDecodeOption)
	}

	return nil
}
