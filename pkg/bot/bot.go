package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/typedex/pkg/command"
	"github.com/notjagan/typedex/pkg/config"
	"github.com/notjagan/typedex/pkg/model"
)

// Bot serves every command from one shared, read-only model.
type Bot struct {
	config   config.Config
	session  *discordgo.Session
	model    *model.Model
	commands map[string]command.Command
	order    []command.Command
}

func New(ctx context.Context, cfg config.Config, mdl *model.Model) (*Bot, error) {
	cmds, err := command.NewBuilder(cfg).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while getting all commands for bot: %w", err)
	}

	commands := make(map[string]command.Command, len(cmds))
	for _, cmd := range cmds {
		commands[cmd.Name()] = cmd
	}

	return &Bot{
		config:   cfg,
		model:    mdl,
		commands: commands,
		order:    cmds,
	}, nil
}

func (bot *Bot) Close() {
	slog.Info("shutting down")
	if bot.session != nil {
		err := bot.session.Close()
		if err != nil {
			slog.Error("error while closing discord session", "err", err)
		}
	}

	err := bot.model.Close()
	if err != nil {
		slog.Error("error while closing model", "err", err)
	}
}

func (bot *Bot) command(name string) (command.Command, error) {
	cmd, ok := bot.commands[name]
	if !ok {
		return nil, fmt.Errorf("no command named %q: %w", name, command.ErrUnrecognizedInteraction)
	}

	return cmd, nil
}

// handle routes an interaction to its command by interaction type.
func (bot *Bot) handle(ctx context.Context, sess *discordgo.Session, interaction *discordgo.InteractionCreate) error {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		name := interaction.ApplicationCommandData().Name
		cmd, err := bot.command(name)
		if err != nil {
			return err
		}

		slog.Info("command", "name", name, "guild", interaction.GuildID)
		return cmd.Handle(ctx, bot.model, sess, interaction)
	case discordgo.InteractionApplicationCommandAutocomplete:
		cmd, err := bot.command(interaction.ApplicationCommandData().Name)
		if err != nil {
			return err
		}

		return cmd.Autocomplete(ctx, bot.model, sess, interaction)
	default:
		return fmt.Errorf("interaction type %v: %w", interaction.Type, command.ErrUnrecognizedInteraction)
	}
}

func (bot *Bot) initialize(ctx context.Context) error {
	sess, err := discordgo.New("Bot " + bot.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to instantiate discord bot: %w", err)
	}
	bot.session = sess

	bot.session.AddHandler(func(sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
		err := bot.handle(ctx, sess, interaction)
		if err != nil {
			slog.Error("error while handling interaction", "id", interaction.ID, "err", err)
		}
	})

	err = bot.session.Open()
	if err != nil {
		return fmt.Errorf("failed to start discord session: %w", err)
	}

	err = bot.registerCommands()
	if err != nil {
		return fmt.Errorf("error while registering commands: %w", err)
	}

	return nil
}

func (bot *Bot) Run(ctx context.Context) error {
	err := bot.initialize(ctx)
	if err != nil {
		return fmt.Errorf("error while initializing bot: %w", err)
	}

	slog.Info("hosting pokedex bot", "commands", len(bot.order), "pokemon", bot.model.Roster.Len())
	defer bot.Close()
	<-ctx.Done()

	return nil
}

func (bot *Bot) applicationCommands() []*discordgo.ApplicationCommand {
	appCmds := make([]*discordgo.ApplicationCommand, len(bot.order))
	for i, cmd := range bot.order {
		appCmds[i] = cmd.ApplicationCommand()
	}

	return appCmds
}

// registerCommands replaces the application's commands, scoped to the
// configured guild when one is set.
func (bot *Bot) registerCommands() error {
	_, err := bot.session.ApplicationCommandBulkOverwrite(
		bot.session.State.User.ID,
		bot.config.Discord.GuildID,
		bot.applicationCommands(),
	)
	if err != nil {
		return fmt.Errorf("failed to overwrite application commands: %w", err)
	}

	return nil
}
