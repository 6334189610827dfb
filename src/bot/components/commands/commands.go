// Package commands implements the slash-command surface of the bot.
package commands

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/handler"
	"github.com/nameless-community/nameless-suggestions/src/bot/data"
	"github.com/nameless-community/nameless-suggestions/src/bot/lang"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

const (
	CommandSuggest    = "suggest"
	CommandSettings   = "settings"
	CommandSetup      = "setup"
	CommandWebhookURL = "webhookurl"
	CommandInvite     = "invite"
)

type Config struct {
	Guilds   *data.Guilds
	Mirrors  *data.Mirrors
	Lang     *lang.Manager
	Resolver *handler.Resolver
	APIs     *nameless.Registry
	// Domain is the public base URL the site posts webhooks to.
	Domain string
}

type Commands struct {
	cfg Config
}

func New(cfg Config) *Commands {
	return &Commands{cfg: cfg}
}

func languageChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(lang.LanguageMap))
	for name := range lang.LanguageMap {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return choices
}

func definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandSuggest,
			Description: "Suggest something!",
		},
		{
			Name:        CommandSettings,
			Description: "Configure the suggestions bridge",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "set",
					Description: "Change a setting",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "apikey",
							Description: "Set the api url and key of your website",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "apiurl",
									Description: "The api url of your website",
									Required:    true,
								},
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "apikey",
									Description: "The api key of your website",
									Required:    true,
								},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "authkey",
							Description: "Generate a new authorization key for the webhook",
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "language",
							Description: "Change the language of the bot",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "language",
									Description: "The language to use",
									Required:    true,
									Choices:     languageChoices(),
								},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "suggestionchannel",
							Description: "Set the channel new suggestions get sent in",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionChannel,
									Name:        "channel",
									Description: "The suggestion channel",
									Required:    true,
								},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List all settings",
				},
			},
		},
		{
			Name:        CommandSetup,
			Description: "Explain how to set up the bot",
		},
		{
			Name:        CommandWebhookURL,
			Description: "Get the webhook url for your website",
		},
		{
			Name:        CommandInvite,
			Description: "Get the invite link for the bot",
		},
	}
}

// Register creates the slash commands. An empty guildID registers them
// globally; a dev guild id scopes them for instant availability.
func Register(s *discordgo.Session, guildID string) error {
	for _, definition := range definitions() {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition); err != nil {
			return fmt.Errorf("register command %s: %w", definition.Name, err)
		}
		log.Printf("commands: registered /%s", definition.Name)
	}
	return nil
}

// HandleCommand routes an application command interaction.
func (c *Commands) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondText(s, i, "This command can only be used in a server", true)
		return
	}

	switch i.ApplicationCommandData().Name {
	case CommandSuggest:
		c.handleSuggest(s, i)
	case CommandSettings:
		c.handleSettings(s, i)
	case CommandSetup:
		c.handleSetup(s, i)
	case CommandWebhookURL:
		c.handleWebhookURL(s, i)
	case CommandInvite:
		c.handleInvite(s, i)
	}
}

func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, text string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: text}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		log.Printf("commands: respond: %v", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		log.Printf("commands: respond: %v", err)
	}
}

func hasManageGuild(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageGuild != 0
}
