package commands

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/discord"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

const (
	SuggestModalID   = "suggest-modal"
	suggestTitleID   = "suggest-title"
	suggestExplainID = "suggest-description"
)

func (c *Commands) handleSuggest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: SuggestModalID,
			Title:    c.cfg.Lang.GetString(i.GuildID, "commands.suggest.modal_title"),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  suggestTitleID,
						Label:     c.cfg.Lang.GetString(i.GuildID, "commands.suggest.title_label"),
						Style:     discordgo.TextInputShort,
						Required:  true,
						MaxLength: 128,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  suggestExplainID,
						Label:     c.cfg.Lang.GetString(i.GuildID, "commands.suggest.description_label"),
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MaxLength: 4000,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("commands: suggest modal: %v", err)
	}
}

// HandleSuggestModal submits the filled-in modal to the website.
func (c *Commands) HandleSuggestModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	title, description := modalValues(i.ModalSubmitData())

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Printf("commands: suggest defer: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api, err := c.cfg.Resolver.ResolveAPI(ctx, i.GuildID)
	if err != nil {
		c.editReplyKey(s, i, "invalid-setup")
		return
	}
	creds, err := c.cfg.Guilds.Credentials(i.GuildID)
	if err != nil || creds == nil {
		c.editReplyKey(s, i, "invalid-setup")
		return
	}

	created, err := api.CreateSuggestion(ctx, *creds, title, description, i.Member.User.ID)
	if err != nil {
		switch {
		case nameless.IsCode(err, "cannot_find_user"):
			c.editReplyKey(s, i, "commands.suggest.cannot_find_user")
		case nameless.IsCode(err, "validation_errors"):
			c.editReply(s, i, c.cfg.Lang.GetString(i.GuildID, "commands.suggest.validation_errors",
				"errors", validationErrors(err)))
		default:
			log.Printf("commands: suggest for guild %s: %v", i.GuildID, err)
			c.editReplyKey(s, i, "invalid-setup")
		}
		return
	}

	c.editReply(s, i, c.cfg.Lang.GetString(i.GuildID, "commands.suggest.success", "link", created.Link))
}

func modalValues(data discordgo.ModalSubmitInteractionData) (title, description string) {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if !ok {
				continue
			}
			switch input.CustomID {
			case suggestTitleID:
				title = input.Value
			case suggestExplainID:
				description = input.Value
			}
		}
	}
	return title, description
}

func validationErrors(err error) string {
	var apiErr *nameless.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Meta) == 0 {
		return ""
	}
	return strings.Join(apiErr.Meta, "\n")
}

func (c *Commands) editReplyKey(s *discordgo.Session, i *discordgo.InteractionCreate, key string) {
	c.editReply(s, i, c.cfg.Lang.GetString(i.GuildID, key))
}

func (c *Commands) editReply(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	embed := discord.BaseEmbed(s)
	embed.Description = text
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("commands: edit reply: %v", err)
	}
}
