package commands

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/nameless-community/nameless-suggestions/src/bot/lang"
	"github.com/nameless-community/nameless-suggestions/src/discord"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

func (c *Commands) handleSettings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		respondText(s, i, "You need the Manage Server permission to change settings", true)
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "set":
		if len(options[0].Options) == 0 {
			return
		}
		sub := options[0].Options[0]
		switch sub.Name {
		case "apikey":
			c.setAPIKey(s, i, sub)
		case "authkey":
			c.setAuthKey(s, i)
		case "language":
			c.setLanguage(s, i, sub)
		case "suggestionchannel":
			c.setSuggestionChannel(s, i, sub)
		}
	case "list":
		c.listSettings(s, i)
	}
}

func (c *Commands) setAPIKey(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	var apiURL, apiKey string
	for _, opt := range sub.Options {
		switch opt.Name {
		case "apiurl":
			apiURL = strings.TrimSpace(opt.StringValue())
		case "apikey":
			apiKey = strings.TrimSpace(opt.StringValue())
		}
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Printf("commands: settings defer: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Probe the site before saving so broken credentials never stick.
	creds := nameless.Credentials{URL: apiURL, Key: apiKey}
	if _, err := c.cfg.APIs.Latest().WebsiteInfo(ctx, creds); err != nil {
		log.Printf("commands: apikey probe for guild %s: %v", i.GuildID, err)
		c.editReplyKey(s, i, "commands.settings.set.apikey.invalid")
		return
	}

	guild, err := c.cfg.Guilds.Get(i.GuildID)
	if err != nil {
		log.Printf("commands: settings guild %s: %v", i.GuildID, err)
		return
	}
	guild.APIURL = apiURL
	guild.APIKey = apiKey
	if err := c.cfg.Guilds.Save(guild); err != nil {
		log.Printf("commands: save guild %s: %v", i.GuildID, err)
		return
	}

	c.editReplyKey(s, i, "commands.settings.set.apikey.success")
}

func (c *Commands) setAuthKey(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := c.cfg.Guilds.Get(i.GuildID)
	if err != nil {
		log.Printf("commands: settings guild %s: %v", i.GuildID, err)
		return
	}
	guild.AuthorizationKey = uuid.NewString()
	if err := c.cfg.Guilds.Save(guild); err != nil {
		log.Printf("commands: save guild %s: %v", i.GuildID, err)
		return
	}

	// Best effort: register the webhook on the site when credentials exist.
	if creds, err := c.cfg.Guilds.Credentials(i.GuildID); err == nil && creds != nil && c.cfg.Domain != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if api, err := c.cfg.Resolver.ResolveAPI(ctx, i.GuildID); err == nil {
			err := api.CreateWebhook(ctx, *creds, nameless.WebhookOptions{
				Name:   "Nameless Suggestions",
				URL:    c.cfg.Domain + "/webhook/" + guild.AuthorizationKey,
				Events: []string{"newSuggestion", "newSuggestionComment", "userSuggestionVote", "deleteSuggestionComment", "deleteSuggestion", "updateSuggestion"},
			})
			if err != nil {
				log.Printf("commands: register webhook for guild %s: %v", i.GuildID, err)
			}
		}
	}

	respondText(s, i,
		c.cfg.Lang.GetString(i.GuildID, "commands.settings.set.authkey.success", "token", guild.AuthorizationKey),
		true)
}

func (c *Commands) setLanguage(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if len(sub.Options) == 0 {
		return
	}
	name := sub.Options[0].StringValue()
	code, ok := lang.LanguageMap[name]
	if !ok {
		respondText(s, i, "Unknown language", true)
		return
	}

	guild, err := c.cfg.Guilds.Get(i.GuildID)
	if err != nil {
		log.Printf("commands: settings guild %s: %v", i.GuildID, err)
		return
	}
	guild.Language = code
	if err := c.cfg.Guilds.Save(guild); err != nil {
		log.Printf("commands: save guild %s: %v", i.GuildID, err)
		return
	}

	respondText(s, i,
		c.cfg.Lang.GetString(i.GuildID, "commands.settings.set.language.success", "language", name),
		true)
}

func (c *Commands) setSuggestionChannel(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if len(sub.Options) == 0 {
		return
	}
	channel := sub.Options[0].ChannelValue(s)
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		respondText(s, i, c.cfg.Lang.GetString(i.GuildID, "commands.settings.set.suggestionChannel.no_textchannel"), true)
		return
	}

	guild, err := c.cfg.Guilds.Get(i.GuildID)
	if err != nil {
		log.Printf("commands: settings guild %s: %v", i.GuildID, err)
		return
	}

	// Mirror rows for the previous channel point at messages that no longer
	// drive the bridge. Drop them so stale threads stop resolving.
	if guild.SuggestionChannel != "" && guild.SuggestionChannel != channel.ID {
		if err := c.cfg.Mirrors.DeleteSuggestionsByChannel(guild.SuggestionChannel); err != nil {
			log.Printf("commands: clear mirrors for channel %s: %v", guild.SuggestionChannel, err)
		}
	}

	guild.SuggestionChannel = channel.ID
	if err := c.cfg.Guilds.Save(guild); err != nil {
		log.Printf("commands: save guild %s: %v", i.GuildID, err)
		return
	}

	respondText(s, i,
		c.cfg.Lang.GetString(i.GuildID, "commands.settings.set.suggestionChannel.success", "channel", "<#"+channel.ID+">"),
		true)
}

func (c *Commands) listSettings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := c.cfg.Guilds.Get(i.GuildID)
	if err != nil {
		log.Printf("commands: settings guild %s: %v", i.GuildID, err)
		return
	}

	mask := func(v string) string {
		if v == "" {
			return "*not set*"
		}
		if len(v) <= 4 {
			return "****"
		}
		return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
	}
	channel := "*not set*"
	if guild.SuggestionChannel != "" {
		channel = "<#" + guild.SuggestionChannel + ">"
	}
	apiURL := guild.APIURL
	if apiURL == "" {
		apiURL = "*not set*"
	}

	embed := &discordgo.MessageEmbed{
		Title: "Settings",
		Color: discord.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "API URL", Value: apiURL},
			{Name: "API key", Value: mask(guild.APIKey)},
			{Name: "Authorization key", Value: mask(guild.AuthorizationKey)},
			{Name: "Suggestion channel", Value: channel},
			{Name: "Language", Value: guild.Language},
		},
	}
	respondEmbed(s, i, embed, true)
}
