package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/discord"
)

func (c *Commands) handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := discord.BaseEmbed(s)
	embed.Title = "Setting up the suggestions bridge"
	embed.Description = "1. Enable the API in StaffCP > Configuration > API and copy the URL and key.\n" +
		"2. Run `/settings set apikey` with those values.\n" +
		"3. Run `/settings set suggestionchannel` to pick the channel suggestions are posted in.\n" +
		"4. Run `/settings set authkey` to generate a webhook token, then `/webhookurl` for the URL.\n" +
		"5. In StaffCP, create a Discord webhook for the Suggestions module pointing at that URL."
	respondEmbed(s, i, embed, true)
}

func (c *Commands) handleWebhookURL(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		respondText(s, i, "You need the Manage Server permission to view the webhook url", true)
		return
	}

	guild, err := c.cfg.Guilds.Get(i.GuildID)
	if err != nil || guild.AuthorizationKey == "" {
		respondText(s, i, c.cfg.Lang.GetString(i.GuildID, "invalid-setup"), true)
		return
	}
	url := c.cfg.Domain + "/webhook/" + guild.AuthorizationKey
	respondText(s, i, c.cfg.Lang.GetString(i.GuildID, "commands.webhookurl.success", "url", url), true)
}

func (c *Commands) handleInvite(s *discordgo.Session, i *discordgo.InteractionCreate) {
	url := fmt.Sprintf(
		"https://discord.com/oauth2/authorize?client_id=%s&scope=bot%%20applications.commands&permissions=313344",
		s.State.User.ID)
	respondText(s, i, "Invite the bot with: "+url, true)
}
