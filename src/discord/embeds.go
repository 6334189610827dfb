package discord

import "github.com/bwmarrin/discordgo"

const EmbedColor = 0x2F3136

// BaseEmbed returns the bot's standard embed shell.
func BaseEmbed(s *discordgo.Session) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Color: EmbedColor}
	if s.State != nil && s.State.User != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    "Nameless Suggestions",
			IconURL: s.State.User.AvatarURL(""),
		}
	}
	return embed
}

// BaseEmbedNoFooter returns the embed shell without the bot footer, used when
// the footer carries other information.
func BaseEmbedNoFooter() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Color: EmbedColor}
}
