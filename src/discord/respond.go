package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// RespondDMFallback delivers an embed to a user via DM, falling back to a
// self-deleting notice in the channel when the DM cannot be delivered.
func RespondDMFallback(s *discordgo.Session, userID, channelID string, embed *discordgo.MessageEmbed) {
	dm, err := s.UserChannelCreate(userID)
	if err == nil {
		if _, err = s.ChannelMessageSendEmbed(dm.ID, embed); err == nil {
			return
		}
	}

	sent, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return
	}
	time.AfterFunc(5*time.Second, func() {
		_ = s.ChannelMessageDelete(channelID, sent.ID)
	})
}
