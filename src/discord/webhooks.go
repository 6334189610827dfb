package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

const webhookName = "Nameless Suggestions"

// WebhookForChannel finds or creates the channel webhook used to relay
// comments under the commenter's name and avatar. Returns nil when the bot
// lacks webhook permissions; callers fall back to plain embeds.
func WebhookForChannel(s *discordgo.Session, channelID string) *discordgo.Webhook {
	hooks, err := s.ChannelWebhooks(channelID)
	if err == nil {
		for _, hook := range hooks {
			if strings.Contains(strings.ToLower(hook.Name), "suggestions") {
				return hook
			}
		}
	}

	hook, err := s.WebhookCreate(channelID, webhookName, "")
	if err != nil {
		return nil
	}
	return hook
}
