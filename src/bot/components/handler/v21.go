package handler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/suggestion"
	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/nameless-community/nameless-suggestions/src/content"
	"github.com/nameless-community/nameless-suggestions/src/discord"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

const (
	threadSlowmodeSeconds = 30
	embedTitleLimit       = 100
	embedBodyLimit        = 4092
)

// v21 mirrors suggestions for the 2.1 site line.
type v21 struct {
	*Core
	api nameless.Adapter
}

func newV21(core *Core) *v21 {
	return &v21{Core: core}
}

func (h *v21) MinVersion() int { return 210 }
func (h *v21) MaxVersion() int { return 220 }

func (h *v21) Bind(api nameless.Adapter) { h.api = api }

// CreateSuggestion posts the suggestion embed, opens its thread and records
// the mirror row. A suggestion that already has a mirror row is skipped,
// which makes duplicate webhook deliveries harmless.
func (h *v21) CreateSuggestion(ctx context.Context, s *suggestion.Suggestion, guild *types.Guild) error {
	if s.DBData != nil {
		return nil
	}
	if s.APIData == nil || guild.SuggestionChannel == "" {
		return nil
	}

	channel, err := h.Session.Channel(guild.SuggestionChannel)
	if err != nil || channel.Type != discordgo.ChannelTypeGuildText {
		log.Printf("handler: channel %s is not a usable text channel", guild.SuggestionChannel)
		return nil
	}

	author, err := s.Author(ctx)
	if err != nil {
		return err
	}
	if author == nil {
		return nil
	}

	embed := h.createEmbed(ctx, guild.ID, s.APIData, authorAvatar(author, s.APIData.Author.Username))
	components := reactionButtons(s.APIData)
	msg, err := h.Session.ChannelMessageSendComplex(guild.SuggestionChannel, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{components},
	})
	if err != nil {
		return fmt.Errorf("send suggestion message: %w", err)
	}

	threadName := fmt.Sprintf("%s #%s", h.Lang.GetString(guild.ID, "suggestionHandler.suggestion"), s.APIData.ID)
	if _, err := h.Session.MessageThreadStartComplex(guild.SuggestionChannel, msg.ID, &discordgo.ThreadStart{
		Name:                threadName,
		AutoArchiveDuration: 10080,
		RateLimitPerUser:    threadSlowmodeSeconds,
	}); err != nil {
		log.Printf("handler: start thread for suggestion %s: %v", s.APIData.ID, err)
	}

	suggestionID, _ := strconv.ParseUint(s.APIData.ID, 10, 64)
	statusID, _ := strconv.Atoi(s.APIData.Status.ID)
	return h.Mirrors.CreateSuggestion(&types.Suggestion{
		SuggestionID: suggestionID,
		MessageID:    msg.ID,
		Status:       statusID,
		URL:          s.APIData.Link,
		GuildID:      guild.ID,
		ChannelID:    guild.SuggestionChannel,
	})
}

// CreateComment relays a site comment into the suggestion thread. Comments
// this process just pushed to the site are recognized by their dedup marker
// and suppressed exactly once.
func (h *v21) CreateComment(ctx context.Context, s *suggestion.Suggestion, guild *types.Guild, comment nameless.Comment) error {
	if s.APIData == nil {
		return nil
	}

	if s.DBData == nil {
		h.recoverSuggestion(ctx, h, s, guild)
		if err := s.Refresh(ctx); err != nil {
			return err
		}
		if s.DBData == nil {
			return nil
		}
	}

	if h.markers.Consume(threadMessageKey(guild.ID, s.APIData.ID, comment.ID)) {
		return nil
	}

	body := h.ReplacePlaceholders(ctx, h.api, guild.ID, comment.Content)
	author := suggestion.UserByID(ctx, comment.User.ID, h.api, h.credentialsOrEmpty(guild.ID))
	if author == nil {
		return nil
	}

	avatar := author.AvatarURL
	if avatar == "" {
		avatar = "https://cravatar.eu/helmavatar/" + author.Username
	}

	threadID := s.DBData.MessageID // a message-started thread shares its id
	parts := content.SplitMessage(content.FixContent(body), 2000)
	if len(parts) == 0 {
		return nil
	}

	var (
		threadMessage *discordgo.Message
		err           error
	)
	webhook := discord.WebhookForChannel(h.Session, s.DBData.ChannelID)
	for _, part := range parts {
		if webhook != nil {
			threadMessage, err = h.Session.WebhookThreadExecute(webhook.ID, webhook.Token, true, threadID, &discordgo.WebhookParams{
				Content:   part,
				Username:  comment.User.Username,
				AvatarURL: content.ParseAvatarURL(avatar),
			})
		} else {
			embed := discord.BaseEmbedNoFooter()
			embed.Description = part
			embed.Author = &discordgo.MessageEmbedAuthor{Name: comment.User.Username, IconURL: content.ParseAvatarURL(avatar)}
			threadMessage, err = h.Session.ChannelMessageSendEmbed(threadID, embed)
		}
		if err != nil {
			return fmt.Errorf("relay comment %d: %w", comment.ID, err)
		}
	}

	if err := h.Mirrors.CreateComment(&types.Comment{
		SuggestionID: s.DBData.SuggestionID,
		CommentID:    strconv.FormatInt(comment.ID, 10),
		GuildID:      s.DBData.GuildID,
		ChannelID:    s.DBData.ChannelID,
		MessageID:    threadMessage.ID,
	}); err != nil {
		return err
	}

	return h.syncThreadState(guild.ID, threadID, s.APIData.Status.Open)
}

// syncThreadState locks and archives the thread when the suggestion is
// closed on the website, and reopens it when the suggestion reopens.
func (h *v21) syncThreadState(guildID, threadID string, open bool) error {
	thread, err := h.Session.Channel(threadID)
	if err != nil || thread.ThreadMetadata == nil {
		return nil
	}

	locked := thread.ThreadMetadata.Locked
	if !open && !locked {
		h.setThreadLocked(threadID, true, h.Lang.GetString(guildID, "suggestionHandler.suggestion_closed_website"))
	} else if open && locked {
		h.setThreadLocked(threadID, false, h.Lang.GetString(guildID, "suggestionHandler.suggestion_opened_website"))
	}
	return nil
}

func (h *v21) setThreadLocked(threadID string, locked bool, reason string) {
	if _, err := h.Session.ChannelEdit(threadID, &discordgo.ChannelEdit{
		Locked:   &locked,
		Archived: &locked,
	}); err != nil {
		log.Printf("handler: set thread %s locked=%v (%s): %v", threadID, locked, reason, err)
	}
}

// SendComment pushes a thread reply to the site as a suggestion comment.
func (h *v21) SendComment(ctx context.Context, msg *discordgo.Message) error {
	// The reply lives in the thread attached to the suggestion message, and
	// a message-started thread shares the starter message's id.
	mirror, err := h.Mirrors.SuggestionByMessage(msg.GuildID, msg.ChannelID)
	if err != nil {
		return err
	}
	if mirror == nil {
		return nil
	}

	creds, err := h.Guilds.Credentials(msg.GuildID)
	if err != nil {
		return err
	}
	if creds == nil {
		_ = h.Session.ChannelMessageDelete(msg.ChannelID, msg.ID)
		embed := discord.BaseEmbed(h.Session)
		embed.Description = "`❌` " + h.Lang.GetString(msg.GuildID, "invalid-setup")
		discord.RespondDMFallback(h.Session, msg.Author.ID, msg.ChannelID, embed)
		return nil
	}

	body := h.ReplaceMentions(ctx, h.api, msg.GuildID, msg.Content)
	suggestionID := strconv.FormatUint(mirror.SuggestionID, 10)

	resp, err := h.api.CreateComment(ctx, *creds, suggestionID, body, msg.Author.ID)
	if err != nil {
		if nameless.IsCode(err, "cannot_find_user") {
			_ = h.Session.ChannelMessageDelete(msg.ChannelID, msg.ID)
			embed := discord.BaseEmbed(h.Session)
			embed.Description = "`❌` " + h.Lang.GetString(msg.GuildID, "suggestionHandler.cannot_find_user")
			discord.RespondDMFallback(h.Session, msg.Author.ID, msg.ChannelID, embed)
			return nil
		}
		return fmt.Errorf("send comment for suggestion %s: %w", suggestionID, err)
	}

	h.markers.Add(threadMessageKey(msg.GuildID, suggestionID, resp.CommentID))
	return nil
}

// HandleReaction applies a like/dislike button press with toggle semantics:
// pressing the reaction the user already holds retracts it.
func (h *v21) HandleReaction(ctx context.Context, i *discordgo.InteractionCreate, kind nameless.ReactionType) error {
	if err := h.Session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		return err
	}

	// The reply was already deferred; never leave it hanging.
	mirror, err := h.Mirrors.SuggestionByMessage(i.GuildID, i.Message.ID)
	if err != nil || mirror == nil {
		_ = h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "unknown-error"))
		return err
	}

	creds, err := h.Guilds.Credentials(i.GuildID)
	if err != nil {
		_ = h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "unknown-error"))
		return err
	}
	if creds == nil {
		return h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "invalid-setup"))
	}

	suggestionID := strconv.FormatUint(mirror.SuggestionID, 10)
	s, err := suggestion.Fetch(ctx, suggestionID, i.GuildID, h.api, *creds, h.Mirrors)
	if err != nil {
		_ = h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "unknown-error"))
		return err
	}

	user := suggestion.UserByDiscordID(ctx, i.Member.User.ID, h.api, *creds)
	if user == nil {
		return h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "suggestionHandler.cannot_find_user"))
	}

	remove := reactionMustBeRemoved(s.APIData, user.ID, kind)
	if err := h.api.CreateReaction(ctx, *creds, suggestionID, kind, i.Member.User.ID, remove); err != nil {
		if nameless.IsCode(err, "cannot_find_user") {
			return h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "suggestionHandler.cannot_find_user"))
		}
		_ = h.editReply(i, "`❌` "+h.Lang.GetString(i.GuildID, "unknown-error"))
		return fmt.Errorf("send reaction for suggestion %s: %w", suggestionID, err)
	}

	emoji := "👍"
	if kind == nameless.ReactionDislike {
		emoji = "👎"
	}
	return h.editReply(i, h.Lang.GetString(i.GuildID, "suggestionHandler.reaction_registered", "reaction", emoji))
}

// reactionMustBeRemoved reports whether the press retracts an existing vote.
func reactionMustBeRemoved(apiData *nameless.Suggestion, siteUserID int64, kind nameless.ReactionType) bool {
	if apiData == nil {
		return false
	}
	list := apiData.Likes
	if kind == nameless.ReactionDislike {
		list = apiData.Dislikes
	}
	for _, id := range list {
		if id == siteUserID {
			return true
		}
	}
	return false
}

func (h *v21) editReply(i *discordgo.InteractionCreate, description string) error {
	embed := discord.BaseEmbed(h.Session)
	embed.Description = description
	_, err := h.Session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

// UpdateSuggestionEmbed re-renders the suggestion message after votes or
// edits on the website.
func (h *v21) UpdateSuggestionEmbed(ctx context.Context, s *suggestion.Suggestion, guild *types.Guild) error {
	if s.APIData == nil {
		return nil
	}
	if s.DBData == nil {
		h.recoverSuggestion(ctx, h, s, guild)
		if err := s.Refresh(ctx); err != nil {
			return err
		}
		if s.DBData == nil {
			return nil
		}
	}

	author, err := s.Author(ctx)
	if err != nil || author == nil {
		return err
	}

	embed := h.createEmbed(ctx, guild.ID, s.APIData, authorAvatar(author, s.APIData.Author.Username))
	components := reactionButtons(s.APIData)
	_, err = h.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    s.DBData.ChannelID,
		ID:         s.DBData.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &[]discordgo.MessageComponent{components},
	})
	return err
}

// RemoveDeletedComment deletes the thread message mirroring a comment that
// was removed on the website. Discord refuses deletions inside locked or
// archived threads, so the thread is briefly unlocked when needed.
func (h *v21) RemoveDeletedComment(ctx context.Context, s *suggestion.Suggestion, commentID string) error {
	if s.DBData == nil || s.APIData == nil {
		return nil
	}

	dbComment, err := h.Mirrors.CommentByID(s.DBData.GuildID, s.DBData.ChannelID, commentID)
	if err != nil || dbComment == nil {
		return err
	}

	threadID := s.DBData.MessageID
	thread, err := h.Session.Channel(threadID)
	if err != nil {
		return nil
	}

	wasLocked := false
	if thread.ThreadMetadata != nil && (thread.ThreadMetadata.Locked || thread.ThreadMetadata.Archived) {
		h.setThreadLocked(threadID, false, "pending comment deletion")
		wasLocked = true
	}

	if err := h.Session.ChannelMessageDelete(threadID, dbComment.MessageID); err != nil {
		log.Printf("handler: delete mirrored comment message %s: %v", dbComment.MessageID, err)
	}
	if err := h.Mirrors.DeleteComment(dbComment); err != nil {
		return err
	}

	if wasLocked {
		h.setThreadLocked(threadID, true, "comment deletion finished")
	}
	return nil
}

// RemoveDeletedSuggestion tears down the thread, the suggestion message and
// the mirror row. Works without remote data: a deleted suggestion no longer
// exists on the website.
func (h *v21) RemoveDeletedSuggestion(ctx context.Context, s *suggestion.Suggestion) error {
	if s.DBData == nil {
		return nil
	}

	if _, err := h.Session.ChannelDelete(s.DBData.MessageID); err != nil {
		log.Printf("handler: delete thread for suggestion %d: %v", s.DBData.SuggestionID, err)
	}
	if err := h.Session.ChannelMessageDelete(s.DBData.ChannelID, s.DBData.MessageID); err != nil {
		log.Printf("handler: delete suggestion message %s: %v", s.DBData.MessageID, err)
	}
	return h.Mirrors.DeleteSuggestion(s.DBData)
}

// SendAllSuggestions backfills the channel from the full remote suggestion
// list, skipping anything below the optional id floor. Existing mirror rows
// make reruns idempotent.
func (h *v21) SendAllSuggestions(ctx context.Context, guild *types.Guild, fromID uint64) error {
	creds, err := h.Guilds.Credentials(guild.ID)
	if err != nil {
		return err
	}
	if creds == nil {
		return fmt.Errorf("guild %s has no api credentials", guild.ID)
	}

	list, err := h.api.Suggestions(ctx, *creds)
	if err != nil {
		return fmt.Errorf("list suggestions: %w", err)
	}

	for _, entry := range list.Suggestions {
		id, err := strconv.ParseUint(entry.ID, 10, 64)
		if err != nil || id < fromID {
			continue
		}
		s, err := suggestion.Fetch(ctx, entry.ID, guild.ID, h.api, *creds, h.Mirrors)
		if err != nil {
			log.Printf("handler: migrate suggestion %s: %v", entry.ID, err)
			continue
		}
		if err := h.CreateSuggestion(ctx, s, guild); err != nil {
			log.Printf("handler: migrate suggestion %s: %v", entry.ID, err)
		}
	}
	return nil
}

func (h *v21) createEmbed(ctx context.Context, guildID string, apiData *nameless.Suggestion, avatarURL string) *discordgo.MessageEmbed {
	footer := h.Lang.GetString(guildID, "suggestionHandler.suggested_by", "user", apiData.Author.Username)
	description := h.ReplacePlaceholders(ctx, h.api, guildID, apiData.Content)

	embed := discord.BaseEmbedNoFooter()
	embed.Title = fmt.Sprintf("#%s - %s", apiData.ID, content.StripLength(content.FixContent(apiData.Title), embedTitleLimit))
	embed.Description = content.StripLength(content.FixContent(description), embedBodyLimit)
	embed.URL = apiData.Link
	if color, ok := parseStatusColor(apiData.Status.Color); ok {
		embed.Color = color
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	if avatarURL != "" {
		embed.Footer.IconURL = content.ParseAvatarURL(avatarURL)
	}
	return embed
}

func reactionButtons(apiData *nameless.Suggestion) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: ButtonLike,
				Label:    fmt.Sprintf("%s 👍", apiData.LikesCount),
				Style:    discordgo.SuccessButton,
			},
			discordgo.Button{
				CustomID: ButtonDislike,
				Label:    fmt.Sprintf("%s 👎", apiData.DislikesCount),
				Style:    discordgo.DangerButton,
			},
		},
	}
}

func parseStatusColor(color string) (int, bool) {
	color = strings.TrimPrefix(strings.TrimSpace(color), "#")
	if color == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(color, 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func authorAvatar(author *nameless.User, username string) string {
	if author != nil && author.AvatarURL != "" {
		return content.ParseAvatarURL(author.AvatarURL)
	}
	return fmt.Sprintf("https://avatars.dicebear.com/api/initials/%s.png?size=128", username)
}

func (h *v21) credentialsOrEmpty(guildID string) nameless.Credentials {
	creds, err := h.Guilds.Credentials(guildID)
	if err != nil || creds == nil {
		return nameless.Credentials{}
	}
	return *creds
}
