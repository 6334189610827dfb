package handler

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/suggestion"
	"github.com/nameless-community/nameless-suggestions/src/bot/data"
	"github.com/nameless-community/nameless-suggestions/src/bot/lang"
	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

// CredentialSource yields API credentials per guild, nil when the
// installation is unconfigured. data.Guilds implements it.
type CredentialSource interface {
	Credentials(guildID string) (*nameless.Credentials, error)
}

// Core bundles the collaborators every handler version needs. Concrete
// handlers compose it instead of inheriting shared behavior.
type Core struct {
	Session *discordgo.Session
	Guilds  CredentialSource
	Mirrors *data.Mirrors
	Lang    *lang.Manager

	markers *markerSet
}

func NewCore(session *discordgo.Session, guilds CredentialSource, mirrors *data.Mirrors, langs *lang.Manager) *Core {
	return &Core{
		Session: session,
		Guilds:  guilds,
		Mirrors: mirrors,
		Lang:    langs,
		markers: newMarkerSet(),
	}
}

// recoverSuggestion rebuilds the local mirror for a suggestion we have no
// record of: the embed is recreated and all but the newest comment replayed
// into the thread. The newest comment is the one the caller is processing.
func (c *Core) recoverSuggestion(ctx context.Context, h Handler, s *suggestion.Suggestion, guild *types.Guild) {
	if s.APIData == nil {
		return
	}

	if err := h.CreateSuggestion(ctx, s, guild); err != nil {
		log.Printf("handler: recover suggestion %s in guild %s: %v", s.ID, s.GuildID, err)
		return
	}

	if err := s.Refresh(ctx); err != nil {
		log.Printf("handler: refresh recovered suggestion %s: %v", s.ID, err)
		return
	}
	if s.Comments == nil {
		log.Printf("handler: no comments for recovered suggestion %s in guild %s", s.ID, s.GuildID)
		return
	}

	for i := 0; i < len(s.Comments.Comments)-1; i++ {
		comment := s.Comments.Comments[i]
		if err := h.CreateComment(ctx, s, guild, comment); err != nil {
			log.Printf("handler: replay comment %d for suggestion %s: %v", comment.ID, s.ID, err)
		}
	}
}
