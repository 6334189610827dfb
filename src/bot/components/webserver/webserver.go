// Package webserver receives the webhook calls the site fires for
// suggestion activity and applies them to the bound Discord channel.
package webserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/handler"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/suggestion"
	"github.com/nameless-community/nameless-suggestions/src/bot/data"
)

const processTimeout = 60 * time.Second

type Webserver struct {
	guilds   *data.Guilds
	mirrors  *data.Mirrors
	resolver *handler.Resolver
}

func New(guilds *data.Guilds, mirrors *data.Mirrors, resolver *handler.Resolver) *gin.Engine {
	w := &Webserver{guilds: guilds, mirrors: mirrors, resolver: resolver}

	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.POST("/webhook/:token", w.handleWebhook)
	return g
}

// handleWebhook acknowledges immediately and processes in the background.
// The site neither retries nor cares about the outcome, so there is nothing
// useful to report in the response.
func (w *Webserver) handleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}
	token := c.Param("token")
	c.Status(http.StatusOK)

	go w.process(token, body)
}

func (w *Webserver) process(token string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	payload, err := ParsePayload(body)
	if err != nil {
		log.Printf("webserver: dropping unsupported webhook body: %s", string(body))
		return
	}

	guild, err := w.guilds.ByAuthorizationKey(token)
	if err != nil {
		log.Printf("webserver: guild lookup: %v", err)
		return
	}
	if guild == nil {
		log.Printf("webserver: no guild found for authorization key %s", token)
		return
	}

	h, err := w.resolver.Resolve(ctx, guild.ID)
	if err != nil {
		log.Printf("webserver: resolve handler for guild %s: %v", guild.ID, err)
		return
	}
	api, err := w.resolver.ResolveAPI(ctx, guild.ID)
	if err != nil {
		return
	}

	creds, err := w.guilds.Credentials(guild.ID)
	if err != nil || creds == nil {
		log.Printf("webserver: guild %s has no credentials", guild.ID)
		return
	}

	s, err := suggestion.Fetch(ctx, payload.SuggestionID, guild.ID, api, *creds, w.mirrors)
	if err != nil {
		log.Printf("webserver: fetch suggestion %s: %v", payload.SuggestionID, err)
		return
	}

	// Deletions are the one event where missing remote data is expected:
	// the suggestion is already gone upstream. Everything else needs the
	// remote truth source.
	if s.APIData == nil && payload.Event != EventDeleteSuggestion {
		log.Printf("webserver: no remote data for suggestion %s in guild %s", payload.SuggestionID, guild.ID)
		return
	}

	switch payload.Event {
	case EventNewSuggestion:
		err = h.CreateSuggestion(ctx, s, guild)
	case EventNewComment:
		comment, cerr := api.Comment(ctx, *creds, payload.SuggestionID, payload.CommentID)
		if cerr != nil {
			log.Printf("webserver: no comment info for comment %s: %v", payload.CommentID, cerr)
			return
		}
		err = h.CreateComment(ctx, s, guild, *comment)
	case EventVote, EventUpdateSuggestion:
		err = h.UpdateSuggestionEmbed(ctx, s, guild)
	case EventDeleteComment:
		err = h.RemoveDeletedComment(ctx, s, payload.CommentID)
	case EventDeleteSuggestion:
		err = h.RemoveDeletedSuggestion(ctx, s)
	}
	if err != nil {
		log.Printf("webserver: %s for suggestion %s in guild %s: %v", payload.Event, payload.SuggestionID, guild.ID, err)
	}
}
