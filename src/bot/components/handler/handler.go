// Package handler implements the chat-side effects of suggestion
// synchronization, versioned the same way the api adapters are.
package handler

import (
	"context"
	"log"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/suggestion"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/version"
	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

// Custom ids of the reaction buttons under every suggestion embed.
const (
	ButtonLike    = "like-suggestion"
	ButtonDislike = "dislike-suggestion"
)

// Handler performs the Discord-side mutations for one range of site
// versions. A handler always calls back into the remote API, so a resolved
// api adapter is bound to it before use.
type Handler interface {
	MinVersion() int
	MaxVersion() int
	Bind(api nameless.Adapter)

	CreateSuggestion(ctx context.Context, s *suggestion.Suggestion, guild *types.Guild) error
	CreateComment(ctx context.Context, s *suggestion.Suggestion, guild *types.Guild, comment nameless.Comment) error
	SendComment(ctx context.Context, msg *discordgo.Message) error
	HandleReaction(ctx context.Context, i *discordgo.InteractionCreate, kind nameless.ReactionType) error
	UpdateSuggestionEmbed(ctx context.Context, s *suggestion.Suggestion, guild *types.Guild) error
	RemoveDeletedComment(ctx context.Context, s *suggestion.Suggestion, commentID string) error
	RemoveDeletedSuggestion(ctx context.Context, s *suggestion.Suggestion) error
	SendAllSuggestions(ctx context.Context, guild *types.Guild, fromID uint64) error
}

// Registry holds the handler instances sorted from most to least recent.
type Registry struct {
	handlers []Handler
}

// NewRegistry builds the static handler table.
func NewRegistry(core *Core) *Registry {
	r := &Registry{}
	r.register(newV21(core))
	if len(r.handlers) == 0 {
		log.Fatalf("handler: no suggestion handlers registered")
	}
	sort.Slice(r.handlers, func(i, j int) bool {
		return r.handlers[i].MinVersion() > r.handlers[j].MinVersion()
	})
	return r
}

func (r *Registry) register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Select picks the handler covering the version, falling back to the most
// recent one with a warning when nothing matches.
func (r *Registry) Select(v int) Handler {
	for _, h := range r.handlers {
		if h.MinVersion() <= v && (h.MaxVersion() == 0 || v <= h.MaxVersion()) {
			return h
		}
	}
	log.Printf("handler: no suggestion handler covers version %d, falling back to latest", v)
	return r.handlers[0]
}

// Resolver ties version resolution to adapter and handler selection.
type Resolver struct {
	versions *version.Service
	apis     *nameless.Registry
	handlers *Registry
}

func NewResolver(versions *version.Service, apis *nameless.Registry, handlers *Registry) *Resolver {
	return &Resolver{versions: versions, apis: apis, handlers: handlers}
}

// Resolve returns the handler for a guild with its api adapter bound.
func (r *Resolver) Resolve(ctx context.Context, guildID string) (Handler, error) {
	v, err := r.versions.Resolve(ctx, guildID)
	if err != nil {
		return nil, err
	}
	h := r.handlers.Select(v)
	h.Bind(r.apis.Select(v))
	return h, nil
}

// ResolveAPI returns just the api adapter for a guild.
func (r *Resolver) ResolveAPI(ctx context.Context, guildID string) (nameless.Adapter, error) {
	v, err := r.versions.Resolve(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return r.apis.Select(v), nil
}
