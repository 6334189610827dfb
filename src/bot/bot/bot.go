package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/commands"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/handler"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/version"
	"github.com/nameless-community/nameless-suggestions/src/bot/config"
	"github.com/nameless-community/nameless-suggestions/src/bot/data"
	"github.com/nameless-community/nameless-suggestions/src/bot/lang"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"github.com/nameless-community/nameless-suggestions/src/webclient"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Bot struct {
	session  *discordgo.Session
	db       *gorm.DB
	rdb      *redis.Client
	config   config.Config
	guilds   *data.Guilds
	mirrors  *data.Mirrors
	lang     *lang.Manager
	versions *version.Service
	apis     *nameless.Registry
	resolver *handler.Resolver
	commands *commands.Commands
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		session: dg,
		db:      db,
		rdb:     rdb,
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
	}

	bot.initializeComponents()
	bot.registerHandlers()

	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuilds

	return bot, nil
}

func (b *Bot) initializeComponents() {
	b.guilds = data.NewGuilds(b.db)
	b.mirrors = data.NewMirrors(b.db)
	b.lang = lang.New(b.guilds)

	b.apis = nameless.NewRegistry(webclient.NewDefault(30 * time.Second))
	b.versions = version.NewService(version.NewRedisCache(b.rdb), b.guilds, b.apis)

	core := handler.NewCore(b.session, b.guilds, b.mirrors, b.lang)
	handlers := handler.NewRegistry(core)
	b.resolver = handler.NewResolver(b.versions, b.apis, handlers)

	b.commands = commands.New(commands.Config{
		Guilds:   b.guilds,
		Mirrors:  b.mirrors,
		Lang:     b.lang,
		Resolver: b.resolver,
		APIs:     b.apis,
		Domain:   b.config.Domain,
	})
}

func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleMessageCreate)
	b.session.AddHandler(b.handleInteractionCreate)
	b.session.AddHandler(b.handleMessageDelete)
	b.session.AddHandler(b.handleChannelDelete)
	b.session.AddHandler(b.handleGuildCreate)
	b.session.AddHandler(b.handleGuildDelete)
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.cancel()
	b.wg.Wait()
	b.session.Close()
}

// Guilds exposes the installation store for the webserver and console.
func (b *Bot) Guilds() *data.Guilds { return b.guilds }

// Mirrors exposes the mirror-row store for the webserver.
func (b *Bot) Mirrors() *data.Mirrors { return b.mirrors }

// Resolver exposes version-aware handler selection for the webserver and
// console.
func (b *Bot) Resolver() *handler.Resolver { return b.resolver }

// Versions exposes the version service for the console.
func (b *Bot) Versions() *version.Service { return b.versions }

// Lang exposes the translation manager for the console.
func (b *Bot) Lang() *lang.Manager { return b.lang }

// Session exposes the Discord session for the console.
func (b *Bot) Session() *discordgo.Session { return b.session }

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Discord bot logged in as %s", event.User.Username)

	if err := commands.Register(s, b.config.DevGuildID); err != nil {
		log.Printf("bot: register commands: %v", err)
	}
}

// handleMessageCreate bridges thread replies back to the website and keeps
// the suggestion channel free of thread-created system notices.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" || m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	guild, err := b.guilds.Get(m.GuildID)
	if err != nil {
		log.Printf("bot: load guild %s: %v", m.GuildID, err)
		return
	}
	if guild.SuggestionChannel == "" {
		return
	}

	if m.ChannelID == guild.SuggestionChannel {
		if m.Type == discordgo.MessageTypeThreadCreated {
			if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
				log.Printf("bot: delete system message %s: %v", m.ID, err)
			}
		}
		return
	}

	channel, err := b.channel(s, m.ChannelID)
	if err != nil {
		log.Printf("bot: resolve channel %s: %v", m.ChannelID, err)
		return
	}
	if !channel.IsThread() || channel.ParentID != guild.SuggestionChannel {
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, 60*time.Second)
	defer cancel()

	h, err := b.resolver.Resolve(ctx, m.GuildID)
	if err != nil {
		log.Printf("bot: resolve handler for guild %s: %v", m.GuildID, err)
		return
	}
	if err := h.SendComment(ctx, m.Message); err != nil {
		log.Printf("bot: send comment from message %s: %v", m.ID, err)
	}
}

func (b *Bot) channel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	if channel, err := s.State.Channel(channelID); err == nil {
		return channel, nil
	}
	return s.Channel(channelID)
}

func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.commands.HandleCommand(s, i)

	case discordgo.InteractionMessageComponent:
		var kind nameless.ReactionType
		switch i.MessageComponentData().CustomID {
		case handler.ButtonLike:
			kind = nameless.ReactionLike
		case handler.ButtonDislike:
			kind = nameless.ReactionDislike
		default:
			return
		}

		ctx, cancel := context.WithTimeout(b.ctx, 60*time.Second)
		defer cancel()
		h, err := b.resolver.Resolve(ctx, i.GuildID)
		if err != nil {
			log.Printf("bot: resolve handler for guild %s: %v", i.GuildID, err)
			return
		}
		if err := h.HandleReaction(ctx, i, kind); err != nil {
			log.Printf("bot: handle reaction in guild %s: %v", i.GuildID, err)
		}

	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == commands.SuggestModalID {
			b.commands.HandleSuggestModal(s, i)
		}
	}
}

// handleMessageDelete drops the mirror row when a suggestion embed is
// removed by hand so the bridge stops resolving it.
func (b *Bot) handleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.GuildID == "" {
		return
	}
	if err := b.mirrors.DeleteSuggestionByMessage(m.GuildID, m.ID); err != nil {
		log.Printf("bot: clear mirror for message %s: %v", m.ID, err)
	}
}

func (b *Bot) handleChannelDelete(s *discordgo.Session, c *discordgo.ChannelDelete) {
	if err := b.mirrors.DeleteSuggestionsByChannel(c.ID); err != nil {
		log.Printf("bot: clear mirrors for channel %s: %v", c.ID, err)
	}
}

func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if _, err := b.guilds.Get(g.ID); err != nil {
		log.Printf("bot: create guild row %s: %v", g.ID, err)
	}
}

func (b *Bot) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	if err := b.guilds.Remove(g.ID); err != nil {
		log.Printf("bot: remove guild %s: %v", g.ID, err)
	}
}
