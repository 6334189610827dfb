// Package console runs the operator command loop on stdin.
package console

import (
	"bufio"
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/handler"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/version"
	"github.com/nameless-community/nameless-suggestions/src/bot/data"
	"github.com/nameless-community/nameless-suggestions/src/bot/lang"
)

type Console struct {
	session  *discordgo.Session
	guilds   *data.Guilds
	resolver *handler.Resolver
	versions *version.Service
	lang     *lang.Manager
}

func New(session *discordgo.Session, guilds *data.Guilds, resolver *handler.Resolver, versions *version.Service, langs *lang.Manager) *Console {
	return &Console{
		session:  session,
		guilds:   guilds,
		resolver: resolver,
		versions: versions,
		lang:     langs,
	}
}

// Run reads commands from stdin until the context is cancelled or stdin
// closes.
func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "migrate":
			c.migrate(ctx, fields[1:])
		case "sendreminder":
			c.sendReminder()
		case "getsiteversions":
			c.siteVersions(ctx)
		case "help":
			log.Println("console: commands: migrate <guildId> [fromId], sendreminder, getsiteversions")
		default:
			log.Printf("console: unknown command %q, try help", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("console: read stdin: %v", err)
	}
}

// migrate replays every suggestion on the site into the guild's suggestion
// channel, optionally starting from a given suggestion id.
func (c *Console) migrate(ctx context.Context, args []string) {
	if len(args) == 0 {
		log.Println("console: usage: migrate <guildId> [fromId]")
		return
	}
	guildID := args[0]
	var fromID uint64
	if len(args) > 1 {
		v, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Printf("console: invalid fromId %q", args[1])
			return
		}
		fromID = v
	}

	guild, err := c.guilds.Get(guildID)
	if err != nil {
		log.Printf("console: load guild %s: %v", guildID, err)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	h, err := c.resolver.Resolve(runCtx, guildID)
	if err != nil {
		log.Printf("console: resolve handler for guild %s: %v", guildID, err)
		return
	}

	log.Printf("console: migrating suggestions for guild %s from id %d", guildID, fromID)
	if err := h.SendAllSuggestions(runCtx, guild, fromID); err != nil {
		log.Printf("console: migrate guild %s: %v", guildID, err)
		return
	}
	log.Printf("console: migration for guild %s finished", guildID)
}

// sendReminder DMs the owner of every installation.
func (c *Console) sendReminder() {
	guilds, err := c.guilds.All()
	if err != nil {
		log.Printf("console: list guilds: %v", err)
		return
	}

	sent := 0
	for _, guild := range guilds {
		dgGuild, err := c.session.Guild(guild.ID)
		if err != nil {
			log.Printf("console: fetch guild %s: %v", guild.ID, err)
			continue
		}
		channel, err := c.session.UserChannelCreate(dgGuild.OwnerID)
		if err != nil {
			log.Printf("console: open dm to owner of guild %s: %v", guild.ID, err)
			continue
		}
		message := c.lang.GetString(guild.ID, "reminder.owner_dm", "guild", dgGuild.Name)
		if _, err := c.session.ChannelMessageSend(channel.ID, message); err != nil {
			log.Printf("console: dm owner of guild %s: %v", guild.ID, err)
			continue
		}
		sent++
	}
	log.Printf("console: sent %d setup reminders", sent)
}

// siteVersions prints the resolved site version of every installation.
func (c *Console) siteVersions(ctx context.Context) {
	guilds, err := c.guilds.All()
	if err != nil {
		log.Printf("console: list guilds: %v", err)
		return
	}

	for _, guild := range guilds {
		if guild.APIURL == "" {
			continue
		}
		runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		v, err := c.versions.Resolve(runCtx, guild.ID)
		cancel()
		if err != nil {
			log.Printf("console: guild %s: %v", guild.ID, err)
			continue
		}
		log.Printf("console: guild %s runs site version %d", guild.ID, v)
	}
}
