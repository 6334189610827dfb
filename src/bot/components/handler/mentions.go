package handler

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nameless-community/nameless-suggestions/src/bot/components/suggestion"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

var (
	userTokenRe       = regexp.MustCompile(`\[user\](\d+)\[/user\]`)
	suggestionTokenRe = regexp.MustCompile(`\[suggestion\](\d+)\[/suggestion\]`)
	discordMentionRe  = regexp.MustCompile(`<@!?(\d+)>`)
	suggestionRefRe   = regexp.MustCompile(`#(\d+)`)
)

// ReplacePlaceholders rewrites site placeholder tokens into Discord markdown
// links. Tokens that cannot be resolved are left untouched. Missing
// credentials short-circuit and return the content unmodified.
func (c *Core) ReplacePlaceholders(ctx context.Context, api nameless.Adapter, guildID, content string) string {
	creds, err := c.Guilds.Credentials(guildID)
	if err != nil || creds == nil {
		return content
	}

	content = scan(content, userTokenRe, func(id string) (string, bool) {
		siteUser := suggestion.UserByID(ctx, id, api, *creds)
		if siteUser == nil {
			return "", false
		}
		base, err := url.Parse(creds.URL)
		if err != nil {
			return "", false
		}
		profile := fmt.Sprintf("%s://%s/profile/%s", base.Scheme, base.Hostname(), url.PathEscape(siteUser.Username))
		return fmt.Sprintf("[@%s](%s)", siteUser.Username, profile), true
	})

	content = scan(content, suggestionTokenRe, func(id string) (string, bool) {
		s, err := suggestion.Fetch(ctx, id, guildID, api, *creds, c.Mirrors)
		if err != nil || s.APIData == nil || s.DBData == nil {
			return "", false
		}
		link := fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, s.DBData.ChannelID, s.DBData.MessageID)
		return fmt.Sprintf("[#%s](%s)", s.APIData.ID, link), true
	})

	return content
}

// ReplaceMentions rewrites Discord mentions and #id references into site
// placeholder notation before content is sent to the site. Unlinked users
// degrade to a readable @username.
func (c *Core) ReplaceMentions(ctx context.Context, api nameless.Adapter, guildID, content string) string {
	creds, err := c.Guilds.Credentials(guildID)
	if err != nil || creds == nil {
		return content
	}

	content = scan(content, discordMentionRe, func(id string) (string, bool) {
		if siteUser := suggestion.UserByDiscordID(ctx, id, api, *creds); siteUser != nil {
			return fmt.Sprintf("[user]%d[/user]", siteUser.ID), true
		}
		username := "Unknown user"
		if discordUser, err := c.Session.User(id); err == nil {
			username = discordUser.Username
		}
		return "@" + username, true
	})

	content = scan(content, suggestionRefRe, func(id string) (string, bool) {
		s, err := suggestion.Fetch(ctx, id, guildID, api, *creds, c.Mirrors)
		if err != nil || s.APIData == nil || s.APIData.ID == "" {
			return "", false
		}
		return fmt.Sprintf("[suggestion]%s[/suggestion]", s.APIData.ID), true
	})

	return content
}

// scan walks content match by match, advancing the cursor manually so an
// unresolvable token cannot stall the loop. A resolved token is replaced
// everywhere it occurs.
func scan(content string, re *regexp.Regexp, resolve func(id string) (string, bool)) string {
	idx := 0
	for idx < len(content) {
		loc := re.FindStringSubmatchIndex(content[idx:])
		if loc == nil {
			break
		}

		full := content[idx+loc[0] : idx+loc[1]]
		id := content[idx+loc[2] : idx+loc[3]]

		repl, ok := resolve(id)
		if !ok {
			idx += loc[1]
			if loc[0] == loc[1] {
				idx++
			}
			continue
		}

		content = strings.ReplaceAll(content, full, repl)
		idx = idx + loc[0] + len(repl)
	}
	return content
}
