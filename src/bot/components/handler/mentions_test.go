package handler

import (
	"context"
	"testing"

	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreds struct {
	creds *nameless.Credentials
}

func (f fakeCreds) Credentials(guildID string) (*nameless.Credentials, error) {
	return f.creds, nil
}

type fakeAdapter struct {
	nameless.Adapter
	users        map[string]*nameless.User
	discordUsers map[string]*nameless.User
}

func (f fakeAdapter) User(ctx context.Context, creds nameless.Credentials, id string) (*nameless.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return &nameless.User{}, nil
}

func (f fakeAdapter) UserByDiscordID(ctx context.Context, creds nameless.Credentials, discordID string) (*nameless.User, error) {
	if u, ok := f.discordUsers[discordID]; ok {
		return u, nil
	}
	return &nameless.User{}, nil
}

func testCore() *Core {
	return NewCore(nil, fakeCreds{creds: &nameless.Credentials{URL: "https://example.com/", Key: "k"}}, nil, nil)
}

func TestReplaceMentionsLinkedUser(t *testing.T) {
	api := fakeAdapter{discordUsers: map[string]*nameless.User{
		"111222333": {Exists: true, ID: 42, Username: "someone"},
	}}

	got := testCore().ReplaceMentions(context.Background(), api, "guild1", "hey <@111222333>, nice idea")
	assert.Equal(t, "hey [user]42[/user], nice idea", got)
}

func TestReplacePlaceholdersUserToken(t *testing.T) {
	api := fakeAdapter{users: map[string]*nameless.User{
		"42": {Exists: true, ID: 42, Username: "someone"},
	}}

	got := testCore().ReplacePlaceholders(context.Background(), api, "guild1", "thanks [user]42[/user]!")
	assert.Equal(t, "thanks [@someone](https://example.com/profile/someone)!", got)
}

func TestUserTokenRoundTrip(t *testing.T) {
	// A site user token rendered as a chat mention must come back as a
	// structurally valid token carrying the same site id.
	api := fakeAdapter{discordUsers: map[string]*nameless.User{
		"111222333": {Exists: true, ID: 42, Username: "someone"},
	}}

	rendered := "as <@!111222333> suggested earlier"
	back := testCore().ReplaceMentions(context.Background(), api, "guild1", rendered)

	match := userTokenRe.FindStringSubmatch(back)
	require.NotNil(t, match)
	assert.Equal(t, "42", match[1])
}

func TestReplaceMentionsWithoutCredentials(t *testing.T) {
	core := NewCore(nil, fakeCreds{}, nil, nil)

	in := "hey <@111222333>"
	assert.Equal(t, in, core.ReplaceMentions(context.Background(), fakeAdapter{}, "guild1", in))
	assert.Equal(t, in, core.ReplacePlaceholders(context.Background(), fakeAdapter{}, "guild1", in))
}

func TestScanReplacesResolvedTokens(t *testing.T) {
	got := scan("hi [user]5[/user] and [user]6[/user]", userTokenRe, func(id string) (string, bool) {
		return "@user" + id, true
	})
	assert.Equal(t, "hi @user5 and @user6", got)
}

func TestScanSkipsUnresolvedTokens(t *testing.T) {
	got := scan("[user]5[/user] then [user]6[/user]", userTokenRe, func(id string) (string, bool) {
		if id == "5" {
			return "", false
		}
		return "@six", true
	})
	assert.Equal(t, "[user]5[/user] then @six", got)
}

func TestScanRepeatedToken(t *testing.T) {
	calls := 0
	got := scan("[user]5[/user] twice [user]5[/user]", userTokenRe, func(id string) (string, bool) {
		calls++
		return "@five", true
	})
	// A resolved token is replaced everywhere with a single lookup.
	assert.Equal(t, "@five twice @five", got)
	assert.Equal(t, 1, calls)
}

func TestScanNoMatches(t *testing.T) {
	assert.Equal(t, "plain text", scan("plain text", userTokenRe, func(string) (string, bool) {
		t.Fatal("resolve must not be called")
		return "", false
	}))
}

func TestMentionPatterns(t *testing.T) {
	assert.Equal(t, [][]string{{"<@123>", "123"}}, discordMentionRe.FindAllStringSubmatch("hey <@123>", -1))
	assert.Equal(t, [][]string{{"<@!123>", "123"}}, discordMentionRe.FindAllStringSubmatch("hey <@!123>", -1))
	assert.Equal(t, [][]string{{"#42", "42"}}, suggestionRefRe.FindAllStringSubmatch("see #42", -1))
	assert.Equal(t, [][]string{{"[suggestion]42[/suggestion]", "42"}},
		suggestionTokenRe.FindAllStringSubmatch("see [suggestion]42[/suggestion]", -1))
}
