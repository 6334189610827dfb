package suggestion

import (
	"context"

	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

// UserByID fetches a site profile by its numeric id. Returns nil when the
// lookup fails or the user does not exist; callers nil-check.
func UserByID(ctx context.Context, id string, api nameless.Adapter, creds nameless.Credentials) *nameless.User {
	user, err := api.User(ctx, creds, id)
	if err != nil || !user.Exists {
		return nil
	}
	return user
}

// UserByDiscordID fetches a site profile through the Discord integration id.
// Returns nil when the account is not linked.
func UserByDiscordID(ctx context.Context, discordID string, api nameless.Adapter, creds nameless.Credentials) *nameless.User {
	user, err := api.UserByDiscordID(ctx, creds, discordID)
	if err != nil || !user.Exists {
		return nil
	}
	return user
}
